package main

import (
	tls "github.com/refraction-networking/utls"
)

// browserProfile pairs a TLS ClientHello fingerprint with the request
// headers the same browser would send.
type browserProfile struct {
	Name     string
	TLSHello tls.ClientHelloID
	Headers  [][2]string
}

// chromeProfile is the fingerprint the http fetcher presents.
// Accept-Encoding only lists the encodings decodeBody understands.
func chromeProfile() browserProfile {
	return browserProfile{
		Name:     "chrome",
		TLSHello: tls.HelloChrome_Auto,
		Headers: [][2]string{
			{"User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"},
			{"Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"},
			{"Accept-Language", "en-US,en;q=0.9"},
			{"Accept-Encoding", "gzip, br"},
			{"Sec-Ch-Ua", `"Chromium";v="133", "Not(A:Brand";v="99", "Google Chrome";v="133"`},
			{"Sec-Ch-Ua-Mobile", "?0"},
			{"Sec-Fetch-Site", "none"},
			{"Sec-Fetch-Mode", "navigate"},
			{"Sec-Fetch-Dest", "document"},
			{"Upgrade-Insecure-Requests", "1"},
		},
	}
}
