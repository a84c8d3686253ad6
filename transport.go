package main

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	utls "github.com/refraction-networking/utls"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
)

// roundTripper uses uTLS to establish TLS connections with browser-like
// fingerprints. HTTPS goes over HTTP/2, plain HTTP over HTTP/1.1.
type roundTripper struct {
	profile browserProfile
	h2      *http2.Transport
	h1      *http.Transport
}

// newTransport creates a new http.RoundTripper that uses uTLS with the
// given browser profile's TLS ClientHello fingerprint.
func newTransport(profile browserProfile) (http.RoundTripper, error) {
	rt := &roundTripper{profile: profile}

	// The *tls.Config parameter is ignored since uTLS builds its own.
	rt.h2 = &http2.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			return rt.dialTLS(ctx, network, addr)
		},
	}
	rt.h1 = &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return rt.dialTLS(ctx, network, addr)
		},
	}

	return rt, nil
}

// dialTLS creates a uTLS connection with the browser profile's fingerprint.
func (rt *roundTripper) dialTLS(ctx context.Context, network, addr string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	dialer := &net.Dialer{}
	tcpConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	tlsConn := utls.UClient(tcpConn, &utls.Config{
		ServerName: host,
		NextProtos: []string{"h2", "http/1.1"},
	}, rt.profile.TLSHello)
	if err := tlsConn.Handshake(); err != nil {
		tcpConn.Close()
		return nil, fmt.Errorf("TLS handshake failed: %w", err)
	}
	return tlsConn, nil
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return rt.h1.RoundTrip(req)
	}
	return rt.h2.RoundTrip(req)
}

// httpFetcher downloads the page without running scripts. It is much
// lighter than the browser but sees only server-rendered markup.
type httpFetcher struct {
	transport http.RoundTripper
	profile   browserProfile
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &fetchError{URL: url, Err: err}
	}
	for _, h := range f.profile.Headers {
		req.Header.Set(h[0], h[1])
	}

	client := &http.Client{
		Transport: f.transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	log.Debug().Str("url", url).Str("profile", f.profile.Name).Msg("fetching page over http")
	resp, err := client.Do(req)
	if err != nil {
		return "", &fetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp)
	if err != nil {
		return "", &fetchError{URL: url, Err: err}
	}
	log.Debug().Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("received page")

	// 4xx pages (rate limiting, consent) are still markup worth inspecting.
	if resp.StatusCode >= 500 {
		return "", &fetchError{URL: url, Err: fmt.Errorf("server returned %s", resp.Status)}
	}
	return string(body), nil
}

// decodeBody reads the response body, undoing gzip or brotli encoding.
func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip decode failed: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "br":
		reader = brotli.NewReader(resp.Body)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	return body, nil
}
