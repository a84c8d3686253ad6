package main

import (
	"context"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// browserFetcher renders pages in a headless Chrome driven by chromedp.
// Every Fetch starts its own browser process and shuts it down before
// returning.
type browserFetcher struct {
	// execPath overrides chromedp's Chrome discovery; used by tests.
	execPath string
}

func (b *browserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
	)
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	log.Debug().Str("url", url).Msg("launching headless browser")

	var markup string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &markup, chromedp.ByQuery),
	)
	if err != nil {
		return "", &fetchError{URL: url, Err: err}
	}

	log.Debug().Int("bytes", len(markup)).Msg("captured rendered page")
	return markup, nil
}
