package main

import (
	"context"
	"fmt"
)

// fetcher returns the fully rendered markup of a page.
type fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// fetchError reports a failure to launch the browser, navigate, or
// download the page.
type fetchError struct {
	URL string
	Err error
}

func (e *fetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *fetchError) Unwrap() error { return e.Err }

// newFetcher returns the fetcher selected by cfg.Fetcher.
func newFetcher(cfg config) (fetcher, error) {
	switch cfg.Fetcher {
	case fetcherBrowser:
		return &browserFetcher{}, nil
	case fetcherHTTP:
		tr, err := newTransport(chromeProfile())
		if err != nil {
			return nil, fmt.Errorf("failed to create transport: %w", err)
		}
		return &httpFetcher{transport: tr, profile: chromeProfile()}, nil
	default:
		return nil, fmt.Errorf("unknown fetcher %q", cfg.Fetcher)
	}
}
