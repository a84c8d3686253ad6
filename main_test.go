package main

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// stubFetcher returns canned markup and records the requested URL.
type stubFetcher struct {
	markup string
	err    error
	calls  []string
}

func (s *stubFetcher) Fetch(ctx context.Context, u string) (string, error) {
	s.calls = append(s.calls, u)
	return s.markup, s.err
}

// fixture has two real results and one ad-like decoy.
var fixture = page(
	resultBlock("https://example.com/testing", "Testing in Go", "Package testing provides support for automated Test runs."),
	decoyAd,
	resultBlock("https://docs.example.org:8443/guide", "Guide", "A friendly guide with no matching words."),
)

func TestRunEndToEnd(t *testing.T) {
	t.Run("prints one block per valid result", func(t *testing.T) {
		f := &stubFetcher{markup: fixture}
		var buf bytes.Buffer
		cfg := defaultConfig()

		if err := run(context.Background(), cfg, "test", f, &buf, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		blocks := strings.Split(strings.TrimSuffix(buf.String(), "\n\n"), "\n\n")
		if len(blocks) != 2 {
			t.Fatalf("expected 2 result blocks, got %d:\n%s", len(blocks), buf.String())
		}
		for i, b := range blocks {
			if lines := strings.Split(b, "\n"); len(lines) != 3 {
				t.Errorf("block %d has %d lines, want host, link and content:\n%s", i, len(lines), b)
			}
		}
		if !strings.HasPrefix(blocks[0], "example.com\n") || !strings.HasPrefix(blocks[1], "docs.example.org:8443\n") {
			t.Errorf("unexpected hosts or order:\n%s", buf.String())
		}
	})

	t.Run("emphasizes the query in snippets", func(t *testing.T) {
		f := &stubFetcher{markup: fixture}
		var buf bytes.Buffer
		if err := run(context.Background(), defaultConfig(), "test", f, &buf, true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := buf.String()

		if n := strings.Count(out, "\x1b]8;;https://"); n != 2 {
			t.Fatalf("expected 2 hyperlinks, got %d:\n%q", n, out)
		}
		for _, want := range []string{
			emphasisOn + "test" + emphasisOff + "ing provides",
			emphasisOn + "Test" + emphasisOff + " runs",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%q", want, out)
			}
		}
		if strings.Contains(out, "Buy now") {
			t.Errorf("decoy leaked into output:\n%q", out)
		}
	})

	t.Run("requests the configured domain", func(t *testing.T) {
		f := &stubFetcher{markup: "<html></html>"}
		cfg := defaultConfig()
		cfg.Domain = "google.co.jp"
		if err := run(context.Background(), cfg, "hello world", f, &bytes.Buffer{}, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.calls) != 1 {
			t.Fatalf("expected one fetch, got %d", len(f.calls))
		}
		u, err := url.Parse(f.calls[0])
		if err != nil {
			t.Fatalf("bad URL %q: %v", f.calls[0], err)
		}
		if u.Host != "google.co.jp" || u.Query().Get("q") != "hello world" {
			t.Fatalf("unexpected search URL %q", f.calls[0])
		}
	})

	t.Run("empty page is not an error", func(t *testing.T) {
		var logBuf bytes.Buffer
		prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
		log.Logger = zerolog.New(&logBuf)
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		t.Cleanup(func() {
			log.Logger = prevLogger
			zerolog.SetGlobalLevel(prevLevel)
		})

		f := &stubFetcher{markup: `<html><body><form id="captcha-form"></form></body></html>`}
		var buf bytes.Buffer
		if err := run(context.Background(), defaultConfig(), "test", f, &buf, false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.Len() != 0 {
			t.Fatalf("expected no output, got %q", buf.String())
		}
		if !strings.Contains(logBuf.String(), `"challenge":"captcha"`) {
			t.Fatalf("expected a captcha warning, got %q", logBuf.String())
		}
	})

	t.Run("fetch errors propagate", func(t *testing.T) {
		f := &stubFetcher{err: &fetchError{URL: "https://google.com/search", Err: errors.New("boom")}}
		err := run(context.Background(), defaultConfig(), "test", f, &bytes.Buffer{}, false)
		var fe *fetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *fetchError, got %v", err)
		}
	})

	t.Run("empty query never fetches", func(t *testing.T) {
		f := &stubFetcher{markup: fixture}
		err := run(context.Background(), defaultConfig(), "", f, &bytes.Buffer{}, false)
		if !errors.Is(err, errEmptyQuery) {
			t.Fatalf("expected errEmptyQuery, got %v", err)
		}
		if len(f.calls) != 0 {
			t.Fatalf("fetcher called %d times", len(f.calls))
		}
	})
}

func TestRootCommand(t *testing.T) {
	t.Run("no arguments is a missing query", func(t *testing.T) {
		cmd := newRootCmd(envMap(nil))
		cmd.SetArgs([]string{})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		if err := cmd.Execute(); !errors.Is(err, errEmptyQuery) {
			t.Fatalf("expected errEmptyQuery, got %v", err)
		}
	})

	t.Run("invalid configuration fails before fetching", func(t *testing.T) {
		cmd := newRootCmd(envMap(map[string]string{envFetcher: "carrier-pigeon"}))
		cmd.SetArgs([]string{"--verbose", "golang"})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "carrier-pigeon") {
			t.Fatalf("expected config error, got %v", err)
		}
	})
}

func TestReportError(t *testing.T) {
	t.Run("missing query message", func(t *testing.T) {
		var buf bytes.Buffer
		reportError(&buf, errEmptyQuery)
		if !strings.Contains(buf.String(), "Missing query") {
			t.Fatalf("unexpected message %q", buf.String())
		}
	})

	t.Run("other errors are printed", func(t *testing.T) {
		var buf bytes.Buffer
		reportError(&buf, &parseError{Err: errors.New("bad markup")})
		if !strings.Contains(buf.String(), "bad markup") {
			t.Fatalf("unexpected message %q", buf.String())
		}
	})
}
