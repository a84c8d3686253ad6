package main

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// searchResult is one extracted search hit.
type searchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Content string `json:"content"`
}

// Element signatures of a Google result page.
var (
	containerSig = sig("div", "MjjYud")
	wrapperSig   = sig("div", "yuRUbf")
	anchorSig    = sig("a", "")
	titleSig     = sig("h3", "LC20lb MBeuO DKV0Md")
	snippetSig   = sig("div", "VwiC3b yXK7lf MUxGbd yDYNvb lyLwlc lEBKkf")
)

// extractResults parses markup and returns its search results in document
// order. Only a markup parse failure is an error.
func extractResults(markup, domain string) ([]searchResult, error) {
	doc, err := parseTree(markup)
	if err != nil {
		return nil, err
	}
	return extractFrom(rootElement(doc), domain), nil
}

// extractFrom walks every result container below root. Containers missing
// any required piece (title wrapper, anchor, heading, snippet) are skipped.
func extractFrom(root element, domain string) []searchResult {
	containers := root.FindAll(containerSig)
	results := make([]searchResult, 0, len(containers))

	for i, c := range containers {
		r, reason := extractResult(c, domain)
		if reason != "" {
			log.Debug().Int("candidate", i).Str("reason", reason).Msg("skipping result container")
			continue
		}
		results = append(results, r)
	}

	log.Debug().Int("candidates", len(containers)).Int("results", len(results)).Msg("extracted results")
	return results
}

// extractResult resolves one container. A non-empty reason means the
// container is not a usable result.
func extractResult(container element, domain string) (searchResult, string) {
	wrapper, ok := container.Find(wrapperSig)
	if !ok {
		return searchResult{}, "no title wrapper"
	}
	anchor, ok := wrapper.Find(anchorSig)
	if !ok {
		return searchResult{}, "no anchor"
	}
	href, ok := anchor.Attr("href")
	if !ok {
		return searchResult{}, "anchor without href"
	}
	link, ok := resolveLink(href, domain)
	if !ok {
		return searchResult{}, "unusable href"
	}
	heading, ok := anchor.Find(titleSig)
	if !ok {
		return searchResult{}, "no title heading"
	}
	title := strings.TrimSpace(heading.Text())
	if title == "" {
		return searchResult{}, "empty title"
	}

	// The snippet lives beside the title wrapper, so search the container.
	snippet, ok := container.Find(snippetSig)
	if !ok {
		return searchResult{}, "no snippet"
	}
	content := strings.TrimSpace(snippet.Text())
	if content == "" {
		return searchResult{}, "empty snippet"
	}

	return searchResult{Title: title, Link: link, Content: content}, ""
}

// sameSite reports whether host is domain, ignoring a leading "www.".
func sameSite(host, domain string) bool {
	return strings.TrimPrefix(strings.ToLower(host), "www.") == strings.TrimPrefix(strings.ToLower(domain), "www.")
}

// resolveLink turns an href into an absolute URL. Relative references are
// resolved against the search domain and /url?q= redirects are unwrapped.
func resolveLink(href, domain string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	base := &url.URL{Scheme: "https", Host: domain, Path: "/"}
	abs := base.ResolveReference(ref)

	if sameSite(abs.Host, domain) && abs.Path == "/url" {
		q := abs.Query()
		for _, key := range []string{"q", "url"} {
			target, err := url.Parse(q.Get(key))
			if err == nil && target.Scheme != "" && target.Host != "" {
				return target.String(), true
			}
		}
	}

	if abs.Host == "" || (abs.Scheme != "http" && abs.Scheme != "https") {
		return "", false
	}
	if ref.IsAbs() {
		return href, true
	}
	return abs.String(), true
}
