package main

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

// Emphasis markers: bold on, normal intensity. Closing with 22 instead of a
// full reset keeps the presenter's foreground color active.
const (
	emphasisOn  = "\x1b[1m"
	emphasisOff = "\x1b[22m"
)

// renderedResult holds the three display strings of one result.
type renderedResult struct {
	Host    string
	Link    string
	Content string
}

// renderResult derives the display strings for r. It does not modify r.
func renderResult(r searchResult, query string, cfg config) renderedResult {
	return renderedResult{
		Host:    renderHost(r.Link),
		Link:    renderLink(r.Link, r.Title, cfg.Links),
		Content: renderContent(r.Content, query, cfg.Width),
	}
}

// renderHost returns host[:port] of link, or "" when link does not parse.
func renderHost(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Host
}

// punctuationRe matches everything that is not a word character or space.
var punctuationRe = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\p{Z}\s]+`)

// keywords splits a query into the words to highlight, in query order.
func keywords(query string) []string {
	return strings.Fields(punctuationRe.ReplaceAllString(query, ""))
}

// renderContent wraps content at width columns and emphasizes every
// case-insensitive occurrence of each query keyword.
func renderContent(content, query string, width int) string {
	text := wrapText(content, width)
	for _, kw := range keywords(query) {
		text = emphasize(text, kw)
	}
	return text
}

// wrapText collapses whitespace and word-wraps greedily. Words are never
// split; a word longer than width gets a line of its own.
func wrapText(content string, width int) string {
	// wordwrap only breaks before words narrower than the limit.
	if width < 2 {
		return strings.Join(strings.Fields(content), "\n")
	}
	ww := wordwrap.NewWriter(width)
	ww.Breakpoints = nil
	_, _ = ww.Write([]byte(strings.Join(strings.Fields(content), " ")))
	_ = ww.Close()
	return ww.String()
}

// sgrRe matches SGR escape sequences such as the emphasis markers.
var sgrRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// emphasize wraps matches of keyword in emphasis markers. Text inside
// existing escape sequences is left alone, but text already emphasized by a
// previous keyword is scanned again, so overlapping keywords nest.
func emphasize(text, keyword string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
	repl := emphasisOn + "${0}" + emphasisOff

	var sb strings.Builder
	last := 0
	for _, loc := range sgrRe.FindAllStringIndex(text, -1) {
		sb.WriteString(re.ReplaceAllString(text[last:loc[0]], repl))
		sb.WriteString(text[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(re.ReplaceAllString(text[last:], repl))
	return sb.String()
}

// stripEmphasis removes SGR sequences, leaving the plain text.
func stripEmphasis(s string) string {
	return sgrRe.ReplaceAllString(s, "")
}

// renderLink combines href and title into a clickable link. Both are used
// verbatim.
func renderLink(href, title string, style linkStyle) string {
	if style == linkMarkup {
		return "[link=" + href + "]" + title + "[/link]"
	}
	return termenv.Hyperlink(href, title)
}
