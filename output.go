package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/fatih/color"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// writeResults prints results in the configured format.
// colors is false when the output is not a terminal.
func writeResults(w io.Writer, query string, results []searchResult, cfg config, colors bool) error {
	switch cfg.Format {
	case formatJSON:
		return writeJSON(w, query, cfg.Domain, results)
	case formatMarkdown:
		return writeMarkdown(w, query, results)
	default:
		writeTerminal(w, query, results, cfg, colors)
		return nil
	}
}

// writeTerminal prints host, link and highlighted snippet for every
// result, each block followed by a blank line.
func writeTerminal(w io.Writer, query string, results []searchResult, cfg config, colors bool) {
	hostColor := color.New(color.FgHiBlack)
	linkColor := color.New(color.FgBlue)
	textColor := color.New(color.FgWhite)
	for _, c := range []*color.Color{hostColor, linkColor, textColor} {
		if colors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, r := range results {
		rr := renderResult(r, query, cfg)
		if !colors {
			// Escape sequences would show up as garbage in a pipe.
			rr.Content = stripEmphasis(rr.Content)
			if cfg.Links == linkOSC8 {
				rr.Link = r.Title + " <" + r.Link + ">"
			}
		}
		hostColor.Fprintln(w, rr.Host)
		linkColor.Fprintln(w, rr.Link)
		textColor.Fprintln(w, rr.Content)
		fmt.Fprintln(w)
	}
}

// writeMarkdown formats results as a numbered markdown list.
func writeMarkdown(w io.Writer, query string, results []searchResult) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Search: %q\n\n", query))

	for i, r := range results {
		link, err := markdownLink(r.Link, r.Title)
		if err != nil {
			return fmt.Errorf("convert result %d: %w", i+1, err)
		}
		sb.WriteString(fmt.Sprintf("%d. **%s**\n", i+1, link))
		sb.WriteString(fmt.Sprintf("   %s\n", strings.Join(strings.Fields(r.Content), " ")))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// markdownLink converts an <a> element to markdown so that characters in
// the title that are special to markdown get escaped.
func markdownLink(href, title string) (string, error) {
	a := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr:     []html.Attribute{{Key: "href", Val: href}},
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: title})

	var buf strings.Builder
	if err := html.Render(&buf, a); err != nil {
		return "", err
	}
	doc, err := html.Parse(strings.NewReader(buf.String()))
	if err != nil {
		return "", err
	}
	md, err := htmltomarkdown.ConvertNode(doc)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(md)), nil
}

// searchJSONOutput is the JSON output format for search results.
type searchJSONOutput struct {
	Query   string         `json:"query"`
	Domain  string         `json:"domain"`
	Results []searchResult `json:"results"`
}

func writeJSON(w io.Writer, query, domain string, results []searchResult) error {
	if results == nil {
		results = []searchResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(searchJSONOutput{
		Query:   query,
		Domain:  domain,
		Results: results,
	})
}
