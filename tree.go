package main

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// signature identifies elements by tag name and a set of classes.
// An element matches when its tag is Tag and its class attribute contains
// every class in Classes, in any order.
type signature struct {
	Tag     string
	Classes []string
}

// sig builds a signature from a tag and a space-separated class list.
func sig(tag, classes string) signature {
	return signature{Tag: tag, Classes: strings.Fields(classes)}
}

func (s signature) String() string {
	if len(s.Classes) == 0 {
		return s.Tag
	}
	return s.Tag + "." + strings.Join(s.Classes, ".")
}

// element is the navigation capability the extractor relies on.
// It keeps the fallback chain independent of the HTML library.
type element interface {
	// FindAll returns every descendant matching s, in document order.
	FindAll(s signature) []element
	// Find returns the first descendant matching s.
	Find(s signature) (element, bool)
	// Text returns the concatenated text content.
	Text() string
	// Attr returns the named attribute.
	Attr(name string) (string, bool)
}

// parseError reports markup that could not be turned into a tree at all.
type parseError struct {
	Err error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("parse markup: %v", e.Err)
}

func (e *parseError) Unwrap() error { return e.Err }

// parseTree parses markup into a goquery document.
func parseTree(markup string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, &parseError{Err: err}
	}
	return goquery.NewDocumentFromNode(root), nil
}

// rootElement exposes a parsed document through the element interface.
func rootElement(doc *goquery.Document) element {
	return selection{sel: doc.Selection}
}

// selection implements element on top of a single-node goquery selection.
type selection struct {
	sel *goquery.Selection
}

func (s selection) matching(sg signature) *goquery.Selection {
	return s.sel.Find(sg.Tag).FilterFunction(func(_ int, c *goquery.Selection) bool {
		for _, class := range sg.Classes {
			if !c.HasClass(class) {
				return false
			}
		}
		return true
	})
}

func (s selection) FindAll(sg signature) []element {
	var out []element
	s.matching(sg).Each(func(_ int, c *goquery.Selection) {
		out = append(out, selection{sel: c})
	})
	return out
}

func (s selection) Find(sg signature) (element, bool) {
	m := s.matching(sg)
	if m.Length() == 0 {
		return nil, false
	}
	return selection{sel: m.First()}, true
}

func (s selection) Text() string {
	return s.sel.Text()
}

func (s selection) Attr(name string) (string, bool) {
	return s.sel.Attr(name)
}
