package main

import (
	"errors"
	"net/url"
	"strings"
)

// errEmptyQuery is returned when no query words were given.
var errEmptyQuery = errors.New("missing query")

// buildQuery joins the command-line words into a single query string.
func buildQuery(args []string) string {
	return strings.Join(args, " ")
}

// buildSearchURL returns https://<domain>/search?q=<query>.
func buildSearchURL(query, domain string) (string, error) {
	if query == "" {
		return "", errEmptyQuery
	}
	u := url.URL{
		Scheme:   "https",
		Host:     domain,
		Path:     "/search",
		RawQuery: url.Values{"q": {query}}.Encode(),
	}
	return u.String(), nil
}
