package main

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type challengeType int

const (
	challengeNone challengeType = iota
	challengeCaptcha
	challengeConsent
)

func (c challengeType) String() string {
	switch c {
	case challengeNone:
		return "none"
	case challengeCaptcha:
		return "captcha"
	case challengeConsent:
		return "consent"
	default:
		return "unknown"
	}
}

// detectChallenge reports whether a page is a bot check or a cookie consent
// wall instead of a result page. Captcha markers take priority.
func detectChallenge(doc *goquery.Document) challengeType {
	if doc.Find("form#captcha-form, div.g-recaptcha, #recaptcha, div.h-captcha").Length() > 0 {
		return challengeCaptcha
	}

	text := strings.ToLower(doc.Find("body").Text())
	if strings.Contains(text, "unusual traffic from your computer network") {
		return challengeCaptcha
	}

	consent := doc.Find("form").FilterFunction(func(_ int, s *goquery.Selection) bool {
		action, _ := s.Attr("action")
		return strings.Contains(action, "consent.google.")
	})
	if consent.Length() > 0 {
		return challengeConsent
	}

	return challengeNone
}
