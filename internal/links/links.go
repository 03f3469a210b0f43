// Package links normalizes the free-form link lines a task carries into
// labeled URLs fit for display.
package links

import (
	"regexp"
	"strings"
)

// Link is a display-ready link: the line the user typed and the URL it
// normalizes to.
type Link struct {
	Label string
	Href  string
}

var (
	schemeRe = regexp.MustCompile(`(?i)^https?://`)
	mailtoRe = regexp.MustCompile(`(?i)^mailto:`)
	spaceRe  = regexp.MustCompile(`\s`)
)

// IsProbablyURL reports whether the line looks like something a browser
// could open: an explicit http(s) or mailto target, or a bare host such as
// "www.example.com" (contains a dot, no spaces).
func IsProbablyURL(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	if schemeRe.MatchString(s) || mailtoRe.MatchString(s) {
		return true
	}
	return strings.Contains(s, ".") && !spaceRe.MatchString(s)
}

// Normalize returns the line as an openable URL, prefixing https:// when the
// scheme is missing. Empty input yields an empty string.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if schemeRe.MatchString(s) || mailtoRe.MatchString(s) {
		return s
	}
	return "https://" + s
}

// Extract filters the task's link lines down to the URL-like ones and
// normalizes them, preserving order.
func Extract(lines []string) []Link {
	var out []Link
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || !IsProbablyURL(line) {
			continue
		}
		if href := Normalize(line); href != "" {
			out = append(out, Link{Label: line, Href: href})
		}
	}
	return out
}
