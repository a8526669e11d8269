// Package sanitize cleans inbound data before persistence.
package sanitize

import (
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ErrBadScheme is returned for URLs outside the http/https/mailto set.
	ErrBadScheme = errors.New("unsupported URL scheme")
	// ErrBadPath is returned for local media paths that escape /uploads.
	ErrBadPath = errors.New("invalid media path")
)

var strict = bluemonday.StrictPolicy()

// rich allows a conservative set of tags for rich text content.
var rich = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "strong", "em", "ul", "ol", "li", "br", "code", "pre", "blockquote")
	p.AllowAttrs("href", "title", "target", "rel").OnElements("a")
	p.AllowAttrs("class").OnElements("code")
	p.AllowAttrs("class", "data-lang").OnElements("pre")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	return p
}()

// PlainText removes any HTML or scripting content from a plain text input.
func PlainText(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// RichText allows limited markup while stripping unsafe content.
func RichText(s string) string {
	return strings.TrimSpace(rich.Sanitize(s))
}

// Tags sanitizes every element of a tag list, dropping entries that collapse
// to the empty string.
func Tags(in []string) []string {
	out := []string{}
	for _, t := range in {
		if clean := PlainText(t); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

// URL ensures a URL uses an allowed scheme and is otherwise plain text.
func URL(s string) (string, error) {
	clean := PlainText(s)
	if clean == "" {
		return "", nil
	}
	if i := strings.Index(clean, "://"); i >= 0 {
		switch strings.ToLower(clean[:i]) {
		case "http", "https":
		default:
			return "", ErrBadScheme
		}
	}
	return clean, nil
}

// MediaPath accepts local media paths (e.g. /uploads/...) or absolute URLs.
// Protocol-relative paths and directory traversal are rejected.
func MediaPath(s string) (string, error) {
	clean := PlainText(s)
	if clean == "" {
		return "", nil
	}
	if strings.HasPrefix(clean, "/") {
		if strings.HasPrefix(clean, "//") {
			return "", ErrBadPath
		}
		for _, seg := range strings.Split(clean, "/") {
			if seg == ".." {
				return "", ErrBadPath
			}
		}
		return clean, nil
	}
	return URL(clean)
}
