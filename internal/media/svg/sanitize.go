package svg

import (
	"bytes"
	"errors"
	"regexp"
)

var ErrNotSVG = errors.New("not an svg document")

// Each pattern removes one way an svg avatar could run code or pull in
// outside content when opened directly in a browser.
var stripPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<!DOCTYPE[^>\[]*(\[.*?\])?\s*>`),
	regexp.MustCompile(`(?is)<!ENTITY[^>]*>`),
	regexp.MustCompile(`(?is)<\s*script[\s>].*?<\s*/\s*script\s*>`),
	regexp.MustCompile(`(?is)<\s*foreignObject[\s>].*?<\s*/\s*foreignObject\s*>`),
	regexp.MustCompile(`(?is)<\s*(iframe|embed|object)[\s>].*?(<\s*/\s*(iframe|embed|object)\s*>|/>)`),
	regexp.MustCompile(`(?is)\son[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`),
	regexp.MustCompile(`(?is)\s(xlink:)?href\s*=\s*("\s*javascript:[^"]*"|'\s*javascript:[^']*')`),
}

// Sanitize cleans an uploaded svg avatar.
func Sanitize(input []byte) ([]byte, error) {
	if !bytes.Contains(bytes.ToLower(input), []byte("<svg")) {
		return nil, ErrNotSVG
	}

	clean := input
	for _, p := range stripPatterns {
		clean = p.ReplaceAll(clean, nil)
	}
	return clean, nil
}
