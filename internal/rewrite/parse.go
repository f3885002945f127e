package rewrite

import (
	"regexp"
	"strings"
)

// The model is asked for a strict "Titel: ... / Beskrivning (HTML): ..."
// reply but drifts in practice: English labels, full-width colons,
// missing labels, fenced HTML. These rules absorb the variance the
// model actually produces and must not be loosened or tightened
// casually; ParseResponse is deliberately the only place they live.
var (
	titleLabelRe = regexp.MustCompile(`(?i)(?m)^[ \t]*(?:titel|title)[ \t]*[:：]`)
	descLabelRe  = regexp.MustCompile(`(?i)(?:beskrivning|description)[ \t]*(?:\([ \t]*html[ \t]*\))?[ \t]*[:：]`)
)

// ParseResponse splits a model reply into title and HTML description.
//
// Rules, in order:
//  1. a leading "Titel:"/"Title:" label starts the title; the title
//     runs until the description label
//  2. a "Beskrivning"/"Description" label, optionally qualified with
//     "(HTML)", starts the description
//  3. with a title but no description label, everything after the
//     title line is the description
//  4. with no title label at all, the whole reply is the description
//     and fallbackTitle is returned as the title
//  5. markdown code fences around the description are stripped
func ParseResponse(raw, fallbackTitle string) (title, description string) {
	titleLoc := titleLabelRe.FindStringIndex(raw)
	if titleLoc == nil {
		return strings.TrimSpace(fallbackTitle), stripFences(raw)
	}

	afterTitle := raw[titleLoc[1]:]

	descLoc := descLabelRe.FindStringIndex(afterTitle)
	if descLoc != nil {
		title = strings.TrimSpace(afterTitle[:descLoc[0]])
		description = stripFences(afterTitle[descLoc[1]:])
		return title, description
	}

	// No description label: title is the rest of its line, the
	// remainder of the reply is the description.
	if nl := strings.IndexByte(afterTitle, '\n'); nl >= 0 {
		title = strings.TrimSpace(afterTitle[:nl])
		description = stripFences(afterTitle[nl+1:])
	} else {
		title = strings.TrimSpace(afterTitle)
	}
	return title, description
}

// stripFences removes a leading ```html (or bare ```) line and a
// trailing ``` line, then trims surrounding whitespace.
func stripFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		rest := s[3:]
		rest = strings.TrimPrefix(rest, "html")
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			s = rest[nl+1:]
		} else {
			s = strings.TrimSpace(rest)
		}
	}
	if strings.HasSuffix(strings.TrimSpace(s), "```") {
		t := strings.TrimSpace(s)
		s = t[:len(t)-3]
	}

	return strings.TrimSpace(s)
}
