// Package verse splits a book's body text into verse records using
// "chapter:verse" anchors as the only delimiters.
package verse

import (
	"regexp"
	"strconv"
	"strings"
)

// Record is one verse in appearance order.
type Record struct {
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// Delimiter is inserted before every anchor. It is an ASCII control
// character that cannot occur in transcribed text.
const Delimiter = "\x1f"

var (
	// anchorPattern matches a chapter:verse anchor anywhere in a body.
	anchorPattern = regexp.MustCompile(`(\d+):(\d+)`)
	// segmentPattern matches a delimited segment that starts with an anchor.
	segmentPattern = regexp.MustCompile(`(?s)^(\d+):(\d+)(.*)$`)
)

// Mark rewrites body with Delimiter before every anchor and one trailing
// Delimiter at the end.
func Mark(body string) string {
	return anchorPattern.ReplaceAllString(body, Delimiter+"${1}:${2}") + Delimiter
}

// Extract returns the verse records of body in appearance order. Text
// before the first anchor produces no record.
func Extract(body string) []Record {
	var records []Record
	for _, segment := range strings.Split(Mark(body), Delimiter) {
		if segment == "" {
			continue
		}
		if rec, ok := ParseAnchored(segment); ok {
			records = append(records, rec)
		}
	}
	return records
}

// ParseAnchored parses a string whose head is a chapter:verse anchor into a
// Record with trimmed text. It is also the grammar of fixture lines.
func ParseAnchored(s string) (Record, bool) {
	m := segmentPattern.FindStringSubmatch(s)
	if m == nil {
		return Record{}, false
	}
	chapter, err := strconv.Atoi(m[1])
	if err != nil {
		return Record{}, false
	}
	v, err := strconv.Atoi(m[2])
	if err != nil {
		return Record{}, false
	}
	return Record{Chapter: chapter, Verse: v, Text: strings.TrimSpace(m[3])}, true
}

// Key identifies a verse within a book.
type Key struct {
	Chapter int
	Verse   int
}

// Key returns the chapter/verse pair of r.
func (r Record) Key() Key {
	return Key{Chapter: r.Chapter, Verse: r.Verse}
}
