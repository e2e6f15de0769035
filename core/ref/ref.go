// Package ref parses chapter:verse references used for exact lookups.
package ref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/kjvparse/core/errors"
)

// Ref is a chapter, a single verse, or a verse range within one chapter.
type Ref struct {
	// Chapter is the chapter number (1-indexed).
	Chapter int `json:"chapter"`

	// Verse is the verse number, 0 for whole-chapter references.
	Verse int `json:"verse,omitempty"`

	// VerseEnd is the ending verse for ranges, 0 otherwise.
	VerseEnd int `json:"verse_end,omitempty"`
}

// refGrammar is the participle grammar for references.
// Examples: "3", "3:16", "3:16-18"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	Chapter  int        `parser:"@Int"`
	VerseRef *versePart `parser:"( \":\" @@ )?"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type versePart struct {
	Verse int  `parser:"@Int"`
	Range *int `parser:"( \"-\" @Int )?"`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a reference string.
// Supported formats:
//   - "3" (whole chapter)
//   - "3:16" (single verse)
//   - "3:16-18" (verse range)
func Parse(s string) (*Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.NewParse("reference", "", 0, "empty reference string")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		perr := errors.NewParse("reference", "", 0, fmt.Sprintf("invalid reference %q", s))
		perr.Err = err
		return nil, perr
	}

	r := &Ref{Chapter: parsed.Chapter}
	if parsed.VerseRef != nil {
		r.Verse = parsed.VerseRef.Verse
		if parsed.VerseRef.Range != nil {
			r.VerseEnd = *parsed.VerseRef.Range
		}
	}

	if r.Chapter < 1 {
		return nil, errors.NewParse("reference", "", 0, fmt.Sprintf("chapter must be positive in %q", s))
	}
	if parsed.VerseRef != nil && r.Verse < 1 {
		return nil, errors.NewParse("reference", "", 0, fmt.Sprintf("verse must be positive in %q", s))
	}
	if r.VerseEnd != 0 && r.VerseEnd < r.Verse {
		return nil, errors.NewParse("reference", "", 0, fmt.Sprintf("range end before start in %q", s))
	}
	return r, nil
}

// String formats the reference back to its canonical text.
func (r *Ref) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(r.Chapter))
	if r.Verse > 0 {
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(r.Verse))
		if r.VerseEnd > 0 {
			sb.WriteString("-")
			sb.WriteString(strconv.Itoa(r.VerseEnd))
		}
	}
	return sb.String()
}

// IsChapter returns true for whole-chapter references.
func (r *Ref) IsChapter() bool {
	return r.Verse == 0
}

// IsRange returns true if this reference spans multiple verses.
func (r *Ref) IsRange() bool {
	return r.VerseEnd > 0 && r.VerseEnd > r.Verse
}

// Last returns the final verse covered by a verse or range reference.
func (r *Ref) Last() int {
	if r.VerseEnd > 0 {
		return r.VerseEnd
	}
	return r.Verse
}
