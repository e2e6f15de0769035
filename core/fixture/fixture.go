// Package fixture checks a parsed corpus against an expected-verse file.
//
// A fixture file is a sequence of book sections. Each section opens with a
// sentinel line (by default "T~") followed by the exact book title, then
// holds one "chapter:verse text" line per verse. Blank lines are ignored.
package fixture

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/FocuswithJustin/kjvparse/core/corpus"
	"github.com/FocuswithJustin/kjvparse/core/errors"
	"github.com/FocuswithJustin/kjvparse/core/verse"
	"github.com/FocuswithJustin/kjvparse/internal/linesource"
)

// DefaultSentinel opens every book section.
const DefaultSentinel = "T~"

// Fixture is the expected content of one book.
type Fixture struct {
	Title string
	// Line is the 1-based file line of the sentinel.
	Line  int
	Lines []Line
}

// Line is one expected verse line with its position in the file.
type Line struct {
	Number int
	Text   string
}

// Result summarizes a successful verification.
type Result struct {
	Books  int
	Verses int
}

// Parse splits fixture lines into book sections. A non-blank line before
// the first sentinel is a ParseError.
func Parse(lines []string, sentinel string) ([]Fixture, error) {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}

	var fixtures []Fixture
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if title, ok := strings.CutPrefix(line, sentinel); ok {
			fixtures = append(fixtures, Fixture{Title: strings.TrimSpace(title), Line: i + 1})
			continue
		}
		if len(fixtures) == 0 {
			return nil, errors.NewParse("fixture", "", i+1, fmt.Sprintf("verse line before first %q title", sentinel))
		}
		cur := &fixtures[len(fixtures)-1]
		cur.Lines = append(cur.Lines, Line{Number: i + 1, Text: line})
	}
	return fixtures, nil
}

// Load reads and parses the fixture file at path.
func Load(path, sentinel string) ([]Fixture, error) {
	lines, err := linesource.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fixtures, err := Parse(lines, sentinel)
	if err != nil {
		var perr *errors.ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return fixtures, nil
}

// Verify checks that the corpus holds exactly the fixtures' books and that
// every fixture verse exists once with identical text. It stops at the
// first discrepancy.
func Verify(c *corpus.Corpus, fixtures []Fixture, expectedBooks int) (*Result, error) {
	if expectedBooks > 0 && len(fixtures) != expectedBooks {
		err := errors.NewInvariant(errors.KindFixtureCount, "")
		err.Expected = fmt.Sprint(expectedBooks)
		err.Actual = fmt.Sprint(len(fixtures))
		return nil, err
	}

	res := &Result{}
	for _, fx := range fixtures {
		n, err := verifyBook(c, fx)
		if err != nil {
			return nil, err
		}
		res.Books++
		res.Verses += n
	}
	return res, nil
}

func verifyBook(c *corpus.Corpus, fx Fixture) (int, error) {
	entry, err := c.Book(fx.Title)
	if err != nil {
		return 0, err
	}
	r, err := c.RangeOf(entry)
	if err != nil {
		return 0, err
	}

	for _, line := range fx.Lines {
		want, ok := verse.ParseAnchored(line.Text)
		if !ok {
			return 0, errors.NewParse("fixture", "", line.Number, fmt.Sprintf("expected \"chapter:verse text\", got %q", line.Text))
		}
		got, err := r.Find(want.Chapter, want.Verse)
		if err != nil {
			var inv *errors.InvariantError
			if errors.As(err, &inv) {
				inv.Title = fx.Title
			}
			return 0, err
		}
		if got.Text != want.Text {
			err := errors.NewInvariant(errors.KindTextMismatch, fx.Title)
			err.Chapter, err.Verse = want.Chapter, want.Verse
			err.Expected, err.Actual = want.Text, got.Text
			err.Position = FirstDiff(want.Text, got.Text)
			err.Detail = WordDiff(want.Text, got.Text)
			return 0, err
		}
	}
	return len(fx.Lines), nil
}

// FirstDiff returns the rune index of the first difference between a and
// b, or -1 when they are equal. A strict prefix differs at its length.
func FirstDiff(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := min(len(ra), len(rb))
	for i := 0; i < n; i++ {
		if ra[i] != rb[i] {
			return i
		}
	}
	if len(ra) != len(rb) {
		return n
	}
	return -1
}

// WordDiff renders a unified diff of a and b with one word per line.
func WordDiff(a, b string) string {
	diff := difflib.UnifiedDiff{
		A:        wordLines(a),
		B:        wordLines(b),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}

func wordLines(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f + "\n"
	}
	return out
}
