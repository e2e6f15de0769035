package corpus

import (
	"fmt"
	"strconv"

	"github.com/FocuswithJustin/kjvparse/core/errors"
	"github.com/FocuswithJustin/kjvparse/core/verse"
)

// CheckInvariants verifies the structure of c and returns the first
// violation as an *errors.InvariantError:
//
//   - the catalog holds exactly expectedBooks book entries
//   - book indices run 1..N without gaps within each testament
//   - every book entry has exactly one range starting on its line
//   - range start lines strictly increase in catalog order
//   - chapter:verse pairs are unique within each range
func CheckInvariants(c *Corpus, expectedBooks int) error {
	books := c.Books()
	if len(books) != expectedBooks {
		return &errors.InvariantError{
			Kind:     errors.KindBookCount,
			Expected: strconv.Itoa(expectedBooks),
			Actual:   strconv.Itoa(len(books)),
			Position: -1,
		}
	}

	next := map[Testament]int{}
	for _, b := range books {
		next[b.Testament]++
		if b.Index != next[b.Testament] {
			err := errors.NewInvariant(errors.KindCatalogIndex, b.Title)
			err.Expected = strconv.Itoa(next[b.Testament])
			err.Actual = strconv.Itoa(b.Index)
			return err
		}
	}

	prev := -1
	for _, b := range books {
		matches := 0
		var r *BookRange
		for i := range c.Ranges {
			if c.Ranges[i].StartLine == b.LineNumber {
				matches++
				r = &c.Ranges[i]
			}
		}
		if b.LineNumber == Unresolved || matches != 1 {
			err := errors.NewInvariant(errors.KindMissingRange, b.Title)
			err.Detail = fmt.Sprintf("line %d has %d ranges", b.LineNumber, matches)
			return err
		}
		if b.LineNumber <= prev {
			err := errors.NewInvariant(errors.KindRangeOrder, b.Title)
			err.Expected = fmt.Sprintf("> %d", prev)
			err.Actual = strconv.Itoa(b.LineNumber)
			return err
		}
		prev = b.LineNumber

		seen := make(map[verse.Key]bool, len(r.Verses))
		for _, v := range r.Verses {
			if seen[v.Key()] {
				err := errors.NewInvariant(errors.KindDuplicateVerse, b.Title)
				err.Chapter, err.Verse = v.Chapter, v.Verse
				return err
			}
			seen[v.Key()] = true
		}
	}
	return nil
}
