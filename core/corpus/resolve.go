package corpus

import (
	"strings"

	"github.com/FocuswithJustin/kjvparse/core/errors"
	"github.com/FocuswithJustin/kjvparse/core/marker"
	"github.com/FocuswithJustin/kjvparse/core/verse"
)

// headingStep places one book at or after cursor and returns the cursor for
// the next book. On failure the cursor is returned unchanged.
type headingStep func(cursor int, entry *CatalogEntry) (int, error)

// foldHeadings threads the cursor through the book entries in order and
// collects the lookups that failed.
func foldHeadings(books []*CatalogEntry, cursor int, step headingStep) []*errors.LookupError {
	var failures []*errors.LookupError
	for _, entry := range books {
		next, err := step(cursor, entry)
		if err != nil {
			var lookup *errors.LookupError
			if !errors.As(err, &lookup) {
				lookup = &errors.LookupError{Marker: entry.Title, Start: cursor, Err: err}
			}
			failures = append(failures, lookup)
			continue
		}
		cursor = next
	}
	return failures
}

// ResolveRanges locates each book heading in the body, starting on the line
// after the end of the New Testament list, and backfills LineNumber on the
// book entries of catalog. A heading that cannot be found leaves its entry
// Unresolved and is reported in Resolution.Failures; it does not abort.
//
// Each range ends at the next resolved book's heading minus the correction
// for its own title; the last range ends at the corpus end marker.
func ResolveRanges(loc *marker.Locator, lines []string, catalog []CatalogEntry, corrections Corrections) (*Resolution, error) {
	listEnd, ok := boundaryLine(catalog, RoleNewTestamentEnd)
	if !ok {
		return nil, errors.NewValidation("catalog", "no end of New Testament list entry")
	}
	corpusEnd, ok := boundaryLine(catalog, RoleCorpusEnd)
	if !ok {
		return nil, errors.NewValidation("catalog", "no end of text entry")
	}

	var books []*CatalogEntry
	for i := range catalog {
		if catalog[i].IsBook {
			books = append(books, &catalog[i])
		}
	}

	failures := foldHeadings(books, listEnd+1, func(cursor int, entry *CatalogEntry) (int, error) {
		found, err := loc.Locate(entry.Title, lines, cursor)
		if err != nil {
			return cursor, err
		}
		entry.LineNumber = found
		return found + 1, nil
	})

	var resolved []*CatalogEntry
	for _, b := range books {
		if b.LineNumber != Unresolved {
			resolved = append(resolved, b)
		}
	}

	ranges := make([]BookRange, 0, len(resolved))
	for i, b := range resolved {
		end := corpusEnd
		if i+1 < len(resolved) {
			end = resolved[i+1].LineNumber - corrections.Delta(b.Title)
		}
		body := joinBody(lines, b.LineNumber, end)
		ranges = append(ranges, BookRange{
			StartLine: b.LineNumber,
			EndLine:   end,
			BodyText:  body,
			Verses:    verse.Extract(body),
		})
	}

	return &Resolution{Ranges: ranges, Failures: failures}, nil
}

// joinBody joins lines (start, end-1) with single spaces: the heading line
// and the line just before the range end are excluded.
func joinBody(lines []string, start, end int) string {
	lo, hi := start+1, end-1
	if hi > len(lines) {
		hi = len(lines)
	}
	if lo < 0 || hi <= lo {
		return ""
	}
	return strings.Join(lines[lo:hi], " ")
}
