package corpus

import (
	"fmt"

	"github.com/FocuswithJustin/kjvparse/core/errors"
	"github.com/FocuswithJustin/kjvparse/core/verse"
)

// Book returns the unique book entry whose title equals title exactly.
func (c *Corpus) Book(title string) (CatalogEntry, error) {
	var found []CatalogEntry
	for _, e := range c.Catalog {
		if e.IsBook && e.Title == title {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return CatalogEntry{}, errors.NewInvariant(errors.KindMissingBook, title)
	case 1:
		return found[0], nil
	default:
		err := errors.NewInvariant(errors.KindDuplicateBook, title)
		err.Detail = fmt.Sprintf("%d catalog entries", len(found))
		return CatalogEntry{}, err
	}
}

// RangeOf returns the unique range that starts on the entry's line.
func (c *Corpus) RangeOf(entry CatalogEntry) (*BookRange, error) {
	var found *BookRange
	matches := 0
	for i := range c.Ranges {
		if c.Ranges[i].StartLine == entry.LineNumber {
			matches++
			found = &c.Ranges[i]
		}
	}
	if entry.LineNumber == Unresolved || matches != 1 {
		err := errors.NewInvariant(errors.KindMissingRange, entry.Title)
		err.Detail = fmt.Sprintf("line %d has %d ranges", entry.LineNumber, matches)
		return nil, err
	}
	return found, nil
}

// Lookup returns the verse chapter:v of the book titled title.
func (c *Corpus) Lookup(title string, chapter, v int) (verse.Record, error) {
	recs, err := c.LookupRange(title, chapter, v, v)
	if err != nil {
		return verse.Record{}, err
	}
	return recs[0], nil
}

// LookupRange returns verses from through to of one chapter, in order.
// Every verse in the span must exist exactly once.
func (c *Corpus) LookupRange(title string, chapter, from, to int) ([]verse.Record, error) {
	entry, err := c.Book(title)
	if err != nil {
		return nil, err
	}
	r, err := c.RangeOf(entry)
	if err != nil {
		return nil, err
	}
	if to < from {
		to = from
	}

	out := make([]verse.Record, 0, to-from+1)
	for v := from; v <= to; v++ {
		rec, err := r.Find(chapter, v)
		if err != nil {
			var inv *errors.InvariantError
			if errors.As(err, &inv) {
				inv.Title = title
			}
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// LookupChapter returns every verse of one chapter in appearance order.
func (c *Corpus) LookupChapter(title string, chapter int) ([]verse.Record, error) {
	entry, err := c.Book(title)
	if err != nil {
		return nil, err
	}
	r, err := c.RangeOf(entry)
	if err != nil {
		return nil, err
	}
	var out []verse.Record
	for _, rec := range r.Verses {
		if rec.Chapter == chapter {
			out = append(out, rec)
		}
	}
	if len(out) == 0 {
		err := errors.NewInvariant(errors.KindMissingVerse, title)
		err.Chapter = chapter
		return nil, err
	}
	return out, nil
}

// Find returns the unique verse chapter:v of the range.
func (r *BookRange) Find(chapter, v int) (verse.Record, error) {
	var found []verse.Record
	for _, rec := range r.Verses {
		if rec.Chapter == chapter && rec.Verse == v {
			found = append(found, rec)
		}
	}
	if len(found) == 1 {
		return found[0], nil
	}
	kind := errors.KindMissingVerse
	if len(found) > 1 {
		kind = errors.KindDuplicateVerse
	}
	err := errors.NewInvariant(kind, "")
	err.Chapter, err.Verse = chapter, v
	return verse.Record{}, err
}
