package corpus

import (
	"github.com/FocuswithJustin/kjvparse/core/errors"
	"github.com/FocuswithJustin/kjvparse/core/marker"
)

// BookCount is the number of books in the Protestant canon.
const BookCount = 66

// Options configures Build.
type Options struct {
	Markers       Markers
	Policy        marker.Policy
	Corrections   Corrections
	ExpectedBooks int
}

// DefaultOptions returns the options for the Gutenberg KJV.
func DefaultOptions() Options {
	return Options{
		Markers:       DefaultMarkers(),
		Policy:        marker.PolicyContains,
		Corrections:   DefaultCorrections(),
		ExpectedBooks: BookCount,
	}
}

// Build runs the whole segmentation pipeline over lines. A missing
// boundary marker aborts immediately. Unresolved book headings do not stop
// range resolution but surface through the invariant check, joined with
// the lookup failures that caused them.
func Build(lines []string, opts Options) (*Corpus, error) {
	loc := marker.New(opts.Policy)

	b, err := FindBoundaries(loc, lines, opts.Markers)
	if err != nil {
		return nil, errors.Wrap(err, "find boundaries")
	}

	catalog := BuildCatalog(lines, b)

	res, err := ResolveRanges(loc, lines, catalog, opts.Corrections)
	if err != nil {
		return nil, errors.Wrap(err, "resolve ranges")
	}

	c := &Corpus{
		Boundaries: b,
		Catalog:    catalog,
		Ranges:     res.Ranges,
	}

	if err := CheckInvariants(c, opts.ExpectedBooks); err != nil {
		errs := []error{err}
		for _, f := range res.Failures {
			errs = append(errs, f)
		}
		return nil, errors.Join(errs...)
	}
	return c, nil
}
