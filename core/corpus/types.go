package corpus

import (
	"github.com/FocuswithJustin/kjvparse/core/errors"
	"github.com/FocuswithJustin/kjvparse/core/verse"
)

// Unresolved is the LineNumber of a book entry whose heading was not found.
const Unresolved = -1

// Testament tags a catalog entry with its section.
type Testament int

// Testament constants.
const (
	TestamentNone Testament = iota
	OldTestament
	NewTestament
)

// String returns a short label for the testament.
func (t Testament) String() string {
	switch t {
	case OldTestament:
		return "OT"
	case NewTestament:
		return "NT"
	default:
		return "-"
	}
}

// Role indices of the four structural catalog entries.
const (
	RoleOldTestamentStart = 1
	RoleNewTestamentStart = 2
	RoleNewTestamentEnd   = 3
	RoleCorpusEnd         = 4
)

// Markers are the four boundary marker strings, searched in this order.
type Markers struct {
	OldTestament        string `json:"old_testament"`
	NewTestament        string `json:"new_testament"`
	NewTestamentListEnd string `json:"new_testament_list_end"`
	CorpusEnd           string `json:"corpus_end"`
}

// DefaultMarkers returns the markers of the Project Gutenberg KJV (eBook #10).
// The New Testament list ends where the body's Old Testament heading repeats
// the first marker.
func DefaultMarkers() Markers {
	return Markers{
		OldTestament:        "The Old Testament of the King James Version of the Bible",
		NewTestament:        "The New Testament of the King James Bible",
		NewTestamentListEnd: "The Old Testament of the King James Version of the Bible",
		CorpusEnd:           "*** END OF THE PROJECT GUTENBERG EBOOK THE KING JAMES BIBLE ***",
	}
}

// Boundaries holds the line offsets of the four structural markers.
type Boundaries struct {
	OTStart   int `json:"ot_start"`
	NTStart   int `json:"nt_start"`
	NTListEnd int `json:"nt_list_end"`
	CorpusEnd int `json:"corpus_end"`
}

// CatalogEntry is a structural marker (IsBook false, Index is its role) or
// a book (Index is its 1-based position within its testament).
type CatalogEntry struct {
	Index      int       `json:"index"`
	Title      string    `json:"title"`
	IsBook     bool      `json:"is_book"`
	LineNumber int       `json:"line_number"`
	Testament  Testament `json:"testament"`
}

// BookRange is the contiguous line span of one book. EndLine is exclusive
// and BodyText joins lines StartLine+1 through EndLine-2 with single spaces.
type BookRange struct {
	StartLine int            `json:"start_line"`
	EndLine   int            `json:"end_line"`
	BodyText  string         `json:"body_text"`
	Verses    []verse.Record `json:"verses"`
}

// Corpus is the segmented text. It is built once by Build and not modified
// afterwards.
type Corpus struct {
	Boundaries Boundaries     `json:"boundaries"`
	Catalog    []CatalogEntry `json:"catalog"`
	Ranges     []BookRange    `json:"ranges"`
}

// Books returns the book entries of the catalog in catalog order.
func (c *Corpus) Books() []CatalogEntry {
	var books []CatalogEntry
	for _, e := range c.Catalog {
		if e.IsBook {
			books = append(books, e)
		}
	}
	return books
}

// Corrections maps a book title to the number of lines subtracted from its
// range end. It compensates for a following heading that the locator
// matches a fixed number of lines late.
type Corrections map[string]int

// DefaultCorrections returns the correction table for the Gutenberg KJV:
// the New Testament heading sits three lines above the first gospel
// heading and would otherwise be appended to the last verse of Malachi.
func DefaultCorrections() Corrections {
	return Corrections{"Malachi": 3}
}

// Delta returns the correction for title, 0 when none applies.
func (c Corrections) Delta(title string) int {
	return c[title]
}

// Resolution is the outcome of ResolveRanges. Failures lists the book
// headings that could not be located; those books have no range.
type Resolution struct {
	Ranges   []BookRange
	Failures []*errors.LookupError
}
