package corpus

import (
	"strings"

	"github.com/FocuswithJustin/kjvparse/core/marker"
)

// FindBoundaries locates the four markers in sequence, each search starting
// one line past the previous hit. The first marker that cannot be found
// aborts with its *errors.LookupError.
func FindBoundaries(loc *marker.Locator, lines []string, m Markers) (Boundaries, error) {
	var b Boundaries
	steps := []struct {
		marker string
		dst    *int
	}{
		{m.OldTestament, &b.OTStart},
		{m.NewTestament, &b.NTStart},
		{m.NewTestamentListEnd, &b.NTListEnd},
		{m.CorpusEnd, &b.CorpusEnd},
	}

	start := 0
	for _, s := range steps {
		idx, err := loc.Locate(s.marker, lines, start)
		if err != nil {
			return Boundaries{}, err
		}
		*s.dst = idx
		start = idx + 1
	}
	return b, nil
}

// BuildCatalog emits the four boundary entries followed by one book entry
// per non-blank line of the Old Testament window (OTStart, NTStart) and the
// New Testament window (NTStart, NTListEnd), in source order.
func BuildCatalog(lines []string, b Boundaries) []CatalogEntry {
	catalog := []CatalogEntry{
		{Index: RoleOldTestamentStart, Title: "Start Old Testament Books", LineNumber: b.OTStart},
		{Index: RoleNewTestamentStart, Title: "Start New Testament Books", LineNumber: b.NTStart},
		{Index: RoleNewTestamentEnd, Title: "End New Testament Books", LineNumber: b.NTListEnd},
		{Index: RoleCorpusEnd, Title: "End Bible Text", LineNumber: b.CorpusEnd},
	}
	catalog = appendBooks(catalog, window(lines, b.OTStart, b.NTStart), OldTestament)
	catalog = appendBooks(catalog, window(lines, b.NTStart, b.NTListEnd), NewTestament)
	return catalog
}

// window returns the trimmed non-blank lines strictly between lo and hi.
func window(lines []string, lo, hi int) []string {
	if hi > len(lines) {
		hi = len(lines)
	}
	var titles []string
	for i := lo + 1; i < hi; i++ {
		if title := strings.TrimSpace(lines[i]); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

func appendBooks(catalog []CatalogEntry, titles []string, t Testament) []CatalogEntry {
	for i, title := range titles {
		catalog = append(catalog, CatalogEntry{
			Index:      i + 1,
			Title:      title,
			IsBook:     true,
			LineNumber: Unresolved,
			Testament:  t,
		})
	}
	return catalog
}

// boundaryLine returns the line of the structural entry with the given role.
func boundaryLine(catalog []CatalogEntry, role int) (int, bool) {
	for _, e := range catalog {
		if !e.IsBook && e.Index == role {
			return e.LineNumber, true
		}
	}
	return 0, false
}
