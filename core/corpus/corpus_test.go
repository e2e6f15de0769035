package corpus

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	kjverrors "github.com/FocuswithJustin/kjvparse/core/errors"
	"github.com/FocuswithJustin/kjvparse/core/marker"
	"github.com/FocuswithJustin/kjvparse/internal/testsupport"
)

func buildSynthetic(t *testing.T) (*testsupport.Corpus, *Corpus) {
	t.Helper()
	sc := testsupport.Build()
	c, err := Build(sc.Lines, DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return sc, c
}

func TestFindBoundaries(t *testing.T) {
	sc := testsupport.Build()
	b, err := FindBoundaries(marker.New(marker.PolicyContains), sc.Lines, DefaultMarkers())
	if err != nil {
		t.Fatalf("FindBoundaries() error = %v", err)
	}
	want := Boundaries{OTStart: sc.OTStart, NTStart: sc.NTStart, NTListEnd: sc.NTListEnd, CorpusEnd: sc.CorpusEnd}
	if b != want {
		t.Errorf("FindBoundaries() = %+v, want %+v", b, want)
	}
}

func TestFindBoundaries_MissingMarker(t *testing.T) {
	sc := testsupport.Build()
	m := DefaultMarkers()
	m.CorpusEnd = "*** END OF SOME OTHER EBOOK ***"

	_, err := FindBoundaries(marker.New(marker.PolicyContains), sc.Lines, m)
	var lookup *kjverrors.LookupError
	if !errors.As(err, &lookup) {
		t.Fatalf("expected LookupError, got %v", err)
	}
	if lookup.Marker != m.CorpusEnd {
		t.Errorf("Marker = %q, want %q", lookup.Marker, m.CorpusEnd)
	}
	if lookup.Start != sc.NTListEnd+1 {
		t.Errorf("Start = %d, want %d", lookup.Start, sc.NTListEnd+1)
	}
}

func TestBuildCatalog(t *testing.T) {
	sc := testsupport.Build()
	b := Boundaries{OTStart: sc.OTStart, NTStart: sc.NTStart, NTListEnd: sc.NTListEnd, CorpusEnd: sc.CorpusEnd}
	catalog := BuildCatalog(sc.Lines, b)

	if len(catalog) != 4+BookCount {
		t.Fatalf("len(catalog) = %d, want %d", len(catalog), 4+BookCount)
	}

	wantLines := []int{sc.OTStart, sc.NTStart, sc.NTListEnd, sc.CorpusEnd}
	for i := 0; i < 4; i++ {
		e := catalog[i]
		if e.IsBook || e.Index != i+1 || e.LineNumber != wantLines[i] {
			t.Errorf("boundary entry %d = %+v", i, e)
		}
	}

	titles := testsupport.Titles()
	otIdx, ntIdx := 0, 0
	for i, e := range catalog[4:] {
		if !e.IsBook {
			t.Fatalf("entry %d should be a book", i)
		}
		if e.Title != titles[i] {
			t.Errorf("entry %d title = %q, want %q", i, e.Title, titles[i])
		}
		if e.LineNumber != Unresolved {
			t.Errorf("entry %d should start unresolved, got %d", i, e.LineNumber)
		}
		switch e.Testament {
		case OldTestament:
			otIdx++
			if e.Index != otIdx {
				t.Errorf("OT entry %q index = %d, want %d", e.Title, e.Index, otIdx)
			}
		case NewTestament:
			ntIdx++
			if e.Index != ntIdx {
				t.Errorf("NT entry %q index = %d, want %d", e.Title, e.Index, ntIdx)
			}
		default:
			t.Errorf("entry %q has no testament", e.Title)
		}
	}
	if otIdx != len(testsupport.OldTestament) || ntIdx != len(testsupport.NewTestament) {
		t.Errorf("OT/NT counts = %d/%d", otIdx, ntIdx)
	}
}

func TestResolveRanges(t *testing.T) {
	sc := testsupport.Build()
	loc := marker.New(marker.PolicyContains)
	b, err := FindBoundaries(loc, sc.Lines, DefaultMarkers())
	if err != nil {
		t.Fatal(err)
	}
	catalog := BuildCatalog(sc.Lines, b)

	res, err := ResolveRanges(loc, sc.Lines, catalog, DefaultCorrections())
	if err != nil {
		t.Fatalf("ResolveRanges() error = %v", err)
	}
	if len(res.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", res.Failures)
	}
	if len(res.Ranges) != BookCount {
		t.Fatalf("len(Ranges) = %d, want %d", len(res.Ranges), BookCount)
	}

	for i, e := range catalog[4:] {
		if e.LineNumber != sc.Headings[e.Title] {
			t.Errorf("%q line = %d, want %d", e.Title, e.LineNumber, sc.Headings[e.Title])
		}
		if res.Ranges[i].StartLine != e.LineNumber {
			t.Errorf("range %d start = %d, want %d", i, res.Ranges[i].StartLine, e.LineNumber)
		}
	}

	titles := testsupport.Titles()
	for i := 0; i+1 < len(titles); i++ {
		want := sc.Headings[titles[i+1]]
		if titles[i] == testsupport.CorrectedBook {
			want -= testsupport.MalachiGap
		}
		if res.Ranges[i].EndLine != want {
			t.Errorf("%q end = %d, want %d", titles[i], res.Ranges[i].EndLine, want)
		}
	}
	if last := res.Ranges[len(res.Ranges)-1]; last.EndLine != sc.CorpusEnd {
		t.Errorf("last end = %d, want corpus end %d", last.EndLine, sc.CorpusEnd)
	}
}

func TestResolveRanges_BodyExcludesHeading(t *testing.T) {
	sc, c := buildSynthetic(t)
	genesis, err := c.Book(testsupport.OldTestament[0])
	if err != nil {
		t.Fatal(err)
	}
	r, err := c.RangeOf(genesis)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(r.BodyText, "Genesis") {
		t.Error("body should not contain the heading line")
	}
	if !strings.HasPrefix(strings.TrimSpace(r.BodyText), "1:1 ") {
		t.Errorf("body should start with the first anchor, got %q", r.BodyText[:20])
	}
	if len(r.Verses) != len(sc.Verses[genesis.Title]) {
		t.Errorf("verses = %d, want %d", len(r.Verses), len(sc.Verses[genesis.Title]))
	}
}

func TestResolveRanges_WithoutCorrection(t *testing.T) {
	sc := testsupport.Build()
	opts := DefaultOptions()
	opts.Corrections = Corrections{}
	c, err := Build(sc.Lines, opts)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	expected := sc.Verses[testsupport.CorrectedBook]
	last := expected[len(expected)-1]
	rec, err := c.Lookup(testsupport.CorrectedBook, last.Chapter, last.Verse)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(rec.Text, testsupport.MarkerNewTestament) {
		t.Errorf("uncorrected last verse should carry the NT heading, got %q", rec.Text)
	}
}

func TestResolveRanges_MissingHeading(t *testing.T) {
	sc := testsupport.Build()
	lines := append([]string(nil), sc.Lines...)
	lines[sc.Headings["Obadiah"]] = ""

	loc := marker.New(marker.PolicyContains)
	b, err := FindBoundaries(loc, lines, DefaultMarkers())
	if err != nil {
		t.Fatal(err)
	}
	catalog := BuildCatalog(lines, b)
	res, err := ResolveRanges(loc, lines, catalog, DefaultCorrections())
	if err != nil {
		t.Fatalf("ResolveRanges() error = %v", err)
	}
	if len(res.Failures) != 1 || res.Failures[0].Marker != "Obadiah" {
		t.Fatalf("Failures = %v, want one for Obadiah", res.Failures)
	}
	if len(res.Ranges) != BookCount-1 {
		t.Errorf("len(Ranges) = %d, want %d", len(res.Ranges), BookCount-1)
	}
	for _, e := range catalog {
		if e.Title == "Obadiah" && e.LineNumber != Unresolved {
			t.Errorf("Obadiah should stay unresolved, got %d", e.LineNumber)
		}
		if e.Title == "Jonah" && e.LineNumber != sc.Headings["Jonah"] {
			t.Errorf("Jonah line = %d, want %d", e.LineNumber, sc.Headings["Jonah"])
		}
	}
}

func TestResolveRanges_NoBoundaryEntries(t *testing.T) {
	_, err := ResolveRanges(marker.New(marker.PolicyContains), nil, nil, nil)
	if !errors.Is(err, kjverrors.ErrInvalidInput) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestJoinBody(t *testing.T) {
	lines := []string{"Heading", "", "1:1 a", "1:2 b", "", "Next"}
	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"normal", 0, 5, " 1:1 a 1:2 b"},
		{"adjacent", 0, 1, ""},
		{"start at last line", 5, 100, ""},
		{"clamped", 2, 100, "1:2 b  Next"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinBody(lines, tt.start, tt.end); got != tt.want {
				t.Errorf("joinBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	sc, c := buildSynthetic(t)

	books := c.Books()
	if len(books) != BookCount {
		t.Fatalf("len(Books()) = %d", len(books))
	}

	for _, title := range testsupport.Titles() {
		entry, err := c.Book(title)
		if err != nil {
			t.Fatalf("Book(%q) error = %v", title, err)
		}
		r, err := c.RangeOf(entry)
		if err != nil {
			t.Fatalf("RangeOf(%q) error = %v", title, err)
		}
		want := sc.Verses[title]
		if len(r.Verses) != len(want) {
			t.Errorf("%q verses = %d, want %d", title, len(r.Verses), len(want))
			continue
		}
		for i, v := range want {
			got := r.Verses[i]
			if got.Chapter != v.Chapter || got.Verse != v.Verse || got.Text != v.Text {
				t.Errorf("%q verse %d = %+v, want %+v", title, i, got, v)
			}
		}
	}

	revelation := testsupport.NewTestament[len(testsupport.NewTestament)-1]
	entry, _ := c.Book(revelation)
	r, _ := c.RangeOf(entry)
	if r.EndLine != c.Boundaries.CorpusEnd {
		t.Errorf("Revelation end = %d, want %d", r.EndLine, c.Boundaries.CorpusEnd)
	}
	last := r.Verses[len(r.Verses)-1]
	for _, v := range r.Verses {
		if v.Chapter > last.Chapter || (v.Chapter == last.Chapter && v.Verse > last.Verse) {
			t.Errorf("verse %d:%d exceeds the last verse %d:%d", v.Chapter, v.Verse, last.Chapter, last.Verse)
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	sc := testsupport.Build()
	a, err := Build(sc.Lines, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(sc.Lines, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two builds over the same lines differ")
	}

	da, err := a.Digest()
	if err != nil {
		t.Fatal(err)
	}
	db, err := b.Digest()
	if err != nil {
		t.Fatal(err)
	}
	if da != db || len(da) != 64 {
		t.Errorf("digests differ or malformed: %s vs %s", da, db)
	}

	if a.Ranges[0].BookDigest() != b.Ranges[0].BookDigest() {
		t.Error("book digests differ")
	}
	if a.Ranges[0].BookDigest() == a.Ranges[1].BookDigest() {
		t.Error("different books should not share a digest")
	}
}

func TestBuild_MissingBoundary(t *testing.T) {
	sc := testsupport.Build()
	lines := sc.Lines[:sc.CorpusEnd]
	_, err := Build(lines, DefaultOptions())
	if !errors.Is(err, kjverrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "find boundaries") {
		t.Errorf("error should name the stage: %v", err)
	}
}

func TestBuild_MissingHeadingFailsInvariant(t *testing.T) {
	sc := testsupport.Build()
	lines := append([]string(nil), sc.Lines...)
	lines[sc.Headings["Obadiah"]] = "   "

	_, err := Build(lines, DefaultOptions())
	var inv *kjverrors.InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvariantError, got %v", err)
	}
	if inv.Kind != kjverrors.KindMissingRange || inv.Title != "Obadiah" {
		t.Errorf("unexpected violation %+v", inv)
	}
	var lookup *kjverrors.LookupError
	if !errors.As(err, &lookup) || lookup.Marker != "Obadiah" {
		t.Errorf("joined error should carry the lookup failure, got %v", err)
	}
}

func TestBuild_WrongBookCount(t *testing.T) {
	sc := testsupport.Build()
	opts := DefaultOptions()
	opts.ExpectedBooks = 73

	_, err := Build(sc.Lines, opts)
	var inv *kjverrors.InvariantError
	if !errors.As(err, &inv) || inv.Kind != kjverrors.KindBookCount {
		t.Fatalf("expected book-count violation, got %v", err)
	}
	if inv.Expected != "73" || inv.Actual != "66" {
		t.Errorf("Expected/Actual = %s/%s", inv.Expected, inv.Actual)
	}
}

func TestCheckInvariants(t *testing.T) {
	_, good := buildSynthetic(t)

	clone := func() *Corpus {
		c := &Corpus{Boundaries: good.Boundaries}
		c.Catalog = append([]CatalogEntry(nil), good.Catalog...)
		for _, r := range good.Ranges {
			r.Verses = append(r.Verses[:0:0], r.Verses...)
			c.Ranges = append(c.Ranges, r)
		}
		return c
	}

	tests := []struct {
		name   string
		mutate func(c *Corpus)
		kind   string
	}{
		{
			name:   "index gap",
			mutate: func(c *Corpus) { c.Catalog[6].Index = 9 },
			kind:   kjverrors.KindCatalogIndex,
		},
		{
			name:   "range dropped",
			mutate: func(c *Corpus) { c.Ranges = c.Ranges[1:] },
			kind:   kjverrors.KindMissingRange,
		},
		{
			name: "ranges out of order",
			mutate: func(c *Corpus) {
				c.Catalog[4].LineNumber, c.Catalog[5].LineNumber = c.Catalog[5].LineNumber, c.Catalog[4].LineNumber
			},
			kind: kjverrors.KindRangeOrder,
		},
		{
			name: "duplicate verse",
			mutate: func(c *Corpus) {
				c.Ranges[2].Verses = append(c.Ranges[2].Verses, c.Ranges[2].Verses[0])
			},
			kind: kjverrors.KindDuplicateVerse,
		},
	}

	if err := CheckInvariants(clone(), BookCount); err != nil {
		t.Fatalf("valid corpus failed: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := clone()
			tt.mutate(c)
			err := CheckInvariants(c, BookCount)
			var inv *kjverrors.InvariantError
			if !errors.As(err, &inv) {
				t.Fatalf("expected InvariantError, got %v", err)
			}
			if inv.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", inv.Kind, tt.kind)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	sc, c := buildSynthetic(t)
	john := "The Gospel According to Saint John"
	want := sc.Verses[john][1]

	rec, err := c.Lookup(john, want.Chapter, want.Verse)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if rec.Text != want.Text {
		t.Errorf("Lookup() text = %q, want %q", rec.Text, want.Text)
	}

	recs, err := c.LookupRange(john, 1, 1, 2)
	if err != nil {
		t.Fatalf("LookupRange() error = %v", err)
	}
	if len(recs) != 2 || recs[0].Verse != 1 || recs[1].Verse != 2 {
		t.Errorf("LookupRange() = %+v", recs)
	}

	_, err = c.Lookup(john, 99, 1)
	var inv *kjverrors.InvariantError
	if !errors.As(err, &inv) || inv.Kind != kjverrors.KindMissingVerse || inv.Title != john {
		t.Errorf("expected missing-verse for %s, got %v", john, err)
	}

	_, err = c.Lookup("The Book of Tobit", 1, 1)
	if !errors.As(err, &inv) || inv.Kind != kjverrors.KindMissingBook {
		t.Errorf("expected missing-book, got %v", err)
	}
}

func TestLookupChapter(t *testing.T) {
	sc, c := buildSynthetic(t)
	title := "The Book of Psalms"

	var want int
	for _, v := range sc.Verses[title] {
		if v.Chapter == 1 {
			want++
		}
	}
	recs, err := c.LookupChapter(title, 1)
	if err != nil {
		t.Fatalf("LookupChapter() error = %v", err)
	}
	if len(recs) != want {
		t.Errorf("LookupChapter() returned %d verses, want %d", len(recs), want)
	}

	_, err = c.LookupChapter(title, 150)
	var inv *kjverrors.InvariantError
	if !errors.As(err, &inv) || inv.Kind != kjverrors.KindMissingVerse {
		t.Errorf("expected missing-verse, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), title+" 150") {
		t.Errorf("error should name the chapter: %v", err)
	}
}

func TestTestamentString(t *testing.T) {
	if OldTestament.String() != "OT" || NewTestament.String() != "NT" || TestamentNone.String() != "-" {
		t.Error("unexpected testament labels")
	}
}
