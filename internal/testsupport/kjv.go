// Package testsupport builds a synthetic corpus in the Project Gutenberg
// King James Bible layout, together with the matching fixture file, so the
// pipeline can be exercised end to end without the 100k-line original.
package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Boundary marker strings of the Gutenberg layout.
const (
	MarkerOldTestament = "The Old Testament of the King James Version of the Bible"
	MarkerNewTestament = "The New Testament of the King James Bible"
	MarkerCorpusEnd    = "*** END OF THE PROJECT GUTENBERG EBOOK THE KING JAMES BIBLE ***"

	// TitleLine sits at index TitleLineIndex of the generated corpus.
	TitleLine      = "Title: The King James Bible"
	TitleLineIndex = 10

	// CorrectedBook is the final Old Testament book; the New Testament
	// heading sits MalachiGap lines above the next book heading.
	CorrectedBook = "Malachi"
	MalachiGap    = 3
)

// OldTestament lists the Old Testament catalog titles in reading order.
var OldTestament = []string{
	"The First Book of Moses: Called Genesis",
	"The Second Book of Moses: Called Exodus",
	"The Third Book of Moses: Called Leviticus",
	"The Fourth Book of Moses: Called Numbers",
	"The Fifth Book of Moses: Called Deuteronomy",
	"The Book of Joshua",
	"The Book of Judges",
	"The Book of Ruth",
	"The First Book of Samuel",
	"The Second Book of Samuel",
	"The First Book of the Kings",
	"The Second Book of the Kings",
	"The First Book of the Chronicles",
	"The Second Book of the Chronicles",
	"Ezra",
	"The Book of Nehemiah",
	"The Book of Esther",
	"The Book of Job",
	"The Book of Psalms",
	"The Proverbs",
	"Ecclesiastes",
	"The Song of Solomon",
	"The Book of the Prophet Isaiah",
	"The Book of the Prophet Jeremiah",
	"The Lamentations of Jeremiah",
	"The Book of the Prophet Ezekiel",
	"The Book of Daniel",
	"Hosea",
	"Joel",
	"Amos",
	"Obadiah",
	"Jonah",
	"Micah",
	"Nahum",
	"Habakkuk",
	"Zephaniah",
	"Haggai",
	"Zechariah",
	"Malachi",
}

// NewTestament lists the New Testament catalog titles in reading order.
var NewTestament = []string{
	"The Gospel According to Saint Matthew",
	"The Gospel According to Saint Mark",
	"The Gospel According to Saint Luke",
	"The Gospel According to Saint John",
	"The Acts of the Apostles",
	"The Epistle of Paul the Apostle to the Romans",
	"The First Epistle of Paul the Apostle to the Corinthians",
	"The Second Epistle of Paul the Apostle to the Corinthians",
	"The Epistle of Paul the Apostle to the Galatians",
	"The Epistle of Paul the Apostle to the Ephesians",
	"The Epistle of Paul the Apostle to the Philippians",
	"The Epistle of Paul the Apostle to the Colossians",
	"The First Epistle of Paul the Apostle to the Thessalonians",
	"The Second Epistle of Paul the Apostle to the Thessalonians",
	"The First Epistle of Paul the Apostle to Timothy",
	"The Second Epistle of Paul the Apostle to Timothy",
	"The Epistle of Paul the Apostle to Titus",
	"The Epistle of Paul the Apostle to Philemon",
	"The Epistle of Paul the Apostle to the Hebrews",
	"The General Epistle of James",
	"The First Epistle General of Peter",
	"The Second General Epistle of Peter",
	"The First Epistle General of John",
	"The Second Epistle General of John",
	"The Third Epistle General of John",
	"The General Epistle of Jude",
	"The Revelation of Saint John the Divine",
}

// Verse is one expected verse of the synthetic corpus.
type Verse struct {
	Chapter int
	Verse   int
	Text    string
}

// Corpus is a generated corpus with the offsets a correct parse must find.
type Corpus struct {
	Lines     []string
	Fixture   []string
	OTStart   int
	NTStart   int
	NTListEnd int
	CorpusEnd int
	// Headings maps each title to its body heading line.
	Headings map[string]int
	// Verses maps each title to its verses in order.
	Verses map[string][]Verse
}

// Titles returns all 66 titles in catalog order.
func Titles() []string {
	out := make([]string, 0, len(OldTestament)+len(NewTestament))
	out = append(out, OldTestament...)
	return append(out, NewTestament...)
}

// VerseText is the deterministic text of a synthetic verse. It never
// contains a chapter:verse anchor or a capitalized book title.
func VerseText(book, chapter, verse int) string {
	return fmt.Sprintf("and it came to pass in book %d that chapter %d spake verse %d unto the people", book, chapter, verse)
}

func chapterCount(book int) int { return 1 + book%3 }

func verseCount(book, chapter int) int { return 2 + (book+chapter)%3 }

// headingLine returns the body heading for a title; a few headings carry
// irregular whitespace to exercise normalization.
func headingLine(title string) string {
	switch title {
	case "The Book of Ruth":
		return "  The Book of   Ruth  "
	case "The Gospel According to Saint Mark":
		return "The Gospel  According to Saint Mark\t"
	}
	return title
}

// Build generates the synthetic corpus.
func Build() *Corpus {
	c := &Corpus{
		Headings: make(map[string]int),
		Verses:   make(map[string][]Verse),
	}
	add := func(lines ...string) {
		c.Lines = append(c.Lines, lines...)
	}

	// Gutenberg header: TitleLine lands on index 10.
	add("\ufeffThe Project Gutenberg eBook of The King James Bible",
		"",
		"This ebook is for the use of anyone anywhere in the United States and",
		"most other parts of the world at no cost and with almost no restrictions",
		"whatsoever. You may copy it, give it away or re-use it under the terms",
		"of the Project Gutenberg License included with this ebook or online",
		"at www.gutenberg.org.",
		"",
		"",
		"",
		TitleLine,
		"",
		"Release date: August 1, 1989 [eBook #10]",
		"",
		"Language: English",
		"",
		"*** START OF THE PROJECT GUTENBERG EBOOK THE KING JAMES BIBLE ***",
		"",
		"",
		"",
	)

	// Catalog: blank lines interleaved every few titles.
	c.OTStart = len(c.Lines)
	add(MarkerOldTestament, "", "", "")
	for i, title := range OldTestament {
		add(title)
		if i%5 == 4 {
			add("")
		}
	}
	add("", "", "")
	c.NTStart = len(c.Lines)
	add(MarkerNewTestament, "", "")
	for i, title := range NewTestament {
		add(title)
		if i%7 == 6 {
			add("  ")
		}
	}
	add("", "", "", "")

	// Body.
	c.NTListEnd = len(c.Lines)
	add(MarkerOldTestament, "", "", "")

	for b, title := range Titles() {
		book := b + 1
		c.Headings[title] = len(c.Lines)
		add(headingLine(title), "")

		for ch := 1; ch <= chapterCount(book); ch++ {
			for v := 1; v <= verseCount(book, ch); v++ {
				text := VerseText(book, ch, v)
				c.Verses[title] = append(c.Verses[title], Verse{Chapter: ch, Verse: v, Text: text})
				line := fmt.Sprintf("%d:%d %s", ch, v, text)
				if v == 2 {
					// Wrap the second verse of each chapter over two lines.
					cut := strings.Index(line, " that ")
					add(line[:cut], line[cut+1:])
					continue
				}
				add(line)
			}
			add("")
		}

		if title == CorrectedBook {
			add("", "", MarkerNewTestament)
			for i := 0; i < MalachiGap; i++ {
				add("")
			}
			continue
		}
		add("")
	}

	add("", "")
	c.CorpusEnd = len(c.Lines)
	add(MarkerCorpusEnd,
		"",
		"Updated editions will replace the previous one--the old editions will",
		"be renamed.",
	)

	for _, title := range Titles() {
		c.Fixture = append(c.Fixture, "T~"+title, "")
		for _, v := range c.Verses[title] {
			c.Fixture = append(c.Fixture, fmt.Sprintf("%d:%d %s", v.Chapter, v.Verse, v.Text))
		}
		c.Fixture = append(c.Fixture, "")
	}

	return c
}

// WriteLines writes lines joined by CRLF to dir/name and returns the path.
func WriteLines(t testing.TB, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\r\n")+"\r\n"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
