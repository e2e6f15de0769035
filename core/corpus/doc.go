// Package corpus segments a plain-text King James Bible transcription into
// books, line ranges and verses.
//
// # Pipeline
//
// Build runs the stages in order, each one consuming the previous result:
//
//   - FindBoundaries locates the four structural markers (Old Testament
//     list, New Testament list, end of the New Testament list, end of text)
//   - BuildCatalog reads the book titles between those markers
//   - ResolveRanges re-locates every title in the body, backfills the
//     catalog line numbers and derives each book's line range and text
//   - verse.Extract splits each body into chapter:verse records
//   - CheckInvariants rejects a structurally broken result
//
// Headings are found by substring match after whitespace normalization
// (see package marker), so a title that occurs inside an earlier line of
// the body would be placed too early. The search is greedy and monotonic:
// each book is searched for from the line after the previous book's heading.
//
// # Example
//
//	lines, err := linesource.ReadFile("pg10.txt")
//	if err != nil {
//	    return err
//	}
//	c, err := corpus.Build(lines, corpus.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	rec, err := c.Lookup("The Gospel According to Saint John", 3, 16)
package corpus
