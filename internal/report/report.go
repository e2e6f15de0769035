// Package report renders a parsed corpus for people and for tools: book
// tables, per-testament title listings, verse listings and JSON.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/FocuswithJustin/kjvparse/core/corpus"
	"github.com/FocuswithJustin/kjvparse/core/verse"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment, footer []string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}
	if len(footer) > 0 {
		tw.AppendFooter(toRow(footer, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func toRow(cells []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(cells) {
			r[i] = cells[i]
		} else {
			r[i] = ""
		}
	}
	return r
}

// BookTable renders one row per book: its testament, index, title, line
// span and verse count. Books without a range show "-" for the span.
func BookTable(c *corpus.Corpus) string {
	headers := []string{"#", "Testament", "Index", "Title", "Start", "End", "Verses"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight}

	var rows [][]string
	total := 0
	for i, e := range c.Books() {
		start, end, verses := "-", "-", "-"
		if r, err := c.RangeOf(e); err == nil {
			start = strconv.Itoa(r.StartLine)
			end = strconv.Itoa(r.EndLine)
			verses = strconv.Itoa(len(r.Verses))
			total += len(r.Verses)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Testament.String(),
			strconv.Itoa(e.Index),
			e.Title,
			start,
			end,
			verses,
		})
	}
	footer := []string{"", "", "", fmt.Sprintf("%d books", len(rows)), "", "", strconv.Itoa(total)}
	return renderTable(headers, rows, aligns, footer)
}

// BoundaryTable renders the four structural markers and their lines.
func BoundaryTable(c *corpus.Corpus) string {
	headers := []string{"Role", "Marker", "Line"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight}

	var rows [][]string
	for _, e := range c.Catalog {
		if e.IsBook {
			continue
		}
		rows = append(rows, []string{strconv.Itoa(e.Index), e.Title, strconv.Itoa(e.LineNumber)})
	}
	return renderTable(headers, rows, aligns, nil)
}

// WriteTestament writes the titles of one testament, one per line, as
// "index title".
func WriteTestament(w io.Writer, c *corpus.Corpus, t corpus.Testament) error {
	bw := bufio.NewWriter(w)
	for _, e := range c.Books() {
		if e.Testament != t {
			continue
		}
		fmt.Fprintf(bw, "%d %s\n", e.Index, e.Title)
	}
	return bw.Flush()
}

// WriteVerses writes every book as a blank line, its title, then one
// "chapter:verse text" line per verse.
func WriteVerses(w io.Writer, c *corpus.Corpus) error {
	bw := bufio.NewWriter(w)
	for _, e := range c.Books() {
		r, err := c.RangeOf(e)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "\n%s\n", e.Title)
		writeRecords(bw, r.Verses)
	}
	return bw.Flush()
}

// WriteRecords writes verse records as "chapter:verse text" lines.
func WriteRecords(w io.Writer, recs []verse.Record) error {
	bw := bufio.NewWriter(w)
	writeRecords(bw, recs)
	return bw.Flush()
}

func writeRecords(w io.Writer, recs []verse.Record) {
	for _, rec := range recs {
		fmt.Fprintf(w, "%d:%d %s\n", rec.Chapter, rec.Verse, rec.Text)
	}
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
