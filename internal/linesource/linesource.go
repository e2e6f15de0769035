// Package linesource loads a text document as an ordered slice of lines.
// Plain, gzip and xz inputs are accepted; compression is detected from
// magic bytes, a leading UTF-8 byte order mark is dropped and line
// terminators (LF or CRLF) are removed.
package linesource

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/FocuswithJustin/kjvparse/core/errors"
)

// Compression identifies the container of a line source.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionXZ   Compression = "xz"
)

// maxLineSize bounds a single line. Gutenberg lines are short; license
// blocks in other editions are not.
const maxLineSize = 1024 * 1024

// headerSize is the number of leading bytes filetype inspects.
const headerSize = 262

// Injectable functions for testing
var (
	osOpen      = os.Open
	gzipReader  = gzip.NewReader
	xzNewReader = xz.NewReader
)

// Detect reports the compression of the stream behind br without
// consuming any bytes.
func Detect(br *bufio.Reader) Compression {
	header, _ := br.Peek(headerSize)
	switch {
	case filetype.Is(header, "xz"):
		return CompressionXZ
	case filetype.Is(header, "gz"):
		return CompressionGzip
	}
	return CompressionNone
}

// ReadFile reads the lines of the file at path.
func ReadFile(path string) ([]string, error) {
	f, err := osOpen(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	lines, err := Read(f)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return lines, nil
}

// Read reads all lines from r. Blank lines are preserved so that line
// indices match the source document.
func Read(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	switch Detect(br) {
	case CompressionGzip:
		gz, err := gzipReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "gzip reader")
		}
		defer gz.Close()
		src = gz
	case CompressionXZ:
		xzr, err := xzNewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "xz reader")
		}
		src = xzr
	}

	// BOMOverride consumes a leading UTF-8 BOM and otherwise passes
	// bytes through the UTF-8 decoder unchanged.
	decoded := transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan lines")
	}
	return lines, nil
}
