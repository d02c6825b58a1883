// internal/domain/document/document.go
package document

import (
	"fmt"
	"strings"
)

// Format identifies how raw document bytes are encoded.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatDOC  Format = "doc" // legacy binary Word
)

// ErrUnsupportedFormat is returned by decoders for encodings they cannot read.
var ErrUnsupportedFormat = fmt.Errorf("unsupported document format")

// Table is a grid of cell texts. Rows may have different lengths; a cell that
// held several lines keeps them joined with "\n".
type Table struct {
	Rows [][]string
}

// Cell returns the cell text or "" when the row is shorter than col.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// RowContains reports whether any cell of the row contains substr.
func (t Table) RowContains(row int, substr string) bool {
	if row < 0 || row >= len(t.Rows) {
		return false
	}
	for _, cell := range t.Rows[row] {
		if strings.Contains(cell, substr) {
			return true
		}
	}
	return false
}

// Document is the format-independent view the extractors work on:
// free-standing paragraphs in reading order and the tables in document order.
type Document struct {
	Paragraphs []string
	Tables     []Table
}

// Decoder turns raw bytes of a given format into a Document.
type Decoder interface {
	Decode(format Format, raw []byte) (*Document, error)
}
