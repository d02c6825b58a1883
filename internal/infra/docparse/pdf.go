package docparse

import (
	"bytes"
	"fmt"
	"sort"

	"hospital_duty_kiosk/internal/domain/document"

	"github.com/ledongthuc/pdf"
)

func decodePDF(raw []byte, clinicsMarker string) (doc *document.Document, err error) {
	// the pdf reader panics on some malformed streams
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("read pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var pages [][]line
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		pages = append(pages, pageLines(rows))
	}
	return buildDocument(pages, clinicsMarker), nil
}

// pageLines converts the reader's rows to lines ordered top to bottom with
// runs ordered left to right.
func pageLines(rows pdf.Rows) []line {
	sorted := append(pdf.Rows(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position > sorted[j].Position })

	lines := make([]line, 0, len(sorted))
	for _, row := range sorted {
		runs := make([]run, 0, len(row.Content))
		for _, t := range row.Content {
			if t.S == "" {
				continue
			}
			runs = append(runs, run{X: t.X, W: t.W, Text: t.S})
		}
		if len(runs) > 0 {
			lines = append(lines, line{Runs: runs})
		}
	}
	return lines
}
