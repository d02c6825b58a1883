package docparse

import (
	"sort"
	"strings"

	"hospital_duty_kiosk/internal/domain/document"
)

// Horizontal distances in PDF text-space units.
const (
	wordGap = 1.0 // runs further apart than this are separated by a space
	cellGap = 6.0 // runs further apart than this belong to different cells
)

// run is a piece of text drawn at one position.
type run struct {
	X, W float64
	Text string
}

// line is the text drawn on one baseline.
type line struct {
	Runs []run
}

// segment is a horizontally contiguous group of runs.
type segment struct {
	X0, X1 float64
	Text   string
}

func (s segment) center() float64 { return (s.X0 + s.X1) / 2 }

// segments groups the runs of l into cell-sized pieces, left to right.
func segments(l line) []segment {
	runs := append([]run(nil), l.Runs...)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

	var out []segment
	for _, r := range runs {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		if n := len(out); n > 0 {
			last := &out[n-1]
			gap := r.X - last.X1
			if gap <= cellGap {
				if gap > wordGap && !strings.HasSuffix(last.Text, " ") {
					last.Text += " "
				}
				last.Text += r.Text
				if end := r.X + r.W; end > last.X1 {
					last.X1 = end
				}
				continue
			}
		}
		out = append(out, segment{X0: r.X, X1: r.X + r.W, Text: r.Text})
	}
	for i := range out {
		out[i].Text = strings.TrimSpace(out[i].Text)
	}
	return out
}

// pdfTable rebuilds a grid from positioned text. Column boundaries sit midway
// between neighbouring header cells; every segment lands in the column that
// contains its center.
type pdfTable struct {
	bounds []float64
	rows   [][]string
}

func newPDFTable(header []segment) *pdfTable {
	t := &pdfTable{}
	for i := 0; i+1 < len(header); i++ {
		t.bounds = append(t.bounds, (header[i].X1+header[i+1].X0)/2)
	}
	cells := make([]string, len(header))
	for i, s := range header {
		cells[i] = s.Text
	}
	t.rows = append(t.rows, cells)
	return t
}

func (t *pdfTable) column(s segment) int {
	c := s.center()
	for i, b := range t.bounds {
		if c < b {
			return i
		}
	}
	return len(t.bounds)
}

// add places one line into the grid. A line with nothing in the first column
// continues the previous row: its pieces join the cells above on a new line.
func (t *pdfTable) add(segs []segment) {
	cells := make([]string, len(t.bounds)+1)
	for _, s := range segs {
		col := t.column(s)
		if cells[col] != "" {
			cells[col] += " "
		}
		cells[col] += s.Text
	}

	if cells[0] == "" && len(t.rows) > 0 {
		last := t.rows[len(t.rows)-1]
		for i, v := range cells {
			switch {
			case v == "":
			case last[i] == "":
				last[i] = v
			default:
				last[i] += "\n" + v
			}
		}
		return
	}
	t.rows = append(t.rows, cells)
}

// buildDocument walks the lines of every page. A line containing the clinics
// marker opens a new table; lines before the first table are paragraphs.
// Tables carry over page breaks until the next header.
func buildDocument(pages [][]line, clinicsMarker string) *document.Document {
	doc := &document.Document{}
	var current *pdfTable
	for _, lines := range pages {
		for _, l := range lines {
			segs := segments(l)
			if len(segs) == 0 {
				continue
			}
			if containsMarker(segs, clinicsMarker) {
				if current != nil {
					doc.Tables = append(doc.Tables, document.Table{Rows: current.rows})
				}
				current = newPDFTable(segs)
				continue
			}
			if current == nil {
				doc.Paragraphs = append(doc.Paragraphs, joinSegments(segs))
				continue
			}
			current.add(segs)
		}
	}
	if current != nil {
		doc.Tables = append(doc.Tables, document.Table{Rows: current.rows})
	}
	return doc
}

func containsMarker(segs []segment, marker string) bool {
	for _, s := range segs {
		if strings.Contains(s.Text, marker) {
			return true
		}
	}
	return false
}

func joinSegments(segs []segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}
