package docparse

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hospital_duty_kiosk/internal/domain/document"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const documentPart = "word/document.xml"

var ErrMissingDocumentPart = fmt.Errorf("docx archive has no %s", documentPart)

// tableState tracks the table being read. Horizontally merged cells are
// repeated for every grid column they span and vertically merged continuation
// cells repeat the text of the cell above, so column indexes stay stable.
type tableState struct {
	rows      [][]string
	row       []string
	cell      []string
	inCell    bool
	span      int
	vContinue bool
	above     map[int]string
}

func decodeDOCX(raw []byte) (*document.Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", documentPart, err)
		}
		defer rc.Close()
		return parseDocumentXML(rc)
	}
	return nil, ErrMissingDocumentPart
}

func parseDocumentXML(r io.Reader) (*document.Document, error) {
	dec := xml.NewDecoder(r)
	doc := &document.Document{}

	var (
		tables []*tableState
		para   strings.Builder
		inPara bool
		inText bool
	)
	current := func() *tableState {
		if len(tables) == 0 {
			return nil
		}
		return tables[len(tables)-1]
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", documentPart, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Space != wordNS {
				continue
			}
			switch el.Name.Local {
			case "tbl":
				tables = append(tables, &tableState{above: map[int]string{}})
			case "tr":
				if t := current(); t != nil {
					t.row = nil
				}
			case "tc":
				if t := current(); t != nil {
					t.cell, t.inCell, t.span, t.vContinue = nil, true, 1, false
				}
			case "gridSpan":
				if t := current(); t != nil {
					if n, err := strconv.Atoi(attr(el, "val")); err == nil && n > 1 {
						t.span = n
					}
				}
			case "vMerge":
				if t := current(); t != nil {
					t.vContinue = attr(el, "val") != "restart"
				}
			case "p":
				para.Reset()
				inPara = true
			case "t":
				inText = true
			case "tab":
				if inPara {
					para.WriteString("\t")
				}
			case "br", "cr":
				if inPara {
					para.WriteString("\n")
				}
			}

		case xml.CharData:
			if inText && inPara {
				para.Write(el)
			}

		case xml.EndElement:
			if el.Name.Space != wordNS {
				continue
			}
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				inPara = false
				text := para.String()
				if t := current(); t != nil && t.inCell {
					t.cell = append(t.cell, text)
				} else if strings.TrimSpace(text) != "" {
					doc.Paragraphs = append(doc.Paragraphs, text)
				}
			case "tc":
				if t := current(); t != nil {
					t.closeCell()
				}
			case "tr":
				if t := current(); t != nil {
					t.rows = append(t.rows, t.row)
					t.row = nil
				}
			case "tbl":
				t := current()
				tables = tables[:len(tables)-1]
				if parent := current(); parent != nil && parent.inCell {
					// nested table text stays in the enclosing cell
					for _, row := range t.rows {
						parent.cell = append(parent.cell, strings.Join(row, "\t"))
					}
					continue
				}
				doc.Tables = append(doc.Tables, document.Table{Rows: t.rows})
			}
		}
	}
	return doc, nil
}

func (t *tableState) closeCell() {
	text := strings.Join(t.cell, "\n")
	col := len(t.row)
	if t.vContinue {
		text = t.above[col]
	}
	for i := 0; i < t.span; i++ {
		t.above[col+i] = text
		t.row = append(t.row, text)
	}
	t.cell, t.inCell = nil, false
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
