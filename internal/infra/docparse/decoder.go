// Package docparse turns ministry PDF files and DOCX rosters into document.Document values.
package docparse

import (
	"bytes"
	"fmt"

	"hospital_duty_kiosk/internal/domain/document"
)

// ErrUnsupportedFormat is returned for legacy binary Word files and unknown encodings.
var ErrUnsupportedFormat = document.ErrUnsupportedFormat

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Decoder dispatches on the content signature first and the declared format second,
// since listings label every non-PDF attachment as a Word document.
type Decoder struct {
	clinicsMarker string
}

func NewDecoder() *Decoder {
	return &Decoder{clinicsMarker: "Κλινικές"}
}

func (d *Decoder) Decode(format document.Format, raw []byte) (*document.Document, error) {
	switch Sniff(raw, format) {
	case document.FormatPDF:
		return decodePDF(raw, d.clinicsMarker)
	case document.FormatDOCX:
		return decodeDOCX(raw)
	case document.FormatDOC:
		return nil, fmt.Errorf("%w: legacy binary Word document", ErrUnsupportedFormat)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Sniff returns the format indicated by the leading bytes of raw, or declared
// when the signature is not recognized.
func Sniff(raw []byte, declared document.Format) document.Format {
	switch {
	case bytes.HasPrefix(raw, pdfMagic):
		return document.FormatPDF
	case bytes.HasPrefix(raw, zipMagic):
		return document.FormatDOCX
	case bytes.HasPrefix(raw, oleMagic):
		return document.FormatDOC
	}
	return declared
}
