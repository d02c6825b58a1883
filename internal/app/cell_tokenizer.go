package app

import (
	"strings"

	"hospital_duty_kiosk/internal/domain/registry"
)

// CellTokenizer splits one duty-table cell into canonical institution names.
type CellTokenizer struct {
	registry *registry.Registry
}

func NewCellTokenizer(reg *registry.Registry) *CellTokenizer {
	return &CellTokenizer{registry: reg}
}

// Tokenize returns the institutions named in cell, in encounter order.
// A cell may list several institutions separated by line breaks or by the
// primary prefix itself ("Γ.Ν. ΛΑΪΚΟ Γ.Ν. ΚΑΤ"). Fragments that resolve to no
// known abbreviation are kept verbatim only when they still look institutional.
func (t *CellTokenizer) Tokenize(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	prefix := t.registry.PrimaryPrefix()

	var names []string
	for _, line := range strings.Split(cell, "\n") {
		for _, fragment := range splitOn(line, prefix) {
			fragment = strings.TrimSpace(fragment)
			if fragment == "" {
				continue
			}
			if !t.registry.HasLeadingPrefix(fragment) {
				fragment = prefix + fragment
			}
			if full, ok := t.registry.MatchInstitution(fragment); ok {
				names = append(names, full)
				continue
			}
			if t.registry.LooksInstitutional(fragment) {
				names = append(names, fragment)
			}
		}
	}
	return names
}

func splitOn(s, sep string) []string {
	if sep == "" {
		return []string{s}
	}
	return strings.Split(s, sep)
}
