// internal/domain/registry/registry.go
package registry

import (
	"sort"
	"strings"
)

// Institution pairs an abbreviation as it appears in the ministry tables with
// the institution's full legal name.
type Institution struct {
	Abbreviation string
	FullName     string
}

// Specialty pairs a raw clinic label with its bilingual "Greek / English" name.
type Specialty struct {
	Raw        string
	Normalized string
}

// Contact holds directory details for a hospital, keyed by full name.
type Contact struct {
	Address string
	Phone   string
	Area    string
}

// Registry is the read-only canonical name configuration shared by the extractors.
// Institutions are matched in registration order; the first abbreviation
// contained in a fragment wins.
type Registry struct {
	institutions       []Institution
	specialties        map[string]string
	directory          map[string]Contact
	primaryPrefix      string
	leadingPrefixes    []string
	institutionMarkers []string
}

// Option customizes a Registry at construction time.
type Option func(*Registry)

// WithDirectory attaches address/phone/area details keyed by full institution name.
func WithDirectory(directory map[string]Contact) Option {
	return func(r *Registry) {
		for name, c := range directory {
			r.directory[name] = c
		}
	}
}

// WithPrefixes overrides the institutional prefix tokens used by the cell tokenizer.
func WithPrefixes(primary string, leading, markers []string) Option {
	return func(r *Registry) {
		r.primaryPrefix = primary
		r.leadingPrefixes = append([]string(nil), leading...)
		r.institutionMarkers = append([]string(nil), markers...)
	}
}

// New builds a Registry. The institutions slice order is the match order.
func New(institutions []Institution, specialties []Specialty, opts ...Option) *Registry {
	r := &Registry{
		institutions:       append([]Institution(nil), institutions...),
		specialties:        make(map[string]string, len(specialties)),
		directory:          make(map[string]Contact),
		primaryPrefix:      "Γ.Ν.",
		leadingPrefixes:    []string{"Γ.", "Π.", "Ν."},
		institutionMarkers: []string{"Γ.Ν.", "Π.Γ.Ν.", "Ν."},
	}
	for _, s := range specialties {
		if _, exists := r.specialties[s.Raw]; !exists {
			r.specialties[s.Raw] = s.Normalized
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LongestFirst returns a copy of institutions ordered by descending abbreviation
// length, keeping registration order among equal lengths.
func LongestFirst(institutions []Institution) []Institution {
	out := append([]Institution(nil), institutions...)
	sort.SliceStable(out, func(i, j int) bool {
		return len([]rune(out[i].Abbreviation)) > len([]rune(out[j].Abbreviation))
	})
	return out
}

// MatchInstitution returns the full name of the first registered abbreviation
// contained in fragment.
func (r *Registry) MatchInstitution(fragment string) (string, bool) {
	for _, inst := range r.institutions {
		if inst.Abbreviation != "" && strings.Contains(fragment, inst.Abbreviation) {
			return inst.FullName, true
		}
	}
	return "", false
}

// NormalizeSpecialty maps a raw clinic label to its bilingual name.
// Unknown labels are returned unchanged.
func (r *Registry) NormalizeSpecialty(raw string) string {
	if normalized, ok := r.specialties[raw]; ok {
		return normalized
	}
	return raw
}

// Contact looks up directory details for a full institution name.
func (r *Registry) Contact(fullName string) (Contact, bool) {
	c, ok := r.directory[fullName]
	return c, ok
}

func (r *Registry) PrimaryPrefix() string { return r.primaryPrefix }

// HasLeadingPrefix reports whether s already starts with a recognized institutional prefix.
func (r *Registry) HasLeadingPrefix(s string) bool {
	for _, p := range r.leadingPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// LooksInstitutional reports whether s carries one of the institution marker substrings.
func (r *Registry) LooksInstitutional(s string) bool {
	for _, m := range r.institutionMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Institutions returns the institutions in match order.
func (r *Registry) Institutions() []Institution {
	return append([]Institution(nil), r.institutions...)
}
