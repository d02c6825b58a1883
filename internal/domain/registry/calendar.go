// internal/domain/registry/calendar.go
package registry

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var monthsGenitive = [...]string{
	"ΙΑΝΟΥΑΡΙΟΥ", "ΦΕΒΡΟΥΑΡΙΟΥ", "ΜΑΡΤΙΟΥ", "ΑΠΡΙΛΙΟΥ", "ΜΑΪΟΥ", "ΙΟΥΝΙΟΥ",
	"ΙΟΥΛΙΟΥ", "ΑΥΓΟΥΣΤΟΥ", "ΣΕΠΤΕΜΒΡΙΟΥ", "ΟΚΤΩΒΡΙΟΥ", "ΝΟΕΜΒΡΙΟΥ", "ΔΕΚΕΜΒΡΙΟΥ",
}

var monthsNominative = [...]string{
	"ΙΑΝΟΥΑΡΙΟΣ", "ΦΕΒΡΟΥΑΡΙΟΣ", "ΜΑΡΤΙΟΣ", "ΑΠΡΙΛΙΟΣ", "ΜΑΪΟΣ", "ΙΟΥΝΙΟΣ",
	"ΙΟΥΛΙΟΣ", "ΑΥΓΟΥΣΤΟΣ", "ΣΕΠΤΕΜΒΡΙΟΣ", "ΟΚΤΩΒΡΙΟΣ", "ΝΟΕΜΒΡΙΟΣ", "ΔΕΚΕΜΒΡΙΟΣ",
}

// MonthGenitive returns the upper-case genitive month name used in listing labels
// ("14 ΟΚΤΩΒΡΙΟΥ 2025").
func MonthGenitive(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthsGenitive[m-1]
}

// MonthNominative returns the upper-case nominative month name ("ΟΚΤΩΒΡΙΟΣ").
func MonthNominative(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthsNominative[m-1]
}

// MonthToken is a month name form that may appear in document text.
type MonthToken struct {
	Token string
	Month time.Month
}

// MonthTokens lists nominative then genitive forms for every month, in calendar order.
func MonthTokens() []MonthToken {
	tokens := make([]MonthToken, 0, 24)
	for i := range monthsNominative {
		m := time.Month(i + 1)
		tokens = append(tokens, MonthToken{monthsNominative[i], m}, MonthToken{monthsGenitive[i], m})
	}
	return tokens
}

// DutyDateLabel builds the label a ministry listing uses for a duty day.
func DutyDateLabel(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), MonthGenitive(t.Month()), t.Year())
}

// Fold lower-cases s and removes combining accent marks, so that
// "Καρδιολογία", "ΚΑΡΔΙΟΛΟΓΙΑ" and "καρδιολογια" compare equal.
// Final sigma folds to σ.
func Fold(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if r == 'ς' {
			r = 'σ'
		}
		b.WriteRune(r)
	}
	return b.String()
}
