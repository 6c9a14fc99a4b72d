package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
)

// CompletionThreshold is the minimum earned/possible ratio that counts an
// assignment as completed.
const CompletionThreshold = 0.2

const (
	syntaxErrorMarker = "Syntax error"
	turnedInMarker    = "Turned In"
)

var (
	fractionRe = regexp.MustCompile(`(\d+)/(\d+)\s`)
	unitRe     = regexp.MustCompile(`Unit (\d+):`)
	lessonRe   = regexp.MustCompile(`Lesson (\d+):`)
)

// Fraction is a "n/d " score as it appears in a gradebook cell. The raw digit
// strings are kept so rewritten cells preserve the export's formatting.
type Fraction struct {
	Numerator   string
	Denominator string
}

// Ratio returns numerator/denominator. A zero or unparseable denominator
// yields 0.
func (f Fraction) Ratio() float64 {
	n, err := strconv.ParseFloat(f.Numerator, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(f.Denominator, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

// ParseFraction finds the first "n/d" followed by whitespace in text.
func ParseFraction(text string) (Fraction, bool) {
	m := fractionRe.FindStringSubmatch(text)
	if m == nil {
		return Fraction{}, false
	}
	return Fraction{Numerator: m[1], Denominator: m[2]}, true
}

// ParseAssignmentScore converts a raw assignment cell into a completion signal:
// 1 when the assignment counts as completed, 0 otherwise.
//
// A syntax error always scores 0, "Turned In" scores 1, and a fraction scores 1
// when it reaches CompletionThreshold. Anything else, including the empty
// string, scores 0.
func ParseAssignmentScore(text string) int {
	if strings.Contains(text, syntaxErrorMarker) {
		return 0
	}
	if strings.HasPrefix(text, turnedInMarker) {
		return 1
	}
	if f, ok := ParseFraction(text); ok {
		if f.Ratio() >= CompletionThreshold {
			return 1
		}
	}
	return 0
}

// matchNumber returns the first captured integer of re in text.
func matchNumber(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
