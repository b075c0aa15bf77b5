package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MaxConcentration is the highest units/mL accepted; larger catalog values
// are treated as corrupt.
const MaxConcentration = 10000

var concentrationPattern = regexp.MustCompile(`^U?-?\s*(\d+)$`)

// ConcentrationLabel formats a units/mL value as "U-<int>", truncating any
// fractional part. Returns nil for nil, NaN, non-positive input or anything
// above MaxConcentration.
func ConcentrationLabel(v *float64) *string {
	if v == nil || math.IsNaN(*v) || *v <= 0 || *v > MaxConcentration {
		return nil
	}
	n := int64(*v)
	if n <= 0 {
		return nil
	}
	s := fmt.Sprintf("U-%d", n)
	return &s
}

// ParseConcentration accepts user input such as "U-100", "u100" or "100" and
// returns the canonical "U-100" label.
func ParseConcentration(s string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	t = strings.TrimSuffix(t, "U/ML")
	t = strings.TrimSpace(t)
	m := concentrationPattern.FindStringSubmatch(t)
	if m == nil {
		return "", fmt.Errorf("invalid concentration %q", s)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n <= 0 || n > MaxConcentration {
		return "", fmt.Errorf("invalid concentration %q", s)
	}
	return fmt.Sprintf("U-%d", n), nil
}
