package calculator

import (
	"math"
	"strconv"
	"strings"
)

// ParseInt reads a form field. Anything unparseable is 0; fractions are
// truncated and thousands separators ignored.
func ParseInt(s string) int {
	f := ParseFloat(s)
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// ParseFloat reads a form field. Anything unparseable is 0.
func ParseFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
