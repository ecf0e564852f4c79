package movie

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingFloatRe = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
	leadingIntRe   = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseFloat parses the longest decimal prefix of s, ignoring leading
// whitespace. It returns NaN when s does not start with a number, so that
// every comparison against the result is false.
func ParseFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	for _, inf := range []string{"Infinity", "+Infinity"} {
		if strings.HasPrefix(s, inf) {
			return math.Inf(1)
		}
	}
	if strings.HasPrefix(s, "-Infinity") {
		return math.Inf(-1)
	}

	m := leadingFloatRe.FindString(s)
	if m == "" {
		return math.NaN()
	}

	// On overflow ParseFloat returns ±Inf alongside the error, which is the
	// value we want.
	f, _ := strconv.ParseFloat(m, 64)

	return f
}

// ParseInt parses the longest base-10 integer prefix of s, ignoring leading
// whitespace. It returns NaN when s does not start with digits.
func ParseInt(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	m := leadingIntRe.FindString(s)
	if m == "" {
		return math.NaN()
	}

	f, _ := strconv.ParseFloat(m, 64)

	return f
}

// ParseVotes parses a human-formatted vote count such as "1,900,000".
// An empty count is treated as zero.
func ParseVotes(s string) float64 {
	if s == "" {
		s = "0"
	}

	return ParseInt(strings.ReplaceAll(s, ",", ""))
}
