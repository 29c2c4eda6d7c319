package lang

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ardnew/acalc/match"
)

// FormatResult formats a value the way the language spells it: integral
// values without a fraction, non-finite values by their constant names.
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// Describe renders err for display. Syntax errors are followed by the
// offending input line with a caret under the failure column.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	var f *match.Failure
	if errors.As(err, &f) {
		if s := f.Snippet(); s != "" {
			msg += "\n" + s
		}
	}

	return strings.TrimRight(msg, "\n")
}
