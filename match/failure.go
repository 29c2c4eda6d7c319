package match

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/acalc/pkg"
)

// ErrDepthExceeded is returned when rule applications nest deeper than the
// configured bound.
var ErrDepthExceeded = pkg.NewError("maximum match depth exceeded")

// Failure describes why an input did not match a grammar.
//
// Offset is the byte offset of the rightmost position at which matching
// failed. Line and Column are 1-based; Column counts runes.
type Failure struct {
	Input    string
	Expected []string
	Offset   int
	Line     int
	Column   int
}

func newFailure(input string, offset int, expected []string) *Failure {
	f := &Failure{
		Input:    input,
		Expected: slices.Clone(expected),
		Offset:   offset,
		Line:     1 + strings.Count(input[:offset], "\n"),
	}

	bol := strings.LastIndexByte(input[:offset], '\n') + 1
	f.Column = 1 + utf8.RuneCountInString(input[bol:offset])

	return f
}

// Error implements the error interface.
func (f *Failure) Error() string {
	var b strings.Builder

	b.WriteString("line ")
	b.WriteString(strconv.Itoa(f.Line))
	b.WriteString(", column ")
	b.WriteString(strconv.Itoa(f.Column))
	b.WriteString(": expected ")
	b.WriteString(f.ExpectedString())

	return b.String()
}

// ExpectedString joins the expected constructs into an English list.
func (f *Failure) ExpectedString() string {
	switch n := len(f.Expected); n {
	case 0:
		return "nothing"
	case 1:
		return f.Expected[0]
	default:
		return strings.Join(f.Expected[:n-1], ", ") + " or " + f.Expected[n-1]
	}
}

// Snippet renders the offending input line with a caret under the failure
// column.
func (f *Failure) Snippet() string {
	lines := strings.Split(f.Input, "\n")
	if f.Line < 1 || f.Line > len(lines) {
		return ""
	}

	var b strings.Builder

	num := strconv.Itoa(f.Line)

	b.WriteString("  ")
	b.WriteString(num)
	b.WriteString(" | ")
	b.WriteString(lines[f.Line-1])
	b.WriteRune('\n')

	// 2 leading spaces + " | "
	b.WriteString(strings.Repeat(" ", len(num)+5+f.Column-1))
	b.WriteString("^\n")

	return b.String()
}
