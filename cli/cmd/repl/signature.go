package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/acalc/lang"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes the innermost call whose argument list contains the
// cursor.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

// detectFunctionCall finds the innermost unclosed call to the left of cursor
// and the index of the argument being typed.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	var (
		depth int
		open  = -1
	)

scan:
	for i := cursor; i > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++

		case '(':
			if depth == 0 {
				open = i

				break scan
			}

			depth--
		}
	}

	if open < 0 {
		return functionCall{}
	}

	name := strings.TrimRightFunc(input[:open], func(r rune) bool {
		return r == ' ' || r == '\t'
	})
	name, _, _ = wordBounds(name, len(name))

	if name == "" {
		return functionCall{}
	}

	if r, _ := utf8.DecodeRuneInString(name); r >= '0' && r <= '9' {
		return functionCall{}
	}

	argIndex := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// signatureOf returns the function bound to name in env.
func signatureOf(env *lang.Env, name string) (lang.Binding, bool) {
	b, ok := env.Lookup(name)
	if !ok || b.Kind != lang.KindFunction {
		return lang.Binding{}, false
	}

	return b, true
}

// params returns the parameter names of a function binding, naming unnamed
// parameters by position.
func params(b lang.Binding) []string {
	sig := b.Signature()

	open, end := strings.IndexByte(sig, '('), strings.LastIndexByte(sig, ')')
	if open < 0 || end <= open+1 {
		return nil
	}

	return strings.Split(sig[open+1:end], ", ")
}

// renderSignatureHint renders the signature of b with the parameter at
// argIndex highlighted. Arguments beyond the arity highlight nothing.
func renderSignatureHint(b lang.Binding, argIndex int) string {
	var sb strings.Builder

	sb.WriteString(signatureNameStyle.Render(b.Name))
	sb.WriteString(signatureStyle.Render("("))

	for i, p := range params(b) {
		if i > 0 {
			sb.WriteString(signatureStyle.Render(", "))
		}

		if i == argIndex {
			sb.WriteString(currentParamStyle.Render(p))
		} else {
			sb.WriteString(signatureStyle.Render(p))
		}
	}

	sb.WriteString(signatureStyle.Render(")"))

	if b.Doc != "" {
		sb.WriteString(hintStyle.Render("  " + b.Doc))
	}

	return sb.String()
}
