package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/acalc/lang"
)

// ctrlCommands are the available command-mode commands.
var ctrlCommands = []string{"help", "list", "edit", "clear", "quit"}

// isNameRune reports whether r may appear in an identifier.
func isNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordBounds returns the identifier under the cursor and its byte offsets in
// input. The word is empty when the cursor sits between operators.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isNameRune(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isNameRune(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidatesFor returns the completion candidates for mode.
func (m model) candidatesFor(mode inputMode) []string {
	if mode == modeCtrl {
		return ctrlCommands
	}

	return m.env.Names()
}

// computeMatches ranks the candidates against the word at the cursor. An
// empty word, or a word that starts with a digit, has no matches.
func (m model) computeMatches() (matches fuzzy.Matches, start, end int) {
	word, start, end := wordBounds(m.input.Value(), m.input.Position())

	if word == "" {
		return nil, start, end
	}

	if r, _ := utf8.DecodeRuneInString(word); unicode.IsDigit(r) {
		return nil, start, end
	}

	return fuzzy.Find(word, m.candidatesFor(m.mode)), start, end
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	width int,
	isFunc func(string) bool,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	var (
		b        strings.Builder
		used     int
		ellipsis = hintStyle.Render("...")
	)

	for i, match := range matches {
		rendered := renderCandidate(match, i == selected, isFunc(match.Str))

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += len(sep)
		}

		if i > 0 && used+w+lipgloss.Width(ellipsis) > width {
			b.WriteString(sep + ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted. Functions are shown with a "()" suffix.
func renderCandidate(match fuzzy.Match, selected, fn bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	hit := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		hit[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if hit[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if fn {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

// preview summarizes a binding for the list command.
func preview(b lang.Binding) string {
	switch b.Kind {
	case lang.KindFunction:
		if b.Doc != "" {
			return b.Signature() + "  " + b.Doc
		}

		return b.Signature()

	case lang.KindConstant:
		if b.Doc != "" {
			return lang.FormatResult(b.Value) + "  " + b.Doc
		}
	}

	return lang.FormatResult(b.Value)
}
