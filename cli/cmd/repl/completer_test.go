package repl

import (
	"slices"
	"testing"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/acalc/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "sqrt(fo", 7, "fo", 5, 7},
		{"after_comma", "max(a, fo", 9, "fo", 7, 9},
		{"after_caret", "2^pi", 4, "pi", 2, 4},
		{"after_assign", "x=co", 4, "co", 2, 4},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore", "x_1 + 2", 3, "x_1", 0, 3},
		{"cursor_past_end", "ab", 10, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestComputeMatches(t *testing.T) {
	tests := []struct {
		name  string
		input string
		mode  inputMode
		want  string // expected best match, "" for none
	}{
		{"function", "sq", modeEval, "sqrt"},
		{"constant", "1 + ph", modeEval, "phi"},
		{"number", "12", modeEval, ""},
		{"empty", "1 + ", modeEval, ""},
		{"command", "qu", modeCtrl, "quit"},
		{"command_not_binding", "sq", modeCtrl, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.SetCursor(len(tt.input))

			matches, _, end := m.computeMatches()

			if tt.want == "" {
				if len(matches) != 0 {
					t.Errorf("matches = %v, want none", matches)
				}

				return
			}

			if len(matches) == 0 || matches[0].Str != tt.want {
				t.Fatalf("matches = %v, want %q first", matches, tt.want)
			}

			if end != len(tt.input) {
				t.Errorf("word end = %d, want %d", end, len(tt.input))
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Find("s", []string{"sin", "sinh", "sqrt", "sign", "cos"})
	isFunc := func(string) bool { return false }

	if got := renderCandidateBar(nil, -1, 80, isFunc); got != "" {
		t.Errorf("bar for no matches = %q", got)
	}

	if got := renderCandidateBar(matches, -1, 0, isFunc); got != "" {
		t.Errorf("bar for zero width = %q", got)
	}

	if got := renderCandidateBar(matches, 0, 80, isFunc); got == "" {
		t.Error("bar is empty")
	}
}

func TestPreview(t *testing.T) {
	env := lang.NewEnv()

	tests := []struct {
		name string
		want string
	}{
		{"sqrt", "sqrt(x)  square root"},
		{"atan2", "atan2(y, x)  arctangent of y/x using the signs of both"},
		{"inf", "inf  positive infinity"},
	}

	for _, tt := range tests {
		b, ok := env.Lookup(tt.name)
		if !ok {
			t.Fatalf("%s not bound", tt.name)
		}

		if got := preview(b); got != tt.want {
			t.Errorf("preview(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}

	if got := preview(lang.NewVariable("x", 2.5)); got != "2.5" {
		t.Errorf("preview(x) = %q", got)
	}

	if !slices.Contains(ctrlCommands, "edit") {
		t.Error("edit command missing")
	}
}
