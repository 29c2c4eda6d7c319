package repl

import (
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/acalc/lang"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"no call", "pi", 2, "", 0, false},
		{"open", "max(", 4, "max", 0, true},
		{"first arg", "max(1", 5, "max", 0, true},
		{"second arg", "max(1,", 6, "max", 1, true},
		{"second arg value", "max(1, 2", 8, "max", 1, true},
		{"space before paren", "sqrt (", 6, "sqrt", 0, true},
		{"nested inner", "max(1, sqrt(", 12, "sqrt", 0, true},
		{"nested closed", "max(sqrt(4), ", 13, "max", 1, true},
		{"nested comma ignored", "max(pow(2, 3), 1", 16, "max", 1, true},
		{"closed call", "max(1, 2)", 9, "", 0, false},
		{"grouping paren", "(1 + ", 5, "", 0, false},
		{"after operator", "2 * (", 5, "", 0, false},
		{"cursor inside", "max(1, 2)", 5, "max", 0, true},
		{"number before paren", "2(", 2, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)

			if got.inCall != tt.wantInCall || got.name != tt.wantName ||
				got.argIndex != tt.wantIndex {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {%s %d %v}",
					tt.input, tt.cursor, got, tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestSignatureOf(t *testing.T) {
	env := lang.NewEnv()

	if _, ok := signatureOf(env, "pi"); ok {
		t.Error("constant reported as function")
	}

	if _, ok := signatureOf(env, "missing"); ok {
		t.Error("unbound name reported as function")
	}

	b, ok := signatureOf(env, "hypot")
	if !ok {
		t.Fatal("hypot not found")
	}

	if got := params(b); !slices.Equal(got, []string{"p", "q"}) {
		t.Errorf("params(hypot) = %v", got)
	}
}

func TestParams(t *testing.T) {
	nullary := lang.NewFunction("now", "", nil, func(...float64) float64 { return 0 })
	if got := params(nullary); got != nil {
		t.Errorf("params(now) = %v, want none", got)
	}

	unnamed := lang.Binding{
		Fn:    func(args ...float64) float64 { return args[0] + args[1] },
		Name:  "add",
		Arity: 2,
		Kind:  lang.KindFunction,
	}
	if got := params(unnamed); !slices.Equal(got, []string{"x1", "x2"}) {
		t.Errorf("params(add) = %v", got)
	}
}

func TestRenderSignatureHint(t *testing.T) {
	b, _ := signatureOf(lang.NewEnv(), "atan2")

	for i := range 3 {
		hint := renderSignatureHint(b, i)

		for _, part := range []string{"atan2", "y", "x", "arctangent"} {
			if !strings.Contains(hint, part) {
				t.Errorf("hint %d = %q, missing %q", i, hint, part)
			}
		}
	}
}
