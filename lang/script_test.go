package lang

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/ardnew/acalc/pkg"
)

func TestEvaluateReader(t *testing.T) {
	const script = `# circle
r = 2; d = 2 * r

area = pi * r^2   # square units

;;
d
`

	env := NewEnv()

	var got []Statement

	for st, err := range New().EvaluateReader(t.Context(), strings.NewReader(script), env) {
		if err != nil {
			t.Fatal(err)
		}

		got = append(got, st)
	}

	want := []Statement{
		{Source: "r = 2", Line: 2, Value: 2},
		{Source: "d = 2 * r", Line: 2, Value: 4},
		{Source: "area = pi * r^2", Line: 4, Value: 4 * math.Pi},
		{Source: "d", Line: 7, Value: 4},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d statements %v, want %d", len(got), got, len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("statement %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if b, ok := env.Lookup("area"); !ok || b.Value != 4*math.Pi {
		t.Errorf("area = %+v, %v", b, ok)
	}
}

func TestEvaluateReader_StopsAtError(t *testing.T) {
	env := NewEnv()
	script := "a = 1\nb = nope\nc = 3\n"

	var (
		n       int
		lastErr error
	)

	for _, err := range New().EvaluateReader(t.Context(), strings.NewReader(script), env) {
		n++
		lastErr = err
	}

	if n != 2 {
		t.Errorf("yielded %d results, want 2", n)
	}

	if !errors.Is(lastErr, ErrUndefinedName) {
		t.Fatalf("error = %v, want %v", lastErr, ErrUndefinedName)
	}

	var e *pkg.Error
	if !errors.As(lastErr, &e) {
		t.Fatalf("error %T is not a *pkg.Error", lastErr)
	}

	if line, ok := e.Attr("line"); !ok || line.Int64() != 2 {
		t.Errorf("line attribute = %v, %v; want 2", line, ok)
	}

	if _, ok := env.Lookup("a"); !ok {
		t.Error("assignment before the error was rolled back")
	}

	if _, ok := env.Lookup("c"); ok {
		t.Error("statement after the error was evaluated")
	}
}

func TestEvaluateReader_SyntaxErrorLine(t *testing.T) {
	var lastErr error

	for _, err := range New().EvaluateReader(t.Context(), strings.NewReader("1\n\n2 +"), nil) {
		lastErr = err
	}

	if !errors.Is(lastErr, ErrMatch) {
		t.Fatalf("error = %v, want %v", lastErr, ErrMatch)
	}

	var e *pkg.Error
	if !errors.As(lastErr, &e) {
		t.Fatalf("error %T is not a *pkg.Error", lastErr)
	}

	if line, ok := e.Attr("line"); !ok || line.Kind() != slog.KindInt64 || line.Int64() != 3 {
		t.Errorf("line attribute = %v, %v; want 3", line, ok)
	}
}

func TestEvaluateReader_Break(t *testing.T) {
	env := NewEnv()

	for st, err := range New().EvaluateReader(t.Context(), strings.NewReader("a = 1; b = 2"), env) {
		if err != nil || st.Value != 1 {
			t.Fatalf("first statement = %+v, %v", st, err)
		}

		break
	}

	if _, ok := env.Lookup("b"); ok {
		t.Error("statement evaluated after the consumer stopped")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestEvaluateReader_ReadError(t *testing.T) {
	for _, err := range New().EvaluateReader(t.Context(), failingReader{}, nil) {
		if !errors.Is(err, ErrReadInput) || !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("error = %v, want %v wrapping %v", err, ErrReadInput, io.ErrUnexpectedEOF)
		}
	}
}
