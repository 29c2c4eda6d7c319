package repl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/acalc/lang"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	s := Session{Interpreter: lang.New(), Env: lang.NewEnv()}

	return newModel(t.Context(), s, NewHistory(""))
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})

	return next.(model)
}

func press(t *testing.T, m model, key tea.KeyType) (model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(tea.KeyMsg{Type: key})

	return next.(model), cmd
}

func value(t *testing.T, env *lang.Env, name string) float64 {
	t.Helper()

	b, ok := env.Lookup(name)
	if !ok {
		t.Fatalf("%s is not bound", name)
	}

	return b.Value
}

func TestModel_Evaluate(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "x = 4")

	m, cmd := press(t, m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("submit returned no command")
	}

	if got := value(t, m.env, "x"); got != 4 {
		t.Errorf("x = %v, want 4", got)
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if m.history.Len() != 1 || m.historyIdx != 1 {
		t.Errorf("history len = %d, index = %d", m.history.Len(), m.historyIdx)
	}

	m = typeText(t, m, "x * x")
	m, _ = press(t, m, tea.KeyEnter)

	if got := m.evaluate("x + 1"); !strings.Contains(got, "5") {
		t.Errorf("evaluate(x + 1) = %q", got)
	}
}

func TestModel_EvaluateError(t *testing.T) {
	m := newTestModel(t)

	got := m.evaluate("1 +")

	for _, want := range []string{"syntax error", "1 | 1 +", "^"} {
		if !strings.Contains(got, want) {
			t.Errorf("evaluate(1 +) = %q, missing %q", got, want)
		}
	}

	if got := m.evaluate("pi = 3"); !strings.Contains(got, "read-only") {
		t.Errorf("evaluate(pi = 3) = %q", got)
	}

	if got := value(t, m.env, "pi"); got == 3 {
		t.Error("constant was reassigned")
	}
}

func TestModel_EmptySubmit(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "   ")

	m, cmd := press(t, m, tea.KeyEnter)
	if cmd != nil || m.history.Len() != 0 {
		t.Errorf("blank line was submitted: cmd=%v, history=%d", cmd != nil, m.history.Len())
	}
}

func TestModel_ToggleMode(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "1 + ")

	m, _ = press(t, m, tea.KeyEsc)
	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("after Esc: mode = %d, input = %q", m.mode, m.input.Value())
	}

	m = typeText(t, m, "li")

	m, _ = press(t, m, tea.KeyEsc)
	if m.mode != modeEval || m.input.Value() != "1 + " {
		t.Fatalf("after second Esc: mode = %d, input = %q", m.mode, m.input.Value())
	}

	m, _ = press(t, m, tea.KeyEsc)
	if m.input.Value() != "li" {
		t.Errorf("command input not restored: %q", m.input.Value())
	}
}

func TestModel_Complete(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "1 + sq")

	if len(m.matches) != 1 {
		t.Fatalf("matches = %v, want one", m.matches)
	}

	m, _ = press(t, m, tea.KeyTab)
	if got := m.input.Value(); got != "1 + sqrt" {
		t.Errorf("completed input = %q", got)
	}

	if m.tabActive {
		t.Error("single candidate left cycling active")
	}
}

func TestModel_CycleAndRestore(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "si")

	if len(m.matches) < 2 {
		t.Fatalf("matches = %v, want several", m.matches)
	}

	first, second := m.matches[0].Str, m.matches[1].Str

	m, _ = press(t, m, tea.KeyTab)
	if got := m.input.Value(); got != first || !m.tabActive {
		t.Fatalf("after Tab: input = %q, active = %v", got, m.tabActive)
	}

	m, _ = press(t, m, tea.KeyTab)
	if got := m.input.Value(); got != second {
		t.Fatalf("after second Tab: input = %q, want %q", got, second)
	}

	m, _ = press(t, m, tea.KeyShiftTab)
	if got := m.input.Value(); got != first {
		t.Fatalf("after Shift+Tab: input = %q, want %q", got, first)
	}

	m, _ = press(t, m, tea.KeyEsc)
	if got := m.input.Value(); got != "si" || m.tabActive || m.mode != modeEval {
		t.Errorf("after Esc: input = %q, active = %v, mode = %d", got, m.tabActive, m.mode)
	}
}

func TestModel_History(t *testing.T) {
	m := newTestModel(t)

	for _, line := range []string{"1+1", "2+2"} {
		m = typeText(t, m, line)
		m, _ = press(t, m, tea.KeyEnter)
	}

	m, _ = press(t, m, tea.KeyEsc)
	m = typeText(t, m, "help")
	m, _ = press(t, m, tea.KeyEnter)
	m, _ = press(t, m, tea.KeyEsc)

	steps := []struct {
		key  tea.KeyType
		want string
		mode inputMode
	}{
		{tea.KeyUp, "help", modeCtrl},
		{tea.KeyUp, "2+2", modeEval},
		{tea.KeyUp, "1+1", modeEval},
		{tea.KeyUp, "1+1", modeEval},
		{tea.KeyDown, "2+2", modeEval},
		{tea.KeyShiftDown, "", modeEval},
		{tea.KeyShiftUp, "2+2", modeEval},
	}

	for i, step := range steps {
		m, _ = press(t, m, step.key)

		if got := m.input.Value(); got != step.want || m.mode != step.mode {
			t.Fatalf("step %d: input = %q, mode = %d; want %q, %d",
				i, got, m.mode, step.want, step.mode)
		}
	}

	if !strings.Contains(m.View(), "2/3") {
		t.Errorf("View() = %q, want history position", m.View())
	}
}

func TestModel_Commands(t *testing.T) {
	m := newTestModel(t)

	if got := m.list("sqrt"); !strings.Contains(got, "sqrt") || strings.Contains(got, "sinh") {
		t.Errorf("list(sqrt) = %q", got)
	}

	if got := m.list(); !strings.Contains(got, "pi") || !strings.Contains(got, "atan2") {
		t.Errorf("list() = %q", got)
	}

	m, _ = press(t, m, tea.KeyEsc)
	m = typeText(t, m, "bogus")

	m, cmd := press(t, m, tea.KeyEnter)
	if cmd == nil || m.quitting {
		t.Fatalf("unknown command: cmd = %v, quitting = %v", cmd != nil, m.quitting)
	}

	m = typeText(t, m, "quit")

	m, cmd = press(t, m, tea.KeyEnter)
	if cmd == nil || !m.quitting {
		t.Errorf("quit: cmd = %v, quitting = %v", cmd != nil, m.quitting)
	}

	if m.View() != "" {
		t.Errorf("View() after quit = %q", m.View())
	}
}

func TestModel_CtrlC(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "1 + 2")

	m, _ = press(t, m, tea.KeyCtrlC)
	if m.input.Value() != "" || m.quitting {
		t.Fatalf("Ctrl+C on input: value = %q, quitting = %v", m.input.Value(), m.quitting)
	}

	m, cmd := press(t, m, tea.KeyCtrlC)
	if !m.quitting || cmd == nil {
		t.Error("Ctrl+C on empty line did not quit")
	}
}

func TestModel_SignatureHint(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, m, "max(1, ")

	if hint := m.hint(); !strings.Contains(hint, "larger of x and y") {
		t.Errorf("hint() = %q", hint)
	}
}

func TestModel_EditMessages(t *testing.T) {
	m := newTestModel(t)

	env := lang.NewEnv()
	if err := env.Assign("y", 9); err != nil {
		t.Fatal(err)
	}

	next, _ := m.Update(editDoneMsg{env: env})
	if got := value(t, next.(model).env, "y"); got != 9 {
		t.Errorf("y = %v after edit", got)
	}

	for _, msg := range []tea.Msg{
		editCancelledMsg{},
		editDeclinedMsg{},
		editErrorMsg{err: errors.New("boom")},
	} {
		next, cmd := m.Update(msg)
		if cmd == nil || next.(model).quitting {
			t.Errorf("Update(%T) = quitting %v, cmd %v", msg, next.(model).quitting, cmd != nil)
		}
	}
}

func TestVariablesScript(t *testing.T) {
	env := lang.NewEnv()

	for name, v := range map[string]float64{"x": 2, "y": 0.5} {
		if err := env.Assign(name, v); err != nil {
			t.Fatal(err)
		}
	}

	script := variablesScript(env)

	for _, want := range []string{editHeader, "x = 2\n", "y = 0.5\n"} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q:\n%s", want, script)
		}
	}

	if strings.Contains(script, "pi =") {
		t.Error("script contains constants")
	}
}

func TestEditCommand_Evaluate(t *testing.T) {
	env := lang.NewEnv()
	if err := env.Assign("y", 1); err != nil {
		t.Fatal(err)
	}

	c := &editCommand{in: lang.New(), env: env}

	got, err := c.evaluate(t.Context(), []byte("# edited\nx = 3\nz = x * 2\n"))
	if err != nil {
		t.Fatal(err)
	}

	if v := value(t, got, "z"); v != 6 {
		t.Errorf("z = %v, want 6", v)
	}

	if _, ok := got.Lookup("y"); ok {
		t.Error("removed variable y survived the edit")
	}

	if _, ok := env.Lookup("z"); ok {
		t.Error("edit modified the original environment")
	}

	if _, err := c.evaluate(t.Context(), []byte("pi = 3\n")); !errors.Is(err, lang.ErrReadOnly) {
		t.Errorf("evaluate(pi = 3) error = %v, want ErrReadOnly", err)
	}
}

func TestEditCommand_Run(t *testing.T) {
	// An editor that exits without changes keeps the variables.
	t.Setenv("EDITOR", "true")

	env := lang.NewEnv()
	if err := env.Assign("x", 1.25); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer

	c := &editCommand{
		in:      lang.New(),
		env:     env,
		ctxFunc: t.Context,
	}
	c.SetStdin(strings.NewReader(""))
	c.SetStdout(&out)
	c.SetStderr(&out)

	if err := c.Run(); err != nil {
		t.Fatalf("Run() = %v; output %q", err, out.String())
	}

	if c.result == nil {
		t.Fatal("no result")
	}

	if got := value(t, c.result, "x"); got != 1.25 {
		t.Errorf("x = %v, want 1.25", got)
	}
}
