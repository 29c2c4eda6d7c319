package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/acalc/lang"
	"github.com/ardnew/acalc/log"
)

const defaultEditor = "vi"

const editHeader = `# Variables of the current session, one assignment per line.
# Save to replace them; save an empty file to cancel.
`

// variablesScript renders the variables of env as a script that recreates
// them.
func variablesScript(env *lang.Env) string {
	var b strings.Builder

	b.WriteString(editHeader)

	for v := range env.All() {
		if v.Kind == lang.KindVariable {
			fmt.Fprintf(&b, "%s = %s\n", v.Name, lang.FormatResult(v.Value))
		}
	}

	return b.String()
}

// editCommand implements [tea.ExecCommand]. It writes the session variables
// to a temporary file, opens the user's editor, and evaluates the result as a
// script against a copy of the environment with all variables removed. On
// error the user is asked whether to edit again.
type editCommand struct {
	in      *lang.Interpreter
	env     *lang.Env
	result  *lang.Env
	ctxFunc func() context.Context
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop. A nil result with a nil error means the edit
// was cancelled.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp("", "acalc-vars-*.calc")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	_ = f.Close()

	content := variablesScript(c.env)

	for {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return err
		}

		data, err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		env, evalErr := c.evaluate(ctx, data)

		c.logger.TraceContext(ctx, "editor evaluate",
			slog.Int("length", len(data)),
			slog.Bool("success", evalErr == nil),
		)

		if evalErr == nil {
			c.result = env

			return nil
		}

		fmt.Fprintf(c.stderr, "\nerror: %s\n", evalErr)
		fmt.Fprint(c.stdout, "Edit again? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}

		content = string(data)
	}
}

// evaluate runs script against a copy of c.env without its variables.
func (c *editCommand) evaluate(ctx context.Context, script []byte) (*lang.Env, error) {
	env := c.env.Clone()

	for v := range c.env.All() {
		if v.Kind == lang.KindVariable {
			env.Remove(v.Name)
		}
	}

	for _, err := range c.in.EvaluateReader(ctx, bytes.NewReader(script), env) {
		if err != nil {
			return nil, err
		}
	}

	return env, nil
}

// runEditor opens path in $EDITOR and returns the saved content.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
	path string,
) ([]byte, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}
