package cli

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

type resolverCLI struct {
	Log struct {
		Level  string `default:"info"`
		Pretty bool   `default:"true" negatable:""`
	} `embed:"" prefix:"log-"`

	MaxDepth int     `default:"100"`
	Scale    float64 `default:"1"`
	Tags     []string
	Name     string `default:"none"`
}

func parseWithConfig(t *testing.T, content string, args ...string) (resolverCLI, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	var cli resolverCLI

	parser, err := kong.New(&cli,
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.Configuration(resolve(t.Context()), path),
	)
	if err != nil {
		return cli, err
	}

	_, err = parser.Parse(args)

	return cli, err
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
		check   func(t *testing.T, cli resolverCLI)
	}{
		{
			name:    "empty",
			content: "",
			check: func(t *testing.T, cli resolverCLI) {
				if cli.MaxDepth != 100 || cli.Log.Level != "info" || !cli.Log.Pretty {
					t.Errorf("defaults not kept: %+v", cli)
				}
			},
		},
		{
			name:    "flat",
			content: "max-depth: 500\nlog-level: debug\nlog-pretty: false\n",
			check: func(t *testing.T, cli resolverCLI) {
				if cli.MaxDepth != 500 || cli.Log.Level != "debug" || cli.Log.Pretty {
					t.Errorf("got %+v", cli)
				}
			},
		},
		{
			name:    "nested",
			content: "log:\n  level: warn\n  pretty: false\n",
			check: func(t *testing.T, cli resolverCLI) {
				if cli.Log.Level != "warn" || cli.Log.Pretty {
					t.Errorf("got %+v", cli.Log)
				}
			},
		},
		{
			name:    "underscore",
			content: "max_depth: 42\n",
			check: func(t *testing.T, cli resolverCLI) {
				if cli.MaxDepth != 42 {
					t.Errorf("MaxDepth = %d, want 42", cli.MaxDepth)
				}
			},
		},
		{
			name:    "float",
			content: "scale: 0.25\n",
			check: func(t *testing.T, cli resolverCLI) {
				if cli.Scale != 0.25 {
					t.Errorf("Scale = %v, want 0.25", cli.Scale)
				}
			},
		},
		{
			name:    "list",
			content: "tags:\n  - a\n  - b\n  - 3\n",
			check: func(t *testing.T, cli resolverCLI) {
				if !slices.Equal(cli.Tags, []string{"a", "b", "3"}) {
					t.Errorf("Tags = %q", cli.Tags)
				}
			},
		},
		{
			name:    "flags override",
			content: "max-depth: 500\nname: file\n",
			args:    []string{"--max-depth=7"},
			check: func(t *testing.T, cli resolverCLI) {
				if cli.MaxDepth != 7 || cli.Name != "file" {
					t.Errorf("got MaxDepth = %d, Name = %q", cli.MaxDepth, cli.Name)
				}
			},
		},
		{
			name:    "unknown keys ignored",
			content: "bogus: 1\nlog:\n  color: red\n",
			check: func(t *testing.T, cli resolverCLI) {
				if cli.MaxDepth != 100 {
					t.Errorf("MaxDepth = %d", cli.MaxDepth)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, err := parseWithConfig(t, tt.content, tt.args...)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			tt.check(t, cli)
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	_, err := resolve(t.Context())(strings.NewReader("log: [unclosed\n"))
	if !errors.Is(err, ErrConfig) {
		t.Errorf("error = %v, want ErrConfig", err)
	}
}

func TestResolve_ReadError(t *testing.T) {
	_, err := resolve(t.Context())(errReader{})
	if !errors.Is(err, ErrConfig) {
		t.Errorf("error = %v, want ErrConfig", err)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestScalar(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{"x", "x"},
		{true, true},
		{1.5, "1.5"},
		{uint64(12), "12"},
		{int64(-3), "-3"},
		{[]any{"a", 1.5, true}, "a,1.5,true"},
	}

	for _, tt := range tests {
		if got := scalar(tt.in); got != tt.want {
			t.Errorf("scalar(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestConfigFlatten(t *testing.T) {
	conf := config{}
	conf.flatten("", map[string]any{
		"a_b": 1.0,
		"c": map[string]any{
			"d": map[string]any{"e_f": "g"},
		},
	})

	keys := strings.Join(slices.Sorted(maps.Keys(conf)), " ")

	if keys != "a-b c-d-e-f" {
		t.Errorf("keys = %q", keys)
	}
}
