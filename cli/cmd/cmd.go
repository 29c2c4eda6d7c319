package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/acalc/lang"
	"github.com/ardnew/acalc/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type sessionKey struct{}

// Session holds the settings shared by all commands: where to read and write,
// and how to build the interpreter and environment.
type Session struct {
	In       io.Reader
	Out      io.Writer
	Err      io.Writer
	Logger   log.Logger
	CacheDir string
	MaxDepth int
	Shadow   bool
}

// WithSession returns a new context.Context containing s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// sessionFrom returns the Session stored in ctx, with unset streams replaced
// by the standard ones.
func sessionFrom(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey{}).(Session)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// Interpreter returns an interpreter configured by the session.
func (s Session) Interpreter(opts ...lang.Option) *lang.Interpreter {
	return lang.New(append([]lang.Option{
		lang.WithLogger(s.Logger),
		lang.WithMaxDepth(s.MaxDepth),
	}, opts...)...)
}

// Env returns a new environment configured by the session.
func (s Session) Env() *lang.Env {
	return lang.NewEnv(lang.WithShadowing(s.Shadow))
}

// stdinSource names standard input in a list of source files.
const stdinSource = "-"

// source is one named script input.
type source struct {
	io.Reader

	name string
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens the named script files in order, skipping files already
// opened under another name. Every "-", and any path naming the same file as
// stdin, refers to stdin, which is read once after all regular files. The
// returned function closes every opened file.
func openSources(paths []string, stdin io.Reader) ([]source, func(), error) {
	var (
		srcs     = make([]source, 0, len(paths))
		files    []*os.File
		seen     = make(map[fileKey]struct{})
		hasStdin bool
	)

	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	stdinKey, stdinOK := fileKeyOf(stdin)

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		key, keyed, err := statFile(path)
		if err != nil {
			closeAll()

			return nil, func() {}, ErrOpenSource.Wrap(err).With(slog.String("file", path))
		}

		if keyed {
			if stdinOK && key == stdinKey {
				hasStdin = true

				continue
			}

			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}
		}

		f, err := os.Open(path)
		if err != nil {
			closeAll()

			return nil, func() {}, ErrOpenSource.Wrap(err).With(slog.String("file", path))
		}

		files = append(files, f)
		srcs = append(srcs, source{Reader: f, name: path})
	}

	if hasStdin {
		srcs = append(srcs, source{Reader: stdin, name: stdinSource})
	}

	return srcs, closeAll, nil
}

// statFile returns the identity of the file at path after resolving
// symlinks and relative paths.
func statFile(path string) (fileKey, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false, err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fileKey{}, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false, err
	}

	key, ok := makeFileKey(info)

	return key, ok, nil
}

func fileKeyOf(r io.Reader) (fileKey, bool) {
	f, ok := r.(*os.File)
	if !ok {
		return fileKey{}, false
	}

	info, err := f.Stat()
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
