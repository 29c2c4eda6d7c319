package grammar

import (
	"errors"
	"log/slog"
	"slices"
)

// Spec is a validated grammar. It is immutable and safe for concurrent use.
type Spec[R Tag] struct {
	start   R
	rules   map[string]*Rule[R]
	name    string
	version string
	order   []*Rule[R]
}

// Name returns the grammar name.
func (s *Spec[R]) Name() string { return s.name }

// Version returns the grammar version.
func (s *Spec[R]) Version() string { return s.version }

// Start returns the default start rule.
func (s *Spec[R]) Start() R { return s.start }

// Rule returns the rule identified by tag.
func (s *Spec[R]) Rule(tag R) (*Rule[R], bool) { return s.Lookup(tag.String()) }

// Lookup returns the rule with the given name.
func (s *Spec[R]) Lookup(name string) (*Rule[R], bool) {
	r, ok := s.rules[name]

	return r, ok
}

// Rules returns all rules in definition order.
func (s *Spec[R]) Rules() []*Rule[R] { return slices.Clone(s.order) }

// Builder accumulates rule definitions for a [Spec].
//
// Definition errors are collected and reported together by [Builder.Build].
type Builder[R Tag] struct {
	name    string
	version string
	rules   []*Rule[R]
	errs    []error
}

// NewBuilder returns an empty Builder for a grammar with the given name and
// version.
func NewBuilder[R Tag](name, version string) *Builder[R] {
	return &Builder[R]{name: name, version: version}
}

// Define adds a rule with the given body.
func (b *Builder[R]) Define(tag R, body Expr) *Builder[R] {
	b.rules = append(b.rules, &Rule[R]{Tag: tag, Body: body})

	return b
}

// Token adds a lexical rule whose nodes have no children and expose only the
// matched substring. The description is reported in match failures in place
// of whatever the body expected.
func (b *Builder[R]) Token(tag R, description string, body Expr) *Builder[R] {
	b.rules = append(b.rules, &Rule[R]{
		Tag:         tag,
		Body:        body,
		Description: description,
		token:       true,
	})

	return b
}

// Case adds a rule for one alternative of a parent rule and returns an
// application of it, so that alternatives with different natural arity can
// be combined in a single choice of arity 1.
func (b *Builder[R]) Case(tag R, body Expr) *Apply {
	b.Define(tag, body)

	return Ref(tag)
}

// Describe sets the description of a previously defined rule.
func (b *Builder[R]) Describe(tag R, description string) *Builder[R] {
	for _, r := range b.rules {
		if r.Tag == tag {
			r.Description = description

			return b
		}
	}

	b.errs = append(b.errs, ErrUndefinedRule.With(slog.String("rule", tag.String())))

	return b
}

// Build validates the accumulated rules and returns the resulting [Spec].
//
// Every rule name must be unique, every application must refer to a defined
// rule, and all alternatives of every choice in a non-token rule must have
// the same arity. All violations are joined into the returned error.
func (b *Builder[R]) Build(start R) (*Spec[R], error) {
	s := &Spec[R]{
		name:    b.name,
		version: b.version,
		start:   start,
		rules:   make(map[string]*Rule[R], len(b.rules)),
		order:   make([]*Rule[R], 0, len(b.rules)),
	}

	errs := slices.Clone(b.errs)

	for _, r := range b.rules {
		if _, dup := s.rules[r.Name()]; dup {
			errs = append(errs, ErrDuplicateRule.With(slog.String("rule", r.Name())))

			continue
		}

		s.rules[r.Name()] = &Rule[R]{
			Tag:         r.Tag,
			Body:        r.Body,
			Description: r.Description,
			token:       r.token,
		}
		s.order = append(s.order, s.rules[r.Name()])
	}

	if _, ok := s.rules[start.String()]; !ok {
		errs = append(errs, ErrUndefinedRule.With(
			slog.String("rule", start.String()),
			slog.String("referrer", "start"),
		))
	}

	for _, r := range s.order {
		errs = append(errs, s.check(r, r.Body)...)

		if !r.token {
			r.arity = r.Body.arity()
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Spec[R]) check(r *Rule[R], e Expr) []error {
	var errs []error

	switch e := e.(type) {
	case *Apply:
		if _, ok := s.rules[e.Name]; !ok {
			errs = append(errs, ErrUndefinedRule.With(
				slog.String("rule", e.Name),
				slog.String("referrer", r.Name()),
			))
		}

	case *Alt:
		if len(e.Terms) == 0 {
			errs = append(errs, ErrEmptyChoice.With(slog.String("rule", r.Name())))

			break
		}

		// Token nodes have no children, so their alternatives may differ.
		if r.token {
			break
		}

		want := e.Terms[0].arity()
		for i, t := range e.Terms[1:] {
			if got := t.arity(); got != want {
				errs = append(errs, ErrArityMismatch.With(
					slog.String("rule", r.Name()),
					slog.Int("alternative", i+1),
					slog.String("term", t.String()),
					slog.Int("arity", got),
					slog.Int("expected", want),
				))
			}
		}
	}

	for _, t := range e.terms() {
		errs = append(errs, s.check(r, t)...)
	}

	return errs
}
