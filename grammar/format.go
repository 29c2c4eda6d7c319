package grammar

import (
	"fmt"
	"io"
	"strings"
)

// Format writes the grammar in a textual notation to w.
func (s *Spec[R]) Format(w io.Writer) error {
	width := 0

	heads := make([]string, len(s.order))
	for i, r := range s.order {
		heads[i] = r.Name()
		if r.Description != "" {
			heads[i] += " (" + r.Description + ")"
		}

		width = max(width, len(heads[i]))
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s {\n", s.name, s.version)

	for i, r := range s.order {
		alts := r.Alternatives()
		if r.token {
			alts = []Expr{r.Body}
		}

		for j, a := range alts {
			if j == 0 {
				fmt.Fprintf(&b, "  %-*s = %s\n", width, heads[i], a)
			} else {
				fmt.Fprintf(&b, "  %-*s | %s\n", width, "", a)
			}
		}
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())

	return err
}

// String returns the grammar in the notation written by [Spec.Format].
func (s *Spec[R]) String() string {
	var b strings.Builder

	_ = s.Format(&b)

	return b.String()
}

// RuleOutline is a serializable summary of a rule.
type RuleOutline struct {
	Name         string   `json:"name"                  yaml:"name"`
	Kind         string   `json:"kind"                  yaml:"kind"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Alternatives []string `json:"alternatives"          yaml:"alternatives"`
	Arity        int      `json:"arity"                 yaml:"arity"`
}

// SpecOutline is a serializable summary of a grammar.
type SpecOutline struct {
	Name    string        `json:"name"    yaml:"name"`
	Version string        `json:"version" yaml:"version"`
	Start   string        `json:"start"   yaml:"start"`
	Rules   []RuleOutline `json:"rules"   yaml:"rules"`
}

// Outline returns a serializable summary of the grammar.
func (s *Spec[R]) Outline() SpecOutline {
	o := SpecOutline{
		Name:    s.name,
		Version: s.version,
		Start:   s.start.String(),
		Rules:   make([]RuleOutline, 0, len(s.order)),
	}

	for _, r := range s.order {
		ro := RuleOutline{
			Name:        r.Name(),
			Kind:        ruleKind(r),
			Description: r.Description,
			Arity:       r.arity,
		}

		alts := r.Alternatives()
		if r.token {
			alts = []Expr{r.Body}
		}

		for _, a := range alts {
			ro.Alternatives = append(ro.Alternatives, a.String())
		}

		o.Rules = append(o.Rules, ro)
	}

	return o
}

func ruleKind[R Tag](r *Rule[R]) string {
	switch {
	case r.token:
		return "token"
	case r.Syntactic():
		return "syntactic"
	default:
		return "lexical"
	}
}
