package grammar

import (
	"unicode"
	"unicode/utf8"
)

// Tag identifies a rule. Implementations are typically a closed integer
// enumeration whose String method returns the rule name.
type Tag interface {
	comparable
	String() string
}

// Rule is a named production of a [Spec].
type Rule[R Tag] struct {
	Tag         R
	Body        Expr
	Description string
	token       bool
	arity       int
}

// Name returns the rule name.
func (r *Rule[R]) Name() string { return r.Tag.String() }

// Arity returns the number of children every node of this rule has.
func (r *Rule[R]) Arity() int { return r.arity }

// Token reports whether the rule exposes only its matched substring.
func (r *Rule[R]) Token() bool { return r.token }

// Syntactic reports whether whitespace is skipped implicitly before each
// terminal and application in the rule body.
func (r *Rule[R]) Syntactic() bool { return isSyntactic(r.Name()) }

// Alternatives returns the top-level choice terms of the rule body, or the
// body itself if it is not a choice.
func (r *Rule[R]) Alternatives() []Expr {
	if alt, ok := r.Body.(*Alt); ok {
		return alt.Terms
	}

	return []Expr{r.Body}
}

func isSyntactic(name string) bool {
	c, _ := utf8.DecodeRuneInString(name)

	return unicode.IsUpper(c)
}
