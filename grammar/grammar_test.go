package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/acalc/pkg"
)

type tag uint8

const (
	tagSum tag = iota
	tagSumPlus
	tagTerm
	tagTermNeg
	tagNum
	tagName
	tagUnused
)

var tagNames = [...]string{
	"Sum", "Sum_plus", "Term", "Term_neg", "num", "name", "Unused",
}

func (t tag) String() string { return tagNames[t] }

func sumBuilder() *Builder[tag] {
	b := NewBuilder[tag]("Sum", "0.1.0")
	b.Define(tagSum, Choice(
		b.Case(tagSumPlus, Sequence(Ref(tagSum), Text("+"), Ref(tagTerm))),
		Ref(tagTerm),
	))
	b.Define(tagTerm, Choice(
		b.Case(tagTermNeg, Sequence(Text("-"), Ref(tagTerm))),
		Ref(tagNum),
	))
	b.Token(tagNum, "a number", Choice(
		Sequence(Star(Digit()), Text("."), Plus(Digit())),
		Plus(Digit()),
	))

	return b
}

func TestBuild_Arity(t *testing.T) {
	spec, err := sumBuilder().Build(tagSum)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tests := []struct {
		tag   tag
		arity int
	}{
		{tagSum, 1},
		{tagSumPlus, 3},
		{tagTerm, 1},
		{tagTermNeg, 2},
		{tagNum, 0},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			r, ok := spec.Rule(tt.tag)
			if !ok {
				t.Fatalf("Rule(%v) not found", tt.tag)
			}

			if r.Arity() != tt.arity {
				t.Errorf("Arity() = %d, want %d", r.Arity(), tt.arity)
			}
		})
	}

	if spec.Start() != tagSum {
		t.Errorf("Start() = %v, want %v", spec.Start(), tagSum)
	}

	if got := len(spec.Rules()); got != 5 {
		t.Errorf("len(Rules()) = %d, want 5", got)
	}
}

func TestExpr_Arity(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want int
	}{
		{"text", Text("x"), 1},
		{"range", Range('a', 'z'), 1},
		{"any", Any(), 1},
		{"ref", Ref(tagNum), 1},
		{"list", ListOf(Ref(tagNum), Text(",")), 1},
		{"seq", Sequence(Text("("), Ref(tagSum), Text(")")), 3},
		{"star", Star(Sequence(Letter(), Digit())), 2},
		{"plus", Plus(Alnum()), 1},
		{"maybe", Maybe(Sequence(Text("a"), Text("b"))), 2},
		{"not", Without(Sequence(Text("a"), Text("b"))), 0},
		{"look", Ahead(Text("a")), 1},
		{"choice", Choice(Text("a"), Ref(tagNum)), 1},
		{"empty seq", Sequence(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.arity(); got != tt.want {
				t.Errorf("arity(%v) = %d, want %d", tt.expr, got, tt.want)
			}
		})
	}
}

func TestBuild_ArityMismatch(t *testing.T) {
	b := NewBuilder[tag]("Bad", "0.0.0")
	b.Define(tagSum, Choice(
		Sequence(Ref(tagSum), Text("+"), Ref(tagTerm)),
		Ref(tagTerm),
	))
	b.Define(tagTerm, Ref(tagNum))
	b.Token(tagNum, "a number", Plus(Digit()))

	spec, err := b.Build(tagSum)
	if spec != nil {
		t.Error("Build() returned a spec for an invalid grammar")
	}

	if !errors.Is(err, ErrArityMismatch) {
		t.Fatalf("Build() error = %v, want ErrArityMismatch", err)
	}

	var perr *pkg.Error
	if !errors.As(err, &perr) {
		t.Fatalf("Build() error %T is not *pkg.Error", err)
	}

	if v, ok := perr.Attr("rule"); !ok || v.String() != "Sum" {
		t.Errorf("rule attr = %v, %v; want Sum", v, ok)
	}

	if v, ok := perr.Attr("arity"); !ok || v.Int64() != 1 {
		t.Errorf("arity attr = %v, %v; want 1", v, ok)
	}

	if v, ok := perr.Attr("expected"); !ok || v.Int64() != 3 {
		t.Errorf("expected attr = %v, %v; want 3", v, ok)
	}
}

func TestBuild_NestedArityMismatch(t *testing.T) {
	b := NewBuilder[tag]("Bad", "0.0.0")
	b.Define(tagSum, Sequence(Text("("), Choice(Text("a"), Sequence(Text("b"), Text("c")))))

	if _, err := b.Build(tagSum); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("Build() error = %v, want ErrArityMismatch", err)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder[tag])
		start tag
		want  error
	}{
		{
			name: "duplicate rule",
			build: func(b *Builder[tag]) {
				b.Define(tagSum, Text("a"))
				b.Define(tagSum, Text("b"))
			},
			start: tagSum,
			want:  ErrDuplicateRule,
		},
		{
			name: "undefined application",
			build: func(b *Builder[tag]) {
				b.Define(tagSum, Ref(tagTerm))
			},
			start: tagSum,
			want:  ErrUndefinedRule,
		},
		{
			name: "undefined start",
			build: func(b *Builder[tag]) {
				b.Define(tagSum, Text("a"))
			},
			start: tagUnused,
			want:  ErrUndefinedRule,
		},
		{
			name: "describe undefined",
			build: func(b *Builder[tag]) {
				b.Define(tagSum, Text("a"))
				b.Describe(tagTerm, "a term")
			},
			start: tagSum,
			want:  ErrUndefinedRule,
		},
		{
			name: "empty choice",
			build: func(b *Builder[tag]) {
				b.Define(tagSum, Choice())
			},
			start: tagSum,
			want:  ErrEmptyChoice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder[tag]("T", "0.0.0")
			tt.build(b)

			if _, err := b.Build(tt.start); !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuild_JoinsAllErrors(t *testing.T) {
	b := NewBuilder[tag]("T", "0.0.0")
	b.Define(tagSum, Choice(Ref(tagTerm), Sequence(Text("a"), Text("b"))))
	b.Define(tagSum, Text("x"))

	_, err := b.Build(tagSum)

	for _, want := range []error{ErrUndefinedRule, ErrArityMismatch, ErrDuplicateRule} {
		if !errors.Is(err, want) {
			t.Errorf("Build() error = %v, missing %v", err, want)
		}
	}
}

func TestBuild_TokenAlternativesMayDiffer(t *testing.T) {
	if _, err := sumBuilder().Build(tagSum); err != nil {
		t.Fatalf("token rule with uneven alternatives rejected: %v", err)
	}
}

func TestRule_Kinds(t *testing.T) {
	b := sumBuilder()
	b.Define(tagName, Plus(Letter()))
	b.Describe(tagName, "a name")

	spec, err := b.Build(tagSum)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	sum, _ := spec.Rule(tagSum)
	if !sum.Syntactic() || sum.Token() {
		t.Errorf("Sum: Syntactic=%v Token=%v", sum.Syntactic(), sum.Token())
	}

	num, _ := spec.Rule(tagNum)
	if num.Syntactic() || !num.Token() {
		t.Errorf("num: Syntactic=%v Token=%v", num.Syntactic(), num.Token())
	}

	name, _ := spec.Lookup("name")
	if name.Description != "a name" || name.Arity() != 1 {
		t.Errorf("name: Description=%q Arity=%d", name.Description, name.Arity())
	}

	if got := len(sum.Alternatives()); got != 2 {
		t.Errorf("len(Sum.Alternatives()) = %d, want 2", got)
	}
}

func TestBuilder_Reusable(t *testing.T) {
	b := sumBuilder()

	s1, err := b.Build(tagSum)
	if err != nil {
		t.Fatal(err)
	}

	s2, err := b.Build(tagTerm)
	if err != nil {
		t.Fatal(err)
	}

	r1, _ := s1.Rule(tagSum)
	r2, _ := s2.Rule(tagSum)

	if r1 == r2 {
		t.Error("specs built from one builder share rule values")
	}
}

func TestExpr_String(t *testing.T) {
	tests := []struct {
		expr Expr
		want string
	}{
		{Text("+"), `"+"`},
		{Sequence(Ref(tagSum), Text("+"), Ref(tagTerm)), `Sum "+" Term`},
		{Choice(Letter(), Text("_")), `letter | "_"`},
		{Star(Choice(Alnum(), Text("_"))), `(alnum | "_")*`},
		{Plus(Digit()), `digit+`},
		{Maybe(Sequence(Text("a"), Text("b"))), `("a" "b")?`},
		{Without(Any()), `~any`},
		{Ahead(Range('a', 'f')), `&'a'..'f'`},
		{ListOf(Ref(tagSum), Text(",")), `ListOf<Sum, ",">`},
		{Sequence(Choice(Text("a"), Text("b")), Text("c")), `("a" | "b") "c"`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpec_Format(t *testing.T) {
	spec, err := sumBuilder().Build(tagSum)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := spec.Format(&sb); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got := sb.String()

	for _, want := range []string{
		"Sum 0.1.0 {\n",
		"Sum_plus       = Sum \"+\" Term\n",
		"num (a number) = digit* \".\" digit+ | digit+\n",
		"                | Term\n",
		"}\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q in:\n%s", want, got)
		}
	}

	if spec.String() != got {
		t.Error("String() differs from Format()")
	}
}

func TestSpec_Outline(t *testing.T) {
	spec, err := sumBuilder().Build(tagSum)
	if err != nil {
		t.Fatal(err)
	}

	o := spec.Outline()
	if o.Name != "Sum" || o.Version != "0.1.0" || o.Start != "Sum" {
		t.Errorf("Outline() header = %+v", o)
	}

	kinds := map[string]string{}
	for _, r := range o.Rules {
		kinds[r.Name] = r.Kind
	}

	if kinds["Sum"] != "syntactic" || kinds["num"] != "token" {
		t.Errorf("rule kinds = %v", kinds)
	}
}

func TestNode(t *testing.T) {
	src := "1+2"
	one := NewRuleNode(tagNum, src, 0, 1, nil)
	two := NewRuleNode(tagNum, src, 2, 3, nil)
	plus := NewTerminalNode[tag](src, 1, 2)
	root := NewRuleNode(tagSumPlus, src, 0, 3, []*Node[tag]{one, plus, two})
	list := NewIterNode(src, 0, 3, []*Node[tag]{one, two})

	if root.SourceString() != "1+2" || plus.SourceString() != "+" {
		t.Errorf("SourceString() = %q, %q", root.SourceString(), plus.SourceString())
	}

	if root.Arity() != 3 || list.Arity() != 2 {
		t.Errorf("Arity() = %d, %d", root.Arity(), list.Arity())
	}

	names := []string{root.Name(), plus.Name(), list.Name()}
	if names[0] != "Sum_plus" || names[1] != "_terminal" || names[2] != "_iter" {
		t.Errorf("Name() = %v", names)
	}

	if got := root.String(); got != `Sum_plus("1+2")` {
		t.Errorf("String() = %q", got)
	}

	var sb strings.Builder
	if err := root.Print(&sb); err != nil {
		t.Fatal(err)
	}

	want := "Sum_plus \"1+2\"\n  num \"1\"\n  _terminal \"+\"\n  num \"2\"\n"
	if sb.String() != want {
		t.Errorf("Print() =\n%s\nwant\n%s", sb.String(), want)
	}

	o := root.Outline()
	if len(o.Children) != 3 || o.Children[1].Text != "+" || o.End != 3 {
		t.Errorf("Outline() = %+v", o)
	}

	if KindIter.String() != "iter" || Kind(9).String() != "Kind(9)" {
		t.Errorf("Kind.String() = %q, %q", KindIter, Kind(9))
	}
}
