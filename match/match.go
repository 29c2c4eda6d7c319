package match

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/acalc/grammar"
)

// Match matches input against the rule start of spec and returns the root of
// the resulting CST.
//
// The whole input must be consumed; if start is a syntactic rule, leading and
// trailing whitespace is ignored. On a mismatch the returned error is a
// [*Failure] describing the rightmost position reached. If rule applications
// nest deeper than the configured bound, the error is [ErrDepthExceeded].
func Match[R grammar.Tag](
	spec *grammar.Spec[R],
	input string,
	start R,
	opts ...Option,
) (*grammar.Node[R], error) {
	rule, ok := spec.Rule(start)
	if !ok {
		return nil, grammar.ErrUndefinedRule.With(slog.String("rule", start.String()))
	}

	o := makeOptions(opts...)
	m := &matcher[R]{
		spec:     spec,
		input:    input,
		memo:     make(map[memoKey]*memoEntry[R]),
		heads:    make(map[int]*head),
		maxDepth: o.maxDepth,
	}

	pos := 0
	if rule.Syntactic() {
		pos = m.skip(pos)
	}

	res := m.apply(rule, pos)
	if m.err != nil {
		return nil, m.err
	}

	if res.ok {
		end := res.end
		if rule.Syntactic() {
			end = m.skip(end)
		}

		if end == len(input) {
			return res.node, nil
		}

		m.fail(end, "end of input")
	}

	return nil, newFailure(input, m.farthest, m.expected)
}

type result[R grammar.Tag] struct {
	node *grammar.Node[R]
	end  int
	ok   bool
}

// lrec marks a rule application in progress. A rule that re-enters itself at
// the same position before producing a result is left-recursive; head then
// records the rule whose seed is being grown.
type lrec[R grammar.Tag] struct {
	seed result[R]
	head *head
	next *lrec[R]
	rule string
}

type head struct {
	involved map[string]struct{}
	eval     map[string]struct{}
	rule     string
}

type memoKey struct {
	rule string
	pos  int
}

// memoEntry holds either a completed result or, while the rule is being
// evaluated, its in-progress marker.
type memoEntry[R grammar.Tag] struct {
	lr  *lrec[R]
	ans result[R]
}

type matcher[R grammar.Tag] struct {
	err      error
	spec     *grammar.Spec[R]
	memo     map[memoKey]*memoEntry[R]
	heads    map[int]*head
	stack    *lrec[R]
	input    string
	expected []string
	farthest int
	quiet    int
	depth    int
	maxDepth int
}

func (m *matcher[R]) apply(r *grammar.Rule[R], pos int) result[R] {
	if m.err != nil {
		return result[R]{end: pos}
	}

	e := m.recall(r, pos)
	if e == nil {
		lr := &lrec[R]{rule: r.Name(), seed: result[R]{end: pos}, next: m.stack}
		m.stack = lr
		e = &memoEntry[R]{lr: lr}
		m.memo[memoKey{r.Name(), pos}] = e

		ans := m.body(r, pos)

		m.stack = m.stack.next

		if lr.head != nil {
			lr.seed = ans

			return m.answer(r, pos, e)
		}

		e.lr, e.ans = nil, ans

		return ans
	}

	if e.lr != nil {
		m.involve(r, e.lr)

		return e.lr.seed
	}

	if !e.ans.ok && r.Description != "" {
		m.fail(pos, r.Description)
	}

	return e.ans
}

// recall looks up the memoized result of r at pos, taking into account any
// left-recursive seed currently being grown at pos.
func (m *matcher[R]) recall(r *grammar.Rule[R], pos int) *memoEntry[R] {
	key := memoKey{r.Name(), pos}
	e := m.memo[key]

	h := m.heads[pos]
	if h == nil {
		return e
	}

	if _, ok := h.involved[key.rule]; e == nil && !ok && key.rule != h.rule {
		return &memoEntry[R]{ans: result[R]{end: pos}}
	}

	if _, ok := h.eval[key.rule]; ok {
		delete(h.eval, key.rule)

		ans := m.body(r, pos)

		if e == nil {
			e = &memoEntry[R]{}
			m.memo[key] = e
		}

		e.lr, e.ans = nil, ans
	}

	return e
}

// involve marks every application on the stack above the left-recursive
// rule r as involved in growing its seed.
func (m *matcher[R]) involve(r *grammar.Rule[R], l *lrec[R]) {
	if l.head == nil {
		l.head = &head{
			rule:     r.Name(),
			involved: make(map[string]struct{}),
		}
	}

	for s := m.stack; s != nil && s.head != l.head; s = s.next {
		s.head = l.head
		l.head.involved[s.rule] = struct{}{}
	}
}

func (m *matcher[R]) answer(r *grammar.Rule[R], pos int, e *memoEntry[R]) result[R] {
	h, seed := e.lr.head, e.lr.seed
	if h.rule != r.Name() {
		return seed
	}

	e.lr, e.ans = nil, seed
	if !seed.ok {
		return seed
	}

	return m.grow(r, pos, e, h)
}

// grow re-evaluates the body of the left-recursive rule r at pos for as long
// as each iteration consumes more input than the last.
func (m *matcher[R]) grow(r *grammar.Rule[R], pos int, e *memoEntry[R], h *head) result[R] {
	m.heads[pos] = h

	for {
		h.eval = maps.Clone(h.involved)

		ans := m.body(r, pos)
		if !ans.ok || ans.end <= e.ans.end {
			break
		}

		e.ans = ans
	}

	delete(m.heads, pos)

	return e.ans
}

// body evaluates the body of r at pos and wraps its children in a rule node.
func (m *matcher[R]) body(r *grammar.Rule[R], pos int) result[R] {
	if m.depth >= m.maxDepth {
		if m.err == nil {
			m.err = ErrDepthExceeded.With(
				slog.Int("max_depth", m.maxDepth),
				slog.String("rule", r.Name()),
				slog.Int("offset", pos),
			)
		}

		return result[R]{end: pos}
	}

	described := r.Description != ""

	m.depth++
	if described {
		m.quiet++
	}

	kids, end, ok := m.expr(r.Body, pos, r.Syntactic(), nil)

	m.depth--
	if described {
		m.quiet--
	}

	if !ok {
		if described {
			m.fail(pos, r.Description)
		}

		return result[R]{end: pos}
	}

	if r.Token() {
		kids = nil
	}

	return result[R]{
		node: grammar.NewRuleNode(r.Tag, m.input, pos, end, kids),
		end:  end,
		ok:   true,
	}
}

// expr matches e at pos, appending the nodes it produces to out. On failure
// out is returned truncated to its original length.
func (m *matcher[R]) expr(
	e grammar.Expr, pos int, syn bool, out []*grammar.Node[R],
) ([]*grammar.Node[R], int, bool) {
	switch e := e.(type) {
	case *grammar.Lit:
		if syn {
			pos = m.skip(pos)
		}

		if strings.HasPrefix(m.input[pos:], e.Text) {
			end := pos + len(e.Text)

			return append(out, grammar.NewTerminalNode[R](m.input, pos, end)), end, true
		}

		m.fail(pos, e.String())

		return out, pos, false

	case *grammar.Class:
		if syn {
			pos = m.skip(pos)
		}

		if c, n := utf8.DecodeRuneInString(m.input[pos:]); n > 0 && e.Match(c) {
			return append(out, grammar.NewTerminalNode[R](m.input, pos, pos+n)), pos + n, true
		}

		m.fail(pos, e.Desc)

		return out, pos, false

	case *grammar.AnyChar:
		if syn {
			pos = m.skip(pos)
		}

		if _, n := utf8.DecodeRuneInString(m.input[pos:]); n > 0 {
			return append(out, grammar.NewTerminalNode[R](m.input, pos, pos+n)), pos + n, true
		}

		m.fail(pos, "any character")

		return out, pos, false

	case *grammar.Apply:
		if syn {
			pos = m.skip(pos)
		}

		r, _ := m.spec.Lookup(e.Name)

		res := m.apply(r, pos)
		if !res.ok {
			return out, pos, false
		}

		return append(out, res.node), res.end, true

	case *grammar.Seq:
		mark, cur := len(out), pos

		for _, t := range e.Terms {
			var ok bool
			if out, cur, ok = m.expr(t, cur, syn, out); !ok {
				return out[:mark], pos, false
			}
		}

		return out, cur, true

	case *grammar.Alt:
		mark := len(out)

		for _, t := range e.Terms {
			if o, end, ok := m.expr(t, pos, syn, out); ok {
				return o, end, true
			}

			out = out[:mark]
		}

		return out, pos, false

	case *grammar.Repeat:
		return m.repeat(e.Term, e.Min, -1, pos, syn, out)

	case *grammar.Opt:
		return m.repeat(e.Term, 0, 1, pos, syn, out)

	case *grammar.Not:
		m.quiet++
		_, _, ok := m.expr(e.Term, pos, syn, nil)
		m.quiet--

		if ok {
			m.fail(pos, "not "+e.Term.String())

			return out, pos, false
		}

		return out, pos, true

	case *grammar.Look:
		mark := len(out)

		o, _, ok := m.expr(e.Term, pos, syn, out)
		if !ok {
			return out[:mark], pos, false
		}

		return o, pos, true

	case *grammar.List:
		return m.list(e, pos, syn, out)
	}

	return out, pos, false
}

// repeat matches term between lo and hi times (hi < 0 is unbounded) and
// appends one iteration node per child position of term.
func (m *matcher[R]) repeat(
	term grammar.Expr, lo, hi, pos int, syn bool, out []*grammar.Node[R],
) ([]*grammar.Node[R], int, bool) {
	var reps [][]*grammar.Node[R]

	cur := pos
	for hi < 0 || len(reps) < hi {
		kids, end, ok := m.expr(term, cur, syn, nil)
		if !ok {
			break
		}

		reps = append(reps, kids)

		if end == cur {
			break
		}

		cur = end
	}

	if len(reps) < lo {
		return out, pos, false
	}

	for i := range grammar.Arity(term) {
		kids := make([]*grammar.Node[R], len(reps))
		for j, rep := range reps {
			kids[j] = rep[i]
		}

		out = append(out, grammar.NewIterNode(m.input, pos, cur, kids))
	}

	return out, cur, true
}

// list matches zero or more elements separated by a separator and appends a
// single iteration node holding the element nodes.
func (m *matcher[R]) list(
	e *grammar.List, pos int, syn bool, out []*grammar.Node[R],
) ([]*grammar.Node[R], int, bool) {
	elems, cur, ok := m.expr(e.Elem, pos, syn, nil)
	if !ok {
		return append(out, grammar.NewIterNode[R](m.input, pos, pos, nil)), pos, true
	}

	for {
		_, next, ok := m.expr(e.Sep, cur, syn, nil)
		if !ok {
			break
		}

		more, end, ok := m.expr(e.Elem, next, syn, elems)
		if !ok {
			break
		}

		elems, cur = more, end
	}

	return append(out, grammar.NewIterNode(m.input, pos, cur, slices.Clip(elems))), cur, true
}

func (m *matcher[R]) skip(pos int) int {
	for pos < len(m.input) {
		c, n := utf8.DecodeRuneInString(m.input[pos:])
		if !unicode.IsSpace(c) {
			break
		}

		pos += n
	}

	return pos
}

// fail records that what was expected at pos. Only the expectations at the
// rightmost failure position are kept.
func (m *matcher[R]) fail(pos int, what string) {
	if m.quiet > 0 || pos < m.farthest {
		return
	}

	if pos > m.farthest {
		m.farthest = pos
		m.expected = m.expected[:0]
	}

	if !slices.Contains(m.expected, what) {
		m.expected = append(m.expected, what)
	}
}
