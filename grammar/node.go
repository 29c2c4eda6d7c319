package grammar

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind classifies a CST [Node].
type Kind uint8

const (
	KindRule Kind = iota
	KindTerminal
	KindIter
)

func (k Kind) String() string {
	switch k {
	case KindRule:
		return "rule"
	case KindTerminal:
		return "terminal"
	case KindIter:
		return "iter"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is a concrete syntax tree node produced by a successful match.
//
// Rule nodes have exactly as many children as their rule's arity. Terminal
// nodes have no children. Iteration nodes hold one child per repetition.
// Nodes are immutable once constructed.
type Node[R Tag] struct {
	Rule     R // valid only for KindRule
	Children []*Node[R]
	source   string
	Start    int
	End      int
	Kind     Kind
}

// NewRuleNode returns a rule node spanning source[start:end].
func NewRuleNode[R Tag](
	rule R, source string, start, end int, children []*Node[R],
) *Node[R] {
	return &Node[R]{
		Rule:     rule,
		Children: children,
		source:   source,
		Start:    start,
		End:      end,
		Kind:     KindRule,
	}
}

// NewTerminalNode returns a terminal node spanning source[start:end].
func NewTerminalNode[R Tag](source string, start, end int) *Node[R] {
	return &Node[R]{source: source, Start: start, End: end, Kind: KindTerminal}
}

// NewIterNode returns an iteration node spanning source[start:end].
func NewIterNode[R Tag](
	source string, start, end int, children []*Node[R],
) *Node[R] {
	return &Node[R]{
		Children: children,
		source:   source,
		Start:    start,
		End:      end,
		Kind:     KindIter,
	}
}

// Name returns the rule name of a rule node, or "_terminal" / "_iter".
func (n *Node[R]) Name() string {
	switch n.Kind {
	case KindRule:
		return n.Rule.String()
	case KindTerminal:
		return "_terminal"
	default:
		return "_iter"
	}
}

// SourceString returns the substring of the input matched by n.
func (n *Node[R]) SourceString() string { return n.source[n.Start:n.End] }

// Arity returns the number of children.
func (n *Node[R]) Arity() int { return len(n.Children) }

func (n *Node[R]) String() string {
	return n.Name() + "(" + strconv.Quote(n.SourceString()) + ")"
}

// Print writes an indented rendering of the tree rooted at n to w.
func (n *Node[R]) Print(w io.Writer) error { return n.print(w, 0) }

func (n *Node[R]) print(w io.Writer, depth int) error {
	_, err := fmt.Fprintf(w, "%s%s %q\n",
		strings.Repeat("  ", depth), n.Name(), n.SourceString())
	if err != nil {
		return err
	}

	for _, c := range n.Children {
		if err := c.print(w, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// NodeOutline is a serializable summary of a CST.
type NodeOutline struct {
	Name     string        `json:"name"               yaml:"name"`
	Text     string        `json:"text"               yaml:"text"`
	Children []NodeOutline `json:"children,omitempty" yaml:"children,omitempty"`
	Start    int           `json:"start"              yaml:"start"`
	End      int           `json:"end"                yaml:"end"`
}

// Outline returns a serializable summary of the tree rooted at n.
func (n *Node[R]) Outline() NodeOutline {
	o := NodeOutline{
		Name:  n.Name(),
		Text:  n.SourceString(),
		Start: n.Start,
		End:   n.End,
	}

	for _, c := range n.Children {
		o.Children = append(o.Children, c.Outline())
	}

	return o
}
