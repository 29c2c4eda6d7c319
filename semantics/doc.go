// Package semantics dispatches semantic actions over a concrete syntax tree.
//
// A [Registry] holds one [Action] per grammar rule. Actions are functions of
// fixed arity ([Func0] through [Func4]) that receive the [Walker], the node
// itself and its children. Because arity is part of the action's type, a
// mismatch between an action and its rule is reported by
// [Registry.Register] rather than during evaluation, and [Registry.Seal]
// reports every rule left without an action.
//
// Actions recurse into children explicitly through [Walker.Eval] and
// [Walker.EvalIter], so they control evaluation order.
package semantics
