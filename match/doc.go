// Package match matches input against a [grammar.Spec] and builds the
// concrete syntax tree.
//
// The matcher is a memoizing (packrat) parsing expression grammar engine.
// Direct and indirect left recursion are supported by growing a seed: a rule
// that re-enters itself at the same position first fails, and its body is
// then re-evaluated with the previous result as long as more input is
// consumed. This lets grammars express left-associative operators directly:
//
//	AddExp      = AddExp_plus | MulExp
//	AddExp_plus = AddExp "+" MulExp
//
// On a mismatch, [Match] reports the rightmost position reached together
// with everything that was expected there. Rules with a description report
// the description in place of their internal expectations.
package match
