// Package grammar describes parsing expression grammars as Go data.
//
// A grammar is assembled with a [Builder] from rules identified by a closed
// enumeration of tags and validated by [Builder.Build]. Every rule has a
// fixed arity: the number of children each of its CST nodes will have.
// Arity is computed structurally:
//
//	Text, Range, Letter, Any, Ref, ListOf   1
//	Sequence                                sum of its terms
//	Star, Plus, Maybe, Ahead                arity of the inner term
//	Without                                 0
//	Choice                                  arity shared by every term
//
// Alternatives whose natural arity differs are split into case rules with
// [Builder.Case]. Token rules ([Builder.Token]) have arity 0 and expose only
// their matched text.
//
// Rule names beginning with an upper-case letter are syntactic: whitespace
// is skipped before each terminal and application in their bodies. All
// other rules are lexical.
//
// Matching a [Spec] against input is the job of package match, which yields
// a tree of [Node] values.
package grammar
