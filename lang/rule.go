package lang

//go:generate go tool stringer -type=Rule -linecomment

// Rule identifies a rule of the expression grammar.
type Rule uint8

// Rules of the expression grammar, from loosest to tightest binding.
// Names with an upper-case initial are syntactic rules.
const (
	Exp             Rule = iota // Exp
	AssignExp                   // AssignExp
	AssignExpAssign             // AssignExp_assign
	AddExp                      // AddExp
	AddExpPlus                  // AddExp_plus
	AddExpMinus                 // AddExp_minus
	MulExp                      // MulExp
	MulExpTimes                 // MulExp_times
	MulExpDivide                // MulExp_divide
	ExpExp                      // ExpExp
	ExpExpPower                 // ExpExp_power
	PriExp                      // PriExp
	PriExpParen                 // PriExp_paren
	PriExpPos                   // PriExp_pos
	PriExpNeg                   // PriExp_neg
	PriExpCall                  // PriExp_call
	Ident                       // ident
	Variable                    // variable
	Number                      // number
)

// Rules returns every rule in declaration order.
func Rules() []Rule {
	rs := make([]Rule, 0, Number+1)
	for r := Exp; r <= Number; r++ {
		rs = append(rs, r)
	}

	return rs
}
