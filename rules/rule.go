// Package rules classifies CCG productions by the combinator that licenses
// them, commits the variable bindings that combinator implies, and rewrites
// the children of a production when its parent category is replaced.
package rules

// Rule labels a production
type Rule int

const (
	Invalid Rule = iota
	FApply
	BApply
	FComp
	BComp
	FXComp
	BXComp
	AddConj
	DoConj
	CommaConj
	LeftPunct
	RightPunct
	FAdjunct
	BAdjunct
	FTraiseComp
	BTraiseComp
	TRaise
	Unary
	Binary
)

var ruleNames = [...]string{
	Invalid:     "invalid",
	FApply:      "fapply",
	BApply:      "bapply",
	FComp:       "fcomp",
	BComp:       "bcomp",
	FXComp:      "fxcomp",
	BXComp:      "bxcomp",
	AddConj:     "add_conj",
	DoConj:      "do_conj",
	CommaConj:   "comma_conj",
	LeftPunct:   "left_punct",
	RightPunct:  "right_punct",
	FAdjunct:    "fadjunct",
	BAdjunct:    "badjunct",
	FTraiseComp: "ftraise_comp",
	BTraiseComp: "btraise_comp",
	TRaise:      "traise",
	Unary:       "unary",
	Binary:      "binary",
}

func (r Rule) String() string {
	if r < 0 || int(r) >= len(ruleNames) {
		return "invalid"
	}
	return ruleNames[r]
}

// ParseRule is the inverse of Rule.String
func ParseRule(s string) (Rule, bool) {
	for r, name := range ruleNames {
		if name == s {
			return Rule(r), true
		}
	}
	return Invalid, false
}

// Forward reports whether r has its functor on the left
func (r Rule) Forward() bool {
	switch r {
	case FApply, FComp, FXComp:
		return true
	}
	return false
}

// Backward reports whether r has its functor on the right
func (r Rule) Backward() bool {
	switch r {
	case BApply, BComp, BXComp:
		return true
	}
	return false
}

// IsApplication is true for fapply and bapply
func (r Rule) IsApplication() bool {
	return r == FApply || r == BApply
}

// IsComposition is true for the four composition combinators
func (r Rule) IsComposition() bool {
	switch r {
	case FComp, BComp, FXComp, BXComp:
		return true
	}
	return false
}

func (r Rule) crossing() bool {
	return r == FXComp || r == BXComp
}
