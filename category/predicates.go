package category

import (
	"regexp"
	"slices"
)

var (
	auxRegexp       = regexp.MustCompile(`^\(S\[(\w+)\]\\NP\)/\(S\[(\w+)\]\\NP\)`)
	predicateRegexp = regexp.MustCompile(`^\(*S\[(b|dcl|ng|pss|pt|to)\]`)

	// trueAuxFeatures are the complement features of genuine auxiliaries
	trueAuxFeatures = []string{"[dcl]", "[b]", "[pss]", "[ng]", "[pt]"}

	punct = []string{",", ":", ";", ".", "LQU", "RQU", "--", "RRB", "LRB"}
)

// IsAdjunct reports whether the result and argument are the same category
// sharing the same head variable, as in (NP{Y}\NP{Y}){_}
func (c *Category) IsAdjunct() bool {
	return c.IsComplex() && c.result.ExactEq(c.argument) && c.result.Var() == c.argument.Var()
}

// HasAdjunct reports whether some result along c's result chain is an adjunct
func (c *Category) HasAdjunct() bool {
	return slices.ContainsFunc(c.Deconstruct(), func(l Level) bool { return l.Result.IsAdjunct() })
}

// IsAux recognises (S[f]\NP)/(S[g]\NP)
func (c *Category) IsAux() bool {
	return auxRegexp.MatchString(c.str)
}

// IsTrueAux is IsAux restricted to auxiliaries taking a verbal complement
func (c *Category) IsTrueAux() bool {
	return c.IsAux() && slices.Contains(trueAuxFeatures, c.InnerResult().Feature())
}

func (c *Category) IsPredicate() bool {
	return predicateRegexp.MatchString(c.str)
}

func (c *Category) IsPunct() bool {
	return !c.IsComplex() && slices.Contains(punct, c.str)
}

// IsTypeRaise recognises T/(T\X) and T\(T/X)
func (c *Category) IsTypeRaise() bool {
	return c.IsComplex() &&
		c.argument.IsComplex() &&
		c.slash != c.argument.slash &&
		c.result.ExactEq(c.argument.result)
}
