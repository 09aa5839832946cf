package category

import (
	"slices"
	"strings"
)

// featureVars name the placeholders StripFeatures introduces
var featureVars = []string{"[X]", "[Y]", "[Z]", "[W]", "[V]", "[U]", "[T]", "[R]", "[Q]", "[P]"}

// RemapVars rebuilds c with every variable v replaced by f(v). Hats keep their own numbering.
func RemapVars(c *Category, f func(v int) int) *Category {
	attrs := c.attrs
	attrs.Var = f(attrs.Var)
	if attrs.HasVar2 {
		attrs.Var2 = f(attrs.Var2)
	}
	if !c.IsComplex() {
		return NewAtomic(c.atom, attrs)
	}
	return NewComplex(RemapVars(c.result, f), c.slash, RemapVars(c.argument, f), attrs)
}

// RemapVarMap replaces the variables present in m and keeps the rest
func RemapVarMap(c *Category, m map[int]int) *Category {
	if len(m) == 0 {
		return c
	}
	return RemapVars(c, func(v int) int {
		if mapped, ok := m[v]; ok {
			return mapped
		}
		return v
	})
}

// FreshenVars renumbers the variables of c to from, from+1, ... in the order
// they are first seen, so coindexation inside c is kept
func FreshenVars(c *Category, from int) *Category {
	m := make(map[int]int, len(c.varOrder))
	for i, v := range c.varOrder {
		m[v] = from + i
	}
	return RemapVarMap(c, m)
}

// VarToFeats pairs up, path by path, the feature placeholders of a with the
// features of b, and those of b with the features of a
func VarToFeats(a, b *Category) (aToB, bToA map[string]string) {
	aToB, bToA = map[string]string{}, map[string]string{}
	for _, p := range a.paths {
		subA := a.cats[p]
		subB, ok := b.cats[p]
		if !ok {
			continue
		}
		if subA.attrs.FeatVar != "" && subB.attrs.Feature != "" {
			aToB[subA.attrs.FeatVar] = subB.attrs.Feature
		} else if subB.attrs.FeatVar != "" && subA.attrs.Feature != "" {
			bToA[subB.attrs.FeatVar] = subA.attrs.Feature
		}
	}
	return aToB, bToA
}

// IsVarMinimal reports whether c's head is variable 0 and its variables have no gaps
func (c *Category) IsVarMinimal() bool {
	return c.attrs.Var == 0 && len(c.varOrder) == c.nextVar
}

// MinimiseVars renumbers c's variables from 0 without gaps, starting with its
// own head, and resolves feature placeholders through feats. Placeholders
// left unresolved that occur only once are dropped, as are argument indices.
func MinimiseVars(c *Category, feats map[string]string) *Category {
	if len(feats) == 0 && c.IsVarMinimal() {
		return c
	}
	m := &minimiser{seen: map[int]int{}, feats: feats, freqs: map[string]int{}}
	m.varFor(c.attrs.Var)
	for _, p := range c.paths {
		fv := c.cats[p].attrs.FeatVar
		if _, resolved := feats[fv]; fv != "" && !resolved {
			m.freqs[fv]++
		}
	}
	return m.minimise(c)
}

type minimiser struct {
	seen  map[int]int
	feats map[string]string
	freqs map[string]int
}

func (m *minimiser) varFor(v int) int {
	if mapped, ok := m.seen[v]; ok {
		return mapped
	}
	m.seen[v] = len(m.seen)
	return m.seen[v]
}

func (m *minimiser) attrs(c *Category) Attrs {
	attrs := c.attrs
	attrs.Var = m.varFor(attrs.Var)
	if attrs.HasVar2 {
		attrs.Var2 = m.varFor(attrs.Var2)
	}
	attrs.ArgIdx = ""
	if feature, ok := m.feats[attrs.FeatVar]; ok && attrs.FeatVar != "" {
		attrs.FeatVar = ""
		attrs.Feature = feature
	} else if m.freqs[attrs.FeatVar] == 1 {
		attrs.FeatVar = ""
	}
	return attrs
}

// minimise walks the result chain inside out, numbering each level's
// argument before the level itself
func (m *minimiser) minimise(c *Category) *Category {
	levels := c.Deconstruct()
	inner := c.InnerResult()
	curr := NewAtomic(inner.atom, m.attrs(inner))
	for _, level := range slices.Backward(levels) {
		var arg *Category
		if level.Argument.IsComplex() {
			arg = m.minimise(level.Argument)
		} else {
			arg = NewAtomic(level.Argument.atom, m.attrs(level.Argument))
		}
		curr = NewComplex(curr, level.Slash, arg, m.attrs(level.Cat))
	}
	return curr
}

// StripFeatures replaces every feature other than [adj] with a placeholder,
// one placeholder per distinct feature
func StripFeatures(c *Category) *Category {
	featMap := map[string]string{}
	taken := map[string]bool{}
	for _, p := range c.paths {
		if fv := c.cats[p].attrs.FeatVar; fv != "" {
			taken[fv] = true
		}
	}
	next := 0
	for _, p := range c.paths {
		feature := c.cats[p].attrs.Feature
		if feature == "" || feature == "[adj]" {
			continue
		}
		if _, ok := featMap[feature]; ok {
			continue
		}
		for next < len(featureVars) && taken[featureVars[next]] {
			next++
		}
		if next == len(featureVars) {
			break
		}
		featMap[feature] = featureVars[next]
		next++
	}
	if len(featMap) == 0 {
		return c
	}
	return featsToVars(c, featMap)
}

func featsToVars(c *Category, featMap map[string]string) *Category {
	attrs := c.attrs
	if fv, ok := featMap[attrs.Feature]; ok {
		attrs.FeatVar = fv
		attrs.Feature = ""
	}
	if !c.IsComplex() {
		return NewAtomic(c.atom, attrs)
	}
	return NewComplex(featsToVars(c.result, featMap), c.slash, featsToVars(c.argument, featMap), attrs)
}

// TypeRaise builds T/(T\X) for slash '/' and T\(T/X) for '\'. The target's
// features become placeholders and its variables are moved above those of
// argument so the two never alias.
func TypeRaise(target *Category, slash Slash, argument *Category) *Category {
	t := FreshenVars(StripFeatures(target), argument.NextVar())
	tAttrs := Attrs{Var: t.Var()}
	inner := NewComplex(t, slash.Flip(), argument, tAttrs)
	return NewComplex(t, slash, inner, Attrs{Var: argument.Var()})
}

// MakeAdjunct builds X|X from x: the head variable moves to a fresh number,
// features become placeholders, and the adjunct's own head is 0
func MakeAdjunct(x *Category, slash Slash) *Category {
	shifted := RemapVarMap(x, map[int]int{0: x.NextVar()})
	shifted = StripFeatures(shifted)
	return NewComplex(shifted, slash, shifted, Attrs{})
}

// AddArg builds result|arg, renumbering arg's variables above result's so
// the new argument is coindexed with nothing
func AddArg(result *Category, slash Slash, arg *Category, attrs Attrs) *Category {
	return NewComplex(result, slash, FreshenVars(arg, result.NextVar()), attrs)
}

// Dollar is one trailing argument of a category
type Dollar struct {
	Argument *Category
	Slash    Slash
	Attrs    Attrs
}

// Dollars lists the arguments of levels, outermost first
func Dollars(levels []Level) []Dollar {
	dollars := make([]Dollar, len(levels))
	for i, l := range levels {
		dollars[i] = Dollar{Argument: l.Argument, Slash: l.Slash, Attrs: l.Cat.attrs}
	}
	return dollars
}

// AddArgs attaches dollars to res, innermost (last) first, so that
// AddArgs(c.InnerResult(), Dollars(c.Deconstruct())) rebuilds the shape of c.
// Arguments whose variables clash with what has been built so far are
// renumbered; the head is shared.
func AddArgs(res *Category, dollars []Dollar) *Category {
	for _, d := range slices.Backward(dollars) {
		arg := d.Argument
		if clashes(res, arg) {
			arg = FreshenVars(arg, res.NextVar())
		}
		attrs := d.Attrs
		attrs.Var = res.Var()
		res = NewComplex(res, d.Slash, arg, attrs)
	}
	return res
}

func clashes(a, b *Category) bool {
	return slices.ContainsFunc(b.varOrder, a.HasVar)
}

// ReplaceResult swaps the result of c for newResult, keeping c's argument and
// moving any argument variable that newResult also uses to a fresh number
func ReplaceResult(c *Category, newResult *Category) *Category {
	arg := c.argument
	next := max(newResult.NextVar(), arg.NextVar())
	m := map[int]int{}
	for _, v := range arg.varOrder {
		if newResult.HasVar(v) {
			m[v] = next
			next++
		}
	}
	return NewComplex(newResult, c.slash, RemapVarMap(arg, m), c.attrs)
}

// String constants used by the rule engine and its tables
const (
	ConjAtom      = "conj"
	CommaAtom     = ","
	SemicolonAtom = ";"
	ColonAtom     = ":"
)

// Is compares c's bare form with s
func (c *Category) Is(s string) bool {
	return c.str == strings.TrimSpace(s)
}
