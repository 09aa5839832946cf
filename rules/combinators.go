package rules

import (
	"slices"

	"github.com/cottand/rebank/category"
	"github.com/cottand/rebank/scat"
)

// MaxCompositionDepth bounds how many arguments generalised composition
// looks through to find the category shared by functor and argument
const MaxCompositionDepth = 3

// attempt is what a combinator computes from the bare categories, before
// anything is bound. bind commits the coindexations the combinator implies
// between the children and the result; it is only ever called on SuperCats
// wrapping the categories the attempt was computed from.
type attempt struct {
	rule   Rule
	result *category.Category
	x, y   *category.Category
	depth  int
	bind   func(left, right, res *scat.SuperCat) bool
}

type combinator func(left, right *category.Category) *attempt

// binaryCombinators is the priority order in which productions are classified
var binaryCombinators = []struct {
	rule Rule
	fn   combinator
}{
	{FApply, fapply},
	{BApply, bapply},
	{FComp, fcomp},
	{BComp, bcomp},
	{FXComp, fxcomp},
	{BXComp, bxcomp},
	{AddConj, addConj},
	{DoConj, doConj},
	{CommaConj, commaConj},
	{LeftPunct, leftPunct},
	{RightPunct, rightPunct},
}

func combinatorFor(r Rule) combinator {
	for _, c := range binaryCombinators {
		if c.rule == r {
			return c.fn
		}
	}
	return nil
}

func hasSlash(c *category.Category, s category.Slash) bool {
	return c.IsComplex() && c.Slash() == s
}

func fapply(left, right *category.Category) *attempt {
	if !hasSlash(left, category.Forward) {
		return nil
	}
	return application(FApply, left, right)
}

func bapply(left, right *category.Category) *attempt {
	if !hasSlash(right, category.Backward) {
		return nil
	}
	return backward(application(BApply, right, left))
}

func fcomp(left, right *category.Category) *attempt {
	if !hasSlash(left, category.Forward) || !hasSlash(right, category.Forward) {
		return nil
	}
	return composition(FComp, left, right)
}

func bcomp(left, right *category.Category) *attempt {
	if !hasSlash(left, category.Backward) || !hasSlash(right, category.Backward) {
		return nil
	}
	return backward(composition(BComp, right, left))
}

func fxcomp(left, right *category.Category) *attempt {
	if !hasSlash(left, category.Forward) || !right.IsComplex() {
		return nil
	}
	return composition(FXComp, left, right)
}

func bxcomp(left, right *category.Category) *attempt {
	if !left.IsComplex() || !hasSlash(right, category.Backward) {
		return nil
	}
	return backward(composition(BXComp, right, left))
}

// backward adapts an attempt whose bind takes (functor, argument) to one
// taking (left, right)
func backward(a *attempt) *attempt {
	if a == nil {
		return nil
	}
	bind := a.bind
	a.bind = func(left, right, res *scat.SuperCat) bool {
		return bind(right, left, res)
	}
	return a
}

// application is X|Y Y => X. The argument's features resolve the
// placeholders of the functor's result.
func application(rule Rule, functor, arg *category.Category) *attempt {
	if functor.Conj() || arg.Conj() {
		return nil
	}
	if !functor.Argument().Matches(arg) {
		return nil
	}
	aToB, _ := category.VarToFeats(functor.Argument(), arg)
	return &attempt{
		rule:   rule,
		result: category.MinimiseVars(functor.Result(), aToB),
		x:      functor.Result(),
		y:      arg,
		bind: func(f, a, res *scat.SuperCat) bool {
			return f.BindVars(a, f.Argument(), a.Cat()) &&
				f.BindVars(res, f.Result(), res.Cat())
		},
	}
}

// composition is X|Y (Y|Z1)..|Zn => (X|Z1)..|Zn for n up to
// MaxCompositionDepth. Crossing composition requires the Z slashes to
// disagree with the functor's, plain composition requires them to agree.
func composition(rule Rule, functor, arg *category.Category) *attempt {
	if functor.Conj() || arg.Conj() || !functor.IsComplex() || !arg.IsComplex() {
		return nil
	}
	xy := functor.Argument()
	var (
		zs []category.Level
		y  *category.Category
	)
	yz := arg
	for depth := 0; depth < MaxCompositionDepth && yz.IsComplex(); depth++ {
		zs = append(zs, category.Level{Cat: yz, Result: yz.Result(), Argument: yz.Argument(), Slash: yz.Slash()})
		if xy.Matches(yz.Result()) {
			y = yz.Result()
			break
		}
		yz = yz.Result()
	}
	if y == nil {
		return nil
	}
	agree := !slices.ContainsFunc(zs, func(z category.Level) bool { return z.Slash != functor.Slash() })
	if agree == rule.crossing() {
		return nil
	}

	remap := composedVars(xy, y, functor.NextVar(), arg.Vars())
	curr := functor.Result()
	for _, z := range slices.Backward(zs) {
		attrs := z.Cat.Attrs()
		attrs.Var = remap[attrs.Var]
		if attrs.HasVar2 {
			attrs.Var2 = remap[attrs.Var2]
		}
		curr = category.NewComplex(curr, z.Slash, category.RemapVarMap(z.Argument, remap), attrs)
	}
	aToB, bToA := category.VarToFeats(xy, y)
	for k, v := range bToA {
		aToB[k] = v
	}
	result := category.MinimiseVars(curr, aToB)

	n := len(zs)
	return &attempt{
		rule:   rule,
		result: result,
		x:      functor.Result(),
		y:      y,
		depth:  n - 1,
		bind: func(f, a, res *scat.SuperCat) bool {
			if !f.BindVars(a, xy, y) {
				return false
			}
			// the result is headed by the argument
			if err := res.UnifyGlobalsAtVar(a, res.Var(), a.Var()); err != nil {
				return false
			}
			levels := res.Deconstruct()
			argRes := a.Cat()
			for i := range n {
				if !res.BindVars(a, levels[i].Argument, argRes.Argument()) {
					return false
				}
				argRes = argRes.Result()
			}
			return res.BindVars(f, levels[n-1].Result, f.Result())
		},
	}
}

// composedVars maps the argument's variables into the functor's numbering:
// those of y follow the positions of the functor's argument xy, the rest are
// renumbered from next
func composedVars(xy, y *category.Category, next int, argVars []int) map[int]int {
	remap := map[int]int{}
	for _, p := range y.Paths() {
		ySub, _ := y.Sub(p)
		xySub, ok := xy.Sub(p)
		if _, seen := remap[ySub.Var()]; ok && !seen {
			remap[ySub.Var()] = xySub.Var()
		}
	}
	for _, v := range argVars {
		if _, ok := remap[v]; !ok {
			remap[v] = next
			next++
		}
	}
	return remap
}

func addConj(left, right *category.Category) *attempt {
	if !left.Is(category.ConjAtom) {
		return nil
	}
	return conjoin(AddConj, right)
}

func commaConj(left, right *category.Category) *attempt {
	if !left.Is(category.CommaAtom) && !left.Is(category.SemicolonAtom) && !left.Is(category.ColonAtom) {
		return nil
	}
	return conjoin(CommaConj, right)
}

// conjoin marks right as the conjunct half of a coordination
func conjoin(rule Rule, right *category.Category) *attempt {
	if right.Conj() {
		return nil
	}
	return &attempt{
		rule:   rule,
		result: right.WithConj(true),
		bind: func(_, r, res *scat.SuperCat) bool {
			return res.BindVars(r, res.Cat(), r.Cat())
		},
	}
}

// doConj is X X[conj] => X. Arguments are shared by both conjuncts, the
// heads of the left conjunct join those of the right.
func doConj(left, right *category.Category) *attempt {
	if !right.Conj() || left.Conj() {
		return nil
	}
	result := right.WithConj(false)
	if !result.ExactEq(left) {
		return nil
	}
	return &attempt{
		rule:   DoConj,
		result: result,
		bind: func(l, r, res *scat.SuperCat) bool {
			if !res.BindVars(r, res.Cat(), r.Cat()) {
				return false
			}
			for _, p := range res.Paths() {
				piece, _ := res.Sub(p)
				leftPiece, ok := l.Sub(p)
				if !ok || piece.Var() == 0 {
					continue
				}
				if err := res.UnifyGlobalsAtVar(l, piece.Var(), leftPiece.Var()); err != nil {
					return false
				}
			}
			for _, t := range l.Tokens(l.Cat()) {
				res.AddConjunct(0, t)
			}
			return true
		},
	}
}

func leftPunct(left, right *category.Category) *attempt {
	if !left.IsPunct() {
		return nil
	}
	return &attempt{
		rule:   LeftPunct,
		result: right,
		bind: func(_, r, res *scat.SuperCat) bool {
			return res.BindVars(r, res.Cat(), r.Cat())
		},
	}
}

func rightPunct(left, right *category.Category) *attempt {
	if !right.IsPunct() {
		return nil
	}
	return &attempt{
		rule:   RightPunct,
		result: left,
		bind: func(l, _, res *scat.SuperCat) bool {
			return res.BindVars(l, res.Cat(), l.Cat())
		},
	}
}

// typeRaise is X => T|(T|X), licensed only when the parent already has
// that shape
func typeRaise(parent, child *category.Category) *attempt {
	if !parent.IsComplex() || !parent.Argument().IsComplex() {
		return nil
	}
	if !parent.Result().ExactEq(parent.Argument().Result()) || !parent.Argument().Argument().ExactEq(child) {
		return nil
	}
	result := category.TypeRaise(parent.Result(), parent.Slash(), child)
	return &attempt{
		rule:   TRaise,
		result: result,
		bind: func(c, _, res *scat.SuperCat) bool {
			return res.BindVars(c, res.Argument().Argument(), c.Cat())
		},
	}
}
