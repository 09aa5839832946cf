package rules

import (
	"slices"

	"github.com/cottand/rebank/category"
	"github.com/cottand/rebank/ccgerr"
	"github.com/cottand/rebank/internal/log"
	"github.com/cottand/rebank/internal/metrics"
	"github.com/cottand/rebank/scat"
)

var replaceLogger = log.For(log.SectionReplace)

// determiners absorb the new arguments of their parent instead of passing
// them to their result
var determiners = []string{`NP/N`, `NP/(N/PP)`, `PP/NP`}

var (
	forwardFamily  = []Rule{FApply, FComp, FXComp}
	backwardFamily = []Rule{BApply, BComp, BXComp}
)

// Replace changes the parent of p to newParent and rewrites the children so
// that, wherever possible, the same kind of combinator derives newParent from
// them. Children that do not need to change are returned as they were;
// changed ones are fresh SuperCats in the same arena.
//
// The production is then classified again against newParent, without
// binding anything. Rule and Combinator follow the new classification when
// some combinator licenses the new children and are kept otherwise.
func (p *Production) Replace(newParent *scat.SuperCat) (left, right *scat.SuperCat, err error) {
	if err := sameArena(p.Left, newParent, nil); err != nil {
		return nil, nil, err
	}
	rule := p.Rule.String()
	if p.Parent != nil && p.Parent.Annotated() == newParent.Annotated() {
		metrics.Current().Replacements.WithLabelValues(rule, metrics.OutcomeNoop).Inc()
		return p.Left, p.Right, nil
	}
	l, r, err := p.replacement(newParent.Cat())
	if err != nil {
		metrics.Current().Replacements.WithLabelValues(rule, metrics.OutcomeError).Inc()
		return nil, nil, err
	}
	p.Left, p.Right = rewrap(p.Left, l), rewrap(p.Right, r)
	p.Parent, p.Result = newParent, newParent

	outcome := metrics.OutcomeUnlicensed
	if a, _ := classify(p.Left, p.Right, newParent, false); a != nil {
		p.label(a)
		outcome = metrics.OutcomeLicensed
	}
	metrics.Current().Replacements.WithLabelValues(rule, outcome).Inc()
	replaceLogger.Debug("replaced", "from", rule, "outcome", outcome, "production", Slog(p))
	return p.Left, p.Right, nil
}

// rewrap keeps old when its category did not change
func rewrap(old *scat.SuperCat, c *category.Category) *scat.SuperCat {
	if old == nil || c == nil {
		return nil
	}
	if c == old.Cat() {
		return old
	}
	return old.Arena().Wrap(c)
}

// replacement computes the new children for n, by Rule
func (p *Production) replacement(n *category.Category) (left, right *category.Category, err error) {
	l := p.Left.Cat()
	var r *category.Category
	if p.Right != nil {
		r = p.Right.Cat()
	}
	switch p.Rule {
	case FApply:
		f, a := p.applyReplace(l, r, n)
		return f, a, nil
	case BApply:
		f, a := p.applyReplace(r, l, n)
		return a, f, nil
	case FComp, FXComp:
		return p.compReplace(l, r, n, true)
	case BComp, BXComp:
		f, a, err := p.compReplace(r, l, n, false)
		return a, f, err
	case FAdjunct:
		return adjunctFor(n, l.Slash(), true), n, nil
	case BAdjunct:
		return n, adjunctFor(n, r.Slash(), false), nil
	case FTraiseComp:
		return p.traiseCompReplace(l, r, n, true)
	case BTraiseComp:
		f, a, err := p.traiseCompReplace(r, l, n, false)
		return a, f, err
	case AddConj, CommaConj:
		return l, n.WithConj(false), nil
	case DoConj:
		base := n.WithConj(false)
		return base, base.WithConj(true), nil
	case LeftPunct:
		return l, n, nil
	case RightPunct:
		return n, r, nil
	case TRaise:
		if n.IsTypeRaise() {
			return n.Argument().Argument(), nil, nil
		}
		return l, nil, nil
	}
	left, right = markerReplace(l, r, n)
	return left, right, nil
}

// markerReplace handles productions no combinator accounts for. When one
// child is a conjunction or punctuation token the other one takes n.
//
// This looks at the left child first, so a production with markers on both
// sides always rewrites its right child.
func markerReplace(l, r, n *category.Category) (left, right *category.Category) {
	if r == nil {
		return l, nil
	}
	isMarker := func(c *category.Category) bool { return c.Is(category.ConjAtom) || c.IsPunct() }
	switch {
	case isMarker(l):
		return l, n.WithConj(false)
	case isMarker(r):
		return n.WithConj(false), r
	}
	return l, r
}

// applyReplace rewrites X|Y Y for a new X
func (p *Production) applyReplace(fn, arg, n *category.Category) (functor, argument *category.Category) {
	if slices.Contains(determiners, fn.String()) && n.IsComplex() &&
		p.Parent != nil && n.InnerResult().ExactEq(p.Parent.InnerResult()) {
		return fn, category.AddArgs(arg, category.Dollars(n.Deconstruct()))
	}
	return category.ReplaceResult(fn, passFeature(n, fn.Result())), arg
}

// passFeature gives n the feature placeholder of x, if x has one, so that
// feature passing through the functor survives
func passFeature(n, x *category.Category) *category.Category {
	if x.FeatVar() == "" {
		return n
	}
	attrs := n.Attrs()
	attrs.Feature = ""
	attrs.FeatVar = x.FeatVar()
	return n.With(attrs)
}

// compReplace rewrites X|Y (Y|Z).. for a new parent n
func (p *Production) compReplace(fn, arg, n *category.Category, functorLeft bool) (functor, argument *category.Category, err error) {
	if !n.IsComplex() {
		// nothing to compose: the functor takes the whole argument
		return category.AddArg(n, fn.Slash(), arg, fn.Attrs()), arg, nil
	}
	if fn.IsAdjunct() {
		return adjunctFor(n, fn.Slash(), functorLeft), n, nil
	}
	resY := fn.Argument()
	argY := sharedResult(resY, arg)
	if argY == nil {
		return nil, nil, ccgerr.New(ccgerr.NewMissingSharedCategory{
			Rule:     p.Rule.String(),
			Functor:  fn.String(),
			Argument: arg.String(),
		})
	}

	var (
		dollars []category.Dollar
		res     *category.Category
		stopped bool
	)
	for _, l := range n.Deconstruct() {
		dollars = append(dollars, category.Dollar{Argument: l.Argument, Slash: l.Slash, Attrs: l.Cat.Attrs()})
		res = l.Result
		if l.Result.IsAdjunct() {
			stopped = true
			break
		}
	}
	// only determiners take more than the outermost argument of n
	if !stopped && !fn.Is(`NP/N`) {
		res = n.Result()
		dollars = dollars[:1]
	}
	if x := fn.Result(); x.FeatVar() != "" {
		attrs := res.Attrs()
		attrs.Feature = ""
		attrs.FeatVar = x.FeatVar()
		attrs.Var = x.Var()
		res = res.With(attrs)
	}
	return category.AddArg(res, fn.Slash(), resY, fn.Attrs()), category.AddArgs(argY, dollars), nil
}

// sharedResult finds the result of arg, or arg itself, that the functor's
// argument y matches
func sharedResult(y, arg *category.Category) *category.Category {
	for _, l := range arg.Deconstruct() {
		if y.Matches(l.Result) {
			return l.Result
		}
	}
	if y.Matches(arg) {
		return arg
	}
	return nil
}

// adjunctFor builds the modifier M with which a combinator of the functor's
// direction derives n from M and n.
//
// The modifier is built on the innermost result of n for which that works,
// never on the S of S\NP, and on n itself failing that.
func adjunctFor(n *category.Category, slash category.Slash, functorLeft bool) *category.Category {
	if n.IsAdjunct() {
		return n
	}
	for _, l := range slices.Backward(n.Deconstruct()) {
		if isVerbPhraseS(l) {
			continue
		}
		adj := category.MakeAdjunct(l.Result, slash)
		if derives(adj, n, n, functorLeft) {
			return adj
		}
	}
	return category.MakeAdjunct(n, slash)
}

func isVerbPhraseS(l category.Level) bool {
	return !l.Result.IsComplex() && l.Result.Atom() == "S" &&
		!l.Argument.IsComplex() && l.Argument.Atom() == "NP" &&
		l.Slash == category.Backward
}

// derives tells whether some application or composition in the functor's
// direction combines functor and arg into want
func derives(functor, arg, want *category.Category, functorLeft bool) bool {
	family := forwardFamily
	if !functorLeft {
		family = backwardFamily
	}
	for _, r := range family {
		if licensedBy(r, functor, arg, want, functorLeft) {
			return true
		}
	}
	return false
}

func licensedBy(r Rule, functor, arg, want *category.Category, functorLeft bool) bool {
	fn := combinatorFor(r)
	if fn == nil {
		return false
	}
	var a *attempt
	if functorLeft {
		a = fn(functor, arg)
	} else {
		a = fn(arg, functor)
	}
	return a != nil && a.result.ExactEq(want)
}

// traiseCompReplace rewrites T|(T|R) (T|R)|$ for a new parent n = T'|$'.
//
// n is split into a target T' and trailing arguments $'. Of the possible
// splits, the one taken is the first under which Combinator still derives n:
// as many trailing arguments as can be found before an adjunct result,
// except that a trailing backward argument is folded back into T' when R is
// a forward argument, then successively fewer.
func (p *Production) traiseCompReplace(fn, arg, n *category.Category, functorLeft bool) (functor, argument *category.Category, err error) {
	if arg.IsTypeRaise() && !n.IsTypeRaise() {
		return nil, nil, ccgerr.New(ccgerr.NewArgumentCluster{Argument: arg.String(), New: n.String()})
	}
	r := fn.Argument().Argument()
	rSlash := fn.Argument().Slash()

	levels := n.Deconstruct()
	most := len(levels)
	for i, l := range levels {
		if l.Result.IsAdjunct() {
			most = i + 1
			break
		}
	}
	split := func(k int) (functor, argument *category.Category) {
		t := n
		if k > 0 {
			t = levels[k-1].Result
		}
		dollars := append(category.Dollars(levels[:k]), category.Dollar{Argument: r, Slash: rSlash})
		return category.TypeRaise(t, fn.Slash(), r), category.AddArgs(t, dollars)
	}

	preferred := most
	if most > 0 && levels[most-1].Slash == category.Backward && rSlash == category.Forward {
		preferred = most - 1
	}
	candidates := []int{preferred}
	for k := most; k >= 0; k-- {
		if k != preferred {
			candidates = append(candidates, k)
		}
	}
	for _, k := range candidates {
		f, a := split(k)
		if licensedBy(p.Combinator, f, a, n, functorLeft) {
			return f, a, nil
		}
	}
	replaceLogger.Debug("no split keeps the combinator", "rule", p.Rule, "combinator", p.Combinator, "new", n.Annotated())
	functor, argument = split(preferred)
	return functor, argument, nil
}
