package rules

import (
	"fmt"

	"github.com/cottand/rebank/category"
	"github.com/cottand/rebank/ccgerr"
	"github.com/cottand/rebank/internal/log"
	"github.com/cottand/rebank/internal/metrics"
	"github.com/cottand/rebank/scat"
)

var logger = log.For(log.SectionRules)

// Production is a parent category over one or two children, together with
// the combinator that licenses it.
//
// Rule is the label the replacement strategies dispatch on. It is either
// Combinator itself or, for adjuncts and type-raised functors, one of
// FAdjunct, BAdjunct, FTraiseComp and BTraiseComp refining it.
type Production struct {
	Left   *scat.SuperCat
	Right  *scat.SuperCat // nil for unary productions
	Parent *scat.SuperCat

	// Result is the category computed by Combinator, with its variables
	// bound to the children's
	Result *scat.SuperCat

	Rule Rule
	// Combinator is the base combinator currently licensing the children
	Combinator Rule
	// Origin is the base combinator found when the production was built
	Origin Rule

	// X and Y are the functor's result and the category shared by functor
	// and argument, when Combinator is an application or a composition
	X, Y  *category.Category
	Depth int
}

// New classifies a production and commits the bindings of the first
// combinator, in priority order, whose result equals parent.
//
// right is nil for unary productions, which need a parent. When parent is
// nil for a binary production the first combinator that applies at all is
// taken, and its result becomes the parent.
func New(left, right, parent *scat.SuperCat) (*Production, error) {
	if err := sameArena(left, right, parent); err != nil {
		return nil, err
	}
	if right == nil && parent == nil {
		return nil, ccgerr.New(ccgerr.NewMissingParent{Child: left.String()})
	}
	p := &Production{Left: left, Right: right, Parent: parent}
	a, res := classify(left, right, parent, true)
	p.label(a)
	p.Result = res
	if p.Parent == nil {
		p.Parent = res
	}
	p.Origin = p.Combinator
	metrics.Current().Productions.WithLabelValues(p.Rule.String()).Inc()
	logger.Debug("classified", "production", Slog(p))
	return p, nil
}

func sameArena(left, right, parent *scat.SuperCat) error {
	for _, other := range []*scat.SuperCat{right, parent} {
		if other != nil && other.Arena() != left.Arena() {
			return ccgerr.New(ccgerr.NewArenaMismatch{Left: left.String(), Right: other.String()})
		}
	}
	return nil
}

// label records the outcome of a classification
func (p *Production) label(a *attempt) {
	if a == nil {
		p.Rule, p.Combinator = Invalid, Invalid
		p.X, p.Y, p.Depth = nil, nil, 0
		return
	}
	p.Combinator = a.rule
	p.Rule = relabel(a, p.Left, p.Right)
	p.X, p.Y, p.Depth = a.x, a.y, a.depth
}

// classify finds the combinator licensing left and right under parent.
// When commit is false the arena is left as it was.
func classify(left, right, parent *scat.SuperCat, commit bool) (*attempt, *scat.SuperCat) {
	if right == nil {
		for _, fn := range []func(parent, child *category.Category) *attempt{typeRaise, unaryRule} {
			if a := fn(parent.Cat(), left.Cat()); a != nil {
				if res, ok := try(a, left, nil, parent, commit); ok {
					return a, res
				}
			}
		}
		return nil, nil
	}
	for _, c := range binaryCombinators {
		a := c.fn(left.Cat(), right.Cat())
		if a == nil {
			continue
		}
		if res, ok := try(a, left, right, parent, commit); ok {
			return a, res
		}
	}
	if parent != nil {
		if a := binaryRule(left.Cat(), right.Cat(), parent.Cat()); a != nil {
			if res, ok := try(a, left, right, parent, commit); ok {
				return a, res
			}
		}
	}
	return nil, nil
}

// try checks a's result against parent and binds it to the children and to
// parent. A head conflict undoes everything and counts as no match.
func try(a *attempt, left, right, parent *scat.SuperCat, commit bool) (*scat.SuperCat, bool) {
	if parent != nil && !parent.ExactEq(a.result) {
		return nil, false
	}
	arena := left.Arena()
	mark := arena.Mark()
	res := arena.Wrap(a.result)
	ok := a.bind(left, right, res)
	if ok && parent != nil {
		ok = parent.BindVars(res, parent.Cat(), res.Cat())
	}
	if !ok || !commit {
		arena.Rollback(mark)
	}
	if !ok {
		metrics.Current().HeadConflicts.Inc()
		logger.Debug("head conflict", "rule", a.rule, "result", a.result.Annotated())
		return nil, false
	}
	return res, true
}

// relabel refines application and composition into the adjunct and
// type-raise labels their replacement strategies need
func relabel(a *attempt, left, right *scat.SuperCat) Rule {
	base := a.rule
	if right == nil || !(base.IsApplication() || base.IsComposition()) {
		return base
	}
	switch {
	case base.Forward() && left.IsAdjunct() && a.y != nil && a.y.Var() == right.Var():
		return FAdjunct
	case base.Backward() && right.IsAdjunct() && a.y != nil && a.y.Var() == left.Var():
		return BAdjunct
	case base.Forward() && left.IsTypeRaise():
		return FTraiseComp
	case base.Backward() && right.IsTypeRaise():
		return BTraiseComp
	}
	return base
}

// rerun computes Combinator over the current children without binding
func (p *Production) rerun() *attempt {
	switch p.Combinator {
	case TRaise:
		return typeRaise(p.Parent.Cat(), p.Left.Cat())
	case Unary:
		return unaryRule(p.Parent.Cat(), p.Left.Cat())
	case Binary:
		return binaryRule(p.Left.Cat(), p.Right.Cat(), p.Parent.Cat())
	}
	if fn := combinatorFor(p.Combinator); fn != nil && p.Right != nil {
		return fn(p.Left.Cat(), p.Right.Cat())
	}
	return nil
}

// Verify checks that Combinator still derives Parent from the children,
// bindings included. Invalid productions claim nothing and always verify.
func (p *Production) Verify() error {
	if p.Combinator == Invalid {
		return nil
	}
	a := p.rerun()
	if a == nil || p.Parent == nil {
		return ccgerr.New(ccgerr.NewUnlicensed{Rule: p.Combinator.String(), Production: p.String()})
	}
	if _, ok := try(a, p.Left, p.Right, p.Parent, false); !ok {
		return ccgerr.New(ccgerr.NewUnlicensed{Rule: p.Combinator.String(), Production: p.String()})
	}
	return nil
}

func (p *Production) String() string {
	parent := "<nil>"
	if p.Parent != nil {
		parent = p.Parent.String()
	}
	if p.Right == nil {
		return fmt.Sprintf("%s --> %s (%s)", p.Left, parent, p.Rule)
	}
	return fmt.Sprintf("%s %s --> %s (%s)", p.Left, p.Right, parent, p.Rule)
}
