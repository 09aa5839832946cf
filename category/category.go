// Package category implements immutable CCG categories: atoms, features,
// directional slashes and the local coindexation variables that the scat
// package later resolves into tokens.
//
// A *Category is never modified after construction. Variants (a different
// feature, a hat, renumbered variables) are always new values built through
// NewAtomic, NewComplex or With.
package category

import (
	"slices"
	"strings"
)

type Slash byte

const (
	Forward  Slash = '/'
	Backward Slash = '\\'
)

func (s Slash) String() string { return string(rune(s)) }

// Flip returns the opposite direction
func (s Slash) Flip() Slash {
	if s == Forward {
		return Backward
	}
	return Forward
}

// Path addresses a sub-category: each '0' steps into the result, each '1'
// into the argument. Sorting paths lexicographically yields pre-order.
type Path string

const Root Path = ""

func (p Path) Result() Path   { return p + "0" }
func (p Path) Argument() Path { return p + "1" }

// OnResultChain reports whether p only ever steps into results
func (p Path) OnResultChain() bool { return !strings.ContainsRune(string(p), '1') }

// Attrs are the per-node attributes of a category that are not structure
type Attrs struct {
	Var      int
	Var2     int
	HasVar2  bool
	Asterisk bool
	// Feature is a resolved feature such as "[dcl]"
	Feature string
	// FeatVar is an unresolved feature placeholder such as "[X]"
	FeatVar string
	Conj    bool
	Hat     *Category
	ArgIdx  string
}

type Category struct {
	atom     string
	result   *Category
	argument *Category
	slash    Slash
	attrs    Attrs

	cats      map[Path]*Category
	paths     []Path
	catsByVar map[int][]*Category
	varOrder  []int
	nextVar   int

	str       string
	annotated string
}

// NewAtomic builds an atomic category such as NP or S[dcl]
func NewAtomic(atom string, attrs Attrs) *Category {
	c := &Category{atom: atom, attrs: attrs}
	c.init()
	return c
}

// NewComplex builds result/argument or result\argument
func NewComplex(result *Category, slash Slash, argument *Category, attrs Attrs) *Category {
	c := &Category{result: result, argument: argument, slash: slash, attrs: attrs}
	c.init()
	return c
}

// With returns a category with c's structure and the given attributes
func (c *Category) With(attrs Attrs) *Category {
	if c.IsComplex() {
		return NewComplex(c.result, c.slash, c.argument, attrs)
	}
	return NewAtomic(c.atom, attrs)
}

// WithVar returns c with its own variable set to v, leaving sub-categories alone
func (c *Category) WithVar(v int) *Category {
	attrs := c.attrs
	attrs.Var = v
	return c.With(attrs)
}

// WithConj returns c with its conj flag set to conj
func (c *Category) WithConj(conj bool) *Category {
	if c.attrs.Conj == conj {
		return c
	}
	attrs := c.attrs
	attrs.Conj = conj
	return c.With(attrs)
}

func (c *Category) init() {
	c.cats = map[Path]*Category{Root: c}
	c.catsByVar = map[int][]*Category{}
	c.addVar(c.attrs.Var, c)
	if c.attrs.HasVar2 {
		c.addVar(c.attrs.Var2, c)
	}
	if c.IsComplex() {
		for _, child := range []struct {
			prefix string
			cat    *Category
		}{{"0", c.result}, {"1", c.argument}} {
			for _, p := range child.cat.paths {
				c.cats[Path(child.prefix)+p] = child.cat.cats[p]
			}
			for _, v := range child.cat.varOrder {
				for _, sub := range child.cat.catsByVar[v] {
					c.addVar(v, sub)
				}
			}
		}
	}
	c.paths = make([]Path, 0, len(c.cats))
	for p := range c.cats {
		c.paths = append(c.paths, p)
	}
	slices.Sort(c.paths)
	c.nextVar = slices.Max(c.varOrder) + 1
	c.str = c.render(bare)
	c.annotated = c.render(annotated)
}

func (c *Category) addVar(v int, sub *Category) {
	if _, ok := c.catsByVar[v]; !ok {
		c.varOrder = append(c.varOrder, v)
	}
	c.catsByVar[v] = append(c.catsByVar[v], sub)
}

func (c *Category) IsComplex() bool { return c.result != nil }

// Atom is the base symbol of an atomic category, and "" for complex ones
func (c *Category) Atom() string        { return c.atom }
func (c *Category) Result() *Category   { return c.result }
func (c *Category) Argument() *Category { return c.argument }
func (c *Category) Slash() Slash        { return c.slash }
func (c *Category) Attrs() Attrs        { return c.attrs }
func (c *Category) Var() int            { return c.attrs.Var }
func (c *Category) Feature() string     { return c.attrs.Feature }
func (c *Category) FeatVar() string     { return c.attrs.FeatVar }
func (c *Category) Conj() bool          { return c.attrs.Conj }
func (c *Category) Hat() *Category      { return c.attrs.Hat }
func (c *Category) ArgIdx() string      { return c.attrs.ArgIdx }

// Var2 returns the secondary variable, if any
func (c *Category) Var2() (int, bool) { return c.attrs.Var2, c.attrs.HasVar2 }

// Sub returns the sub-category at p
func (c *Category) Sub(p Path) (*Category, bool) {
	sub, ok := c.cats[p]
	return sub, ok
}

// Paths returns every path of c in pre-order, starting with Root
func (c *Category) Paths() []Path { return slices.Clone(c.paths) }

// Vars returns the variables of c in the order they are first seen
func (c *Category) Vars() []int { return slices.Clone(c.varOrder) }

// ByVar returns the sub-categories whose variable is v
func (c *Category) ByVar(v int) []*Category { return slices.Clone(c.catsByVar[v]) }

// HasVar reports whether any sub-category of c uses v
func (c *Category) HasVar(v int) bool {
	_, ok := c.catsByVar[v]
	return ok
}

// NextVar is one above the highest variable used in c
func (c *Category) NextVar() int { return c.nextVar }

// InnerResult follows results until reaching an atomic category
func (c *Category) InnerResult() *Category {
	inner := c
	for inner.IsComplex() {
		inner = inner.result
	}
	return inner
}

// Level is one step of a category's result chain
type Level struct {
	Cat      *Category
	Result   *Category
	Argument *Category
	Slash    Slash
}

// Deconstruct lists the levels of c's result chain, outermost first
func (c *Category) Deconstruct() []Level {
	var levels []Level
	for curr := c; curr.IsComplex(); curr = curr.result {
		levels = append(levels, Level{Cat: curr, Result: curr.result, Argument: curr.argument, Slash: curr.slash})
	}
	return levels
}

func (c *Category) String() string    { return c.str }
func (c *Category) Annotated() string { return c.annotated }

// ExactEq compares the bare string forms
func (c *Category) ExactEq(other *Category) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.str == other.str
}

// Matches reports whether candidate fits the pattern c, as used when a
// functor's argument is checked against the category it combines with.
//
// Only the structure, atoms, features and hats are compared. A feature or
// hat that is unset on c matches anything on candidate; one that is set on
// c requires the same on candidate. Variables are ignored.
func (c *Category) Matches(candidate *Category) bool {
	if c == candidate {
		return true
	}
	if c == nil || candidate == nil {
		return false
	}
	if c.IsComplex() != candidate.IsComplex() {
		return false
	}
	if !c.nodeMatches(candidate) {
		return false
	}
	if c.slash != candidate.slash {
		return false
	}
	if len(c.cats) != len(candidate.cats) {
		return false
	}
	for _, p := range c.paths {
		sub := c.cats[p]
		other, ok := candidate.cats[p]
		if !ok {
			return false
		}
		if sub.IsComplex() {
			if other.IsComplex() && sub.slash == other.slash {
				continue
			}
			return false
		}
		if sub.atom != other.atom || !sub.nodeMatches(other) {
			return false
		}
	}
	return true
}

func (c *Category) nodeMatches(candidate *Category) bool {
	if c.attrs.Feature != "" && c.attrs.Feature != candidate.attrs.Feature {
		return false
	}
	if c.attrs.Hat != nil && !c.attrs.Hat.Matches(candidate.attrs.Hat) {
		return false
	}
	return true
}
