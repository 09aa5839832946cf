package scat

import (
	"slices"
	"strings"

	"github.com/cottand/rebank/category"
)

// SuperCat is a category taking part in a derivation: every local variable
// of the category maps to a slot of tokens in the shared Arena.
//
// The embedded Category is immutable; all mutable state is in the Arena.
type SuperCat struct {
	*category.Category

	arena       *Arena
	table       map[int]slotID
	annotations []annotation
}

// Wrap allocates one fresh token per variable of c. Variable 0 of a conj
// category gets a conjunction token.
func (a *Arena) Wrap(c *category.Category) *SuperCat {
	s := &SuperCat{Category: c, arena: a, table: make(map[int]slotID, len(c.Vars()))}
	for _, v := range c.Vars() {
		s.table[v] = a.newSlot(a.newToken(v == 0 && c.Conj()))
	}
	return s
}

func (s *SuperCat) Arena() *Arena { return s.arena }

// Cat is the wrapped category
func (s *SuperCat) Cat() *category.Category { return s.Category }

func (s *SuperCat) slot(v int) []TokenID {
	id, ok := s.table[v]
	if !ok {
		return nil
	}
	return s.arena.slots[id]
}

// Tokens returns the representatives of the tokens at sub's variable, where
// sub is a piece of s's category
func (s *SuperCat) Tokens(sub *category.Category) []TokenID {
	var roots []TokenID
	for _, t := range s.slot(sub.Var()) {
		if r := s.arena.Find(t); !slices.Contains(roots, r) {
			roots = append(roots, r)
		}
	}
	return roots
}

// BindVars unifies, path by path, the tokens of selfSub (a piece of s) with
// those of otherSub (a piece of other). It reports false and leaves the arena
// untouched when some pair of positions is headed by different words.
func (s *SuperCat) BindVars(other *SuperCat, selfSub, otherSub *category.Category) bool {
	mark := s.arena.Mark()
	for _, p := range selfSub.Paths() {
		selfPiece, _ := selfSub.Sub(p)
		otherPiece, ok := otherSub.Sub(p)
		if !ok {
			continue
		}
		if err := s.UnifyGlobalsAtVar(other, selfPiece.Var(), otherPiece.Var()); err != nil {
			s.arena.Rollback(mark)
			return false
		}
	}
	return true
}

// UnifyGlobalsAtVar merges the tokens of other's variable otherVar into
// s's variable v. Single tokens on both sides are unified; when either side
// already aggregates several tokens, s's slot becomes the union of both.
func (s *SuperCat) UnifyGlobalsAtVar(other *SuperCat, v, otherVar int) error {
	mine, theirs := s.slot(v), other.slot(otherVar)
	if len(mine) == 0 || len(theirs) == 0 {
		return nil
	}
	if len(mine) == 1 && len(theirs) == 1 {
		return s.arena.Unify(mine[0], theirs[0])
	}
	union := slices.Clone(mine)
	for _, t := range theirs {
		if !slices.ContainsFunc(union, func(u TokenID) bool { return s.arena.Find(u) == s.arena.Find(t) }) {
			union = append(union, t)
		}
	}
	s.arena.setSlot(s.table[v], union)
	return nil
}

// AddHead binds w as the lexical head of s's own variable. On conflict
// nothing is changed.
func (s *SuperCat) AddHead(w Word) error {
	mark := s.arena.Mark()
	for _, root := range s.Tokens(s.Category) {
		if err := s.arena.bind(root, w); err != nil {
			s.arena.Rollback(mark)
			return err
		}
	}
	return nil
}

// AddConjunct makes the class of t a conjunct of s's variable v, turning
// v's class into a conjunction first if needed
func (s *SuperCat) AddConjunct(v int, t TokenID) {
	member := s.arena.Find(t)
	for _, tok := range s.slot(v) {
		root := s.arena.makeConj(s.arena.Find(tok))
		if root != member {
			s.arena.addConjunct(root, member)
		}
	}
}

// Heads returns the sorted lexical heads reachable from sub's variable
func (s *SuperCat) Heads(sub *category.Category) []Word {
	return s.arena.Heads(s.slot(sub.Var())...)
}

// HasHead reports whether s's own variable is bound to some word
func (s *SuperCat) HasHead() bool {
	return len(s.Heads(s.Category)) > 0
}

// GlobalAnnotated renders the annotated category with every variable
// replaced by its heads, or by a token name when it has none
func (s *SuperCat) GlobalAnnotated() string {
	return s.RenderVars(func(v int) string {
		if heads := s.arena.Heads(s.slot(v)...); len(heads) > 0 {
			return joinWords(heads)
		}
		names := make([]string, 0, 1)
		for _, t := range s.slot(v) {
			names = append(names, s.arena.name(s.arena.Find(t)))
		}
		return strings.Join(names, ",")
	})
}

// Same reports whether the tokens at selfSub and otherSub are in the
// same classes
func (s *SuperCat) Same(selfSub *category.Category, other *SuperCat, otherSub *category.Category) bool {
	return slices.Equal(sorted(s.Tokens(selfSub)), sorted(other.Tokens(otherSub)))
}

func sorted(ids []TokenID) []TokenID {
	slices.Sort(ids)
	return ids
}
