// Package scat holds the coindexation substrate: categories wrapped with
// union-find tokens, one token class per coindexed position of a derivation.
package scat

import (
	"fmt"
	"sort"

	"github.com/cottand/rebank/ccgerr"
	"github.com/hashicorp/go-set/v3"
	xset "github.com/xtgo/set"
)

// TokenID addresses a token inside its Arena
type TokenID int

type token struct {
	parent TokenID
	word   *Word
	conj   bool
	// conjuncts are the members of a conjunction token. The set is never
	// modified in place once stored, so trail entries can share it.
	conjuncts *set.Set[TokenID]
}

type slotID int

// undo restores either one token or one slot
type undo struct {
	isSlot bool
	token  TokenID
	old    token
	slot   slotID
	tokens []TokenID
}

// Arena owns the tokens and slots of every SuperCat of one derivation.
// It is not safe for concurrent use.
//
// Every mutation is recorded on a trail, so that Rollback can undo all
// the unifications made since a Mark.
type Arena struct {
	tokens []token
	slots  [][]TokenID
	trail  []undo
}

func NewArena() *Arena {
	return &Arena{}
}

// Mark is a point on the trail to roll back to
type Mark int

func (a *Arena) Mark() Mark {
	return Mark(len(a.trail))
}

// Rollback undoes every change to existing tokens and slots made since m.
// Tokens and slots allocated since m are left in place, unreferenced.
func (a *Arena) Rollback(m Mark) {
	for i := len(a.trail) - 1; i >= int(m); i-- {
		u := a.trail[i]
		if u.isSlot {
			a.slots[u.slot] = u.tokens
		} else {
			a.tokens[u.token] = u.old
		}
	}
	a.trail = a.trail[:m]
}

func (a *Arena) newToken(conj bool) TokenID {
	id := TokenID(len(a.tokens))
	t := token{parent: id, conj: conj}
	if conj {
		t.conjuncts = set.New[TokenID](0)
	}
	a.tokens = append(a.tokens, t)
	return id
}

func (a *Arena) newSlot(tokens ...TokenID) slotID {
	id := slotID(len(a.slots))
	a.slots = append(a.slots, tokens)
	return id
}

func (a *Arena) setToken(id TokenID, t token) {
	a.trail = append(a.trail, undo{token: id, old: a.tokens[id]})
	a.tokens[id] = t
}

func (a *Arena) setSlot(id slotID, tokens []TokenID) {
	a.trail = append(a.trail, undo{isSlot: true, slot: id, tokens: a.slots[id]})
	a.slots[id] = tokens
}

// Find resolves id to the representative of its class
func (a *Arena) Find(id TokenID) TokenID {
	for a.tokens[id].parent != id {
		id = a.tokens[id].parent
	}
	return id
}

// Unify merges the classes of x and y. Two plain classes bound to different
// words cannot be merged: Unify then returns a HeadConflict and changes
// nothing.
//
// A conjunction class always stays the representative. A worded plain class
// joining it becomes one of its conjuncts; two conjunction classes pool
// their conjuncts.
func (a *Arena) Unify(x, y TokenID) error {
	rx, ry := a.Find(x), a.Find(y)
	if rx == ry {
		return nil
	}
	tx, ty := a.tokens[rx], a.tokens[ry]
	switch {
	case tx.conj && ty.conj:
		merged := tx.conjuncts.Copy()
		merged.InsertSet(ty.conjuncts)
		ty.conjuncts = merged
		tx.parent = ry
		a.setToken(rx, tx)
		a.setToken(ry, ty)
	case tx.conj:
		a.join(ry, rx)
	case ty.conj:
		a.join(rx, ry)
	default:
		if tx.word != nil && ty.word != nil && *tx.word != *ty.word {
			return ccgerr.New(ccgerr.NewHeadConflict{First: tx.word.Text, Second: ty.word.Text})
		}
		if tx.word == nil {
			tx.word = ty.word
		}
		ty.parent = rx
		a.setToken(ry, ty)
		a.setToken(rx, tx)
	}
	return nil
}

// join makes the plain root p part of the conjunction root c
func (a *Arena) join(p, c TokenID) {
	tp := a.tokens[p]
	if tp.word != nil {
		a.addConjunct(c, p)
	}
	tp.parent = c
	a.setToken(p, tp)
}

func (a *Arena) addConjunct(c, member TokenID) {
	tc := a.tokens[c]
	if tc.conjuncts.Contains(member) {
		return
	}
	members := tc.conjuncts.Copy()
	members.Insert(member)
	tc.conjuncts = members
	a.setToken(c, tc)
}

// makeConj turns the class of root into a conjunction class with root's
// old self as its first conjunct, and returns the new representative
func (a *Arena) makeConj(root TokenID) TokenID {
	if a.tokens[root].conj {
		return root
	}
	c := a.newToken(true)
	a.addConjunct(c, root)
	t := a.tokens[root]
	t.parent = c
	a.setToken(root, t)
	return c
}

// bind sets the word of a plain root, or adds a worded conjunct to a
// conjunction root
func (a *Arena) bind(root TokenID, w Word) error {
	t := a.tokens[root]
	switch {
	case t.conj:
		member := a.newToken(false)
		a.tokens[member].word = &w
		a.addConjunct(root, member)
	case t.word == nil:
		t.word = &w
		a.setToken(root, t)
	case *t.word != w:
		return ccgerr.New(ccgerr.NewHeadConflict{First: t.word.Text, Second: w.Text})
	}
	return nil
}

// heads collects the words reachable from root, expanding conjunctions
func (a *Arena) heads(root TokenID, into []Word) []Word {
	t := a.tokens[root]
	if !t.conj {
		if t.word != nil {
			into = append(into, *t.word)
		}
		return into
	}
	for member := range t.conjuncts.Items() {
		if m := a.tokens[member]; m.conj {
			into = a.heads(member, into)
		} else if m.word != nil {
			into = append(into, *m.word)
		} else if r := a.Find(member); r != root {
			into = a.heads(r, into)
		}
	}
	return into
}

// Heads returns the sorted, deduplicated words of the classes of ids
func (a *Arena) Heads(ids ...TokenID) []Word {
	var ws words
	for _, id := range ids {
		ws = a.heads(a.Find(id), ws)
	}
	sort.Sort(ws)
	return ws[:xset.Uniq(ws)]
}

// name renders an unheaded class
func (a *Arena) name(root TokenID) string {
	return fmt.Sprintf("v%d", root)
}
