package scat

import (
	"cmp"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// Dependency is a labelled head-to-child relation between two words
type Dependency struct {
	Head  Word
	Label string
	Child Word
}

func compareDependencies(a, b Dependency) int {
	return cmp.Or(
		CompareWords(a.Head, b.Head),
		strings.Compare(a.Label, b.Label),
		CompareWords(a.Child, b.Child),
	)
}

type annotation struct {
	head  int
	label string
	child int
}

// Annotate records that the heads at variable head take those at variable
// child as dependents with label
func (s *SuperCat) Annotate(head int, label string, child int) {
	s.annotations = append(s.annotations, annotation{head: head, label: label, child: child})
}

// Dependencies lists, sorted and without repeats, the relations recorded
// with Annotate together with those implied by argument markers: every
// position marked <n> is a dependent of s's own heads with label n.
func (s *SuperCat) Dependencies() []Dependency {
	deps := set.NewTreeSet[Dependency](compareDependencies)
	add := func(headVar int, label string, childVar int) {
		for _, h := range s.arena.Heads(s.slot(headVar)...) {
			for _, c := range s.arena.Heads(s.slot(childVar)...) {
				if h != c {
					deps.Insert(Dependency{Head: h, Label: label, Child: c})
				}
			}
		}
	}
	for _, a := range s.annotations {
		add(a.head, a.label, a.child)
	}
	for _, p := range s.Paths() {
		if sub, _ := s.Sub(p); sub.ArgIdx() != "" {
			add(s.Var(), sub.ArgIdx(), sub.Var())
		}
	}
	return deps.Slice()
}
