package rules

import (
	"github.com/cottand/rebank/category"
	"github.com/cottand/rebank/scat"
)

// noVar marks a binding that takes nothing from one of the two children
const noVar = -1

// unaryBinding coindexes a parent variable with a child variable
type unaryBinding struct{ parent, child int }

// binaryBinding coindexes a parent variable with a variable of exactly one
// of the children
type binaryBinding struct{ parent, left, right int }

type unaryKey struct{ parent, child string }

type binaryKey struct{ parent, left, right string }

// unaryTypeChanging lists the type-changing rules of the corpus grammar,
// keyed by (parent, child)
var unaryTypeChanging = map[unaryKey][]unaryBinding{
	{`NP`, `N`}:                              {{0, 0}},
	{`NP\NP`, `S[dcl]\NP`}:                   {{0, 0}, {1, 1}},
	{`NP\NP`, `S[pss]\NP`}:                   {{0, 0}, {1, 1}},
	{`NP\NP`, `S[adj]\NP`}:                   {{0, 0}, {1, 1}},
	{`NP\NP`, `S[ng]\NP`}:                    {{0, 0}, {1, 1}},
	{`NP\NP`, `S[to]\NP`}:                    {{0, 0}, {1, 1}},
	{`N\N`, `S[pss]\NP`}:                     {{0, 0}, {1, 1}},
	{`N\N`, `S[ng]\NP`}:                      {{0, 0}, {1, 1}},
	{`N\N`, `S[adj]\NP`}:                     {{0, 0}, {1, 1}},
	{`N\N`, `S[dcl]/NP`}:                     {{0, 0}, {1, 1}},
	{`(S\NP)\(S\NP)`, `S\NP`}:                {{0, 0}, {2, 1}},
	{`(S\NP)\(S\NP)`, `S[ng]\NP`}:            {{0, 0}, {2, 1}},
	{`(S\NP)/(S\NP)`, `S\NP`}:                {{0, 0}, {2, 1}},
	{`NP\NP`, `S[dcl]/NP`}:                   {{0, 0}, {1, 1}},
	{`NP`, `S\NP`}:                           {{0, 0}},
	{`S/S`, `S\NP`}:                          {{0, 0}},
	{`NP\NP`, `S`}:                           {{0, 0}},
	{`NP/PP`, `N/PP`}:                        {{0, 0}, {1, 1}},
	{`(NP/PP)/PP`, `(N/PP)/PP`}:              {{0, 0}, {1, 1}, {2, 2}},
	{`((NP/PP)/PP)/PP`, `((N/PP)/PP)/PP`}:    {{0, 0}, {1, 1}, {2, 2}, {3, 3}},
}

// binaryTypeChanging lists the binary rules of the corpus grammar that no
// combinator accounts for, keyed by (parent, left, right)
var binaryTypeChanging = map[binaryKey][]binaryBinding{
	{`NP\NP`, `,`, `S[pss]\NP`}:               {{0, noVar, 0}, {1, noVar, 1}},
	{`NP\NP`, `,`, `S[ng]\NP`}:                {{0, noVar, 0}, {1, noVar, 1}},
	{`NP\NP`, `,`, `S[adj]\NP`}:               {{0, noVar, 0}, {1, noVar, 1}},
	{`NP\NP`, `,`, `S[dcl]\NP`}:               {{0, noVar, 0}, {1, noVar, 1}},
	{`NP\NP`, `,`, `S[dcl]/NP`}:               {{0, noVar, 0}, {1, noVar, 1}},
	{`S/S`, `S[dcl]/S[dcl]`, `,`}:             {{0, 0, noVar}, {1, 1, noVar}},
	{`(S\NP)\(S\NP)`, `,`, `NP`}:              {{0, noVar, 0}},
	{`(S\NP)/(S\NP)`, `S[dcl]/S[dcl]`, `,`}:   {{0, 0, noVar}, {1, 1, noVar}},
	{`(S\NP)\(S\NP)`, `S[dcl]/S[dcl]`, `,`}:   {{0, 0, noVar}, {1, 1, noVar}},
	{`S/S`, `NP`, `,`}:                        {{0, 0, noVar}},
	{`S\S`, `S[dcl]/S[dcl]`, `,`}:             {{0, 0, noVar}, {1, 1, noVar}},
	{`S/S`, `S[dcl]\S[dcl]`, `,`}:             {{0, 0, noVar}, {1, 1, noVar}},
	{`S[adj]\NP[conj]`, `conj`, `PP`}:         {{0, noVar, 0}},
	{`S[adj]\NP[conj]`, `conj`, `NP`}:         {{0, noVar, 0}},
	{`NP[conj]`, `conj`, `S[adj]\NP`}:         {{0, noVar, 0}},
	{`S/S`, `S[dcl]`, `,`}:                    {{0, 0, noVar}},
	{`(S\NP)/(S\NP)`, `S[dcl]\S[dcl]`, `,`}:   {{0, 0, noVar}, {1, 1, noVar}},
	{`NP\NP`, `S[dcl]/S[dcl]`, `,`}:           {{0, 0, noVar}, {1, 1, noVar}},
	{`S[adj]\NP[conj]`, `conj`, `S[ng]\NP`}:   {{0, noVar, 0}, {1, noVar, 1}},
	{`(S\NP)\(S\NP)`, `S[dcl]\S[dcl]`, `,`}:   {{0, 0, noVar}, {1, 1, noVar}},
	{`S[pss]\NP[conj]`, `conj`, `S[ng]\NP`}:   {{0, noVar, 0}, {1, noVar, 1}},
}

// unaryRule looks the production up in the unary table. The result is the
// parent's category itself; bindings only reach variables both sides have.
func unaryRule(parent, child *category.Category) *attempt {
	bindings, ok := unaryTypeChanging[unaryKey{parent.String(), child.String()}]
	if !ok {
		return nil
	}
	return &attempt{
		rule:   Unary,
		result: parent,
		bind: func(c, _, res *scat.SuperCat) bool {
			for _, b := range bindings {
				if err := res.UnifyGlobalsAtVar(c, b.parent, b.child); err != nil {
					return false
				}
			}
			return true
		},
	}
}

func binaryRule(left, right, parent *category.Category) *attempt {
	bindings, ok := binaryTypeChanging[binaryKey{parent.String(), left.String(), right.String()}]
	if !ok {
		return nil
	}
	return &attempt{
		rule:   Binary,
		result: parent,
		bind: func(l, r, res *scat.SuperCat) bool {
			for _, b := range bindings {
				var err error
				if b.left == noVar {
					err = res.UnifyGlobalsAtVar(r, b.parent, b.right)
				} else {
					err = res.UnifyGlobalsAtVar(l, b.parent, b.left)
				}
				if err != nil {
					return false
				}
			}
			return true
		},
	}
}
