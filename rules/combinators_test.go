package rules

import (
	"testing"

	"github.com/cottand/rebank/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinators(t *testing.T) {
	testCases := []struct {
		name        string
		fn          combinator
		left, right string
		// want is the annotated result, "" when the combinator does not apply
		want string
	}{
		{
			name: "application passes the argument feature", fn: fapply,
			left: `S/S`, right: `S[dcl]`, want: `S[dcl]{_}`,
		},
		{
			name: "application passes a feature through an adverb", fn: fapply,
			left: `(S\NP)/(S\NP)`, right: `(S[pss]{_}\NP{Y}){_}`, want: `(S[pss]{_}\NP{Y}){_}`,
		},
		{
			name: "backward application fills a feature variable", fn: bapply,
			left: `S[ng]{_}`, right: `(S[X]{Y}\S[X]{Y}){_}`, want: `S[ng]{_}`,
		},
		{
			name: "composition fills a feature variable", fn: fcomp,
			left: `(S[X]{Y}/S[X]{Y}){_}`, right: `(S[dcl]{_}/S[dcl]{Y}){_}`, want: `(S[dcl]{_}/S[dcl]{Y}){_}`,
		},
		{
			name: "adverb composes into a transitive verb", fn: fcomp,
			left:  `((S[X]{Y}\NP{Z}){Y}/(S[X]{Y}\NP{Z}){Y}){_}`,
			right: `((S[dcl]{_}\NP{Y}){_}/NP{Z}){_}`,
			want:  `((S[dcl]{_}\NP{Y}){_}/NP{Z}){_}`,
		},
		{
			name: "backward composition fills a feature variable", fn: bcomp,
			left: `(S[dcl]{_}\NP{Y}){_}`, right: `(S[X]{Y}\S[X]{Y}){_}`, want: `(S[dcl]{_}\NP{Y}){_}`,
		},
		{
			name: "backward composition refuses a crossing slash", fn: bcomp,
			left: `(S[dcl]\NP)/NP`, right: `S\S`,
		},
		{
			name: "generalised backward crossed composition", fn: bxcomp,
			left: `(S[dcl]\NP)/NP`, right: `S\S`, want: `((S[dcl]{_}\NP{Y}){_}/NP{Z}){_}`,
		},
		{
			name: "forward composition refuses a crossing slash", fn: fcomp,
			left: `S/S`, right: `(S[dcl]\NP)/NP`,
		},
		{
			name: "generalised forward crossed composition", fn: fxcomp,
			left: `S/S`, right: `(S[dcl]\NP)/NP`, want: `((S[dcl]{_}\NP{Y}){_}/NP{Z}){_}`,
		},
		{
			name: "backward crossed composition renumbers the functor", fn: bxcomp,
			left: `((NP{_}/PP{Y}){_}/S[em]{Z}){_}`, right: `S[dcl]\NP`,
			want: `((S[dcl]{Y}/PP{Z}){_}/S[em]{W}){_}`,
		},
		{
			name: "composition at the depth bound", fn: fcomp,
			left: `PP/S`, right: `((S/A)/B)/C`, want: `(((PP{_}/A{_}){_}/B{_}){_}/C{_}){_}`,
		},
		{
			name: "composition past the depth bound", fn: fcomp,
			left: `PP/S`, right: `(((S/A)/B)/C)/D`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			left, err := lexicon.Default().Parse(tc.left)
			require.NoError(t, err)
			right, err := lexicon.Default().Parse(tc.right)
			require.NoError(t, err)

			a := tc.fn(left, right)
			if tc.want == "" {
				assert.Nil(t, a)
				return
			}
			require.NotNil(t, a)
			assert.Equal(t, tc.want, a.result.Annotated())
		})
	}
}
