package rules

import (
	"testing"

	"github.com/cottand/rebank/ccgerr"
	"github.com/cottand/rebank/internal/metrics"
	"github.com/cottand/rebank/lexicon"
	"github.com/cottand/rebank/scat"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t     *testing.T
	arena *scat.Arena
}

func newFixture(t *testing.T) fixture {
	return fixture{t: t, arena: scat.NewArena()}
}

// cat wraps s, resolved through the default lexicon; "" gives nil
func (f fixture) cat(s string) *scat.SuperCat {
	f.t.Helper()
	if s == "" {
		return nil
	}
	c, err := lexicon.Default().Parse(s)
	require.NoError(f.t, err)
	return f.arena.Wrap(c)
}

func (f fixture) production(left, right, parent string) *Production {
	f.t.Helper()
	p, err := New(f.cat(left), f.cat(right), f.cat(parent))
	require.NoError(f.t, err)
	return p
}

func useMetrics(t *testing.T) *metrics.Metrics {
	previous := metrics.Current()
	t.Cleanup(func() { metrics.Use(previous) })
	m := metrics.New(prometheus.NewRegistry())
	metrics.Use(m)
	return m
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name                string
		left, right, parent string
		rule, combinator    Rule
		result              string
	}{
		{
			name: "forward application", left: `NP/N`, right: `N`,
			rule: FApply, combinator: FApply, result: `NP{_}`,
		},
		{
			name: "application keeps a minimal result", left: `(S[dcl]\NP)/NP`, right: `NP`,
			rule: FApply, combinator: FApply, result: `(S[dcl]{_}\NP{Y}<1>){_}`,
		},
		{
			name: "backward application", left: `NP`, right: `S[dcl]\NP`,
			rule: BApply, combinator: BApply, result: `S[dcl]{_}`,
		},
		{
			name: "forward adjunct", left: `S/S`, right: `S[dcl]`,
			rule: FAdjunct, combinator: FApply, result: `S[dcl]{_}`,
		},
		{
			name: "backward composition", left: `NP\NP`, right: `S[dcl]\NP`,
			rule: BComp, combinator: BComp, result: `(S[dcl]{Y}\NP{Z}){_}`,
		},
		{
			name: "type-raised subject composes", left: `S/(S\NP)`, right: `(S[dcl]\NP)/NP`,
			rule: FTraiseComp, combinator: FComp, result: `(S[dcl]{_}/NP{Y}){_}`,
		},
		{
			name: "generalised composition", left: `(PP{_}/S[em]{Y}){_}`, right: `((S[em]{_}/NP{Y}){_}/Q{Z}){_}`,
			rule: FComp, combinator: FComp, result: `((PP{Y}/NP{Z}){_}/Q{W}){_}`,
		},
		{
			name: "crossed adjunct", left: `((S[dcl]{_}\NP{Y}){_}/NP{Z}){_}`, right: `(S\NP)\(S\NP)`,
			rule: BAdjunct, combinator: BXComp, result: `((S[dcl]{_}\NP{Y}){_}/NP{Z}){_}`,
		},
		{
			name: "parent annotation is kept", left: `((S[dcl]\NP)/(S[to]\NP))/NP`, right: `NP`, parent: `(S[dcl]\NP)/(S[to]\NP)`,
			rule: FApply, combinator: FApply, result: `((S[dcl]{_}\NP[Y]{Y}<1>){_}/(S[to]{Z}<2>\NP[Y]{W*}){Z}){_}`,
		},
		{
			name: "composition at the depth bound", left: `PP/S`, right: `((S/A)/B)/C`,
			rule: FComp, combinator: FComp, result: `(((PP{_}/A{_}){_}/B{_}){_}/C{_}){_}`,
		},
		{
			name: "conjunction", left: `conj`, right: `NP`,
			rule: AddConj, combinator: AddConj, result: `NP{_}[conj]`,
		},
		{
			name: "coordination", left: `NP`, right: `NP[conj]`,
			rule: DoConj, combinator: DoConj, result: `NP{_}`,
		},
		{
			name: "comma without a parent conjoins", left: `,`, right: `NP`,
			rule: CommaConj, combinator: CommaConj, result: `NP{_}[conj]`,
		},
		{
			name: "comma with a parent is punctuation", left: `,`, right: `NP`, parent: `NP`,
			rule: LeftPunct, combinator: LeftPunct, result: `NP{_}`,
		},
		{
			name: "right punctuation", left: `NP`, right: `.`,
			rule: RightPunct, combinator: RightPunct, result: `NP{_}`,
		},
		{
			name: "binary type changing", left: `,`, right: `S[dcl]\NP`, parent: `NP\NP`,
			rule: Binary, combinator: Binary, result: `(NP{Y}\NP{Y}<1>){_}`,
		},
		{
			name: "type raising", left: `NP`, parent: `S/(S\NP)`,
			rule: TRaise, combinator: TRaise, result: `(S[X]{Y}/(S[X]{Y}\NP{_}){Y}){_}`,
		},
		{
			name: "unary type changing", left: `N`, parent: `NP`,
			rule: Unary, combinator: Unary, result: `NP{_}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newFixture(t).production(tc.left, tc.right, tc.parent)
			assert.Equal(t, tc.rule, p.Rule)
			assert.Equal(t, tc.combinator, p.Combinator)
			assert.Equal(t, tc.combinator, p.Origin)
			require.NotNil(t, p.Result)
			assert.Equal(t, tc.result, p.Result.Annotated())
			if tc.parent == "" {
				assert.Same(t, p.Result, p.Parent)
			}
			assert.NoError(t, p.Verify())
		})
	}
}

func TestClassifyInvalid(t *testing.T) {
	testCases := []struct {
		name                string
		left, right, parent string
	}{
		{name: "nothing combines", left: `NP`, right: `NP`},
		{name: "wrong parent", left: `NP/N`, right: `N`, parent: `PP`},
		{name: "no unary rule", left: `PP`, parent: `NP`},
		{name: "composition past the depth bound", left: `PP/S`, right: `(((S/A)/B)/C)/D`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := newFixture(t).production(tc.left, tc.right, tc.parent)
			assert.Equal(t, Invalid, p.Rule)
			assert.Nil(t, p.Result)
			assert.NoError(t, p.Verify())
		})
	}
}

func TestNewErrors(t *testing.T) {
	f := newFixture(t)
	_, err := New(f.cat(`NP`), nil, nil)
	assert.Equal(t, ccgerr.MissingParent, ccgerr.CodeOf(err))

	other := newFixture(t)
	_, err = New(f.cat(`NP/N`), other.cat(`N`), nil)
	assert.Equal(t, ccgerr.ArenaMismatch, ccgerr.CodeOf(err))
}

func TestRulesRoundTripThroughNames(t *testing.T) {
	for r := Invalid; r <= Binary; r++ {
		parsed, ok := ParseRule(r.String())
		require.True(t, ok, r.String())
		assert.Equal(t, r, parsed)
	}
	_, ok := ParseRule("gxcomp")
	assert.False(t, ok)
}

func TestHeadsFlowThroughApplication(t *testing.T) {
	f := newFixture(t)
	the, dog := f.cat(`NP/N`), f.cat(`N`)
	require.NoError(t, the.AddHead(scat.Word{Index: 0, Text: "the"}))
	require.NoError(t, dog.AddHead(scat.Word{Index: 1, Text: "dog"}))

	p, err := New(the, dog, nil)
	require.NoError(t, err)
	assert.Equal(t, []scat.Word{{Index: 1, Text: "dog"}}, p.Result.Heads(p.Result.Cat()))
	assert.Equal(t, []scat.Dependency{
		{Head: scat.Word{Index: 0, Text: "the"}, Label: "1", Child: scat.Word{Index: 1, Text: "dog"}},
	}, the.Dependencies())
}

func TestHeadsFlowThroughTransitiveClause(t *testing.T) {
	f := newFixture(t)
	john, saw, mary := scat.Word{Index: 0, Text: "John"}, scat.Word{Index: 1, Text: "saw"}, scat.Word{Index: 2, Text: "Mary"}
	subject, verb, object := f.cat(`NP`), f.cat(`(S[dcl]\NP)/NP`), f.cat(`NP`)
	require.NoError(t, subject.AddHead(john))
	require.NoError(t, verb.AddHead(saw))
	require.NoError(t, object.AddHead(mary))

	vp, err := New(verb, object, f.cat(`S[dcl]\NP`))
	require.NoError(t, err)
	require.Equal(t, FApply, vp.Rule)
	s, err := New(subject, vp.Parent, f.cat(`S[dcl]`))
	require.NoError(t, err)
	require.Equal(t, BApply, s.Rule)

	assert.Equal(t, []scat.Word{saw}, s.Parent.Heads(s.Parent.Cat()))
	assert.Equal(t, []scat.Dependency{
		{Head: saw, Label: "1", Child: john},
		{Head: saw, Label: "2", Child: mary},
	}, verb.Dependencies())
}

func TestHeadConflictIsNoMatch(t *testing.T) {
	m := useMetrics(t)
	f := newFixture(t)
	det, cat, dog := f.cat(`NP/N`), f.cat(`N`), f.cat(`N`)
	require.NoError(t, cat.AddHead(scat.Word{Index: 1, Text: "cat"}))
	require.NoError(t, dog.AddHead(scat.Word{Index: 2, Text: "dog"}))
	require.True(t, det.BindVars(cat, det.Argument(), cat.Cat()))

	p, err := New(det, dog, nil)
	require.NoError(t, err)
	assert.Equal(t, Invalid, p.Rule)
	assert.Equal(t, []scat.Word{{Index: 2, Text: "dog"}}, dog.Heads(dog.Cat()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HeadConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Productions.WithLabelValues("invalid")))
}

func TestVerifyDetectsStaleParent(t *testing.T) {
	f := newFixture(t)
	p := f.production(`NP/N`, `N`, ``)
	require.NoError(t, p.Verify())

	p.Parent = f.cat(`PP`)
	err := p.Verify()
	require.Error(t, err)
	assert.Equal(t, ccgerr.Unlicensed, ccgerr.CodeOf(err))
}
