package grammar_test

import (
	"strings"
	"testing"

	"github.com/cottand/rebank/ccgerr"
	"github.com/cottand/rebank/grammar"
	"github.com/cottand/rebank/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `12 # NP --> NP/N N
3 # S[dcl] --> NP S[dcl]\NP
1 # (S[b]\NP)/NP --> ((S[b]\NP)/NP)/

5 # NP[nb] --> NP[nb]/N N
`

func TestRead(t *testing.T) {
	entries, err := grammar.Read(strings.NewReader(sample), lexicon.Default())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, 1, entries[0].Line)
	assert.Equal(t, 12, entries[0].Freq)
	assert.Equal(t, `NP --> NP/N N`, entries[0].String())
	assert.Equal(t, `(NP{Y}/N{Y}<1>){_}`, entries[0].Left.Annotated())

	assert.Equal(t, `(S[b]\NP)/NP`, entries[2].Left.String())
	assert.Nil(t, entries[2].Right)

	assert.Equal(t, 5, entries[3].Line)
	assert.Equal(t, `NP --> NP/N N`, entries[3].String())
}

func TestReadErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		code  ccgerr.ErrCode
	}{
		{name: "missing frequency separator", input: "3 NP --> N\n"},
		{name: "bad frequency", input: "x # NP --> N\n"},
		{name: "missing arrow", input: "3 # NP N\n"},
		{name: "too many children", input: "3 # NP --> N N N\n"},
		{name: "bad category", input: "3 # NP --> (N\n", code: ccgerr.Parse},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grammar.Read(strings.NewReader("1 # NP --> N\n"+tc.input), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
			assert.Equal(t, tc.code, ccgerr.CodeOf(err))
		})
	}
}
