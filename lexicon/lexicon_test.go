package lexicon

import (
	"strings"
	"testing"

	"github.com/cottand/rebank/ccgerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# a header
# with comments
# now list the markedup categories

NP/N
  1 (NP{Y}/N{Y}<1>){_}
  1 det 1 ign

# a comment-only entry

(S[dcl]\NP)/NP
  2 ((S[dcl]{_}\NP{Y}<1>){_}/NP{Z}<2>){_}

NP[nb]/N
  1 (NP{Y}/N{Y}<1>){_}
`

func TestLoad(t *testing.T) {
	lex, err := Load(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 2, lex.Len())
	assert.Equal(t, []string{`(S[dcl]\NP)/NP`, `NP/N`}, lex.Supertags())

	bySupertag, ok := lex.Lookup(`(S[dcl]\NP)/NP`)
	require.True(t, ok)
	byAnnotated, ok := lex.Lookup(`((S[dcl]{_}\NP{Y}<1>){_}/NP{Z}<2>){_}`)
	require.True(t, ok)
	assert.Same(t, bySupertag, byAnnotated)

	_, ok = lex.Lookup(`PP/NP`)
	assert.False(t, ok)
}

func TestParseSharesCanonicalCategories(t *testing.T) {
	lex, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	first, err := lex.Parse(`NP[nb]/N`)
	require.NoError(t, err)
	second, err := lex.Parse(`NP/N`)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, `(NP{Y}/N{Y}<1>){_}`, first.Annotated())

	conj, err := lex.Parse(`NP/N[conj]`)
	require.NoError(t, err)
	assert.True(t, conj.Conj())
	assert.Equal(t, `(NP{Y}/N{Y}<1>){_}[conj]`, conj.Annotated())
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		code  ccgerr.ErrCode
	}{
		{
			name:  "missing marker",
			input: "NP\n  0 NP{_}\n",
			code:  ccgerr.Lexicon,
		},
		{
			name:  "missing annotated category",
			input: initLine + "\n\nNP\n",
			code:  ccgerr.Lexicon,
		},
		{
			name:  "malformed entry line",
			input: initLine + "\n\nNP\n  NP{_}\n",
			code:  ccgerr.Lexicon,
		},
		{
			name:  "malformed category",
			input: initLine + "\n\nNP\n  0 (NP{_}\n",
			code:  ccgerr.Parse,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Equal(t, tc.code, ccgerr.CodeOf(err))
		})
	}
}

func TestDefault(t *testing.T) {
	lex := Default()
	assert.Greater(t, lex.Len(), 50)

	testCases := []struct {
		supertag  string
		annotated string
	}{
		{supertag: `N`, annotated: `N{_}`},
		{supertag: `NP/N`, annotated: `(NP{Y}/N{Y}<1>){_}`},
		{supertag: `(S[dcl]\NP)/NP`, annotated: `((S[dcl]{_}\NP{Y}<1>){_}/NP{Z}<2>){_}`},
		{supertag: `(S\NP)\(S\NP)`, annotated: `((S[X]{Y}\NP{Z}){Y}\(S[X]{Y}<1>\NP{Z}){Y}){_}`},
		{supertag: `S/(S\NP)`, annotated: `(S[X]{Y}/(S[X]{Y}\NP{_}){Y}){_}`},
	}
	for _, tc := range testCases {
		t.Run(tc.supertag, func(t *testing.T) {
			c, ok := lex.Lookup(tc.supertag)
			require.True(t, ok)
			assert.Equal(t, tc.annotated, c.Annotated())
			assert.Equal(t, tc.supertag, c.String())
		})
	}
}

func TestDefaultSupertagsRenderAsThemselves(t *testing.T) {
	lex := Default()
	for _, supertag := range lex.Supertags() {
		c, ok := lex.Lookup(supertag)
		require.True(t, ok)
		assert.Equal(t, supertag, c.String())
	}
}
