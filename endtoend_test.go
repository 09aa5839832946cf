package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with a config path that does not exist, so
// that every test sees the defaults
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "rebank.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCommandsEndToEnd(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "combine",
			args: []string{"combine", `NP/N`, `N`},
			want: []string{"rule\tfapply", "result\tNP", "annotated\tNP{_}"},
		},
		{
			name: "combine with parent",
			args: []string{"combine", `,`, `NP`, "--parent", `NP`},
			want: []string{"rule\tleft_punct"},
		},
		{
			name: "unary combine",
			args: []string{"combine", `NP`, "-p", `S/(S\NP)`},
			want: []string{"rule\ttraise", `result` + "\t" + `S/(S\NP)`},
		},
		{
			name: "replace",
			args: []string{"replace", `PP/NP`, `NP`, `PP`, `NP`},
			want: []string{"rule\tfapply\tfapply", "left\tNP/NP\t(NP{_}/NP{Y}<1>){_}", "right\tNP\tNP{_}", "licensed\tyes"},
		},
		{
			name: "unary replace",
			args: []string{"replace", `NP`, `-`, `S/(S\NP)`, `S/(S\PP)`},
			want: []string{"rule\ttraise\ttraise", "left\tPP\tPP{_}"},
		},
		{
			name: "lexicon",
			args: []string{"lexicon", `NP/N`, `NP`},
			want: []string{"NP/N\t(NP{Y}/N{Y}<1>){_}", "NP\tNP{_}"},
		},
		{
			name: "check",
			args: []string{"check", "testdata/wsj.grammar", "--metrics", "--workers", "2"},
			want: []string{"skipped\t1", "failed\t0", `rebank_productions_total{rule="fapply"} 2`},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.args...)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(out), "\n")
			for _, w := range tc.want {
				assert.Contains(t, lines, w)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "bad category", args: []string{"combine", `(NP`, `N`}},
		{name: "unary without parent", args: []string{"combine", `NP`}},
		{name: "missing left child", args: []string{"replace", `-`, `NP`, `PP`, `NP`}},
		{name: "unknown supertag", args: []string{"lexicon", `NP/Q`}},
		{name: "missing grammar", args: []string{"check", "testdata/absent.grammar"}},
		{name: "no grammar", args: []string{"check"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.args...)
			assert.Error(t, err)
		})
	}
}
