package scat

import (
	"cmp"
	"strings"
)

// Word is a lexical head: a token of the sentence, by position
type Word struct {
	Index int
	Text  string
}

func (w Word) String() string { return w.Text }

func CompareWords(a, b Word) int {
	if c := cmp.Compare(a.Index, b.Index); c != 0 {
		return c
	}
	return strings.Compare(a.Text, b.Text)
}

// words sorts with sort.Sort so that xtgo/set can deduplicate it in place
type words []Word

func (w words) Len() int           { return len(w) }
func (w words) Less(i, j int) bool { return CompareWords(w[i], w[j]) < 0 }
func (w words) Swap(i, j int)      { w[i], w[j] = w[j], w[i] }

func joinWords(ws []Word) string {
	texts := make([]string, len(ws))
	for i, w := range ws {
		texts[i] = w.Text
	}
	return strings.Join(texts, ",")
}
