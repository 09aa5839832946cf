package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
)

// table prints rows aligned on a terminal and tab-separated otherwise, so
// that piped output stays easy to cut
type table struct {
	out  io.Writer
	rows [][]string
}

func newTable(out io.Writer) *table {
	return &table{out: out}
}

func (t *table) row(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) flush() error {
	w := t.out
	var tw *tabwriter.Writer
	if isTerminal(t.out) {
		tw = tabwriter.NewWriter(t.out, 0, 4, 2, ' ', 0)
		w = tw
	}
	for _, r := range t.rows {
		if _, err := fmt.Fprintln(w, strings.Join(r, "\t")); err != nil {
			return err
		}
	}
	t.rows = nil
	if tw != nil {
		return tw.Flush()
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
