// Package grammar reads the production lists recorded from a treebank and
// checks that replacement is consistent over them.
package grammar

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cottand/rebank/category"
	"github.com/cottand/rebank/internal/log"
	"github.com/pkg/errors"
)

var logger = log.For(log.SectionGrammar)

// Entry is one recorded production, seen Freq times
type Entry struct {
	Line   int
	Freq   int
	Parent *category.Category
	Left   *category.Category
	Right  *category.Category // nil for unary productions
}

func (e Entry) String() string {
	if e.Right == nil {
		return e.Parent.String() + " --> " + e.Left.String()
	}
	return e.Parent.String() + " --> " + e.Left.String() + " " + e.Right.String()
}

// ReadFile is Read on the file at path
func ReadFile(path string, lookup category.Lookup) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open grammar %s", path)
	}
	defer f.Close()
	return Read(f, lookup)
}

// Read parses lines of the form `freq # parent --> left [right]`, skipping
// blank ones. Categories are resolved through lookup, which may be nil.
func Read(r io.Reader, lookup category.Lookup) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		e, err := parseLine(text, lookup)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		e.Line = line
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	logger.Debug("read grammar", "entries", len(entries))
	return entries, nil
}

func parseLine(text string, lookup category.Lookup) (Entry, error) {
	freqStr, production, ok := strings.Cut(text, " # ")
	if !ok {
		return Entry{}, errors.Errorf("expected 'freq # production', got '%s'", text)
	}
	freq, err := strconv.Atoi(strings.TrimSpace(freqStr))
	if err != nil {
		return Entry{}, errors.Wrapf(err, "bad frequency '%s'", freqStr)
	}
	parentStr, childrenStr, ok := strings.Cut(production, " --> ")
	if !ok {
		return Entry{}, errors.Errorf("expected 'parent --> children', got '%s'", production)
	}
	children := strings.Fields(childrenStr)
	if len(children) == 0 || len(children) > 2 {
		return Entry{}, errors.Errorf("expected one or two children, got %d", len(children))
	}

	e := Entry{Freq: freq}
	if e.Parent, err = category.Parse(parentStr, lookup); err != nil {
		return Entry{}, errors.Wrap(err, "parent")
	}
	if e.Left, err = category.Parse(children[0], lookup); err != nil {
		return Entry{}, errors.Wrap(err, "left child")
	}
	if len(children) == 2 {
		if e.Right, err = category.Parse(children[1], lookup); err != nil {
			return Entry{}, errors.Wrap(err, "right child")
		}
	}
	return e, nil
}
