// Package lexicon loads markedup files: the list of supertags with their
// canonical annotated categories.
package lexicon

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/rebank/category"
	"github.com/cottand/rebank/ccgerr"
	"github.com/cottand/rebank/internal/log"
	"github.com/pkg/errors"
)

//go:embed markedup
var defaultMarkedup []byte

const initLine = "# now list the markedup categories"

var logger = log.For(log.SectionLexicon)

// Lexicon maps supertags, and the annotated strings of their categories, to
// one shared canonical Category. It is never modified after Load and can be
// shared across goroutines.
type Lexicon struct {
	cats      *immutable.Map[string, *category.Category]
	supertags []string
}

var _ category.Lookup = (*Lexicon)(nil)

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	lex, err := Load(bytes.NewReader(defaultMarkedup))
	if err != nil {
		panic(err)
	}
	return lex
})

// Default returns the lexicon embedded in the binary, loaded once
func Default() *Lexicon {
	return defaultLexicon()
}

func LoadFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open lexicon %s", path)
	}
	defer f.Close()
	lex, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load lexicon %s", path)
	}
	return lex, nil
}

// Load reads a markedup file. Everything up to the marker line is a free
// header; after it come entries separated by blank lines.
func Load(r io.Reader) (*Lexicon, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	header, body, found := strings.Cut(text, initLine)
	if !found {
		return nil, ccgerr.New(ccgerr.NewLexicon{Line: 1, Message: "missing line '" + initLine + "'"})
	}

	builder := immutable.NewMapBuilder[string, *category.Category](immutable.NewHasher(""))
	var supertags []string
	line := strings.Count(header, "\n") + 1
	for _, entry := range strings.Split(body, "\n\n") {
		start := line
		line += strings.Count(entry, "\n") + 2
		supertag, annotated, ok, err := parseEntry(entry, start)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		cat, err := category.Parse(annotated, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %s at line %d", supertag, start)
		}
		if _, dup := builder.Get(supertag); !dup {
			supertags = append(supertags, supertag)
		}
		builder.Set(supertag, cat)
		builder.Set(cat.Annotated(), cat)
	}
	slices.Sort(supertags)

	logger.Debug("loaded lexicon", "entries", len(supertags))
	return &Lexicon{cats: builder.Map(), supertags: supertags}, nil
}

// parseEntry returns ok == false for entries holding nothing but comments
func parseEntry(entry string, line int) (supertag, annotated string, ok bool, err error) {
	var lines []string
	for _, l := range strings.Split(entry, "\n") {
		if strings.TrimSpace(l) == "" || strings.HasPrefix(l, "#") {
			continue
		}
		lines = append(lines, l)
	}
	if len(lines) == 0 {
		return "", "", false, nil
	}
	if len(lines) < 2 {
		return "", "", false, ccgerr.New(ccgerr.NewLexicon{Line: line, Message: "entry " + lines[0] + " has no annotated category"})
	}
	fields := strings.Fields(lines[1])
	if len(fields) != 2 {
		return "", "", false, ccgerr.New(ccgerr.NewLexicon{Line: line, Message: "expected 'n annotated', got '" + strings.TrimSpace(lines[1]) + "'"})
	}
	supertag = strings.ReplaceAll(strings.TrimSpace(lines[0]), "[nb]", "")
	return supertag, fields[1], true, nil
}

// Lookup finds the canonical category of a supertag or annotated string
func (l *Lexicon) Lookup(s string) (*category.Category, bool) {
	return l.cats.Get(s)
}

// Len is the number of supertags
func (l *Lexicon) Len() int {
	return len(l.supertags)
}

// Supertags lists the supertags in sorted order
func (l *Lexicon) Supertags() []string {
	return slices.Clone(l.supertags)
}

// Parse parses s through the lexicon
func (l *Lexicon) Parse(s string) (*category.Category, error) {
	return category.Parse(s, l)
}
