package grammar

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/cottand/rebank/category"
	"github.com/cottand/rebank/ccgerr"
	"github.com/cottand/rebank/lexicon"
	"github.com/cottand/rebank/rules"
	"github.com/cottand/rebank/scat"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Outcome of checking one entry
type Outcome int

const (
	// Recovered means replacing the parent and replacing it back gave the
	// original children
	Recovered Outcome = iota
	// Diverged means the round trip gave different children
	Diverged
	// Skipped entries are not licensed by any rule
	Skipped
	// Refused means replacement rejected the alternative parent
	Refused
	// Failed means some invariant of the engine was violated
	Failed
)

var outcomeNames = [...]string{"recovered", "diverged", "skipped", "refused", "failed"}

func (o Outcome) String() string { return outcomeNames[o] }

// Outcomes lists every Outcome in order
func Outcomes() []Outcome {
	return []Outcome{Recovered, Diverged, Skipped, Refused, Failed}
}

type Options struct {
	// Workers bounds how many entries are checked at once
	Workers int
	// Seed picks the alternative parents
	Seed uint64
	// Lexicon provides the alternative parents. Nil uses lexicon.Default.
	Lexicon *lexicon.Lexicon
}

type Result struct {
	Entry       Entry
	Rule        rules.Rule
	Alternative *category.Category
	Outcome     Outcome
	// Left and Right are the children after the round trip
	Left, Right string
	Err         error
}

type Report struct {
	Results []Result
}

// Count is the number of results with outcome o
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Failures lists the results that violated an invariant
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Outcome == Failed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Errors collects the engine errors behind the failures
func (r *Report) Errors() *ccgerr.Errors {
	var errs *ccgerr.Errors
	for _, res := range r.Failures() {
		var ccgErr ccgerr.CCGError
		if errors.As(res.Err, &ccgErr) {
			errs = errs.With(ccgErr)
		}
	}
	return errs
}

// Check classifies every entry against its parent, replaces the parent with
// an alternative of the same shape (atomic or complex) and then replaces it
// back, recording whether the original children came back. Each entry is
// checked in its own Arena.
//
// Alternatives are drawn from the lexicon's supertags and depend only on
// Options.Seed and the entry's position, not on scheduling.
func Check(ctx context.Context, entries []Entry, opts Options) (*Report, error) {
	lex := opts.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	alts, err := alternatives(lex)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(entries))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, e := range entries {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(opts.Seed, uint64(i)))
			results[i] = checkEntry(e, alts.pick(rng, e.Parent))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Results: results}
	logger.Debug("checked grammar",
		"entries", len(entries),
		"recovered", report.Count(Recovered),
		"diverged", report.Count(Diverged),
		"failed", report.Count(Failed))
	return report, nil
}

type alternativeSet struct {
	atomic, complex []*category.Category
}

func alternatives(lex *lexicon.Lexicon) (alternativeSet, error) {
	var alts alternativeSet
	for _, s := range lex.Supertags() {
		c, err := lex.Parse(s)
		if err != nil {
			return alts, err
		}
		if c.IsComplex() {
			alts.complex = append(alts.complex, c)
		} else {
			alts.atomic = append(alts.atomic, c)
		}
	}
	return alts, nil
}

// pick draws a category of parent's shape other than parent itself, or nil
// when there is none
func (a alternativeSet) pick(rng *rand.Rand, parent *category.Category) *category.Category {
	pool := a.atomic
	if parent.IsComplex() {
		pool = a.complex
	}
	pool = slices.DeleteFunc(slices.Clone(pool), func(c *category.Category) bool {
		return c.ExactEq(parent.WithConj(false))
	})
	if len(pool) == 0 {
		return nil
	}
	alt := pool[rng.IntN(len(pool))]
	if parent.Conj() {
		alt = alt.WithConj(true)
	}
	return alt
}

func checkEntry(e Entry, alt *category.Category) Result {
	res := Result{Entry: e, Alternative: alt}
	arena := scat.NewArena()
	left := arena.Wrap(e.Left)
	var right *scat.SuperCat
	if e.Right != nil {
		right = arena.Wrap(e.Right)
	}
	p, err := rules.New(left, right, arena.Wrap(e.Parent))
	if err != nil {
		return failed(res, err)
	}
	res.Rule = p.Rule
	if p.Rule == rules.Invalid || alt == nil {
		res.Outcome = Skipped
		return res
	}
	if err := p.Verify(); err != nil {
		return failed(res, err)
	}

	if _, _, err := p.Replace(arena.Wrap(alt)); err != nil {
		return refused(res, err)
	}
	newLeft, newRight, err := p.Replace(arena.Wrap(e.Parent))
	if err != nil {
		return refused(res, err)
	}
	res.Left = newLeft.String()
	if newRight != nil {
		res.Right = newRight.String()
	}

	res.Outcome = Diverged
	if res.Left == e.Left.String() && (e.Right == nil || res.Right == e.Right.String()) {
		res.Outcome = Recovered
	}
	return res
}

// refused sorts replacement errors: the ones replacement reports for
// parents it cannot express are expected, everything else is a failure
func refused(res Result, err error) Result {
	switch ccgerr.CodeOf(err) {
	case ccgerr.MissingSharedCategory, ccgerr.ArgumentCluster:
		res.Outcome = Refused
		res.Err = err
		return res
	}
	return failed(res, err)
}

func failed(res Result, err error) Result {
	logger.Warn("check failed", "entry", res.Entry.String(), "line", res.Entry.Line, "error", err)
	res.Outcome = Failed
	res.Err = err
	return res
}
