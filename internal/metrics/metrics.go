// Package metrics counts which combinators license productions and how
// replacements turn out.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rebank"

// Replacement outcomes
const (
	OutcomeNoop       = "noop"
	OutcomeLicensed   = "licensed"
	OutcomeUnlicensed = "unlicensed"
	OutcomeError      = "error"
)

type Metrics struct {
	// Productions counts classified productions.
	// Labels: rule
	Productions *prometheus.CounterVec

	// Replacements counts parent replacements.
	// Labels: rule (the rule before replacing), outcome
	Replacements *prometheus.CounterVec

	// HeadConflicts counts combinator matches abandoned on a head conflict
	HeadConflicts prometheus.Counter
}

// New registers the engine's counters with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Productions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "productions_total",
				Help:      "Total productions classified, by rule",
			},
			[]string{"rule"},
		),
		Replacements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "replacements_total",
				Help:      "Total parent replacements, by rule and outcome",
			},
			[]string{"rule", "outcome"},
		),
		HeadConflicts: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "head_conflicts_total",
				Help:      "Total combinator matches rolled back on a head conflict",
			},
		),
	}
}

var current atomic.Pointer[Metrics]

func init() {
	current.Store(New(prometheus.NewRegistry()))
}

// Current is the Metrics the engine records into
func Current() *Metrics {
	return current.Load()
}

// Use makes m the Metrics the engine records into
func Use(m *Metrics) {
	current.Store(m)
}

// WriteText prints every counter gathered from g, one `name{labels} value`
// line each, sorted
func WriteText(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("could not gather metrics: %w", err)
	}
	var lines []string
	for _, family := range families {
		for _, m := range family.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			name := family.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
