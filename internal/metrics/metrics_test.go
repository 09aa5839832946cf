package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Productions.WithLabelValues("fapply").Inc()
	m.Productions.WithLabelValues("fapply").Inc()
	m.Productions.WithLabelValues("bcomp").Inc()
	m.Replacements.WithLabelValues("fapply", OutcomeLicensed).Inc()
	m.HeadConflicts.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Productions.WithLabelValues("fapply")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Productions.WithLabelValues("bcomp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Replacements.WithLabelValues("fapply", OutcomeLicensed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Replacements.WithLabelValues("fapply", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HeadConflicts))
}

func TestUse(t *testing.T) {
	previous := Current()
	t.Cleanup(func() { Use(previous) })

	m := New(prometheus.NewRegistry())
	Use(m)
	assert.Same(t, m, Current())
}

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.Productions.WithLabelValues("fapply").Add(3)
	m.HeadConflicts.Inc()

	var out bytes.Buffer
	require.NoError(t, WriteText(reg, &out))
	assert.Equal(t, "rebank_head_conflicts_total 1\n"+
		"rebank_productions_total{rule=\"fapply\"} 3\n", out.String())
}
