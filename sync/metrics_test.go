package sync

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.PlayersLoaded.WithLabelValues("import").Add(10)
	metrics.PlayersRejected.WithLabelValues("import", RejectedNoCallProject).Add(2)

	expected := `
# HELP playersync_players_rejected_total The total number of players dropped before dispatch
# TYPE playersync_players_rejected_total counter
playersync_players_rejected_total{path="import",reason="no_call_project"} 2
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "playersync_players_rejected_total"))
	assert.Equal(t, float64(10), testutil.ToFloat64(metrics.PlayersLoaded.WithLabelValues("import")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.DispatchOutcomes.WithLabelValues(OperationAddPlayers, string(OutcomeSuccess)).Inc()
	filename := filepath.Join(t.TempDir(), "playersync.prom")

	require.NoError(t, metrics.WriteTextfile(filename))

	contents, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `playersync_dispatch_outcomes_total{operation="AddPlayers",outcome="success"} 1`)
}

func TestMetrics_WriteTextfileWithoutGatherer(t *testing.T) {
	metrics := NewMetrics(prometheus.NewPedanticRegistry())
	metrics.Gatherer = nil

	assert.Error(t, metrics.WriteTextfile(filepath.Join(t.TempDir(), "playersync.prom")))
}
