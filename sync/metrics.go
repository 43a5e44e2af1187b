package sync

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what happened to players during one run.
type Metrics struct {
	Gatherer prometheus.Gatherer

	PlayersLoaded       *prometheus.CounterVec
	PlayersAdmitted     *prometheus.CounterVec
	PlayersRejected     *prometheus.CounterVec
	DispatchOutcomes    *prometheus.CounterVec
	RemoteFetchFailures *prometheus.CounterVec
	ValidationWarnings  *prometheus.CounterVec
}

// Rejection reasons recorded on playersync_players_rejected_total.
const (
	RejectedNoCallProject        = "no_call_project"
	RejectedNotInChecklist       = "not_in_checklist"
	RejectedChecklistUnavailable = "checklist_unavailable"
	RejectedDuplicate            = "duplicate"
	RejectedMissingDepositDate   = "missing_deposit_date"
)

// NewMetrics registers the run's counters with registerer. When registerer
// is also a prometheus.Gatherer it is kept so the counters can be exported.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	result := &Metrics{
		PlayersLoaded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "playersync_players_loaded_total",
			Help: "The total number of players read from the player source",
		}, []string{"path"}),
		PlayersAdmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "playersync_players_admitted_total",
			Help: "The total number of players admitted by the call project and checklist filters",
		}, []string{"path"}),
		PlayersRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "playersync_players_rejected_total",
			Help: "The total number of players dropped before dispatch",
		}, []string{"path", "reason"}),
		DispatchOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "playersync_dispatch_outcomes_total",
			Help: "The total number of Enteractive bulk calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		RemoteFetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "playersync_remote_fetch_failures_total",
			Help: "The total number of failed brand and call project lookups",
		}, []string{"lookup"}),
		ValidationWarnings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "playersync_validation_warnings_total",
			Help: "The total number of player validation warnings by check",
		}, []string{"check"}),
	}
	if g, ok := registerer.(prometheus.Gatherer); ok {
		result.Gatherer = g
	}
	return result
}

// WriteTextfile writes the gathered metrics in the node exporter textfile format.
func (m *Metrics) WriteTextfile(filename string) error {
	if m.Gatherer == nil {
		return fmt.Errorf("no gatherer available to write metrics to %s", filename)
	}
	if err := prometheus.WriteToTextfile(filename, m.Gatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s %w", filename, err)
	}
	return nil
}
