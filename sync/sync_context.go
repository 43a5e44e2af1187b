package sync

import (
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// SyncContext holds shared run configuration and collaborators.
// Fields must not be modified once a pipeline has been created from it.
type SyncContext struct {
	Config         Config
	RunID          string
	RecordRequests bool

	Logger  *zap.Logger
	Metrics *Metrics
	Now     func() time.Time
}

type syncContextOptions struct {
	logger         *zap.Logger
	registerer     prometheus.Registerer
	now            func() time.Time
	runID          string
	recordRequests bool
}

// SyncContextOption is a functional option for NewSyncContext.
type SyncContextOption func(*syncContextOptions)

// WithLogger sets the logger; the run id is attached to every entry.
func WithLogger(logger *zap.Logger) SyncContextOption {
	return func(o *syncContextOptions) {
		o.logger = logger
	}
}

// WithRegisterer sets where the run's metrics are registered.
func WithRegisterer(registerer prometheus.Registerer) SyncContextOption {
	return func(o *syncContextOptions) {
		o.registerer = registerer
	}
}

// WithClock overrides the wall clock used to stamp synchronised players.
func WithClock(now func() time.Time) SyncContextOption {
	return func(o *syncContextOptions) {
		o.now = now
	}
}

// WithRunID overrides the generated run id.
func WithRunID(runID string) SyncContextOption {
	return func(o *syncContextOptions) {
		o.runID = runID
	}
}

// WithRecordRequests records all Enteractive traffic under testdata/.requests.
func WithRecordRequests(record bool) SyncContextOption {
	return func(o *syncContextOptions) {
		o.recordRequests = record
	}
}

func NewSyncContext(config Config, opts ...SyncContextOption) *SyncContext {
	options := syncContextOptions{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.runID == "" {
		options.runID = uuid.NewString()
	}
	if options.registerer == nil {
		options.registerer = prometheus.NewRegistry()
	}

	return &SyncContext{
		Config:         config,
		RunID:          options.runID,
		RecordRequests: options.recordRequests,
		Logger:         options.logger.With(zap.String("run_id", options.runID)),
		Metrics:        NewMetrics(options.registerer),
		Now:            options.now,
	}
}
