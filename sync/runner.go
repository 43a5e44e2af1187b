package sync

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Runner runs the import path then the update path against one set of
// remote lookups.
type Runner struct {
	*SyncContext
	Client CRMClient
	Source PlayerSource
}

// NewRunner creates a runner over an explicitly constructed client and source.
func NewRunner(sc *SyncContext, client CRMClient, source PlayerSource) Runner {
	return Runner{SyncContext: sc, Client: client, Source: source}
}

// NewPlayerSource returns the source selected by the run's config.
func NewPlayerSource(sc *SyncContext) PlayerSource {
	if sc.Config.Source.Kind == SourceKindFile {
		return NewFileSource(sc)
	}
	return SampleSource{}
}

// Run executes both paths and reports what happened. Cancellation stops the run.
// Source errors are always returned; remote failures are returned only under
// FailurePolicyStrict, after every step has run.
func (r Runner) Run(ctx context.Context) (RunReport, error) {
	report := RunReport{
		RunID:        r.RunID,
		Environment:  r.Config.API.Environment,
		CampaignType: r.Config.Import.CampaignType,
		StartedAt:    r.Now(),
	}
	lookups := NewRemoteLookups(r.Client, r.SyncContext)

	var fatal failures
	var remote failures

	importResult, err := PlayerImport{SyncContext: r.SyncContext, Client: r.Client, Source: r.Source, Lookups: lookups}.ImportPlayers(ctx)
	report.Import = importResult
	if ctxErr := ctx.Err(); ctxErr != nil {
		return report, ctxErr
	}
	if err != nil {
		r.Logger.Error("player import did not run", zap.Error(err))
		fatal.add(err)
	}
	remote.add(importResult.Outcome.Err())

	updateResult, err := PlayerUpdate{SyncContext: r.SyncContext, Client: r.Client, Source: r.Source, Lookups: lookups}.UpdatePlayers(ctx)
	report.Update = updateResult
	if ctxErr := ctx.Err(); ctxErr != nil {
		return report, ctxErr
	}
	if err != nil {
		r.Logger.Error("player update did not run", zap.Error(err))
		fatal.add(err)
	}
	remote.add(updateResult.ChecklistErr)
	remote.add(updateResult.Sync.Err())
	remote.add(updateResult.Close.Err())
	for _, e := range lookups.Failures() {
		remote.add(e)
	}

	report.Failures = append(append(report.Failures, fatal.errs...), remote.errs...)
	report.FinishedAt = r.Now()

	if r.Config.Metrics.Textfile != "" {
		if err := r.Metrics.WriteTextfile(r.Config.Metrics.Textfile); err != nil {
			r.Logger.Warn("metrics not written", zap.Error(err))
		}
	}

	if r.Config.FailurePolicy == FailurePolicyStrict {
		return report, errors.Join(fatal.err(), remote.err())
	}
	if len(remote.errs) > 0 {
		r.Logger.Warn("run completed with remote failures", zap.Int("failures", len(remote.errs)))
	}
	return report, fatal.err()
}
