package sync

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ImportResult summarises the import path of a run.
type ImportResult struct {
	Loaded   int
	Admitted int
	Outcome  DispatchOutcome
}

// UpdateResult summarises the update path of a run.
type UpdateResult struct {
	Loaded     int
	Admitted   int
	Ineligible int
	// ChecklistErr is set when the checklist could not be fetched.
	ChecklistErr error
	Sync         DispatchOutcome
	Close        DispatchOutcome
}

// PlayerImport validates player rows against call projects and imports them.
type PlayerImport struct {
	*SyncContext
	Client  CRMClient
	Source  PlayerSource
	Lookups *RemoteLookups
}

// ImportPlayers runs the import path. Remote failures are logged and reported
// in the result; the returned error is only set when the run cannot go on
// (cancellation or an unreadable source).
func (p PlayerImport) ImportPlayers(ctx context.Context) (ImportResult, error) {
	var result ImportResult
	campaignType := p.Config.Import.CampaignType

	if err := ctx.Err(); err != nil {
		return result, err
	}
	players, err := p.Source.ImportPlayers(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load import players %w", err)
	}
	result.Loaded = len(players)
	p.Metrics.PlayersLoaded.WithLabelValues("import").Add(float64(len(players)))
	p.Logger.Info("players loaded", zap.String("path", "import"), zap.Int("players", len(players)))

	players = NewPlayerValidator(p.SyncContext).ValidateImportPlayers(players, campaignType)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	brands := NewBrandResolver(p.SyncContext, p.Lookups).Resolve(ctx)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	admitted := NewPolicyFilter(p.SyncContext, brands, p.Lookups).Filter(players, campaignType, ctx)
	result.Admitted = len(admitted)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	req := NewRecordMapper(p.SyncContext, brands).AddPlayersRequest(admitted, campaignType)
	result.Outcome = NewBatchDispatcher(p.SyncContext, p.Client).DispatchImport(req, ctx)

	return result, nil
}

// PlayerUpdate synchronises players on the Enteractive checklist and closes
// the ineligible ones.
type PlayerUpdate struct {
	*SyncContext
	Client  CRMClient
	Source  PlayerSource
	Lookups *RemoteLookups
}

// UpdatePlayers runs the update path. Ineligible players are closed whatever
// the outcome of the sync.
func (p PlayerUpdate) UpdatePlayers(ctx context.Context) (UpdateResult, error) {
	var result UpdateResult

	if err := ctx.Err(); err != nil {
		return result, err
	}
	players, err := p.Source.UpdatePlayers(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load update players %w", err)
	}
	result.Loaded = len(players)
	p.Metrics.PlayersLoaded.WithLabelValues("update").Add(float64(len(players)))
	p.Logger.Info("players loaded", zap.String("path", "update"), zap.Int("players", len(players)))

	players = NewPlayerValidator(p.SyncContext).ValidateUpdatePlayers(players)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	brands := NewBrandResolver(p.SyncContext, p.Lookups).Resolve(ctx)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	var listed []UpdatePlayer
	checklist, err := p.Client.GetPlayerCheckList(ctx)
	if err != nil {
		err = &TransportError{Operation: "GetPlayerCheckList", Err: err}
		result.ChecklistErr = err
		p.Logger.Warn("player checklist unavailable, no players will be synchronised", zap.Error(err))
		p.Metrics.PlayersRejected.WithLabelValues("update", RejectedChecklistUnavailable).Add(float64(len(players)))
	} else {
		listed = NewChecklistFilter(p.SyncContext, brands).Filter(players, checklist)
	}
	result.Admitted = len(listed)

	var ineligible []UpdatePlayer
	for _, player := range listed {
		if !player.Eligible {
			ineligible = append(ineligible, player)
		}
	}
	result.Ineligible = len(ineligible)

	mapper := NewRecordMapper(p.SyncContext, brands)
	dispatcher := NewBatchDispatcher(p.SyncContext, p.Client)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	result.Sync = dispatcher.DispatchSync(mapper.SyncPlayersRequest(listed), ctx)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	result.Close = dispatcher.DispatchClose(mapper.ClosePlayersRequest(ineligible), ctx)

	return result, nil
}
