package sync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// OutcomeKind classifies the result of one bulk call.
type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomePartialFailure OutcomeKind = "partial_failure"
	OutcomeTransportError OutcomeKind = "transport_error"
	OutcomeSkipped        OutcomeKind = "skipped"
)

// Operation names used in outcomes, logs and metrics.
const (
	OperationAddPlayers   = "AddPlayers"
	OperationSyncPlayers  = "SyncPlayers"
	OperationClosePlayers = "ClosePlayers"
)

// DispatchOutcome describes what happened to one batch.
type DispatchOutcome struct {
	Operation string
	Kind      OutcomeKind
	Sent      int
	// Imported and Rejected are set for a successful AddPlayers.
	Imported int
	Rejected int
	// Converted is set for a successful SyncPlayers.
	Converted        int
	ConvertedPlayers []ConvertedPlayer
	ErrorMessage     string
}

// Err returns the outcome as an error when it is a failure.
func (o DispatchOutcome) Err() error {
	switch o.Kind {
	case OutcomePartialFailure:
		return fmt.Errorf("%s was unsuccessful %s", o.Operation, o.ErrorMessage)
	case OutcomeTransportError:
		return &TransportError{Operation: o.Operation, Err: errors.New(o.ErrorMessage)}
	}
	return nil
}

// BatchDispatcher sends one bulk request per batch and classifies the reply.
// Failures are logged and returned as outcomes, never as errors.
type BatchDispatcher struct {
	Client              CRMClient
	Logger              *zap.Logger
	Metrics             *Metrics
	ConvertedPlayersCSV string
	SaveCSV             func(filename string, players []ConvertedPlayer) error
}

func NewBatchDispatcher(sc *SyncContext, client CRMClient) BatchDispatcher {
	return BatchDispatcher{
		Client:              client,
		Logger:              sc.Logger,
		Metrics:             sc.Metrics,
		ConvertedPlayersCSV: sc.Config.Update.ConvertedPlayersCSV,
		SaveCSV:             SaveConvertedPlayersCSV,
	}
}

func (d BatchDispatcher) record(o DispatchOutcome) DispatchOutcome {
	d.Metrics.DispatchOutcomes.WithLabelValues(o.Operation, string(o.Kind)).Inc()
	switch o.Kind {
	case OutcomePartialFailure:
		d.Logger.Warn(o.Operation+" failed", zap.Int("players", o.Sent), zap.String("error", o.ErrorMessage))
	case OutcomeTransportError:
		d.Logger.Error(o.Operation+" did not complete", zap.Int("players", o.Sent), zap.String("error", o.ErrorMessage))
	case OutcomeSkipped:
		d.Logger.Info(o.Operation+" skipped, no players to send")
	}
	return o
}

func failed(operation string, sent int, res EnteractiveResponse, err error) (DispatchOutcome, bool) {
	if err != nil {
		return DispatchOutcome{Operation: operation, Kind: OutcomeTransportError, Sent: sent, ErrorMessage: err.Error()}, true
	}
	if !res.IsSuccess() {
		return DispatchOutcome{Operation: operation, Kind: OutcomePartialFailure, Sent: sent, ErrorMessage: res.GetError().Error()}, true
	}
	return DispatchOutcome{}, false
}

// DispatchImport sends an AddPlayers request.
func (d BatchDispatcher) DispatchImport(req AddPlayersRequest, ctx context.Context) DispatchOutcome {
	if len(req.Players) == 0 {
		return d.record(DispatchOutcome{Operation: OperationAddPlayers, Kind: OutcomeSkipped})
	}
	res, err := d.Client.AddPlayers(req, ctx)
	if o, ok := failed(OperationAddPlayers, len(req.Players), res, err); ok {
		return d.record(o)
	}
	o := DispatchOutcome{
		Operation: OperationAddPlayers,
		Kind:      OutcomeSuccess,
		Sent:      len(req.Players),
		Imported:  len(res.PlayersImported),
		Rejected:  len(res.PlayersRejected),
	}
	d.Logger.Info("players imported",
		zap.String("campaign_type", string(req.CampaignType)),
		zap.Int("imported", o.Imported),
		zap.Int("rejected", o.Rejected))
	return d.record(o)
}

// DispatchSync sends a SyncPlayers request. Converted players of a successful
// sync are saved to the configured CSV file.
func (d BatchDispatcher) DispatchSync(req SyncPlayersRequest, ctx context.Context) DispatchOutcome {
	if len(req.SyncPlayers) == 0 {
		return d.record(DispatchOutcome{Operation: OperationSyncPlayers, Kind: OutcomeSkipped})
	}
	res, err := d.Client.SyncPlayers(req, ctx)
	if o, ok := failed(OperationSyncPlayers, len(req.SyncPlayers), res, err); ok {
		return d.record(o)
	}
	o := DispatchOutcome{
		Operation:        OperationSyncPlayers,
		Kind:             OutcomeSuccess,
		Sent:             len(req.SyncPlayers),
		Converted:        len(res.ConvertedPlayers),
		ConvertedPlayers: res.ConvertedPlayers,
	}
	d.Logger.Info("player data synchronized", zap.Int("players", o.Sent), zap.Int("converted", o.Converted))
	if o.Converted > 0 && d.ConvertedPlayersCSV != "" && d.SaveCSV != nil {
		if err := d.SaveCSV(d.ConvertedPlayersCSV, res.ConvertedPlayers); err != nil {
			d.Logger.Warn("converted players not saved", zap.String("path", d.ConvertedPlayersCSV), zap.Error(err))
		} else {
			d.Logger.Info("converted players saved", zap.String("path", d.ConvertedPlayersCSV))
		}
	}
	return d.record(o)
}

// DispatchClose sends a ClosePlayers request.
func (d BatchDispatcher) DispatchClose(req ClosePlayersRequest, ctx context.Context) DispatchOutcome {
	if len(req.ClosePlayers) == 0 {
		return d.record(DispatchOutcome{Operation: OperationClosePlayers, Kind: OutcomeSkipped})
	}
	res, err := d.Client.ClosePlayers(req, ctx)
	if o, ok := failed(OperationClosePlayers, len(req.ClosePlayers), res, err); ok {
		return d.record(o)
	}
	d.Logger.Info("players closed", zap.Int("players", len(req.ClosePlayers)))
	return d.record(DispatchOutcome{Operation: OperationClosePlayers, Kind: OutcomeSuccess, Sent: len(req.ClosePlayers)})
}
