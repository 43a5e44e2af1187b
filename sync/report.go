package sync

import (
	"fmt"
	"time"

	"github.com/tidwall/sjson"
)

// RunReport records what a run did.
type RunReport struct {
	RunID        string
	Environment  string
	CampaignType CampaignType
	StartedAt    time.Time
	FinishedAt   time.Time
	Import       ImportResult
	Update       UpdateResult
	Failures     []error
}

type reportField struct {
	key   string
	value interface{}
}

func setOutcome(json string, path string, o DispatchOutcome) (string, error) {
	fields := []reportField{
		{"operation", o.Operation},
		{"outcome", string(o.Kind)},
		{"sent", o.Sent},
	}
	switch o.Operation {
	case OperationAddPlayers:
		fields = append(fields, reportField{"imported", o.Imported}, reportField{"rejected", o.Rejected})
	case OperationSyncPlayers:
		fields = append(fields, reportField{"converted", o.Converted})
	}
	if o.ErrorMessage != "" {
		fields = append(fields, reportField{"error", o.ErrorMessage})
	}
	var err error
	for _, f := range fields {
		json, err = sjson.Set(json, path+"."+f.key, f.value)
		if err != nil {
			return json, err
		}
	}
	return json, nil
}

// JSON renders the report as a JSON document.
func (r RunReport) JSON() (string, error) {
	result := "{}"
	var err error
	set := func(path string, value interface{}) {
		if err == nil {
			result, err = sjson.Set(result, path, value)
		}
	}

	set("runId", r.RunID)
	set("environment", r.Environment)
	set("campaignType", string(r.CampaignType))
	set("startedAt", r.StartedAt.UTC().Format(time.RFC3339))
	if !r.FinishedAt.IsZero() {
		set("finishedAt", r.FinishedAt.UTC().Format(time.RFC3339))
	}

	set("import.loaded", r.Import.Loaded)
	set("import.admitted", r.Import.Admitted)
	if err == nil && r.Import.Outcome.Operation != "" {
		result, err = setOutcome(result, "import.dispatch", r.Import.Outcome)
	}

	set("update.loaded", r.Update.Loaded)
	set("update.admitted", r.Update.Admitted)
	set("update.ineligible", r.Update.Ineligible)
	if r.Update.ChecklistErr != nil {
		set("update.checklistError", r.Update.ChecklistErr.Error())
	}
	if err == nil && r.Update.Sync.Operation != "" {
		result, err = setOutcome(result, "update.sync", r.Update.Sync)
	}
	if err == nil && r.Update.Close.Operation != "" {
		result, err = setOutcome(result, "update.close", r.Update.Close)
	}

	set("failures", []string{})
	for _, f := range r.Failures {
		set("failures.-1", f.Error())
	}

	if err != nil {
		return "", fmt.Errorf("failed to build run report %w", err)
	}
	return result, nil
}
