package sync

import (
	"strings"

	"go.uber.org/zap"
)

// ChecklistFilter keeps update players that Enteractive lists in its checklist.
type ChecklistFilter struct {
	Brands  BrandMap
	Logger  *zap.Logger
	Metrics *Metrics
}

func NewChecklistFilter(sc *SyncContext, brands BrandMap) ChecklistFilter {
	return ChecklistFilter{
		Brands:  brands,
		Logger:  sc.Logger,
		Metrics: sc.Metrics,
	}
}

// Filter keeps players whose user id and resolved brand appear in checklist.
// User ids compare exactly and brand names ignoring case. Order is preserved.
func (f ChecklistFilter) Filter(players []UpdatePlayer, checklist []PlayerCheckList) []UpdatePlayer {
	byUser := make(map[string][]string, len(checklist))
	for _, c := range checklist {
		byUser[c.ClientUserID] = append(byUser[c.ClientUserID], c.BrandName)
	}

	var result []UpdatePlayer
	for _, p := range players {
		if f.listed(p, byUser[p.UserID]) {
			result = append(result, p)
			continue
		}
		f.Logger.Debug("player not in checklist",
			zap.String("brand", p.Brand),
			zap.String("user_id", p.UserID))
	}
	f.Metrics.PlayersAdmitted.WithLabelValues("update").Add(float64(len(result)))
	f.Metrics.PlayersRejected.WithLabelValues("update", RejectedNotInChecklist).Add(float64(len(players) - len(result)))
	return result
}

func (f ChecklistFilter) listed(p UpdatePlayer, brands []string) bool {
	name, ok := f.Brands.Lookup(p.Brand)
	if !ok {
		return false
	}
	for _, b := range brands {
		if strings.EqualFold(b, name) {
			return true
		}
	}
	return false
}
