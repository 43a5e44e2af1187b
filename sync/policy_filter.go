package sync

import (
	"context"

	"go.uber.org/zap"
)

// PolicyFilter admits import players whose brand and country have a call
// project for the campaign type.
type PolicyFilter struct {
	Brands  BrandMap
	Lookups *RemoteLookups
	Logger  *zap.Logger
	Metrics *Metrics
}

type brandCountry struct {
	brand   string
	country string
}

// Filter checks each distinct (brand, country) pair once, in order of first
// appearance, and returns the players of admitted pairs grouped by pair.
func (f PolicyFilter) Filter(players []ImportPlayer, campaignType CampaignType, ctx context.Context) []ImportPlayer {
	var pairs []brandCountry
	grouped := make(map[brandCountry][]ImportPlayer)
	for _, p := range players {
		key := brandCountry{brand: p.Brand, country: p.Country}
		if _, seen := grouped[key]; !seen {
			pairs = append(pairs, key)
		}
		grouped[key] = append(grouped[key], p)
	}

	if _, err := f.Lookups.CallProjects(ctx); err != nil {
		f.Logger.Warn("call projects unavailable, all players rejected",
			zap.Int("players", len(players)),
			zap.Error(err))
		f.Metrics.PlayersRejected.WithLabelValues("import", RejectedNoCallProject).Add(float64(len(players)))
		return nil
	}

	var result []ImportPlayer
	for _, pair := range pairs {
		members := grouped[pair]
		// call projects are cached at this point
		admitted, _ := f.Lookups.HasCallProject(f.Brands.Name(pair.brand), pair.country, campaignType, ctx)
		if !admitted {
			f.Logger.Warn("call project does not exist",
				zap.String("campaign_type", string(campaignType)),
				zap.String("brand", pair.brand),
				zap.String("country", pair.country),
				zap.Int("players", len(members)))
			f.Metrics.PlayersRejected.WithLabelValues("import", RejectedNoCallProject).Add(float64(len(members)))
			continue
		}
		f.Metrics.PlayersAdmitted.WithLabelValues("import").Add(float64(len(members)))
		result = append(result, members...)
	}
	return result
}

// NewPolicyFilter creates a filter using the run's brands and lookups.
func NewPolicyFilter(sc *SyncContext, brands BrandMap, lookups *RemoteLookups) PolicyFilter {
	return PolicyFilter{
		Brands:  brands,
		Lookups: lookups,
		Logger:  sc.Logger,
		Metrics: sc.Metrics,
	}
}
