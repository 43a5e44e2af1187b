package sync

import (
	"strings"

	"github.com/biter777/countries"
	"github.com/ttacon/libphonenumber"
	"go.uber.org/zap"
)

// Validation check names recorded on playersync_validation_warnings_total.
const (
	CheckCountry          = "country"
	CheckMobile           = "mobile"
	CheckDepositDate      = "deposit_date"
	CheckRegistrationDate = "registration_date"
	CheckAttribute        = "attribute"
	CheckDuplicate        = "duplicate"
)

// PlayerValidator warns about suspicious player rows and drops duplicates.
// Only duplicates are removed; every other problem is left for Enteractive to reject.
type PlayerValidator struct {
	Logger  *zap.Logger
	Metrics *Metrics
}

func NewPlayerValidator(sc *SyncContext) PlayerValidator {
	return PlayerValidator{Logger: sc.Logger, Metrics: sc.Metrics}
}

func (v PlayerValidator) warn(check string, userID string, brand string, msg string, fields ...zap.Field) {
	v.Metrics.ValidationWarnings.WithLabelValues(check).Inc()
	v.Logger.Warn(msg, append([]zap.Field{zap.String("brand", brand), zap.String("user_id", userID)}, fields...)...)
}

type playerKey struct {
	brand  string
	userID string
}

// ValidateImportPlayers checks rows for campaignType and keeps the first row of each (brand, userId).
func (v PlayerValidator) ValidateImportPlayers(players []ImportPlayer, campaignType CampaignType) []ImportPlayer {
	seen := make(map[playerKey]bool, len(players))
	result := make([]ImportPlayer, 0, len(players))
	for _, p := range players {
		key := playerKey{brand: p.Brand, userID: p.UserID}
		if seen[key] {
			v.warn(CheckDuplicate, p.UserID, p.Brand, "duplicate import player dropped")
			v.Metrics.PlayersRejected.WithLabelValues("import", RejectedDuplicate).Inc()
			continue
		}
		seen[key] = true

		if !KnownCountry(p.Country) {
			v.warn(CheckCountry, p.UserID, p.Brand, "unknown country", zap.String("country", p.Country))
		}
		if !ValidMobile(p.Mobile) {
			v.warn(CheckMobile, p.UserID, p.Brand, "mobile number is not valid", zap.String("mobile", p.Mobile))
		}
		if campaignType.RequiresDepositDate() && p.DepositDate == nil {
			v.warn(CheckDepositDate, p.UserID, p.Brand, "deposit date is required for campaign",
				zap.String("campaign_type", string(campaignType)))
		}
		if campaignType.RequiresRegistrationDate() && p.RegistrationDate == nil {
			v.warn(CheckRegistrationDate, p.UserID, p.Brand, "registration date is required for campaign",
				zap.String("campaign_type", string(campaignType)))
		}
		if !AllowedAttribute(p.Attribute) {
			v.warn(CheckAttribute, p.UserID, p.Brand, "attribute is not recognised", zap.String("attribute", p.Attribute))
		}
		result = append(result, p)
	}
	return result
}

// ValidateUpdatePlayers keeps the first row of each (brand, userId) and drops
// rows without a deposit date.
func (v PlayerValidator) ValidateUpdatePlayers(players []UpdatePlayer) []UpdatePlayer {
	seen := make(map[playerKey]bool, len(players))
	result := make([]UpdatePlayer, 0, len(players))
	for _, p := range players {
		key := playerKey{brand: p.Brand, userID: p.UserID}
		if seen[key] {
			v.warn(CheckDuplicate, p.UserID, p.Brand, "duplicate update player dropped")
			v.Metrics.PlayersRejected.WithLabelValues("update", RejectedDuplicate).Inc()
			continue
		}
		seen[key] = true
		if p.DepositDate.IsZero() {
			v.warn(CheckDepositDate, p.UserID, p.Brand, "update player without deposit date dropped")
			v.Metrics.PlayersRejected.WithLabelValues("update", RejectedMissingDepositDate).Inc()
			continue
		}
		result = append(result, p)
	}
	return result
}

// KnownCountry reports whether country names an ISO 3166-1 country.
// The None pseudo-country that "XX" resolves to is not one.
func KnownCountry(country string) bool {
	c := countries.ByName(country)
	return c != countries.Unknown && c != countries.None
}

// ValidMobile reports whether mobile is a valid international number,
// with or without a leading +.
func ValidMobile(mobile string) bool {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return false
	}
	if !strings.HasPrefix(mobile, "+") {
		mobile = "+" + mobile
	}
	num, err := libphonenumber.Parse(mobile, "")
	if err != nil {
		return false
	}
	return libphonenumber.IsValidNumber(num)
}

// AllowedAttribute reports whether attribute is one of AllowedAttributes.
func AllowedAttribute(attribute string) bool {
	for _, a := range AllowedAttributes {
		if a == attribute {
			return true
		}
	}
	return false
}
