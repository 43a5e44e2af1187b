package sync

import (
	"context"
	"time"
)

// ImportPlayer is one row of player data to import into Enteractive.
type ImportPlayer struct {
	Brand            string // local brand code, e.g. "Bet1"
	UserID           string
	Username         string
	FirstName        string
	LastName         string
	Mobile           string
	Country          string     // ISO 3166-1 alpha-2, as used by call projects
	DepositDate      *time.Time // required for Reactivation and VFC
	RegistrationDate *time.Time // required for NRC
	LastLoginDate    *time.Time
	Attribute        string // one of AllowedAttributes
	VoiceConsent     bool
	SmsConsent       bool
	AffiliateCode    string
}

// UpdatePlayer is one row of player data to synchronise with Enteractive.
type UpdatePlayer struct {
	Brand             string
	UserID            string
	DepositDate       time.Time
	FailedDepositDate *time.Time
	LastLoginDate     *time.Time
	VoiceConsent      bool
	SmsConsent        bool
	EmailConsent      *bool
	// Eligible is decided upstream; ineligible players are closed after syncing.
	Eligible bool
}

// AllowedAttributes are the player attributes Enteractive recognises.
var AllowedAttributes = []string{"Sports", "Casino", "Poker", "Bingo", "Lotto", "BetUP"}

// PlayerSource supplies the player rows for a run.
type PlayerSource interface {
	ImportPlayers(ctx context.Context) ([]ImportPlayer, error)
	UpdatePlayers(ctx context.Context) ([]UpdatePlayer, error)
}

var importPlayerFields = map[string]bool{
	"brand":            true,
	"userId":           true,
	"username":         true,
	"firstName":        true,
	"lastName":         true,
	"mobile":           true,
	"country":          true,
	"depositDate":      true,
	"registrationDate": true,
	"lastLoginDate":    true,
	"attribute":        true,
	"voiceConsent":     true,
	"smsConsent":       true,
	"affiliateCode":    true,
}

var updatePlayerFields = map[string]bool{
	"brand":             true,
	"userId":            true,
	"depositDate":       true,
	"failedDepositDate": true,
	"lastLoginDate":     true,
	"voiceConsent":      true,
	"smsConsent":        true,
	"emailConsent":      true,
	"eligible":          true,
}

// AsImportPlayer builds an ImportPlayer from mapped row fields.
func (r Row) AsImportPlayer() ImportPlayer {
	return ImportPlayer{
		Brand:            r.String("brand"),
		UserID:           r.String("userId"),
		Username:         r.String("username"),
		FirstName:        r.String("firstName"),
		LastName:         r.String("lastName"),
		Mobile:           r.String("mobile"),
		Country:          r.String("country"),
		DepositDate:      r.Time("depositDate"),
		RegistrationDate: r.Time("registrationDate"),
		LastLoginDate:    r.Time("lastLoginDate"),
		Attribute:        r.String("attribute"),
		VoiceConsent:     r.Bool("voiceConsent"),
		SmsConsent:       r.Bool("smsConsent"),
		AffiliateCode:    r.String("affiliateCode"),
	}
}

// AsUpdatePlayer builds an UpdatePlayer from mapped row fields.
func (r Row) AsUpdatePlayer() UpdatePlayer {
	var depositDate time.Time
	if t := r.Time("depositDate"); t != nil {
		depositDate = *t
	}
	return UpdatePlayer{
		Brand:             r.String("brand"),
		UserID:            r.String("userId"),
		DepositDate:       depositDate,
		FailedDepositDate: r.Time("failedDepositDate"),
		LastLoginDate:     r.Time("lastLoginDate"),
		VoiceConsent:      r.Bool("voiceConsent"),
		SmsConsent:        r.Bool("smsConsent"),
		EmailConsent:      r.OptionalBool("emailConsent"),
		Eligible:          r.Bool("eligible"),
	}
}
