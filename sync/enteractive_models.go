package sync

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EnteractiveResponse is implemented by every Enteractive response body.
type EnteractiveResponse interface {
	IsSuccess() bool
	GetError() error
}

// EnteractiveError is the error body Enteractive returns with a non 2xx status.
type EnteractiveError struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage"`
	Title        string `json:"title"`
	Status       int    `json:"status"`
}

func (e EnteractiveError) message() string {
	switch {
	case e.ErrorMessage != "":
		return e.ErrorMessage
	case e.Title != "":
		return e.Title
	}
	return ""
}

// responseError builds the error for a response that reported success=false.
func responseError(errorMessage string, body EnteractiveError) error {
	msg := errorMessage
	if msg == "" {
		msg = body.message()
	}
	if msg == "" {
		msg = "no error message"
	}
	if body.Status != 0 {
		return fmt.Errorf("%d: %s", body.Status, msg)
	}
	return errors.New(msg)
}

// Player is one player in an AddPlayers request.
// BrandName is null when the local brand has no Enteractive counterpart.
type Player struct {
	BrandName            *string    `json:"brandName"`
	ClientUserID         string     `json:"clientUserId"`
	UserName             string     `json:"userName"`
	FirstName            string     `json:"firstName"`
	LastName             string     `json:"lastName"`
	Mobile               string     `json:"mobile"`
	CountryISO2          string     `json:"countryISO2"`
	LastDepositDate      *time.Time `json:"lastDepositDate,omitempty"`
	RegistrationDate     *time.Time `json:"registrationDate,omitempty"`
	LastLoginDate        *time.Time `json:"lastLoginDate,omitempty"`
	AdditionalAttributes []string   `json:"additionalAttributes"`
	AffiliateCode        string     `json:"affiliateCode,omitempty"`
	VoiceConsent         bool       `json:"voiceConsent"`
	SmsConsent           bool       `json:"smsConsent"`
}

// SyncPlayer is one player in a SyncPlayers request.
type SyncPlayer struct {
	BrandName         *string    `json:"brandName"`
	ClientUserID      string     `json:"clientUserId"`
	LastDepositDate   time.Time  `json:"lastDepositDate"`
	FailedDepositDate *time.Time `json:"failedDepositDate,omitempty"`
	LastLoginDate     *time.Time `json:"lastLoginDate,omitempty"`
	VoiceConsent      bool       `json:"voiceConsent"`
	SmsConsent        bool       `json:"smsConsent"`
	EmailConsent      *bool      `json:"emailConsent,omitempty"`
	LastSyncDate      time.Time  `json:"lastSyncDate"`
}

// ClosePlayer identifies a player to close.
type ClosePlayer struct {
	BrandName    *string `json:"brandName"`
	ClientUserID string  `json:"clientUserId"`
}

// ConvertedPlayer is a synchronised player Enteractive reports as converted.
type ConvertedPlayer struct {
	BrandName      string     `json:"brandName"`
	ClientUserID   string     `json:"clientUserId"`
	ConversionDate *time.Time `json:"conversionDate,omitempty"`
	CampaignType   string     `json:"campaignType,omitempty"`
}

// CallProject is an Enteractive outreach configuration for a brand, country and campaign type.
type CallProject struct {
	Name         string `json:"name,omitempty"`
	BrandName    string `json:"brandName"`
	CountryISO2  string `json:"countryISO2"`
	CampaignType string `json:"campaignType"`
}

// Matches reports whether the call project serves brand, country and campaignType.
// Brands compare ignoring case, country and campaign type exactly.
func (c CallProject) Matches(brand string, country string, campaignType CampaignType) bool {
	return strings.EqualFold(c.BrandName, brand) &&
		c.CountryISO2 == country &&
		c.CampaignType == string(campaignType)
}

// PlayerCheckList is a player Enteractive expects updates for.
type PlayerCheckList struct {
	ClientUserID string `json:"clientUserId"`
	BrandName    string `json:"brandName"`
}

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string           `json:"accessToken"`
	ExpiresIn   int              `json:"expiresIn,omitempty"`
	Error       EnteractiveError `json:"-"`
}

func (r TokenResponse) IsSuccess() bool {
	return r.AccessToken != ""
}

func (r TokenResponse) GetError() error {
	if r.IsSuccess() {
		return nil
	}
	return responseError("", r.Error)
}

type BrandsResponse struct {
	Success      bool             `json:"success"`
	ClientBrands []string         `json:"clientBrands"`
	ErrorMessage string           `json:"errorMessage"`
	Error        EnteractiveError `json:"-"`
}

func (r BrandsResponse) IsSuccess() bool {
	return r.Success
}

func (r BrandsResponse) GetError() error {
	if r.Success {
		return nil
	}
	return responseError(r.ErrorMessage, r.Error)
}

type CallProjectsResponse struct {
	Success      bool             `json:"success"`
	CallProjects []CallProject    `json:"callProjects"`
	ErrorMessage string           `json:"errorMessage"`
	Error        EnteractiveError `json:"-"`
}

func (r CallProjectsResponse) IsSuccess() bool {
	return r.Success
}

func (r CallProjectsResponse) GetError() error {
	if r.Success {
		return nil
	}
	return responseError(r.ErrorMessage, r.Error)
}

type AddPlayersRequest struct {
	CampaignType CampaignType `json:"campaignType"`
	Players      []Player     `json:"players"`
}

type AddPlayersResponse struct {
	Success         bool             `json:"success"`
	PlayersImported []Player         `json:"playersImported"`
	PlayersRejected []Player         `json:"playersRejected"`
	ErrorMessage    string           `json:"errorMessage"`
	Error           EnteractiveError `json:"-"`
}

func (r AddPlayersResponse) IsSuccess() bool {
	return r.Success
}

func (r AddPlayersResponse) GetError() error {
	if r.Success {
		return nil
	}
	return responseError(r.ErrorMessage, r.Error)
}

type SyncPlayersRequest struct {
	SyncPlayers []SyncPlayer `json:"syncPlayers"`
}

type SyncPlayersResponse struct {
	Success          bool              `json:"success"`
	ConvertedPlayers []ConvertedPlayer `json:"convertedPlayers"`
	ErrorMessage     string            `json:"errorMessage"`
	Error            EnteractiveError  `json:"-"`
}

func (r SyncPlayersResponse) IsSuccess() bool {
	return r.Success
}

func (r SyncPlayersResponse) GetError() error {
	if r.Success {
		return nil
	}
	return responseError(r.ErrorMessage, r.Error)
}

type ClosePlayersRequest struct {
	ClosePlayers []ClosePlayer `json:"closePlayers"`
}

type ClosePlayersResponse struct {
	Success      bool             `json:"success"`
	ErrorMessage string           `json:"errorMessage"`
	Error        EnteractiveError `json:"-"`
}

func (r ClosePlayersResponse) IsSuccess() bool {
	return r.Success
}

func (r ClosePlayersResponse) GetError() error {
	if r.Success {
		return nil
	}
	return responseError(r.ErrorMessage, r.Error)
}
