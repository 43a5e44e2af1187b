package sync

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func validImportPlayer(userID string) ImportPlayer {
	deposit := time.Date(2021, 5, 20, 0, 0, 0, 0, time.UTC)
	return ImportPlayer{
		Brand:       "Bet1",
		UserID:      userID,
		Mobile:      "447400123456",
		Country:     "gb",
		DepositDate: &deposit,
		Attribute:   "Casino",
	}
}

func TestPlayerValidator_ValidImportPlayer(t *testing.T) {
	sc, logs := newTestSyncContext(t, testConfig())

	result := NewPlayerValidator(sc).ValidateImportPlayers([]ImportPlayer{validImportPlayer("b001")}, Reactivation)

	assert.Len(t, result, 1)
	assert.Equal(t, 0, logs.Len())
}

func TestPlayerValidator_ImportWarnings(t *testing.T) {
	tests := []struct {
		name         string
		modify       func(*ImportPlayer)
		campaignType CampaignType
		check        string
		message      string
	}{
		{"pseudo country code", func(p *ImportPlayer) { p.Country = "xx" }, Reactivation, CheckCountry, "unknown country"},
		{"unknown country name", func(p *ImportPlayer) { p.Country = "nowhere" }, Reactivation, CheckCountry, "unknown country"},
		{"invalid mobile", func(p *ImportPlayer) { p.Mobile = "12345" }, Reactivation, CheckMobile, "mobile number is not valid"},
		{"missing mobile", func(p *ImportPlayer) { p.Mobile = "" }, Reactivation, CheckMobile, "mobile number is not valid"},
		{"missing deposit date", func(p *ImportPlayer) { p.DepositDate = nil }, VFC, CheckDepositDate, "deposit date is required for campaign"},
		{"missing registration date", func(p *ImportPlayer) {}, NRC, CheckRegistrationDate, "registration date is required for campaign"},
		{"unknown attribute", func(p *ImportPlayer) { p.Attribute = "Darts" }, Reactivation, CheckAttribute, "attribute is not recognised"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, logs := newTestSyncContext(t, testConfig())
			p := validImportPlayer("b001")
			tt.modify(&p)

			result := NewPlayerValidator(sc).ValidateImportPlayers([]ImportPlayer{p}, tt.campaignType)

			assert.Len(t, result, 1, "warnings never drop a player")
			assert.Equal(t, 1, logs.FilterMessage(tt.message).Len())
			assert.Equal(t, float64(1), testutil.ToFloat64(sc.Metrics.ValidationWarnings.WithLabelValues(tt.check)))
		})
	}
}

func TestPlayerValidator_DuplicatesKeepFirst(t *testing.T) {
	sc, logs := newTestSyncContext(t, testConfig())
	first := validImportPlayer("b001")
	second := validImportPlayer("b001")
	second.Attribute = "Poker"
	otherBrand := validImportPlayer("b001")
	otherBrand.Brand = "Bet2"

	result := NewPlayerValidator(sc).ValidateImportPlayers([]ImportPlayer{first, second, otherBrand}, Reactivation)

	assert.Equal(t, []ImportPlayer{first, otherBrand}, result)
	assert.Equal(t, 1, logs.FilterMessage("duplicate import player dropped").Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(sc.Metrics.PlayersRejected.WithLabelValues("import", RejectedDuplicate)))
}

func TestPlayerValidator_UpdatePlayers(t *testing.T) {
	sc, logs := newTestSyncContext(t, testConfig())
	deposit := time.Date(2021, 5, 26, 0, 0, 0, 0, time.UTC)

	result := NewPlayerValidator(sc).ValidateUpdatePlayers([]UpdatePlayer{
		{Brand: "Bet1", UserID: "b001", DepositDate: deposit},
		{Brand: "Bet1", UserID: "b001", DepositDate: deposit.AddDate(0, 0, 1)},
		{Brand: "Bet1", UserID: "b002"},
	})

	if assert.Len(t, result, 1) {
		assert.Equal(t, deposit, result[0].DepositDate)
		assert.Equal(t, "b001", result[0].UserID)
	}
	assert.Equal(t, 1, logs.FilterMessage("duplicate update player dropped").Len())
	assert.Equal(t, 1, logs.FilterMessage("update player without deposit date dropped").Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(sc.Metrics.PlayersRejected.WithLabelValues("update", RejectedMissingDepositDate)))
}

func TestKnownCountry(t *testing.T) {
	for _, c := range []string{"gb", "FI", "SWE", "Malta"} {
		assert.True(t, KnownCountry(c), c)
	}
	for _, c := range []string{"xx", "XX", "zz", "nowhere", ""} {
		assert.False(t, KnownCountry(c), c)
	}
}

func TestValidMobile(t *testing.T) {
	assert.True(t, ValidMobile("447400123456"))
	assert.True(t, ValidMobile("+44 7400 123456"))
	assert.False(t, ValidMobile("12345"))
	assert.False(t, ValidMobile(""))
}

func TestAllowedAttribute(t *testing.T) {
	for _, a := range AllowedAttributes {
		assert.True(t, AllowedAttribute(a))
	}
	assert.False(t, AllowedAttribute("sports"))
	assert.False(t, AllowedAttribute(""))
}
