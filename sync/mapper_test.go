package sync

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMapper() RecordMapper {
	return RecordMapper{
		Brands: NewBrandMap(map[string]string{"Bet1": "Bet One"}),
		Now:    func() time.Time { return testNow },
	}
}

func TestRecordMapper_MapImportPlayer(t *testing.T) {
	deposit := time.Date(2021, 5, 20, 0, 0, 0, 0, time.UTC)
	p := ImportPlayer{
		Brand: "Bet1", UserID: "b001", Username: "JohnDoe", FirstName: "John", LastName: "Doe",
		Mobile: "35679000001", Country: "fi", DepositDate: &deposit, Attribute: "Sports",
		VoiceConsent: true, SmsConsent: false, AffiliateCode: "aff1",
	}

	result := testMapper().MapImportPlayer(p)

	require.NotNil(t, result.BrandName)
	assert.Equal(t, "Bet One", *result.BrandName)
	assert.Equal(t, "b001", result.ClientUserID)
	assert.Equal(t, "JohnDoe", result.UserName)
	assert.Equal(t, "fi", result.CountryISO2)
	assert.Equal(t, []string{"Sports"}, result.AdditionalAttributes)
	assert.Equal(t, &deposit, result.LastDepositDate)
	assert.Nil(t, result.RegistrationDate)
	assert.True(t, result.VoiceConsent)
	assert.False(t, result.SmsConsent)
	assert.Equal(t, "aff1", result.AffiliateCode)
}

func TestRecordMapper_UnmappedBrandIsNull(t *testing.T) {
	m := testMapper()

	player := m.MapImportPlayer(ImportPlayer{Brand: "Bet9", UserID: "z001", Attribute: "Poker"})
	assert.Nil(t, player.BrandName)
	b, err := json.Marshal(player)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"brandName":null`)

	closing := m.MapClosePlayer(UpdatePlayer{Brand: "Bet9", UserID: "z001"})
	b, err = json.Marshal(closing)
	require.NoError(t, err)
	assert.JSONEq(t, `{"brandName":null,"clientUserId":"z001"}`, string(b))
}

func TestRecordMapper_MapUpdatePlayerStampsSyncDate(t *testing.T) {
	deposit := time.Date(2021, 5, 26, 0, 0, 0, 0, time.UTC)
	failed := time.Date(2021, 4, 11, 0, 0, 0, 0, time.UTC)
	email := true

	result := testMapper().MapUpdatePlayer(UpdatePlayer{
		Brand: "Bet1", UserID: "b001", DepositDate: deposit, FailedDepositDate: &failed,
		VoiceConsent: true, SmsConsent: true, EmailConsent: &email, Eligible: true,
	})

	assert.Equal(t, "Bet One", *result.BrandName)
	assert.Equal(t, deposit, result.LastDepositDate)
	assert.Equal(t, &failed, result.FailedDepositDate)
	assert.Nil(t, result.LastLoginDate)
	assert.Equal(t, &email, result.EmailConsent)
	assert.Equal(t, testNow, result.LastSyncDate)
}

func TestRecordMapper_Requests(t *testing.T) {
	m := testMapper()
	updates := []UpdatePlayer{{Brand: "Bet1", UserID: "b001"}, {Brand: "Bet1", UserID: "b002"}}

	add := m.AddPlayersRequest([]ImportPlayer{{Brand: "Bet1", UserID: "b001"}}, NRC)
	assert.Equal(t, NRC, add.CampaignType)
	assert.Len(t, add.Players, 1)

	assert.Len(t, m.SyncPlayersRequest(updates).SyncPlayers, 2)
	assert.Len(t, m.ClosePlayersRequest(updates).ClosePlayers, 2)

	empty := m.SyncPlayersRequest(nil)
	b, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"syncPlayers":[]}`, string(b))
}

func TestRecordMapper_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	m := testMapper()

	properties.Property("import mapping is deterministic", prop.ForAll(
		func(brand, userID, country, attribute string, voice bool) bool {
			p := ImportPlayer{Brand: brand, UserID: userID, Country: country, Attribute: attribute, VoiceConsent: voice}
			return reflect.DeepEqual(m.MapImportPlayer(p), m.MapImportPlayer(p))
		},
		gen.OneConstOf("Bet1", "Bet2", ""),
		gen.Identifier(),
		gen.AlphaString(),
		gen.OneConstOf("Sports", "Casino", "Poker", "Bingo", "Lotto", "BetUP"),
		gen.Bool(),
	))

	properties.Property("brand is null exactly when unmapped", prop.ForAll(
		func(brand, userID string) bool {
			_, mapped := m.Brands.Lookup(brand)
			p := m.MapImportPlayer(ImportPlayer{Brand: brand, UserID: userID})
			s := m.MapUpdatePlayer(UpdatePlayer{Brand: brand, UserID: userID})
			c := m.MapClosePlayer(UpdatePlayer{Brand: brand, UserID: userID})
			return (p.BrandName != nil) == mapped && (s.BrandName != nil) == mapped && (c.BrandName != nil) == mapped
		},
		gen.AnyString(),
		gen.Identifier(),
	))

	properties.Property("update mapping is idempotent under a fixed clock", prop.ForAll(
		func(userID string, days int, eligible bool) bool {
			p := UpdatePlayer{Brand: "Bet1", UserID: userID, DepositDate: testNow.AddDate(0, 0, -days), Eligible: eligible}
			first := m.MapUpdatePlayer(p)
			second := m.MapUpdatePlayer(p)
			return reflect.DeepEqual(first, second) && first.LastSyncDate.Equal(testNow)
		},
		gen.Identifier(),
		gen.IntRange(0, 3650),
		gen.Bool(),
	))

	properties.Property("every attribute becomes a single additional attribute", prop.ForAll(
		func(attribute string) bool {
			p := m.MapImportPlayer(ImportPlayer{Brand: "Bet1", Attribute: attribute})
			return len(p.AdditionalAttributes) == 1 && p.AdditionalAttributes[0] == attribute
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
