package sync

import (
	"context"
	"time"
)

// SampleSource serves a fixed demonstration dataset.
// Replace it with a FileSource (or any PlayerSource) to sync real data.
type SampleSource struct{}

func sampleDate(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleBool(b bool) *bool {
	return &b
}

func (SampleSource) ImportPlayers(ctx context.Context) ([]ImportPlayer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []ImportPlayer{
		{Brand: "Bet1", UserID: "b001", Username: "JohnDoe", FirstName: "John", LastName: "Doe", Mobile: "35679000001", Country: "fi", DepositDate: sampleDate(2021, 5, 20), Attribute: "Sports", VoiceConsent: true, SmsConsent: true},
		{Brand: "Bet1", UserID: "b002", Username: "jtaylor", FirstName: "Jane", LastName: "Taylor", Mobile: "35679000002", Country: "fi", DepositDate: sampleDate(2021, 5, 18), Attribute: "Casino", VoiceConsent: true, SmsConsent: false},
		{Brand: "Bet1", UserID: "b003", Username: "JoeSmith", FirstName: "Joseph", LastName: "Smith", Mobile: "35679000003", Country: "gb", DepositDate: sampleDate(2021, 5, 10), Attribute: "Poker", VoiceConsent: true, SmsConsent: true},
		{Brand: "Bet1", UserID: "b004", Username: "KurtM", FirstName: "Kurt", LastName: "Morrison", Mobile: "35679000004", Country: "gb", DepositDate: sampleDate(2021, 5, 11), Attribute: "Sports", VoiceConsent: true, SmsConsent: true},
		{Brand: "Bet1", UserID: "b005", Username: "hjones", FirstName: "George", LastName: "Jones", Mobile: "35679000005", Country: "gb", DepositDate: sampleDate(2021, 5, 12), Attribute: "Lotto", VoiceConsent: false, SmsConsent: false},
		{Brand: "Bet2", UserID: "c001", Username: "otaylor", FirstName: "Oliver", LastName: "Taylor", Mobile: "35679000006", Country: "se", DepositDate: sampleDate(2021, 5, 13), Attribute: "Bingo", VoiceConsent: true, SmsConsent: true},
		{Brand: "Bet2", UserID: "c002", Username: "hbrown", FirstName: "Harry", LastName: "Brown", Mobile: "35679000007", Country: "fi", DepositDate: sampleDate(2021, 5, 14), Attribute: "Sports", VoiceConsent: true, SmsConsent: true},
		{Brand: "Bet2", UserID: "c003", Username: "jwilliams", FirstName: "Jack", LastName: "Williams", Mobile: "35679000008", Country: "gb", DepositDate: sampleDate(2021, 4, 11), Attribute: "Sports", VoiceConsent: true, SmsConsent: false},
		{Brand: "Bet2", UserID: "c004", Username: "cjohnson", FirstName: "Charlie", LastName: "Johnson", Mobile: "35679000009", Country: "se", DepositDate: sampleDate(2021, 3, 16), Attribute: "Lotto", VoiceConsent: true, SmsConsent: true},
		{Brand: "Bet2", UserID: "c005", Username: "edavies", FirstName: "Emily", LastName: "Davies", Mobile: "356790000010", Country: "se", DepositDate: sampleDate(2021, 5, 16), Attribute: "Poker", VoiceConsent: true, SmsConsent: false},
	}, nil
}

func (SampleSource) UpdatePlayers(ctx context.Context) ([]UpdatePlayer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []UpdatePlayer{
		{Brand: "Bet1", UserID: "b001", DepositDate: *sampleDate(2021, 5, 26), FailedDepositDate: sampleDate(2021, 4, 11), LastLoginDate: sampleDate(2021, 5, 23), VoiceConsent: true, SmsConsent: true, EmailConsent: sampleBool(true), Eligible: true},
		{Brand: "Bet1", UserID: "b002", DepositDate: *sampleDate(2021, 5, 20), FailedDepositDate: sampleDate(2021, 5, 10), LastLoginDate: sampleDate(2021, 5, 21), VoiceConsent: true, SmsConsent: true, EmailConsent: sampleBool(true), Eligible: false},
		{Brand: "Bet1", UserID: "b003", DepositDate: *sampleDate(2021, 5, 10), LastLoginDate: sampleDate(2021, 5, 11), VoiceConsent: true, SmsConsent: true, EmailConsent: sampleBool(false), Eligible: true},
		{Brand: "Bet1", UserID: "b004", DepositDate: *sampleDate(2021, 5, 12), LastLoginDate: sampleDate(2021, 5, 26), VoiceConsent: true, SmsConsent: true, EmailConsent: sampleBool(true), Eligible: true},
		{Brand: "Bet1", UserID: "b005", DepositDate: *sampleDate(2021, 5, 26), LastLoginDate: sampleDate(2021, 5, 13), VoiceConsent: true, SmsConsent: false, EmailConsent: sampleBool(false), Eligible: true},
		{Brand: "Bet2", UserID: "c001", DepositDate: *sampleDate(2021, 5, 13), LastLoginDate: sampleDate(2021, 5, 13), VoiceConsent: true, SmsConsent: true, EmailConsent: sampleBool(true), Eligible: true},
		{Brand: "Bet2", UserID: "c002", DepositDate: *sampleDate(2021, 5, 14), FailedDepositDate: sampleDate(2021, 5, 12), LastLoginDate: sampleDate(2021, 5, 15), VoiceConsent: true, SmsConsent: true, EmailConsent: sampleBool(true), Eligible: true},
		{Brand: "Bet2", UserID: "c003", DepositDate: *sampleDate(2021, 4, 11), FailedDepositDate: sampleDate(2021, 4, 6), LastLoginDate: sampleDate(2021, 4, 12), VoiceConsent: true, SmsConsent: true, EmailConsent: sampleBool(false), Eligible: false},
		{Brand: "Bet2", UserID: "c004", DepositDate: *sampleDate(2021, 3, 16), LastLoginDate: sampleDate(2021, 3, 17), VoiceConsent: false, SmsConsent: true, EmailConsent: sampleBool(true), Eligible: true},
		{Brand: "Bet2", UserID: "c005", DepositDate: *sampleDate(2021, 5, 16), FailedDepositDate: sampleDate(2021, 4, 7), LastLoginDate: sampleDate(2021, 5, 16), VoiceConsent: false, SmsConsent: false, EmailConsent: sampleBool(false), Eligible: true},
	}, nil
}
