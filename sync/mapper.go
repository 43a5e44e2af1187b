package sync

import "time"

// RecordMapper converts player rows into Enteractive request shapes.
// Mapping is pure: the same players, brands and clock give the same output.
type RecordMapper struct {
	Brands BrandMap
	Now    func() time.Time
}

func NewRecordMapper(sc *SyncContext, brands BrandMap) RecordMapper {
	return RecordMapper{Brands: brands, Now: sc.Now}
}

func (m RecordMapper) MapImportPlayer(p ImportPlayer) Player {
	return Player{
		BrandName:            m.Brands.Name(p.Brand),
		ClientUserID:         p.UserID,
		UserName:             p.Username,
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		Mobile:               p.Mobile,
		CountryISO2:          p.Country,
		LastDepositDate:      p.DepositDate,
		RegistrationDate:     p.RegistrationDate,
		LastLoginDate:        p.LastLoginDate,
		AdditionalAttributes: []string{p.Attribute},
		AffiliateCode:        p.AffiliateCode,
		VoiceConsent:         p.VoiceConsent,
		SmsConsent:           p.SmsConsent,
	}
}

func (m RecordMapper) MapUpdatePlayer(p UpdatePlayer) SyncPlayer {
	return SyncPlayer{
		BrandName:         m.Brands.Name(p.Brand),
		ClientUserID:      p.UserID,
		LastDepositDate:   p.DepositDate,
		FailedDepositDate: p.FailedDepositDate,
		LastLoginDate:     p.LastLoginDate,
		VoiceConsent:      p.VoiceConsent,
		SmsConsent:        p.SmsConsent,
		EmailConsent:      p.EmailConsent,
		LastSyncDate:      m.Now(),
	}
}

func (m RecordMapper) MapClosePlayer(p UpdatePlayer) ClosePlayer {
	return ClosePlayer{
		BrandName:    m.Brands.Name(p.Brand),
		ClientUserID: p.UserID,
	}
}

// AddPlayersRequest maps players for an import under campaignType.
func (m RecordMapper) AddPlayersRequest(players []ImportPlayer, campaignType CampaignType) AddPlayersRequest {
	result := AddPlayersRequest{
		CampaignType: campaignType,
		Players:      make([]Player, 0, len(players)),
	}
	for _, p := range players {
		result.Players = append(result.Players, m.MapImportPlayer(p))
	}
	return result
}

func (m RecordMapper) SyncPlayersRequest(players []UpdatePlayer) SyncPlayersRequest {
	result := SyncPlayersRequest{SyncPlayers: make([]SyncPlayer, 0, len(players))}
	for _, p := range players {
		result.SyncPlayers = append(result.SyncPlayers, m.MapUpdatePlayer(p))
	}
	return result
}

func (m RecordMapper) ClosePlayersRequest(players []UpdatePlayer) ClosePlayersRequest {
	result := ClosePlayersRequest{ClosePlayers: make([]ClosePlayer, 0, len(players))}
	for _, p := range players {
		result.ClosePlayers = append(result.ClosePlayers, m.MapClosePlayer(p))
	}
	return result
}
