// go test github.com/homemade/playersync/sync -v
package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testNow = time.Date(2021, 5, 27, 9, 30, 0, 0, time.UTC)

type mockCRMClient struct {
	mock.Mock
}

func (m *mockCRMClient) GetBrands(ctx context.Context) (BrandsResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(BrandsResponse), args.Error(1)
}

func (m *mockCRMClient) GetCallProjects(ctx context.Context) (CallProjectsResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(CallProjectsResponse), args.Error(1)
}

func (m *mockCRMClient) GetPlayerCheckList(ctx context.Context) ([]PlayerCheckList, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]PlayerCheckList)
	return result, args.Error(1)
}

func (m *mockCRMClient) AddPlayers(req AddPlayersRequest, ctx context.Context) (AddPlayersResponse, error) {
	args := m.Called(req, ctx)
	return args.Get(0).(AddPlayersResponse), args.Error(1)
}

func (m *mockCRMClient) SyncPlayers(req SyncPlayersRequest, ctx context.Context) (SyncPlayersResponse, error) {
	args := m.Called(req, ctx)
	return args.Get(0).(SyncPlayersResponse), args.Error(1)
}

func (m *mockCRMClient) ClosePlayers(req ClosePlayersRequest, ctx context.Context) (ClosePlayersResponse, error) {
	args := m.Called(req, ctx)
	return args.Get(0).(ClosePlayersResponse), args.Error(1)
}

func testConfig() Config {
	var c Config
	c.API.Environment = EnvironmentStaging
	c.API.Endpoints.Staging = "http://enteractive.test"
	c.Brands = map[string]string{"Bet1": "Bet One", "Bet2": "Bet Two"}
	c.Import.CampaignType = Reactivation
	c.Source.Kind = SourceKindSample
	c.FailurePolicy = FailurePolicyPermissive
	return c
}

func newTestSyncContext(t *testing.T, config Config) (*SyncContext, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	sc := NewSyncContext(config,
		WithLogger(zap.New(core)),
		WithClock(func() time.Time { return testNow }),
		WithRunID("test-run"))
	return sc, logs
}

func strPtr(s string) *string {
	return &s
}

// staticSource serves fixed rows.
type staticSource struct {
	imports []ImportPlayer
	updates []UpdatePlayer
	err     error
}

func (s staticSource) ImportPlayers(ctx context.Context) ([]ImportPlayer, error) {
	return s.imports, s.err
}

func (s staticSource) UpdatePlayers(ctx context.Context) ([]UpdatePlayer, error) {
	return s.updates, s.err
}
