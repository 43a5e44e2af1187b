package sync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	gosync "sync"

	"github.com/carlmjohnson/requests"
)

// CRMClient is the Enteractive surface the pipeline depends on.
type CRMClient interface {
	GetBrands(ctx context.Context) (BrandsResponse, error)
	GetCallProjects(ctx context.Context) (CallProjectsResponse, error)
	GetPlayerCheckList(ctx context.Context) ([]PlayerCheckList, error)
	AddPlayers(req AddPlayersRequest, ctx context.Context) (AddPlayersResponse, error)
	SyncPlayers(req SyncPlayersRequest, ctx context.Context) (SyncPlayersResponse, error)
	ClosePlayers(req ClosePlayersRequest, ctx context.Context) (ClosePlayersResponse, error)
}

// EnteractiveFetcherAndUpdater handles all Enteractive API operations.
// It embeds *SyncContext for shared sync configuration and caches the
// access token for the lifetime of the run.
type EnteractiveFetcherAndUpdater struct {
	*SyncContext

	// Transport overrides the HTTP transport, mainly for tests.
	Transport http.RoundTripper

	mu    gosync.Mutex
	token string
}

// NewEnteractiveFetcherAndUpdater creates a client for the configured environment.
func NewEnteractiveFetcherAndUpdater(sc *SyncContext) (*EnteractiveFetcherAndUpdater, error) {
	if _, err := sc.Config.API.Endpoint(); err != nil {
		return nil, err
	}
	return &EnteractiveFetcherAndUpdater{SyncContext: sc}, nil
}

// EnteractiveAPIBuilder returns a new requests.Builder configured for the Enteractive API.
// Recordings are grouped by API environment.
func (e *EnteractiveFetcherAndUpdater) EnteractiveAPIBuilder() *requests.Builder {
	endpoint, _ := e.Config.API.Endpoint()
	result := requests.
		URL(endpoint).
		Client(&http.Client{Timeout: HTTPRequestTimeout}).
		Header(RequestIDHeader, e.RunID)
	if e.Transport != nil {
		result = result.Transport(e.Transport)
	}
	if e.RecordRequests {
		result = result.Transport(requests.Record(e.Transport, fmt.Sprintf("testdata/.requests/%s", e.Config.API.Environment)))
	}
	return result
}

func (e *EnteractiveFetcherAndUpdater) accessToken(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.token != "" {
		return e.token, nil
	}

	req := TokenRequest{
		Username: e.Config.API.Credentials.Username,
		Password: e.Config.API.Credentials.Password,
	}
	var res TokenResponse
	err := e.EnteractiveAPIBuilder().
		Path("/api/v2/token").
		BodyJSON(&req).
		ToJSON(&res).
		ErrorJSON(&res.Error).
		Fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to authenticate with enteractive %w", err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("failed to authenticate with enteractive %w", res.GetError())
	}
	e.token = res.AccessToken
	return e.token, nil
}

// authorised returns a builder carrying the run's bearer token.
func (e *EnteractiveFetcherAndUpdater) authorised(ctx context.Context) (*requests.Builder, error) {
	token, err := e.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	return e.EnteractiveAPIBuilder().Bearer(token), nil
}

// handled treats an error status with a decodable error body as an
// unsuccessful response rather than a transport failure.
func handled(err error) error {
	if errors.Is(err, requests.ErrInvalidHandled) {
		return nil
	}
	return err
}

// GetBrands fetches the brand directory.
func (e *EnteractiveFetcherAndUpdater) GetBrands(ctx context.Context) (BrandsResponse, error) {
	var result BrandsResponse

	rb, err := e.authorised(ctx)
	if err != nil {
		return result, err
	}
	err = rb.
		Path("/api/v2/settings/brands").
		ToJSON(&result).
		ErrorJSON(&result.Error).
		Fetch(ctx)

	return result, handled(err)
}

// GetCallProjects fetches every call project configured for the client.
func (e *EnteractiveFetcherAndUpdater) GetCallProjects(ctx context.Context) (CallProjectsResponse, error) {
	var result CallProjectsResponse

	rb, err := e.authorised(ctx)
	if err != nil {
		return result, err
	}
	err = rb.
		Path("/api/v2/settings/callprojects").
		ToJSON(&result).
		ErrorJSON(&result.Error).
		Fetch(ctx)

	return result, handled(err)
}

// GetPlayerCheckList fetches the players Enteractive expects updates for.
func (e *EnteractiveFetcherAndUpdater) GetPlayerCheckList(ctx context.Context) ([]PlayerCheckList, error) {
	var result []PlayerCheckList
	var failure EnteractiveError

	rb, err := e.authorised(ctx)
	if err != nil {
		return nil, err
	}
	err = rb.
		Path("/api/v2/players/bulk/checklist").
		ToJSON(&result).
		ErrorJSON(&failure).
		Fetch(ctx)
	if errors.Is(err, requests.ErrInvalidHandled) {
		return nil, fmt.Errorf("failed to fetch player checklist %w", responseError("", failure))
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AddPlayers imports players for a campaign type.
func (e *EnteractiveFetcherAndUpdater) AddPlayers(req AddPlayersRequest, ctx context.Context) (AddPlayersResponse, error) {
	var result AddPlayersResponse

	rb, err := e.authorised(ctx)
	if err != nil {
		return result, err
	}
	err = rb.
		Path("/api/v2/players").
		BodyJSON(&req).
		ToJSON(&result).
		ErrorJSON(&result.Error).
		Fetch(ctx)

	return result, handled(err)
}

// SyncPlayers sends the latest activity of players already known to Enteractive.
func (e *EnteractiveFetcherAndUpdater) SyncPlayers(req SyncPlayersRequest, ctx context.Context) (SyncPlayersResponse, error) {
	var result SyncPlayersResponse

	rb, err := e.authorised(ctx)
	if err != nil {
		return result, err
	}
	err = rb.
		Path("/api/v2/players/bulk/sync").
		BodyJSON(&req).
		ToJSON(&result).
		ErrorJSON(&result.Error).
		Fetch(ctx)

	return result, handled(err)
}

// ClosePlayers stops outreach to the given players.
func (e *EnteractiveFetcherAndUpdater) ClosePlayers(req ClosePlayersRequest, ctx context.Context) (ClosePlayersResponse, error) {
	var result ClosePlayersResponse

	rb, err := e.authorised(ctx)
	if err != nil {
		return result, err
	}
	err = rb.
		Path("/api/v2/players/bulk/close").
		BodyJSON(&req).
		ToJSON(&result).
		ErrorJSON(&result.Error).
		Fetch(ctx)

	return result, handled(err)
}
