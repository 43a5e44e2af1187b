package sync

import (
	"context"
	"fmt"
	gosync "sync"

	"go.uber.org/zap"
)

// RemoteLookups caches the Enteractive brand directory and call projects for one run.
// Only successful fetches are kept; a failed fetch is retried by the next caller.
type RemoteLookups struct {
	Client  CRMClient
	Logger  *zap.Logger
	Metrics *Metrics

	mu           gosync.Mutex
	brands       []string
	brandsOK     bool
	callProjects []CallProject
	projectsOK   bool
	failures     []error
}

// NewRemoteLookups creates an empty cache over client.
func NewRemoteLookups(client CRMClient, sc *SyncContext) *RemoteLookups {
	return &RemoteLookups{
		Client:  client,
		Logger:  sc.Logger,
		Metrics: sc.Metrics,
	}
}

func (l *RemoteLookups) fetchFailed(lookup string, err error) {
	l.failures = append(l.failures, err)
	if l.Metrics != nil {
		l.Metrics.RemoteFetchFailures.WithLabelValues(lookup).Inc()
	}
	l.Logger.Warn("Enteractive lookup failed", zap.String("lookup", lookup), zap.Error(err))
}

// Failures returns every failed fetch so far.
func (l *RemoteLookups) Failures() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]error(nil), l.failures...)
}

// Brands returns the brand directory, fetching it on first use.
func (l *RemoteLookups) Brands(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.brandsOK {
		return l.brands, nil
	}
	res, err := l.Client.GetBrands(ctx)
	if err != nil {
		err = &TransportError{Operation: "GetBrands", Err: err}
		l.fetchFailed("brands", err)
		return nil, err
	}
	if !res.IsSuccess() {
		err = fmt.Errorf("GetBrands %w %v", ErrRemoteFetchFailure, res.GetError())
		l.fetchFailed("brands", err)
		return nil, err
	}
	l.brands = res.ClientBrands
	l.brandsOK = true
	return l.brands, nil
}

// CallProjects returns every call project, fetching them on first use.
func (l *RemoteLookups) CallProjects(ctx context.Context) ([]CallProject, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.projectsOK {
		return l.callProjects, nil
	}
	res, err := l.Client.GetCallProjects(ctx)
	if err != nil {
		err = &TransportError{Operation: "GetCallProjects", Err: err}
		l.fetchFailed("call_projects", err)
		return nil, err
	}
	if !res.IsSuccess() {
		err = fmt.Errorf("GetCallProjects %w %v", ErrRemoteFetchFailure, res.GetError())
		l.fetchFailed("call_projects", err)
		return nil, err
	}
	l.callProjects = res.CallProjects
	l.projectsOK = true
	return l.callProjects, nil
}

// HasCallProject reports whether a call project exists for brand, country and campaignType.
// A nil brand never matches.
func (l *RemoteLookups) HasCallProject(brand *string, country string, campaignType CampaignType, ctx context.Context) (bool, error) {
	projects, err := l.CallProjects(ctx)
	if err != nil {
		return false, err
	}
	if brand == nil {
		return false, nil
	}
	for _, p := range projects {
		if p.Matches(*brand, country, campaignType) {
			return true, nil
		}
	}
	return false, nil
}
