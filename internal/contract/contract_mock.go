package contract

import (
	"context"

	"github.com/huangsam/gridiron/schema"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

var _ Provider = &MockProvider{} // Compile-time check

// FetchRoster implements the Provider interface.
func (m *MockProvider) FetchRoster(ctx context.Context, team string) ([]schema.RawPlayer, error) {
	ret := m.Called(ctx, team)
	players, _ := ret.Get(0).([]schema.RawPlayer)
	return players, ret.Error(1)
}

// FetchPlayerStats implements the Provider interface.
func (m *MockProvider) FetchPlayerStats(ctx context.Context, playerID string) (map[int]schema.RawStatsBag, error) {
	ret := m.Called(ctx, playerID)
	seasons, _ := ret.Get(0).(map[int]schema.RawStatsBag)
	return seasons, ret.Error(1)
}

// FetchStandings implements the Provider interface.
func (m *MockProvider) FetchStandings(ctx context.Context, season int) (schema.Standings, error) {
	ret := m.Called(ctx, season)
	standings, _ := ret.Get(0).(schema.Standings)
	return standings, ret.Error(1)
}

// MockRankSource is a mock implementation of RankSource for testing.
type MockRankSource struct {
	mock.Mock
}

var _ RankSource = &MockRankSource{} // Compile-time check

// Name implements the RankSource interface.
func (m *MockRankSource) Name() string {
	return m.Called().String(0)
}

// FetchRanks implements the RankSource interface.
func (m *MockRankSource) FetchRanks(ctx context.Context) (map[string]int, error) {
	ret := m.Called(ctx)
	ranks, _ := ret.Get(0).(map[string]int)
	return ranks, ret.Error(1)
}
