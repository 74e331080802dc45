package iocache

import (
	"time"

	"github.com/huangsam/gridiron/internal/contract"
	"github.com/huangsam/gridiron/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetProviderStore implements the CacheManager interface.
func (m *MockCacheManager) GetProviderStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetAnalysisStore implements the CacheManager interface.
func (m *MockCacheManager) GetAnalysisStore() contract.AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AnalysisStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockAnalysisStore is a mock implementation of AnalysisStore for testing.
type MockAnalysisStore struct {
	mock.Mock
}

var _ contract.AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginRun implements the AnalysisStore interface.
func (m *MockAnalysisStore) BeginRun(startTime time.Time, format schema.ScoringFormat, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, format, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the AnalysisStore interface.
func (m *MockAnalysisStore) EndRun(runID int64, endTime time.Time, playersScored int) error {
	args := m.Called(runID, endTime, playersScored)
	return args.Error(0)
}

// RecordPlayerScore implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordPlayerScore(runID int64, player schema.RankedPlayer) error {
	args := m.Called(runID, player)
	return args.Error(0)
}

// GetStatus implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.AnalysisStatus), args.Error(1)
}

// GetAllRankingRuns implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllRankingRuns() ([]schema.RankingRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RankingRunRecord)
	return runs, args.Error(1)
}

// GetAllPlayerScores implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllPlayerScores() ([]schema.PlayerScoreRecord, error) {
	args := m.Called()
	scores, _ := args.Get(0).([]schema.PlayerScoreRecord)
	return scores, args.Error(1)
}

// Close implements the AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
