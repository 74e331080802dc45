// Package iocache is for caching provider I/O and persisting ranking runs.
package iocache

import (
	"sync"

	"github.com/huangsam/gridiron/internal/contract"
)

// CacheStoreManager manages multiple CacheStore instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	provider     contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetProviderStore returns the provider response CacheStore.
func (mgr *CacheStoreManager) GetProviderStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.provider
}

// GetAnalysisStore returns the ranking-run AnalysisStore.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
