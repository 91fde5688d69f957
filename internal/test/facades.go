package test

import (
	"context"
	"sync"
)

// SyncFacadeStub counts background refreshes.
type SyncFacadeStub struct {
	mu         sync.Mutex
	catalog    int
	orders     int
	drafts     int
	CatalogErr error
	OrdersErr  error
}

// RefreshCatalog records a catalog refresh.
func (s *SyncFacadeStub) RefreshCatalog(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog++
	return s.CatalogErr
}

// SyncOrders records an order list reload.
func (s *SyncFacadeStub) SyncOrders(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders++
	return s.OrdersErr
}

// ExpireDrafts records a draft expiry pass.
func (s *SyncFacadeStub) ExpireDrafts(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts++
	return nil
}

// DraftExpiries returns how many draft expiry passes ran.
func (s *SyncFacadeStub) DraftExpiries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts
}

// Counts returns how many refreshes of each kind ran.
func (s *SyncFacadeStub) Counts() (catalog, orders int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog, s.orders
}

// HealthCheckerStub reports Err from HealthCheck.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(context.Context) error { return s.Err }
