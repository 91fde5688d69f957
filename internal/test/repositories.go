package test

import (
	"context"
	"fmt"
	"sync"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/domain/repository"
)

// CatalogRepositoryStub serves fixed reference data. Errs fails individual
// resources by name ("products", "categories", "cities", "areas", "shops").
type CatalogRepositoryStub struct {
	mu      sync.Mutex
	Catalog model.Catalog
	Errs    map[string]error
	Calls   int
}

func (s *CatalogRepositoryStub) fail(resource string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resource == "products" {
		s.Calls++
	}
	return s.Errs[resource]
}

// Products returns configured products.
func (s *CatalogRepositoryStub) Products(context.Context) ([]model.Product, error) {
	if err := s.fail("products"); err != nil {
		return nil, err
	}
	return s.Catalog.Products, nil
}

// Categories returns configured categories.
func (s *CatalogRepositoryStub) Categories(context.Context) ([]model.Category, error) {
	if err := s.fail("categories"); err != nil {
		return nil, err
	}
	return s.Catalog.Categories, nil
}

// Cities returns configured cities.
func (s *CatalogRepositoryStub) Cities(context.Context) ([]model.City, error) {
	if err := s.fail("cities"); err != nil {
		return nil, err
	}
	return s.Catalog.Cities, nil
}

// Areas returns configured areas.
func (s *CatalogRepositoryStub) Areas(context.Context) ([]model.Area, error) {
	if err := s.fail("areas"); err != nil {
		return nil, err
	}
	return s.Catalog.Areas, nil
}

// Shops returns configured shops.
func (s *CatalogRepositoryStub) Shops(context.Context) ([]model.Shop, error) {
	if err := s.fail("shops"); err != nil {
		return nil, err
	}
	return s.Catalog.Shops, nil
}

// OrderRepositoryStub keeps orders in memory. The *Fn overrides replace the
// default behaviour of the matching call.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders []model.Order
	next   int

	ListFn   func(context.Context) ([]model.Order, error)
	CreateFn func(context.Context, model.Order) (*model.Order, error)
	UpdateFn func(context.Context, model.Order) error
	DeleteFn func(context.Context, string) error

	Created []model.Order
	Updated []model.Order
	Deleted []string
}

// List returns stored orders.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, len(s.Orders))
	copy(out, s.Orders)
	return out, nil
}

// Create stores the order under a generated identifier.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	s.mu.Lock()
	s.Created = append(s.Created, order)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	order.ID = fmt.Sprintf("order-%d", s.next)
	s.Orders = append(s.Orders, order)
	return &order, nil
}

// Update replaces a stored order.
func (s *OrderRepositoryStub) Update(ctx context.Context, order model.Order) error {
	s.mu.Lock()
	s.Updated = append(s.Updated, order)
	s.mu.Unlock()
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Orders {
		if s.Orders[i].ID == order.ID {
			s.Orders[i] = order
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Delete removes a stored order.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	s.Deleted = append(s.Deleted, id)
	s.mu.Unlock()
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			s.Orders = append(s.Orders[:i], s.Orders[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// CartRepositoryStub stores cart content per user in memory.
type CartRepositoryStub struct {
	mu      sync.Mutex
	Content map[string][]byte
	LoadErr error
	SaveErr error
	Saves   int
	Deletes int
}

// NewCartRepositoryStub constructs an empty cart store.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Content: make(map[string][]byte)}
}

// Load returns stored content or nil.
func (s *CartRepositoryStub) Load(_ context.Context, userID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return s.Content[userID], nil
}

// Save stores content unless SaveErr is set.
func (s *CartRepositoryStub) Save(_ context.Context, userID string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saves++
	s.Content[userID] = append([]byte(nil), content...)
	return nil
}

// Delete forgets the user's content.
func (s *CartRepositoryStub) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deletes++
	delete(s.Content, userID)
	return nil
}

// Stored returns the raw content saved for userID.
func (s *CartRepositoryStub) Stored(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.Content[userID])
}

// SessionVerifierStub resolves upstream tokens through VerifyFn.
type SessionVerifierStub struct {
	VerifyFn func(context.Context, string) (*model.User, error)
}

// Verify delegates to VerifyFn or returns a salesman.
func (s SessionVerifierStub) Verify(ctx context.Context, token string) (*model.User, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, token)
	}
	return &model.User{ID: "u1", Name: "sam", Email: "sam@example.com", Role: model.RoleSalesman}, nil
}

// EventPublisherStub records published events.
type EventPublisherStub struct {
	mu     sync.Mutex
	Events []model.OrderEvent
	Err    error
}

// Publish records e and returns Err.
func (s *EventPublisherStub) Publish(_ context.Context, e model.OrderEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, e)
	return s.Err
}

// Types lists the recorded event types in order.
func (s *EventPublisherStub) Types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]string, 0, len(s.Events))
	for _, e := range s.Events {
		types = append(types, e.Type)
	}
	return types
}

// RecorderStub counts workflow metrics.
type RecorderStub struct {
	mu        sync.Mutex
	Fetched   map[string]int
	Failed    map[string]int
	Submitted map[string]int
	Reverts   int
}

// ReferenceFetched counts fetches per resource and outcome.
func (r *RecorderStub) ReferenceFetched(resource string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fetched == nil {
		r.Fetched, r.Failed = make(map[string]int), make(map[string]int)
	}
	if err != nil {
		r.Failed[resource]++
		return
	}
	r.Fetched[resource]++
}

// OrderSubmitted counts submissions per source.
func (r *RecorderStub) OrderSubmitted(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Submitted == nil {
		r.Submitted = make(map[string]int)
	}
	r.Submitted[source]++
}

// StatusReverted counts compensated status changes.
func (r *RecorderStub) StatusReverted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reverts++
}

var (
	_ repository.CatalogRepository = (*CatalogRepositoryStub)(nil)
	_ repository.OrderRepository   = (*OrderRepositoryStub)(nil)
	_ repository.CartRepository    = (*CartRepositoryStub)(nil)
	_ repository.SessionVerifier   = SessionVerifierStub{}
	_ repository.EventPublisher    = (*EventPublisherStub)(nil)
)
