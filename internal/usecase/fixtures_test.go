package usecase

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/opeak/internal/config"
	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/ordering"
	testhelpers "github.com/polkiloo/opeak/internal/test"
)

var (
	admin    = model.User{ID: "a1", Name: "ada", Email: "ada@example.com", Role: model.RoleAdmin}
	salesman = model.User{ID: "u1", Name: "sam", Email: "sam@example.com", Role: model.RoleSalesman}
	stranger = model.User{ID: "u2", Name: "sue", Email: "sue@example.com", Role: model.RoleSalesman}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func referenceData() model.Catalog {
	return model.Catalog{
		Products: []model.Product{
			{ID: "p1", Name: "Shirt A", Price: price(10), Category: "c1", Subcategory: "Shirts"},
			{ID: "p2", Name: "Pants", Price: price(25), Category: "c1", Subcategory: "Pants"},
			{ID: "p3", Name: "T-Shirt", Price: price(5), Category: "c1"},
			{ID: "p4", Name: "Cap", Price: price(7), Category: "c1", Subcategory: "Hats"},
		},
		Categories: []model.Category{
			{ID: "c1", Name: "Clothing", Subcategories: []string{"Shirts", "Pants"}},
		},
		Cities: []model.City{{ID: "city1", Name: "Lahore"}, {ID: "city2", Name: "Multan"}},
		Areas: []model.Area{
			{ID: "a1", Name: "Gulberg", City: "city1"},
			{ID: "a2", Name: "Model Town", City: "city1"},
			{ID: "a3", Name: "Cantt", City: "city2"},
		},
		Shops: []model.Shop{
			{ID: "s1", Name: "Corner Store", Area: "a1"},
			{ID: "s2", Name: "Town Store", Area: "a2"},
			{ID: "s3", Name: "Cantt Mart", Area: "a3"},
			{ID: "s4", Name: "Lost Shop", Area: "missing"},
		},
	}
}

// referenceOutage fails every reference resource.
func referenceOutage() map[string]error {
	errs := make(map[string]error)
	for _, resource := range []string{"products", "categories", "cities", "areas", "shops"} {
		errs[resource] = domainErrors.ErrBackendUnavailable
	}
	return errs
}

type fixture struct {
	catalogRepo *testhelpers.CatalogRepositoryStub
	orderRepo   *testhelpers.OrderRepositoryStub
	cartRepo    *testhelpers.CartRepositoryStub
	events      *testhelpers.EventPublisherStub
	recorder    *testhelpers.RecorderStub

	catalog *CatalogUseCase
	orders  *OrderUseCase
	cart    *CartUseCase
}

func newFixture(t *testing.T, stored ...model.Order) *fixture {
	t.Helper()
	f := &fixture{
		catalogRepo: &testhelpers.CatalogRepositoryStub{Catalog: referenceData()},
		orderRepo:   &testhelpers.OrderRepositoryStub{Orders: stored},
		cartRepo:    testhelpers.NewCartRepositoryStub(),
		events:      &testhelpers.EventPublisherStub{},
		recorder:    &testhelpers.RecorderStub{},
	}
	logger := discardLogger()
	f.catalog = NewCatalogUseCase(f.catalogRepo, f.recorder, logger)
	f.orders = NewOrderUseCase(f.orderRepo, f.catalog, ordering.NewDraftRegistry(), ordering.NewOrderBook(), f.events, f.recorder, logger)
	f.orders.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	f.cart = NewCartUseCase(f.cartRepo, f.catalog, f.orders, &config.Config{CheckoutFee: price(99)}, logger)
	return f
}

func storedOrder(id, email string, created time.Time, items ...model.OrderItem) model.Order {
	return model.Order{
		ID:        id,
		Name:      "sam",
		Email:     email,
		City:      "city1",
		Area:      "a1",
		Shop:      "s1",
		Items:     items,
		Price:     price(20),
		Status:    model.OrderStatusPending,
		CreatedAt: created,
	}
}
