package handlers

import (
	"context"

	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/ordering"
	"github.com/polkiloo/opeak/internal/usecase"
)

// SessionFacade exchanges upstream tokens and parses session tokens.
type SessionFacade interface {
	Login(ctx context.Context, upstream string) (*model.User, string, error)
	ParseToken(token string) (*model.User, error)
}

// CatalogFacade serves reference data.
type CatalogFacade interface {
	Products(ctx context.Context, q ordering.Query, offset int) (*usecase.ProductPage, error)
	Categories(ctx context.Context) ([]model.Category, error)
	Locations(ctx context.Context, city, area, shopSearch string) (*usecase.Locations, error)
}

// DraftFacade drives order drafts.
type DraftFacade interface {
	OpenDraft(ctx context.Context, user model.User, orderID string) (ordering.DraftView, error)
	Draft(ctx context.Context, user model.User, draftID string) (ordering.DraftView, error)
	DiscardDraft(ctx context.Context, user model.User, draftID string) error
	AddToDraft(ctx context.Context, user model.User, draftID, productID string) (ordering.DraftView, error)
	SetDraftQuantity(ctx context.Context, user model.User, draftID, productID string, n int) (ordering.DraftView, error)
	RemoveFromDraft(ctx context.Context, user model.User, draftID, productID string) (ordering.DraftView, error)
	SubmitDraft(ctx context.Context, user model.User, draftID, shop string) (*model.Order, error)
	ApplyDraft(ctx context.Context, user model.User, draftID string, confirm bool) (*model.Order, error)
}

// CartFacade drives the persisted cart.
type CartFacade interface {
	Cart(ctx context.Context, user model.User) (*usecase.CartView, error)
	AddToCart(ctx context.Context, user model.User, productID string, quantity int) (*usecase.CartView, error)
	IncrementCartItem(ctx context.Context, user model.User, productID string) (*usecase.CartView, error)
	DecrementCartItem(ctx context.Context, user model.User, productID string) (*usecase.CartView, error)
	RemoveCartItem(ctx context.Context, user model.User, productID string) (*usecase.CartView, error)
	ClearCart(ctx context.Context, user model.User) (*usecase.CartView, error)
	Checkout(ctx context.Context, user model.User, req usecase.CheckoutRequest) (*model.Order, error)
}

// OrderFacade manages submitted orders.
type OrderFacade interface {
	Orders(ctx context.Context, user model.User, filter ordering.OrderFilter) ([]usecase.OrderView, error)
	UpdateOrderStatus(ctx context.Context, user model.User, id string, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, user model.User, id string, confirm bool) error
}

// OrderingFacade aggregates the full set of operations used across handlers.
type OrderingFacade interface {
	SessionFacade
	CatalogFacade
	DraftFacade
	CartFacade
	OrderFacade
}

// HealthChecker reports whether local storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
