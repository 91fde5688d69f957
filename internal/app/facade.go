package app

import (
	"context"
	"time"

	"github.com/polkiloo/opeak/internal/config"
	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/ordering"
	"github.com/polkiloo/opeak/internal/usecase"
)

// OrderingFacade exposes the use cases to transport and background workers.
type OrderingFacade struct {
	session   *usecase.SessionUseCase
	catalog   *usecase.CatalogUseCase
	orders    *usecase.OrderUseCase
	carts     *usecase.CartUseCase
	draftIdle time.Duration
}

func NewOrderingFacade(session *usecase.SessionUseCase, catalog *usecase.CatalogUseCase, orders *usecase.OrderUseCase, carts *usecase.CartUseCase, cfg *config.Config) *OrderingFacade {
	return &OrderingFacade{session: session, catalog: catalog, orders: orders, carts: carts, draftIdle: cfg.DraftIdleTimeout}
}

func (f *OrderingFacade) Login(ctx context.Context, upstream string) (*model.User, string, error) {
	return f.session.Login(ctx, upstream)
}

func (f *OrderingFacade) ParseToken(token string) (*model.User, error) {
	return f.session.ParseToken(token)
}

func (f *OrderingFacade) Products(ctx context.Context, q ordering.Query, offset int) (*usecase.ProductPage, error) {
	return f.catalog.Products(ctx, q, offset)
}

func (f *OrderingFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *OrderingFacade) Locations(ctx context.Context, city, area, shopSearch string) (*usecase.Locations, error) {
	return f.catalog.Locations(ctx, city, area, shopSearch)
}

func (f *OrderingFacade) OpenDraft(ctx context.Context, user model.User, orderID string) (ordering.DraftView, error) {
	return f.orders.OpenDraft(ctx, user, orderID)
}

func (f *OrderingFacade) Draft(ctx context.Context, user model.User, draftID string) (ordering.DraftView, error) {
	return f.orders.Draft(ctx, user, draftID)
}

func (f *OrderingFacade) DiscardDraft(ctx context.Context, user model.User, draftID string) error {
	return f.orders.DiscardDraft(ctx, user, draftID)
}

func (f *OrderingFacade) AddToDraft(ctx context.Context, user model.User, draftID, productID string) (ordering.DraftView, error) {
	return f.orders.AddToDraft(ctx, user, draftID, productID)
}

func (f *OrderingFacade) SetDraftQuantity(ctx context.Context, user model.User, draftID, productID string, n int) (ordering.DraftView, error) {
	return f.orders.SetDraftQuantity(ctx, user, draftID, productID, n)
}

func (f *OrderingFacade) RemoveFromDraft(ctx context.Context, user model.User, draftID, productID string) (ordering.DraftView, error) {
	return f.orders.RemoveFromDraft(ctx, user, draftID, productID)
}

func (f *OrderingFacade) SubmitDraft(ctx context.Context, user model.User, draftID, shop string) (*model.Order, error) {
	return f.orders.Create(ctx, user, draftID, shop)
}

func (f *OrderingFacade) ApplyDraft(ctx context.Context, user model.User, draftID string, confirm bool) (*model.Order, error) {
	return f.orders.Edit(ctx, user, draftID, confirm)
}

func (f *OrderingFacade) Cart(ctx context.Context, user model.User) (*usecase.CartView, error) {
	return f.carts.Get(ctx, user)
}

func (f *OrderingFacade) AddToCart(ctx context.Context, user model.User, productID string, quantity int) (*usecase.CartView, error) {
	return f.carts.Add(ctx, user, productID, quantity)
}

func (f *OrderingFacade) IncrementCartItem(ctx context.Context, user model.User, productID string) (*usecase.CartView, error) {
	return f.carts.Increment(ctx, user, productID)
}

func (f *OrderingFacade) DecrementCartItem(ctx context.Context, user model.User, productID string) (*usecase.CartView, error) {
	return f.carts.Decrement(ctx, user, productID)
}

func (f *OrderingFacade) RemoveCartItem(ctx context.Context, user model.User, productID string) (*usecase.CartView, error) {
	return f.carts.Remove(ctx, user, productID)
}

func (f *OrderingFacade) ClearCart(ctx context.Context, user model.User) (*usecase.CartView, error) {
	return f.carts.Clear(ctx, user)
}

func (f *OrderingFacade) Checkout(ctx context.Context, user model.User, req usecase.CheckoutRequest) (*model.Order, error) {
	return f.carts.Checkout(ctx, user, req)
}

func (f *OrderingFacade) Orders(ctx context.Context, user model.User, filter ordering.OrderFilter) ([]usecase.OrderView, error) {
	return f.orders.List(ctx, user, filter)
}

func (f *OrderingFacade) UpdateOrderStatus(ctx context.Context, user model.User, id string, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, user, id, status)
}

func (f *OrderingFacade) DeleteOrder(ctx context.Context, user model.User, id string, confirm bool) error {
	return f.orders.Delete(ctx, user, id, confirm)
}

// RefreshCatalog replaces the reference data snapshot. A partial failure
// keeps the resources that did load.
func (f *OrderingFacade) RefreshCatalog(ctx context.Context) error {
	_, err := f.catalog.Refresh(ctx)
	return err
}

// SyncOrders reloads the order list from the backend.
func (f *OrderingFacade) SyncOrders(ctx context.Context) error {
	return f.orders.Sync(ctx)
}

// ExpireDrafts drops drafts idle for longer than the configured timeout.
func (f *OrderingFacade) ExpireDrafts(context.Context) error {
	f.orders.ExpireDrafts(f.draftIdle)
	return nil
}
