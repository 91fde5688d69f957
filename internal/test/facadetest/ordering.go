// Package facadetest provides a configurable stand-in for the HTTP facade.
package facadetest

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/ordering"
	"github.com/polkiloo/opeak/internal/usecase"
)

// OrderingFacadeStub provides controllable behaviour for every HTTP endpoint.
// Unset functions return a small fixed value.
type OrderingFacadeStub struct {
	LoginFn      func(context.Context, string) (*model.User, string, error)
	ParseTokenFn func(string) (*model.User, error)

	ProductsFn   func(context.Context, ordering.Query, int) (*usecase.ProductPage, error)
	CategoriesFn func(context.Context) ([]model.Category, error)
	LocationsFn  func(context.Context, string, string, string) (*usecase.Locations, error)

	OpenDraftFn   func(context.Context, model.User, string) (ordering.DraftView, error)
	DraftFn       func(context.Context, model.User, string) (ordering.DraftView, error)
	DiscardFn     func(context.Context, model.User, string) error
	AddToDraftFn  func(context.Context, model.User, string, string) (ordering.DraftView, error)
	SetQuantityFn func(context.Context, model.User, string, string, int) (ordering.DraftView, error)
	RemoveFn      func(context.Context, model.User, string, string) (ordering.DraftView, error)
	SubmitFn      func(context.Context, model.User, string, string) (*model.Order, error)
	ApplyFn       func(context.Context, model.User, string, bool) (*model.Order, error)

	CartFn      func(context.Context, model.User) (*usecase.CartView, error)
	AddToCartFn func(context.Context, model.User, string, int) (*usecase.CartView, error)
	CartItemFn  func(context.Context, string, model.User, string) (*usecase.CartView, error)
	CheckoutFn  func(context.Context, model.User, usecase.CheckoutRequest) (*model.Order, error)

	OrdersFn       func(context.Context, model.User, ordering.OrderFilter) ([]usecase.OrderView, error)
	UpdateStatusFn func(context.Context, model.User, string, model.OrderStatus) (*model.Order, error)
	DeleteFn       func(context.Context, model.User, string, bool) error
}

// Login exchanges the upstream token for "session-token".
func (s OrderingFacadeStub) Login(ctx context.Context, upstream string) (*model.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, upstream)
	}
	return &model.User{ID: "u1", Name: "Sam", Email: "sam@example.com", Role: model.RoleSalesman}, "session-token", nil
}

// ParseToken accepts any non-empty token.
func (s OrderingFacadeStub) ParseToken(token string) (*model.User, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return &model.User{ID: "u1", Email: "sam@example.com", Role: model.RoleSalesman}, nil
}

func (s OrderingFacadeStub) Products(ctx context.Context, q ordering.Query, offset int) (*usecase.ProductPage, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, q, offset)
	}
	return &usecase.ProductPage{Offset: offset}, nil
}

func (s OrderingFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return nil, nil
}

func (s OrderingFacadeStub) Locations(ctx context.Context, city, area, shopSearch string) (*usecase.Locations, error) {
	if s.LocationsFn != nil {
		return s.LocationsFn(ctx, city, area, shopSearch)
	}
	return &usecase.Locations{City: city, Area: area}, nil
}

func (s OrderingFacadeStub) OpenDraft(ctx context.Context, user model.User, orderID string) (ordering.DraftView, error) {
	if s.OpenDraftFn != nil {
		return s.OpenDraftFn(ctx, user, orderID)
	}
	return ordering.DraftView{ID: "d1", Target: orderID, Total: "0.00"}, nil
}

func (s OrderingFacadeStub) Draft(ctx context.Context, user model.User, draftID string) (ordering.DraftView, error) {
	if s.DraftFn != nil {
		return s.DraftFn(ctx, user, draftID)
	}
	return ordering.DraftView{ID: draftID, Total: "0.00"}, nil
}

func (s OrderingFacadeStub) DiscardDraft(ctx context.Context, user model.User, draftID string) error {
	if s.DiscardFn != nil {
		return s.DiscardFn(ctx, user, draftID)
	}
	return nil
}

func (s OrderingFacadeStub) AddToDraft(ctx context.Context, user model.User, draftID, productID string) (ordering.DraftView, error) {
	if s.AddToDraftFn != nil {
		return s.AddToDraftFn(ctx, user, draftID, productID)
	}
	return ordering.DraftView{ID: draftID, Total: "0.00"}, nil
}

func (s OrderingFacadeStub) SetDraftQuantity(ctx context.Context, user model.User, draftID, productID string, n int) (ordering.DraftView, error) {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(ctx, user, draftID, productID, n)
	}
	return ordering.DraftView{ID: draftID, Total: "0.00"}, nil
}

func (s OrderingFacadeStub) RemoveFromDraft(ctx context.Context, user model.User, draftID, productID string) (ordering.DraftView, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, user, draftID, productID)
	}
	return ordering.DraftView{ID: draftID, Total: "0.00"}, nil
}

func (s OrderingFacadeStub) SubmitDraft(ctx context.Context, user model.User, draftID, shop string) (*model.Order, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, user, draftID, shop)
	}
	return &model.Order{ID: "order-1", Shop: shop, Email: user.Email, Status: model.OrderStatusPending}, nil
}

func (s OrderingFacadeStub) ApplyDraft(ctx context.Context, user model.User, draftID string, confirm bool) (*model.Order, error) {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, user, draftID, confirm)
	}
	return &model.Order{ID: "order-1", Status: model.OrderStatusPending}, nil
}

func (s OrderingFacadeStub) Cart(ctx context.Context, user model.User) (*usecase.CartView, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, user)
	}
	return emptyCart(), nil
}

func (s OrderingFacadeStub) AddToCart(ctx context.Context, user model.User, productID string, quantity int) (*usecase.CartView, error) {
	if s.AddToCartFn != nil {
		return s.AddToCartFn(ctx, user, productID, quantity)
	}
	return emptyCart(), nil
}

func (s OrderingFacadeStub) IncrementCartItem(ctx context.Context, user model.User, productID string) (*usecase.CartView, error) {
	return s.cartItem(ctx, "increment", user, productID)
}

func (s OrderingFacadeStub) DecrementCartItem(ctx context.Context, user model.User, productID string) (*usecase.CartView, error) {
	return s.cartItem(ctx, "decrement", user, productID)
}

func (s OrderingFacadeStub) RemoveCartItem(ctx context.Context, user model.User, productID string) (*usecase.CartView, error) {
	return s.cartItem(ctx, "remove", user, productID)
}

func (s OrderingFacadeStub) ClearCart(ctx context.Context, user model.User) (*usecase.CartView, error) {
	return s.cartItem(ctx, "clear", user, "")
}

// cartItem routes the per-item cart operations through CartItemFn, tagged by op.
func (s OrderingFacadeStub) cartItem(ctx context.Context, op string, user model.User, productID string) (*usecase.CartView, error) {
	if s.CartItemFn != nil {
		return s.CartItemFn(ctx, op, user, productID)
	}
	return emptyCart(), nil
}

func (s OrderingFacadeStub) Checkout(ctx context.Context, user model.User, req usecase.CheckoutRequest) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, user, req)
	}
	return &model.Order{ID: "order-1", City: req.City, Area: req.Area, Shop: req.Shop, PaymentMethod: model.PaymentCashOnDelivery}, nil
}

func (s OrderingFacadeStub) Orders(ctx context.Context, user model.User, filter ordering.OrderFilter) ([]usecase.OrderView, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, user, filter)
	}
	return nil, nil
}

func (s OrderingFacadeStub) UpdateOrderStatus(ctx context.Context, user model.User, id string, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, user, id, status)
	}
	if !user.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	return &model.Order{ID: id, Status: status}, nil
}

func (s OrderingFacadeStub) DeleteOrder(ctx context.Context, user model.User, id string, confirm bool) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, user, id, confirm)
	}
	return nil
}

func emptyCart() *usecase.CartView {
	fee := decimal.NewFromInt(99)
	return &usecase.CartView{Fee: fee, Total: fee}
}
