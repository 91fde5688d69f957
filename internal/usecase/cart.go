package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/opeak/internal/config"
	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/domain/repository"
	"github.com/polkiloo/opeak/internal/ordering"
)

// CartView is the cart together with its checkout figures.
type CartView struct {
	Lines      []model.Line
	Subtotal   decimal.Decimal
	Fee        decimal.Decimal
	Total      decimal.Decimal
	Diagnostic string
}

// CheckoutRequest carries the placement chosen on the checkout screen.
type CheckoutRequest struct {
	City          string
	Area          string
	Shop          string
	PaymentMethod model.PaymentMethod
}

// CartUseCase manages the persisted cart of each user. Operations on one
// user's cart are serialized and every mutation is saved before returning.
type CartUseCase struct {
	carts   repository.CartRepository
	catalog *CatalogUseCase
	orders  *OrderUseCase
	fee     decimal.Decimal
	locks   *keyedMutex
	logger  *slog.Logger
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, catalog *CatalogUseCase, orders *OrderUseCase, cfg *config.Config, logger *slog.Logger) *CartUseCase {
	fee := ordering.DefaultCheckoutFee
	if cfg != nil {
		fee = cfg.CheckoutFee
	}
	return &CartUseCase{
		carts:   carts,
		catalog: catalog,
		orders:  orders,
		fee:     fee,
		locks:   newKeyedMutex(),
		logger:  logger,
	}
}

// Get returns the stored cart.
func (u *CartUseCase) Get(ctx context.Context, user model.User) (*CartView, error) {
	return u.with(ctx, user, false, func(*ordering.Cart) error { return nil })
}

// Add puts quantity units of a catalog product into the cart.
func (u *CartUseCase) Add(ctx context.Context, user model.User, productID string, quantity int) (*CartView, error) {
	p, err := u.catalog.Product(ctx, productID)
	if err != nil {
		return nil, domainErrors.Describe(err, MsgUnknownProduct)
	}
	return u.with(ctx, user, true, func(c *ordering.Cart) error {
		c.Add(p, quantity)
		return nil
	})
}

// Increment adds one unit of a product already in the cart.
func (u *CartUseCase) Increment(ctx context.Context, user model.User, productID string) (*CartView, error) {
	return u.with(ctx, user, true, func(c *ordering.Cart) error {
		c.Increment(productID)
		return nil
	})
}

// Decrement removes one unit; the last unit removes the line.
func (u *CartUseCase) Decrement(ctx context.Context, user model.User, productID string) (*CartView, error) {
	return u.with(ctx, user, true, func(c *ordering.Cart) error {
		c.Decrement(productID)
		return nil
	})
}

// Remove drops a product line.
func (u *CartUseCase) Remove(ctx context.Context, user model.User, productID string) (*CartView, error) {
	return u.with(ctx, user, true, func(c *ordering.Cart) error {
		c.Remove(productID)
		return nil
	})
}

// Clear empties the cart.
func (u *CartUseCase) Clear(ctx context.Context, user model.User) (*CartView, error) {
	return u.with(ctx, user, true, func(c *ordering.Cart) error {
		c.Clear()
		return nil
	})
}

// Checkout places the cart as an order priced at subtotal plus the checkout
// fee, then clears the cart.
func (u *CartUseCase) Checkout(ctx context.Context, user model.User, req CheckoutRequest) (*model.Order, error) {
	if req.City == "" || req.Area == "" || req.Shop == "" {
		return nil, domainErrors.Invalid(domainErrors.ErrLocationRequired, MsgMissingPlace)
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.PaymentCashOnDelivery
	}
	if req.PaymentMethod != model.PaymentCashOnDelivery {
		return nil, domainErrors.Invalid(domainErrors.ErrInvalidPaymentMethod, MsgPaymentMethod)
	}

	unlock := u.locks.Lock(user.ID)
	defer unlock()

	cart, err := u.load(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, domainErrors.Invalid(domainErrors.ErrEmptyOrder, MsgEmptyOrder)
	}
	if cart.OverLimit() {
		return nil, domainErrors.Invalid(domainErrors.ErrQuantityLimit, MsgQuantityLimit)
	}

	snap, err := u.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	place := model.Placement{City: req.City, Area: req.Area, Shop: req.Shop}
	if err := ordering.CheckPlacement(snap.Areas, snap.Shops, place); err != nil {
		return nil, domainErrors.Invalid(err, MsgMissingPlace)
	}
	items := cart.Items()
	if err := validateLines(items); err != nil {
		return nil, err
	}
	if err := validateSubcategories(snap, items); err != nil {
		return nil, err
	}

	order := model.Order{
		Name:          user.Name,
		Email:         user.Email,
		City:          place.City,
		Area:          place.Area,
		Shop:          place.Shop,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		Price:         cart.CheckoutTotal(u.fee),
		Status:        model.OrderStatusPending,
	}
	created, err := u.orders.submit(ctx, user, order, SourceCart)
	if err != nil {
		return nil, domainErrors.Describe(err, MsgCheckoutFailed)
	}
	if err := u.carts.Delete(ctx, user.ID); err != nil {
		u.logger.Error("clear cart after checkout failed", slog.String("user", user.ID), slog.String("error", err.Error()))
	}
	return created, nil
}

func (u *CartUseCase) with(ctx context.Context, user model.User, save bool, fn func(*ordering.Cart) error) (*CartView, error) {
	unlock := u.locks.Lock(user.ID)
	defer unlock()

	cart, err := u.load(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if save {
		content, err := cart.Encode()
		if err != nil {
			return nil, err
		}
		if err := u.carts.Save(ctx, user.ID, content); err != nil {
			u.logger.Error("save cart failed", slog.String("user", user.ID), slog.String("error", err.Error()))
			return nil, err
		}
	}
	return u.view(cart), nil
}

// load reads the stored cart; unreadable content is replaced by an empty cart.
func (u *CartUseCase) load(ctx context.Context, userID string) (*ordering.Cart, error) {
	content, err := u.carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart, err := ordering.DecodeCart(content)
	if errors.Is(err, ordering.ErrMalformedCart) {
		u.logger.Warn("discarding malformed cart", slog.String("user", userID), slog.String("error", err.Error()))
	}
	return cart, nil
}

func (u *CartUseCase) view(c *ordering.Cart) *CartView {
	return &CartView{
		Lines:      c.Lines(),
		Subtotal:   c.Subtotal(),
		Fee:        u.fee,
		Total:      c.CheckoutTotal(u.fee),
		Diagnostic: c.Diagnostic(),
	}
}
