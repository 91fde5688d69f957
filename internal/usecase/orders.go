package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/domain/repository"
	"github.com/polkiloo/opeak/internal/ordering"
)

// Order sources reported to the recorder.
const (
	SourceDraft = "draft"
	SourceCart  = "cart"
)

// OrderView is an order with its items resolved against current products.
type OrderView struct {
	model.Order
	Lines []model.Line
	Total decimal.Decimal
}

// OrderUseCase drives order drafts and the order lifecycle against the backend.
type OrderUseCase struct {
	orders   repository.OrderRepository
	catalog  *CatalogUseCase
	drafts   *ordering.DraftRegistry
	book     *ordering.OrderBook
	events   repository.EventPublisher
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrderUseCase constructs OrderUseCase. events and recorder may be nil.
func NewOrderUseCase(
	orders repository.OrderRepository,
	catalog *CatalogUseCase,
	drafts *ordering.DraftRegistry,
	book *ordering.OrderBook,
	events repository.EventPublisher,
	recorder Recorder,
	logger *slog.Logger,
) *OrderUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &OrderUseCase{
		orders:   orders,
		catalog:  catalog,
		drafts:   drafts,
		book:     book,
		events:   events,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Create submits a draft as a new order delivered to shopID. City and area
// are derived from the shop.
func (u *OrderUseCase) Create(ctx context.Context, user model.User, draftID, shopID string) (*model.Order, error) {
	var created *model.Order
	_, err := u.drafts.Do(draftID, user.ID, func(s *ordering.DraftSession) error {
		if s.Draft.Empty() {
			return reject(s.Draft, domainErrors.Invalid(domainErrors.ErrEmptyOrder, MsgEmptyOrder))
		}
		snap, err := u.catalog.Snapshot(ctx)
		if err != nil {
			return err
		}
		place, err := ordering.ResolveShop(snap.Areas, snap.Shops, shopID)
		if err != nil {
			return reject(s.Draft, domainErrors.Invalid(err, MsgSelectShop))
		}
		items := s.Draft.Items()
		if err := validateLines(items); err != nil {
			return reject(s.Draft, err)
		}
		if err := validateSubcategories(snap, items); err != nil {
			return reject(s.Draft, err)
		}

		order := model.Order{
			Name:          user.Name,
			Email:         user.Email,
			City:          place.City,
			Area:          place.Area,
			Shop:          place.Shop,
			Items:         items,
			PaymentMethod: model.PaymentCashOnDelivery,
			Price:         s.Draft.Total(),
			Status:        model.OrderStatusPending,
		}
		created, err = u.submit(ctx, user, order, SourceDraft)
		if err != nil {
			return reject(s.Draft, domainErrors.Describe(err, MsgCreateFailed))
		}
		s.Close()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Edit replaces the items and price of the order the draft was opened from.
// Everything else is carried over from the loaded order.
func (u *OrderUseCase) Edit(ctx context.Context, user model.User, draftID string, confirm bool) (*model.Order, error) {
	var updated model.Order
	_, err := u.drafts.Do(draftID, user.ID, func(s *ordering.DraftSession) error {
		if s.Target == nil {
			return domainErrors.Describe(domainErrors.ErrNotFound, MsgOrderNotFound)
		}
		if s.Draft.Empty() {
			return reject(s.Draft, domainErrors.Invalid(domainErrors.ErrEmptyOrder, MsgEmptyOrder))
		}
		if !confirm {
			return domainErrors.Invalid(domainErrors.ErrConfirmationRequired, MsgConfirmUpdate)
		}
		snap, err := u.catalog.Snapshot(ctx)
		if err != nil {
			return err
		}
		items := s.Draft.Items()
		if err := validateLines(items); err != nil {
			return reject(s.Draft, err)
		}
		if err := validateSubcategories(snap, items); err != nil {
			return reject(s.Draft, err)
		}

		updated = *s.Target
		updated.Items = items
		updated.Price = s.Draft.Total()
		if updated.PaymentMethod == "" {
			updated.PaymentMethod = model.PaymentCashOnDelivery
		}
		if err := u.orders.Update(ctx, updated); err != nil {
			u.logger.Error("update order failed", slog.String("order", updated.ID), slog.String("error", err.Error()))
			return reject(s.Draft, domainErrors.Describe(err, MsgUpdateFailed))
		}
		u.book.Upsert(updated)
		u.publish(ctx, model.EventOrderUpdated, user, updated)
		s.Close()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStatus sets the status of an order. The local copy is updated first
// and restored if the backend rejects the change.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, user model.User, id string, status model.OrderStatus) (*model.Order, error) {
	if !user.IsAdmin() {
		return nil, domainErrors.Describe(domainErrors.ErrForbidden, MsgAdminOnly)
	}
	if !status.Valid() {
		return nil, domainErrors.Invalid(domainErrors.ErrInvalidStatus, MsgInvalidStatus)
	}
	order, err := u.find(ctx, user, id)
	if err != nil {
		return nil, err
	}

	prev, _ := u.book.SetStatus(id, status)
	order.Status = status
	if err := u.orders.Update(ctx, order); err != nil {
		u.book.SetStatus(id, prev)
		u.recorder.StatusReverted()
		u.logger.Error("update order status failed",
			slog.String("order", id),
			slog.String("status", string(status)),
			slog.String("error", err.Error()),
		)
		return nil, domainErrors.Describe(err, MsgStatusFailed)
	}
	u.publish(ctx, model.EventOrderStatusChanged, user, order)
	return &order, nil
}

// Delete removes an order after explicit confirmation. Salesmen may only
// delete their own orders.
func (u *OrderUseCase) Delete(ctx context.Context, user model.User, id string, confirm bool) error {
	if !confirm {
		return domainErrors.Invalid(domainErrors.ErrConfirmationRequired, MsgConfirmDelete)
	}
	order, err := u.find(ctx, user, id)
	if err != nil {
		return err
	}
	if err := u.orders.Delete(ctx, id); err != nil {
		u.logger.Error("delete order failed", slog.String("order", id), slog.String("error", err.Error()))
		return domainErrors.Describe(err, MsgDeleteFailed)
	}
	u.book.Remove(id)
	u.publish(ctx, model.EventOrderDeleted, user, order)
	return nil
}

// List reloads orders from the backend. Admins see every order narrowed by
// filter; salesmen see their own submissions, newest first.
func (u *OrderUseCase) List(ctx context.Context, user model.User, filter ordering.OrderFilter) ([]OrderView, error) {
	if err := u.reload(ctx); err != nil {
		return nil, err
	}
	orders := u.book.Snapshot()
	if user.IsAdmin() {
		orders = ordering.FilterOrders(orders, filter)
	} else {
		orders = ordering.SubmittedBy(orders, user.Email)
	}

	lookup := u.productLookup(ctx)
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		lines := ordering.ResolveLines(o.Items, lookup)
		views = append(views, OrderView{Order: o, Lines: lines, Total: ordering.Sum(lines)})
	}
	return views, nil
}

// Sync reloads the order book from the backend.
func (u *OrderUseCase) Sync(ctx context.Context) error {
	return u.reload(ctx)
}

func (u *OrderUseCase) productLookup(ctx context.Context) func(string) (model.Product, bool) {
	snap, err := u.catalog.Snapshot(ctx)
	if err != nil {
		u.logger.Warn("resolving order lines without products", slog.String("error", err.Error()))
		return func(string) (model.Product, bool) { return model.Product{}, false }
	}
	return snap.Product
}

func (u *OrderUseCase) reload(ctx context.Context) error {
	orders, err := u.orders.List(ctx)
	if err != nil {
		u.logger.Error("list orders failed", slog.String("error", err.Error()))
		return err
	}
	u.book.Replace(orders)
	return nil
}

// find returns an order the user may act on, reloading the book on a miss.
func (u *OrderUseCase) find(ctx context.Context, user model.User, id string) (model.Order, error) {
	o, ok := u.book.Get(id)
	if !ok {
		if err := u.reload(ctx); err != nil {
			return model.Order{}, err
		}
		if o, ok = u.book.Get(id); !ok {
			return model.Order{}, domainErrors.Describe(domainErrors.ErrNotFound, MsgOrderNotFound)
		}
	}
	if !user.IsAdmin() && o.Email != user.Email {
		return model.Order{}, domainErrors.Describe(domainErrors.ErrForbidden, MsgNotOrderOwner)
	}
	return o, nil
}

// submit posts a new order and records it locally.
func (u *OrderUseCase) submit(ctx context.Context, user model.User, order model.Order, source string) (*model.Order, error) {
	created, err := u.orders.Create(ctx, order)
	if err != nil {
		u.logger.Error("create order failed", slog.String("source", source), slog.String("error", err.Error()))
		return nil, err
	}
	if created.ID != "" {
		u.book.Upsert(*created)
	}
	u.recorder.OrderSubmitted(source)
	u.publish(ctx, model.EventOrderCreated, user, *created)
	return created, nil
}

func (u *OrderUseCase) publish(ctx context.Context, kind string, user model.User, order model.Order) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, model.NewOrderEvent(kind, user, order, u.now())); err != nil {
		u.logger.Warn("order event dropped", slog.String("type", kind), slog.String("error", err.Error()))
	}
}

// reject records err as the draft diagnostic and returns it.
func reject(d *ordering.Draft, err error) error {
	if msg, ok := domainErrors.Message(err); ok {
		d.SetDiagnostic(msg)
	}
	return err
}
