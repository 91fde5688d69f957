package usecase

import (
	"context"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/ordering"
)

// OpenDraft starts a draft for user. With an order id the draft is the edit
// surface of that order, seeded with its items at current prices.
func (u *OrderUseCase) OpenDraft(ctx context.Context, user model.User, orderID string) (ordering.DraftView, error) {
	if orderID == "" {
		return u.drafts.Open(user.ID, nil, nil), nil
	}
	order, err := u.find(ctx, user, orderID)
	if err != nil {
		return ordering.DraftView{}, err
	}
	return u.drafts.Open(user.ID, ordering.DraftFromOrder(order, u.productLookup(ctx)), &order), nil
}

// Draft returns the current state of a draft.
func (u *OrderUseCase) Draft(_ context.Context, user model.User, draftID string) (ordering.DraftView, error) {
	return u.drafts.Do(draftID, user.ID, func(*ordering.DraftSession) error { return nil })
}

// AddToDraft adds one unit of a catalog product.
func (u *OrderUseCase) AddToDraft(ctx context.Context, user model.User, draftID, productID string) (ordering.DraftView, error) {
	p, err := u.catalog.Product(ctx, productID)
	if err != nil {
		return ordering.DraftView{}, domainErrors.Describe(err, MsgUnknownProduct)
	}
	return u.drafts.Do(draftID, user.ID, func(s *ordering.DraftSession) error {
		s.Draft.Add(p)
		return nil
	})
}

// SetDraftQuantity sets the quantity of a product already in the draft.
func (u *OrderUseCase) SetDraftQuantity(_ context.Context, user model.User, draftID, productID string, n int) (ordering.DraftView, error) {
	return u.drafts.Do(draftID, user.ID, func(s *ordering.DraftSession) error {
		s.Draft.SetQuantity(productID, n)
		return nil
	})
}

// RemoveFromDraft drops a product line.
func (u *OrderUseCase) RemoveFromDraft(_ context.Context, user model.User, draftID, productID string) (ordering.DraftView, error) {
	return u.drafts.Do(draftID, user.ID, func(s *ordering.DraftSession) error {
		s.Draft.Remove(productID)
		return nil
	})
}

// DiscardDraft cancels a draft without submitting it.
func (u *OrderUseCase) DiscardDraft(_ context.Context, user model.User, draftID string) error {
	return u.drafts.Discard(draftID, user.ID)
}

// ExpireDrafts drops drafts left untouched for longer than idle.
func (u *OrderUseCase) ExpireDrafts(idle time.Duration) int {
	n := u.drafts.Expire(idle)
	if n > 0 {
		u.logger.Info("expired idle drafts", slog.Int("count", n), slog.Duration("idle", idle))
	}
	return n
}
