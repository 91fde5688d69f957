package repository

import (
	"context"

	"github.com/polkiloo/opeak/internal/domain/model"
)

// OrderRepository describes order operations served by the backend.
type OrderRepository interface {
	List(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	Update(ctx context.Context, order model.Order) error
	Delete(ctx context.Context, id string) error
}
