package repository

import (
	"context"

	"github.com/polkiloo/opeak/internal/domain/model"
)

// EventPublisher emits order change notifications. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, e model.OrderEvent) error
}
