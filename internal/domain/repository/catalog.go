package repository

import (
	"context"

	"github.com/polkiloo/opeak/internal/domain/model"
)

// CatalogRepository provides read-only reference data.
type CatalogRepository interface {
	Products(ctx context.Context) ([]model.Product, error)
	Categories(ctx context.Context) ([]model.Category, error)
	Cities(ctx context.Context) ([]model.City, error)
	Areas(ctx context.Context) ([]model.Area, error)
	Shops(ctx context.Context) ([]model.Shop, error)
}
