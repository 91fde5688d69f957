package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/domain/repository"
	"github.com/polkiloo/opeak/internal/ordering"
)

// ErrCatalogUnavailable is returned when no reference data could be loaded.
var ErrCatalogUnavailable = errors.New("reference data unavailable")

// ProductPage is one window of the filtered catalog.
type ProductPage struct {
	Items   []model.Product
	Offset  int
	Total   int
	HasNext bool
	HasPrev bool
}

// Locations is the state of the city, area and shop pickers.
type Locations struct {
	Cities []model.City
	Areas  []model.Area
	Shops  []model.Shop
	City   string
	Area   string
}

// CatalogUseCase caches reference data as an immutable snapshot.
type CatalogUseCase struct {
	repo     repository.CatalogRepository
	recorder Recorder
	logger   *slog.Logger

	current atomic.Pointer[model.Catalog]
	loading sync.Mutex
}

// NewCatalogUseCase constructs CatalogUseCase. recorder may be nil.
func NewCatalogUseCase(repo repository.CatalogRepository, recorder Recorder, logger *slog.Logger) *CatalogUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &CatalogUseCase{repo: repo, recorder: recorder, logger: logger}
}

// Refresh fetches every reference resource in parallel. Resources that fail
// keep their previous value; the returned error joins one entry per failure.
func (u *CatalogUseCase) Refresh(ctx context.Context) (*model.Catalog, error) {
	prev := u.current.Load()
	next := &model.Catalog{}
	if prev != nil {
		*next = *prev
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	report := func(resource string, err error) {
		u.recorder.ReferenceFetched(resource, err)
		if err == nil {
			return
		}
		mu.Lock()
		errs = append(errs, fmt.Errorf("%s: %w", resource, err))
		mu.Unlock()
	}

	var g errgroup.Group
	fetch(&g, ctx, "products", u.repo.Products, &next.Products, report)
	fetch(&g, ctx, "categories", u.repo.Categories, &next.Categories, report)
	fetch(&g, ctx, "cities", u.repo.Cities, &next.Cities, report)
	fetch(&g, ctx, "areas", u.repo.Areas, &next.Areas, report)
	fetch(&g, ctx, "shops", u.repo.Shops, &next.Shops, report)
	_ = g.Wait()

	err := errors.Join(errs...)
	if prev == nil && len(errs) == 5 {
		return nil, errors.Join(ErrCatalogUnavailable, err)
	}
	u.current.Store(next)
	if err != nil {
		u.logger.Warn("reference data partially refreshed", slog.String("error", err.Error()))
	}
	return next, err
}

func fetch[T any](g *errgroup.Group, ctx context.Context, resource string, get func(context.Context) ([]T, error), dst *[]T, report func(string, error)) {
	g.Go(func() error {
		items, err := get(ctx)
		report(resource, err)
		if err == nil {
			*dst = items
		}
		return nil
	})
}

// Snapshot returns the cached reference data, loading it on first use.
func (u *CatalogUseCase) Snapshot(ctx context.Context) (*model.Catalog, error) {
	if c := u.current.Load(); c != nil {
		return c, nil
	}
	u.loading.Lock()
	defer u.loading.Unlock()
	if c := u.current.Load(); c != nil {
		return c, nil
	}
	c, err := u.Refresh(ctx)
	if c == nil {
		return nil, err
	}
	return c, nil
}

// Products filters the catalog and returns the window starting at offset.
func (u *CatalogUseCase) Products(ctx context.Context, q ordering.Query, offset int) (*ProductPage, error) {
	snap, err := u.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	c := ordering.NewCatalog(snap.Products)
	c.Apply(q)
	c.Pager().Seek(offset)
	return &ProductPage{
		Items:   c.Page(),
		Offset:  c.Pager().Start(),
		Total:   len(c.Filtered()),
		HasNext: c.Pager().HasNext(),
		HasPrev: c.Pager().HasPrev(),
	}, nil
}

// Categories lists product categories.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	snap, err := u.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Categories, nil
}

// Product looks up a single product.
func (u *CatalogUseCase) Product(ctx context.Context, id string) (model.Product, error) {
	snap, err := u.Snapshot(ctx)
	if err != nil {
		return model.Product{}, err
	}
	p, ok := snap.Product(id)
	if !ok {
		return model.Product{}, fmt.Errorf("product %s: %w", id, domainErrors.ErrNotFound)
	}
	return p, nil
}

// Locations walks the cascade down to the selected city and area. Without a
// city every shop is offered, which is what the shop picker of the create
// flow needs. shopSearch narrows shops by name.
func (u *CatalogUseCase) Locations(ctx context.Context, city, area, shopSearch string) (*Locations, error) {
	snap, err := u.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	c := ordering.NewCascade(snap.Cities, snap.Areas, snap.Shops)
	loc := &Locations{Cities: c.Cities(), Shops: snap.Shops}
	if city != "" {
		c.SelectCity(city)
		if area != "" {
			c.SelectArea(area)
		}
		loc.City, loc.Area = c.City(), c.Area()
		loc.Areas, loc.Shops = c.Areas(), c.Shops()
	}
	if shopSearch != "" {
		loc.Shops = ordering.SearchShops(loc.Shops, shopSearch)
	}
	return loc, nil
}
