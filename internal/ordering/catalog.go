package ordering

import (
	"strings"

	"github.com/polkiloo/opeak/internal/domain/model"
)

const (
	// PageSize is the stride of the catalog window.
	PageSize = 3
	// AllCategories disables category and subcategory filtering.
	AllCategories = "all"
)

// Query selects products by name substring, category and subcategory.
type Query struct {
	Search      string
	Category    string
	Subcategory string
}

// Match reports whether the product satisfies the query.
func (q Query) Match(p model.Product) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) {
		return false
	}
	if !isAll(q.Category) && p.Category != q.Category {
		return false
	}
	if !isAll(q.Subcategory) && !strings.EqualFold(p.Subcategory, q.Subcategory) {
		return false
	}
	return true
}

func isAll(selector string) bool {
	return selector == "" || selector == AllCategories
}

// Filter returns products matching q in source order.
func Filter(products []model.Product, q Query) []model.Product {
	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if q.Match(p) {
			result = append(result, p)
		}
	}
	return result
}

// Pager tracks a fixed-size window over a list of known length.
type Pager struct {
	start int
	total int
}

// NewPager creates a pager positioned at the first window.
func NewPager(total int) *Pager {
	return &Pager{total: total}
}

// Start returns the zero-based index of the first visible item.
func (p *Pager) Start() int { return p.start }

// Reset rewinds the window for a list of the given length.
func (p *Pager) Reset(total int) {
	p.start = 0
	p.total = total
}

// Next advances by one stride without letting the window run past the end.
func (p *Pager) Next() {
	p.start = min(p.start+PageSize, p.last())
}

// Prev retreats by one stride, stopping at zero.
func (p *Pager) Prev() {
	p.start = max(p.start-PageSize, 0)
}

// Seek moves the window to offset, clamped to the valid range.
func (p *Pager) Seek(offset int) {
	p.start = min(max(offset, 0), p.last())
}

// HasNext reports whether items exist past the current window.
func (p *Pager) HasNext() bool { return p.start+PageSize < p.total }

// HasPrev reports whether the window can move back.
func (p *Pager) HasPrev() bool { return p.start > 0 }

func (p *Pager) last() int {
	return max(p.total-PageSize, 0)
}

// Window returns the visible slice of items starting at start.
func Window[T any](items []T, start int) []T {
	if start >= len(items) {
		return nil
	}
	end := min(start+PageSize, len(items))
	return items[start:end]
}

// Catalog combines a product filter with a pager. Any change to the filter
// rewinds the window so the visible slice never falls out of range.
type Catalog struct {
	products []model.Product
	query    Query
	filtered []model.Product
	pager    *Pager
}

// NewCatalog builds an unfiltered catalog over products.
func NewCatalog(products []model.Product) *Catalog {
	c := &Catalog{products: products, query: Query{Category: AllCategories, Subcategory: AllCategories}}
	c.filtered = Filter(products, c.query)
	c.pager = NewPager(len(c.filtered))
	return c
}

// Apply replaces the whole query.
func (c *Catalog) Apply(q Query) {
	if q == c.query {
		return
	}
	c.query = q
	c.filtered = Filter(c.products, q)
	c.pager.Reset(len(c.filtered))
}

// SetSearch updates the search term.
func (c *Catalog) SetSearch(term string) {
	q := c.query
	q.Search = term
	c.Apply(q)
}

// SetCategory updates the category selector and clears the subcategory.
func (c *Catalog) SetCategory(category string) {
	q := c.query
	q.Category = category
	q.Subcategory = AllCategories
	c.Apply(q)
}

// SetSubcategory updates the subcategory selector.
func (c *Catalog) SetSubcategory(subcategory string) {
	q := c.query
	q.Subcategory = subcategory
	c.Apply(q)
}

// Query returns the active query.
func (c *Catalog) Query() Query { return c.query }

// Filtered returns all products matching the active query.
func (c *Catalog) Filtered() []model.Product { return c.filtered }

// Page returns the products in the current window.
func (c *Catalog) Page() []model.Product { return Window(c.filtered, c.pager.Start()) }

// Pager exposes window navigation.
func (c *Catalog) Pager() *Pager { return c.pager }
