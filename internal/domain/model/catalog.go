package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is read-only reference data offered in the catalog.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Images      []string        `json:"images"`
}

// Category groups products and owns an ordered set of subcategory names.
type Category struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// HasSubcategory reports whether name is one of the category's subcategories.
func (c Category) HasSubcategory(name string) bool {
	for _, s := range c.Subcategories {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// Catalog is an immutable snapshot of all reference data.
type Catalog struct {
	Products   []Product
	Categories []Category
	Cities     []City
	Areas      []Area
	Shops      []Shop
}

// Product looks a product up by identifier.
func (c *Catalog) Product(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Category looks a category up by identifier.
func (c *Catalog) Category(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}
