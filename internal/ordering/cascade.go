package ordering

import (
	"strings"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
)

// Cascade is the city → area → shop dependent selection.
type Cascade struct {
	cities []model.City
	areas  []model.Area
	shops  []model.Shop

	city string
	area string
	shop string

	areaCandidates []model.Area
	shopCandidates []model.Shop
}

// NewCascade builds a cascade with nothing selected.
func NewCascade(cities []model.City, areas []model.Area, shops []model.Shop) *Cascade {
	return &Cascade{cities: cities, areas: areas, shops: shops}
}

// SelectCity chooses a city and clears every dependent selection.
func (c *Cascade) SelectCity(id string) {
	c.city = id
	c.area = ""
	c.shop = ""
	c.shopCandidates = nil
	c.areaCandidates = nil
	if id == "" {
		return
	}
	for _, a := range c.areas {
		if a.City == id {
			c.areaCandidates = append(c.areaCandidates, a)
		}
	}
}

// SelectArea chooses an area among the current candidates and clears the
// shop selection. It returns false when the area is not a candidate.
func (c *Cascade) SelectArea(id string) bool {
	c.area = ""
	c.shop = ""
	c.shopCandidates = nil
	if id == "" {
		return true
	}
	if !containsArea(c.areaCandidates, id) {
		return false
	}
	c.area = id
	for _, s := range c.shops {
		if s.Area == id {
			c.shopCandidates = append(c.shopCandidates, s)
		}
	}
	return true
}

// SelectShop chooses a shop among the current candidates.
func (c *Cascade) SelectShop(id string) bool {
	if id == "" {
		c.shop = ""
		return true
	}
	for _, s := range c.shopCandidates {
		if s.ID == id {
			c.shop = id
			return true
		}
	}
	return false
}

// Cities returns every city.
func (c *Cascade) Cities() []model.City { return c.cities }

// Areas returns the areas of the selected city.
func (c *Cascade) Areas() []model.Area { return c.areaCandidates }

// Shops returns the shops of the selected area.
func (c *Cascade) Shops() []model.Shop { return c.shopCandidates }

// City returns the selected city identifier.
func (c *Cascade) City() string { return c.city }

// Area returns the selected area identifier.
func (c *Cascade) Area() string { return c.area }

// Shop returns the selected shop identifier.
func (c *Cascade) Shop() string { return c.shop }

// Placement returns the full selection when every level is chosen.
func (c *Cascade) Placement() (model.Placement, bool) {
	if c.city == "" || c.area == "" || c.shop == "" {
		return model.Placement{}, false
	}
	return model.Placement{City: c.city, Area: c.area, Shop: c.shop}, true
}

func containsArea(areas []model.Area, id string) bool {
	for _, a := range areas {
		if a.ID == id {
			return true
		}
	}
	return false
}

// ResolveShop derives the area and city a shop belongs to.
func ResolveShop(areas []model.Area, shops []model.Shop, shopID string) (model.Placement, error) {
	if shopID == "" {
		return model.Placement{}, domainErrors.ErrShopRequired
	}
	for _, s := range shops {
		if s.ID != shopID {
			continue
		}
		for _, a := range areas {
			if a.ID == s.Area {
				if a.City == "" {
					break
				}
				return model.Placement{City: a.City, Area: a.ID, Shop: s.ID}, nil
			}
		}
		return model.Placement{}, domainErrors.ErrLocationRequired
	}
	return model.Placement{}, domainErrors.ErrShopRequired
}

// CheckPlacement verifies that shop belongs to area and area to city.
func CheckPlacement(areas []model.Area, shops []model.Shop, p model.Placement) error {
	if p.City == "" || p.Area == "" || p.Shop == "" {
		return domainErrors.ErrLocationRequired
	}
	c := NewCascade(nil, areas, shops)
	c.SelectCity(p.City)
	if !c.SelectArea(p.Area) || !c.SelectShop(p.Shop) {
		return domainErrors.ErrLocationRequired
	}
	return nil
}

// SearchShops filters shops by case-insensitive name substring.
func SearchShops(shops []model.Shop, term string) []model.Shop {
	term = strings.ToLower(term)
	result := make([]model.Shop, 0, len(shops))
	for _, s := range shops {
		if strings.Contains(strings.ToLower(s.Name), term) {
			result = append(result, s)
		}
	}
	return result
}

// OrderFilter narrows the admin order list; empty fields match everything.
type OrderFilter struct {
	User string
	City string
	Area string
	Shop string
}

// FilterOrders applies f to orders, preserving order.
func FilterOrders(orders []model.Order, f OrderFilter) []model.Order {
	result := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if f.User != "" && o.Name != f.User {
			continue
		}
		if f.City != "" && o.City != f.City {
			continue
		}
		if f.Area != "" && o.Area != f.Area {
			continue
		}
		if f.Shop != "" && o.Shop != f.Shop {
			continue
		}
		result = append(result, o)
	}
	return result
}
