package ordering

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
)

func product(id string, price int64) model.Product {
	return model.Product{ID: id, Name: "Product " + id, Price: decimal.NewFromInt(price), Category: "c1", Images: []string{id + ".png"}}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	products := []model.Product{{ID: "1", Name: "Shirt A"}, {ID: "2", Name: "Pants"}, {ID: "3", Name: "T-Shirt"}}

	got := Filter(products, Query{Search: "shirt", Category: AllCategories})

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestFilterCategoryAndSubcategory(t *testing.T) {
	products := []model.Product{
		{ID: "1", Name: "a", Category: "food", Subcategory: "Snacks"},
		{ID: "2", Name: "b", Category: "food", Subcategory: "Drinks"},
		{ID: "3", Name: "c", Category: "toys"},
	}

	assert.Len(t, Filter(products, Query{Category: "food"}), 2)
	assert.Len(t, Filter(products, Query{Category: AllCategories}), 3)
	got := Filter(products, Query{Category: "food", Subcategory: "snacks"})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestPagerClampsWindow(t *testing.T) {
	p := NewPager(7)
	assert.False(t, p.HasPrev())
	p.Next()
	assert.Equal(t, 3, p.Start())
	p.Next()
	assert.Equal(t, 4, p.Start())
	assert.False(t, p.HasNext())
	p.Next()
	assert.Equal(t, 4, p.Start())
	p.Prev()
	p.Prev()
	p.Prev()
	assert.Equal(t, 0, p.Start())

	short := NewPager(2)
	short.Next()
	assert.Equal(t, 0, short.Start())

	p.Seek(100)
	assert.Equal(t, 4, p.Start())
	p.Seek(-1)
	assert.Equal(t, 0, p.Start())
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2, 3}, Window(items, 0))
	assert.Equal(t, []int{4, 5}, Window(items, 3))
	assert.Nil(t, Window(items, 5))
}

func TestCatalogResetsWindowOnFilterChange(t *testing.T) {
	var products []model.Product
	for i := 0; i < 9; i++ {
		products = append(products, model.Product{ID: fmt.Sprint(i), Name: fmt.Sprintf("item %d", i), Category: "c"})
	}
	c := NewCatalog(products)
	c.Pager().Next()
	c.Pager().Next()
	require.Equal(t, 6, c.Pager().Start())

	c.SetSearch("item 1")
	assert.Equal(t, 0, c.Pager().Start())
	require.Len(t, c.Page(), 1)
	assert.Equal(t, "1", c.Page()[0].ID)

	c.SetSearch("")
	c.Pager().Next()
	c.SetSearch("")
	assert.Equal(t, 3, c.Pager().Start(), "unchanged query keeps the window")

	c.SetSubcategory("x")
	c.SetCategory("c")
	assert.Equal(t, AllCategories, c.Query().Subcategory)
	assert.Len(t, c.Filtered(), 9)
}

func TestDraftTotals(t *testing.T) {
	a, b := product("A", 10), product("B", 5)
	d := NewDraft()
	d.Add(a)
	d.Add(a)
	d.Add(b)
	assert.True(t, d.Total().Equal(decimal.NewFromInt(25)))

	d.Add(a)
	line, ok := d.Line("A")
	require.True(t, ok)
	assert.Equal(t, 3, line.Quantity)
	assert.True(t, d.Total().Equal(decimal.NewFromInt(35)))

	d.SetQuantity("A", 0)
	require.Equal(t, 1, d.Len())
	assert.Equal(t, "B", d.Lines()[0].ProductID)
	assert.True(t, d.Total().Equal(decimal.NewFromInt(5)))

	d.Clear()
	assert.True(t, d.Empty())
	assert.True(t, d.Total().IsZero())
	assert.Empty(t, d.Lines())
}

func TestDraftQuantityCap(t *testing.T) {
	p := product("A", 1)
	d := NewDraft()
	for i := 0; i < 5; i++ {
		d.Add(p)
	}
	assert.Empty(t, d.Diagnostic())

	d.Add(p)
	line, _ := d.Line("A")
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, MsgMaxQuantity, d.Diagnostic())

	d.SetQuantity("A", 6)
	line, _ = d.Line("A")
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, MsgMaxQuantity, d.Diagnostic())

	d.SetQuantity("A", 2)
	line, _ = d.Line("A")
	assert.Equal(t, 2, line.Quantity)
	assert.Empty(t, d.Diagnostic())

	d.SetQuantity("A", -1)
	line, _ = d.Line("A")
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, MsgNegativeQuantity, d.Diagnostic())
}

func TestDraftSetQuantityOnAbsentProductIsNoop(t *testing.T) {
	d := NewDraft()
	d.SetQuantity("missing", 3)
	assert.True(t, d.Empty())
	assert.Empty(t, d.Diagnostic())
}

func TestDraftLineSnapshotsProduct(t *testing.T) {
	p := product("A", 10)
	d := NewDraft()
	d.Add(p)
	p.Images[0] = "changed"
	p.Price = decimal.NewFromInt(99)

	line, _ := d.Line("A")
	assert.Equal(t, []string{"A.png"}, line.Images)
	assert.True(t, line.Price.Equal(decimal.NewFromInt(10)))
}

func TestDraftFromOrderUsesCurrentPrices(t *testing.T) {
	products := map[string]model.Product{"p2": product("p2", 7)}
	lookup := func(id string) (model.Product, bool) {
		p, ok := products[id]
		return p, ok
	}
	o := model.Order{ID: "o1", Items: []model.OrderItem{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}}}

	d := DraftFromOrder(o, lookup)
	lines := d.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, UnknownProduct, lines[0].Name)
	assert.True(t, lines[0].Price.IsZero())

	d.Remove("p1")
	assert.Equal(t, []model.OrderItem{{ProductID: "p2", Quantity: 1}}, d.Items())
	assert.True(t, d.Total().Equal(decimal.NewFromInt(7)))
}

func TestCartCheckoutTotal(t *testing.T) {
	c := NewCart()
	c.Add(product("A", 50), 2)
	c.Add(product("B", 50), 1)

	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "249.00", c.CheckoutTotal(DefaultCheckoutFee).StringFixed(2))
}

func TestCartIncrementDecrement(t *testing.T) {
	c := NewCart()
	c.Add(product("A", 1), 4)
	c.Increment("A")
	c.Increment("A")
	assert.Equal(t, MsgMaxQuantity, c.Diagnostic())
	assert.Equal(t, 5, c.Lines()[0].Quantity)

	c.Add(product("A", 1), 1)
	assert.Equal(t, MsgMaxQuantity, c.Diagnostic())

	for i := 0; i < 5; i++ {
		c.Decrement("A")
	}
	assert.True(t, c.Empty())
	assert.Empty(t, c.Diagnostic())
}

func TestCartEncodeDecode(t *testing.T) {
	c := NewCart()
	c.Add(product("A", 3), 2)
	content, err := c.Encode()
	require.NoError(t, err)

	restored, err := DecodeCart(content)
	require.NoError(t, err)
	assert.Equal(t, c.Items(), restored.Items())
	assert.True(t, c.Subtotal().Equal(restored.Subtotal()))
	assert.Equal(t, []string{"A.png"}, restored.Lines()[0].Images)

	empty, err := NewCart().Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))
}

func TestDecodeCartMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{broken"},
		{name: "zero quantity", content: `[{"product_id":"A","quantity":0}]`},
		{name: "missing id", content: `[{"quantity":1}]`},
		{name: "duplicate", content: `[{"product_id":"A","quantity":1},{"product_id":"A","quantity":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := DecodeCart([]byte(tt.content))
			assert.ErrorIs(t, err, ErrMalformedCart)
			require.NotNil(t, c)
			assert.True(t, c.Empty())
		})
	}

	c, err := DecodeCart(nil)
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func locations() ([]model.City, []model.Area, []model.Shop) {
	cities := []model.City{{ID: "c1"}, {ID: "c2"}}
	areas := []model.Area{{ID: "a1", City: "c1"}, {ID: "a2", City: "c1"}, {ID: "a3", City: "c2"}}
	shops := []model.Shop{{ID: "s1", Name: "Corner Store", Area: "a1"}, {ID: "s2", Name: "Mega Mart", Area: "a1"}, {ID: "s3", Name: "Kiosk", Area: "a3"}}
	return cities, areas, shops
}

func TestCascadeCityChangeClearsDependents(t *testing.T) {
	c := NewCascade(locations())
	c.SelectCity("c1")
	assert.Len(t, c.Areas(), 2)
	require.True(t, c.SelectArea("a1"))
	assert.Len(t, c.Shops(), 2)
	require.True(t, c.SelectShop("s2"))
	p, ok := c.Placement()
	require.True(t, ok)
	assert.Equal(t, model.Placement{City: "c1", Area: "a1", Shop: "s2"}, p)

	c.SelectCity("c2")
	assert.Empty(t, c.Area())
	assert.Empty(t, c.Shop())
	assert.Empty(t, c.Shops())
	assert.Len(t, c.Areas(), 1)
	_, ok = c.Placement()
	assert.False(t, ok)
}

func TestCascadeRejectsForeignSelections(t *testing.T) {
	c := NewCascade(locations())
	c.SelectCity("c1")
	assert.False(t, c.SelectArea("a3"))
	require.True(t, c.SelectArea("a1"))
	assert.False(t, c.SelectShop("s3"))
	assert.Empty(t, c.Shop())
}

func TestResolveShop(t *testing.T) {
	_, areas, shops := locations()

	p, err := ResolveShop(areas, shops, "s3")
	require.NoError(t, err)
	assert.Equal(t, model.Placement{City: "c2", Area: "a3", Shop: "s3"}, p)

	_, err = ResolveShop(areas, shops, "")
	assert.ErrorIs(t, err, domainErrors.ErrShopRequired)

	_, err = ResolveShop(areas, []model.Shop{{ID: "orphan", Area: "nowhere"}}, "orphan")
	assert.ErrorIs(t, err, domainErrors.ErrLocationRequired)
}

func TestCheckPlacement(t *testing.T) {
	_, areas, shops := locations()
	assert.NoError(t, CheckPlacement(areas, shops, model.Placement{City: "c1", Area: "a1", Shop: "s1"}))
	assert.ErrorIs(t, CheckPlacement(areas, shops, model.Placement{City: "c2", Area: "a1", Shop: "s1"}), domainErrors.ErrLocationRequired)
	assert.ErrorIs(t, CheckPlacement(areas, shops, model.Placement{City: "c1", Area: "a1"}), domainErrors.ErrLocationRequired)
}

func TestSearchShops(t *testing.T) {
	_, _, shops := locations()
	got := SearchShops(shops, "MART")
	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].ID)
	assert.Len(t, SearchShops(shops, ""), 3)
}

func TestFilterOrders(t *testing.T) {
	orders := []model.Order{
		{ID: "1", Name: "ann", City: "c1", Area: "a1", Shop: "s1"},
		{ID: "2", Name: "bob", City: "c1", Area: "a2", Shop: "s2"},
		{ID: "3", Name: "ann", City: "c2", Area: "a3", Shop: "s3"},
	}
	assert.Len(t, FilterOrders(orders, OrderFilter{}), 3)
	assert.Len(t, FilterOrders(orders, OrderFilter{User: "ann"}), 2)
	got := FilterOrders(orders, OrderFilter{User: "ann", City: "c1"})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestOrderBook(t *testing.T) {
	b := NewOrderBook()
	b.Replace([]model.Order{{ID: "1", Status: model.OrderStatusPending}})
	b.Upsert(model.Order{ID: "2", Status: model.OrderStatusPending})
	b.Upsert(model.Order{ID: "1", Status: model.OrderStatusDelivered})

	o, ok := b.Get("1")
	require.True(t, ok)
	assert.Equal(t, model.OrderStatusDelivered, o.Status)

	prev, ok := b.SetStatus("2", model.OrderStatusProcessing)
	require.True(t, ok)
	assert.Equal(t, model.OrderStatusPending, prev)

	_, ok = b.SetStatus("missing", model.OrderStatusProcessing)
	assert.False(t, ok)

	assert.True(t, b.Remove("1"))
	assert.False(t, b.Remove("1"))
	assert.Len(t, b.Snapshot(), 1)
}

func TestSubmittedByNewestFirst(t *testing.T) {
	now := time.Now()
	orders := []model.Order{
		{ID: "old", Email: "a@x", CreatedAt: now.Add(-time.Hour)},
		{ID: "other", Email: "b@x", CreatedAt: now},
		{ID: "new", Email: "a@x", CreatedAt: now},
	}
	got := SubmittedBy(orders, "a@x")
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "old", got[1].ID)
}

func TestDraftRegistryOwnership(t *testing.T) {
	r := NewDraftRegistry()
	v := r.Open("u1", nil, nil)
	require.NotEmpty(t, v.ID)

	_, err := r.Do(v.ID, "u2", func(*DraftSession) error { return nil })
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	view, err := r.Do(v.ID, "u1", func(s *DraftSession) error {
		s.Draft.Add(product("A", 4))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "4.00", view.Total)
	require.Len(t, view.Lines, 1)

	assert.ErrorIs(t, r.Discard(v.ID, "u2"), domainErrors.ErrNotFound)
	require.NoError(t, r.Discard(v.ID, "u1"))
	assert.Equal(t, 0, r.Len())
}

func TestDraftRegistryCloseRemovesSession(t *testing.T) {
	r := NewDraftRegistry()
	v := r.Open("u1", nil, nil)

	view, err := r.Do(v.ID, "u1", func(s *DraftSession) error {
		s.Close()
		return nil
	})
	require.NoError(t, err)
	assert.True(t, view.Closed)
	assert.Equal(t, 0, r.Len())

	_, err = r.Do(v.ID, "u1", func(*DraftSession) error { return nil })
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestDraftRegistryExpireDropsIdleDrafts(t *testing.T) {
	r := NewDraftRegistry()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	idle := r.Open("u1", nil, nil)
	active := r.Open("u1", nil, nil)

	clock = clock.Add(20 * time.Minute)
	_, err := r.Do(active.ID, "u1", func(*DraftSession) error { return nil })
	require.NoError(t, err)

	clock = clock.Add(15 * time.Minute)
	assert.Equal(t, 1, r.Expire(30*time.Minute))
	assert.Equal(t, 1, r.Len())

	_, err = r.Do(idle.ID, "u1", func(*DraftSession) error { return nil })
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = r.Do(active.ID, "u1", func(*DraftSession) error { return nil })
	assert.NoError(t, err)

	assert.Equal(t, 0, r.Expire(0))
}

func TestDraftRegistryExpireSkipsBusyDrafts(t *testing.T) {
	r := NewDraftRegistry()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }
	v := r.Open("u1", nil, nil)
	clock = clock.Add(time.Hour)

	_, err := r.Do(v.ID, "u1", func(*DraftSession) error {
		assert.Equal(t, 0, r.Expire(time.Minute))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestDraftRegistrySerializesOperations(t *testing.T) {
	r := NewDraftRegistry()
	v := r.Open("u1", nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Do(v.ID, "u1", func(s *DraftSession) error {
				s.Draft.Add(product(fmt.Sprintf("P%d", i%4), 1))
				return nil
			})
		}()
	}
	wg.Wait()

	view, err := r.Do(v.ID, "u1", func(*DraftSession) error { return nil })
	require.NoError(t, err)
	require.Len(t, view.Lines, 4)
	for _, l := range view.Lines {
		assert.Equal(t, 5, l.Quantity)
	}
}
