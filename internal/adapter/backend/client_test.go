package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type observerStub struct {
	mu    sync.Mutex
	calls map[string]int
}

func (o *observerStub) ObserveBackend(endpoint string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.calls == nil {
		o.calls = map[string]int{}
	}
	o.calls[endpoint] = status
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *observerStub) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	obs := &observerStub{}
	client, err := NewHTTPClient(srv.URL, time.Second, testLogger(), obs)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, obs
}

func sampleOrder() model.Order {
	return model.Order{
		ID:            "o1",
		Name:          "Sam",
		Email:         "sam@example.com",
		City:          "c1",
		Area:          "a1",
		Shop:          "s1",
		Items:         []model.OrderItem{{ProductID: "p2", Quantity: 1}},
		PaymentMethod: model.PaymentCashOnDelivery,
		Price:         decimal.RequireFromString("12.5"),
		Status:        model.OrderStatusPending,
	}
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", 0, testLogger(), nil); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", 0, testLogger(), nil); err == nil {
		t.Fatal("expected error for relative url")
	}
	client, err := NewHTTPClient("http://backend.local", 0, testLogger(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", client.httpClient.Timeout)
	}
}

func TestReferenceListsAcceptEnvelopeAndBareArrays(t *testing.T) {
	client, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/product":
			_, _ = io.WriteString(w, `{"response":[{"_id":"p1","name":"Shirt","price":10,"category":"c","images":["a.png"]}]}`)
		case "/api/category":
			_, _ = io.WriteString(w, `[{"_id":"c","name":"Clothes","subcategories":["Tops"]}]`)
		case "/api/city":
			_, _ = io.WriteString(w, `{"response":null}`)
		case "/api/area":
			_, _ = io.WriteString(w, `{"response":[{"_id":"a1","name":"North","city":"c1"}]}`)
		case "/api/shop":
			_, _ = io.WriteString(w, `{"response":[{"_id":"s1","name":"Corner","area":"a1","ownername":"Bob"}]}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	products, err := client.Products(ctx)
	if err != nil || len(products) != 1 {
		t.Fatalf("unexpected products: %+v err=%v", products, err)
	}
	if !products[0].Price.Equal(decimal.NewFromInt(10)) || products[0].Images[0] != "a.png" {
		t.Fatalf("unexpected product: %+v", products[0])
	}

	categories, err := client.Categories(ctx)
	if err != nil || len(categories) != 1 || !categories[0].HasSubcategory("tops") {
		t.Fatalf("unexpected categories: %+v err=%v", categories, err)
	}

	cities, err := client.Cities(ctx)
	if err != nil || len(cities) != 0 {
		t.Fatalf("expected empty cities, got %+v err=%v", cities, err)
	}

	areas, err := client.Areas(ctx)
	if err != nil || areas[0].City != "c1" {
		t.Fatalf("unexpected areas: %+v err=%v", areas, err)
	}

	shops, err := client.Shops(ctx)
	if err != nil || shops[0].OwnerName != "Bob" {
		t.Fatalf("unexpected shops: %+v err=%v", shops, err)
	}

	if obs.calls["product.list"] != http.StatusOK {
		t.Fatalf("expected observed product call, got %v", obs.calls)
	}
}

func TestListOrders(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/order" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"_id":"o1","name":"Sam","email":"sam@example.com","city":"c1","area":"a1","shop":"s1",
			"items":[{"product_id":"p1","quantity":2}],"paymentMethod":"cod","price":"25.5","status":"processing","createdAt":"2024-01-02T03:04:05Z"}]`)
	})

	orders, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
	o := orders[0]
	if o.Status != model.OrderStatusProcessing || o.Items[0].Quantity != 2 || o.Price.StringFixed(2) != "25.50" {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.CreatedAt.Year() != 2024 {
		t.Fatalf("unexpected created at: %v", o.CreatedAt)
	}
}

func TestCreateOrderSendsWirePayload(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/order" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"response":{"_id":"new-id","name":"Sam","email":"sam@example.com","city":"c1","area":"a1","shop":"s1","items":[{"product_id":"p2","quantity":1}],"paymentMethod":"cod","price":12.5,"status":"pending"}}`)
	})

	created, err := client.Create(context.Background(), sampleOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "new-id" {
		t.Fatalf("expected backend id, got %q", created.ID)
	}
	if _, ok := got["_id"]; ok {
		t.Fatal("create must not send an id")
	}
	if got["price"] != 12.5 || got["paymentMethod"] != "cod" || got["status"] != "pending" {
		t.Fatalf("unexpected payload: %v", got)
	}
	items := got["items"].([]any)
	item := items[0].(map[string]any)
	if item["product_id"] != "p2" || item["quantity"] != float64(1) {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestCreateOrderWithoutEcho(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	})
	order := sampleOrder()
	created, err := client.Create(context.Background(), order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Shop != order.Shop {
		t.Fatalf("expected submitted order back, got %+v", created)
	}
}

func TestCreateOrderRejectsInvalidPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid payload must not reach the backend")
	})
	order := sampleOrder()
	order.Items = nil
	if _, err := client.Create(context.Background(), order); err == nil {
		t.Fatal("expected validation error")
	}
	order = sampleOrder()
	order.Status = "lost"
	if err := client.Update(context.Background(), order); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestUpdateOrderPassesStoredFieldsThrough(t *testing.T) {
	var sent orderPayload
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Errorf("decode update body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})
	order := sampleOrder()
	order.Email = "legacy-account"
	order.Items[0].Quantity = 7
	order.PaymentMethod = "card"
	order.Status = model.OrderStatusDelivered

	if err := client.Update(context.Background(), order); err != nil {
		t.Fatalf("status change on stored order must reach the backend: %v", err)
	}
	if sent.Status != "delivered" || sent.Email != "legacy-account" || len(sent.Items) != 1 || sent.Items[0].Quantity != 7 {
		t.Fatalf("unexpected update body %+v", sent)
	}
}

func TestUpdateAndDeleteOrder(t *testing.T) {
	var calls []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			var body orderPayload
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID != "o1" {
				t.Errorf("unexpected update body %+v err=%v", body, err)
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.Update(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := client.Delete(context.Background(), "o1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(calls) != 2 || calls[0] != "PUT /api/order/o1" || calls[1] != "DELETE /api/order/o1" {
		t.Fatalf("unexpected calls: %v", calls)
	}

	if err := client.Delete(context.Background(), ""); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for empty id, got %v", err)
	}
}

func TestStatusErrors(t *testing.T) {
	status := http.StatusInternalServerError
	client, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, "nope")
	})

	err := client.Delete(context.Background(), "o1")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusInternalServerError || se.Body != "nope" {
		t.Fatalf("expected status error, got %v", err)
	}
	if !errors.Is(err, domainErrors.ErrBackendUnavailable) {
		t.Fatalf("expected backend unavailable, got %v", err)
	}
	if obs.calls["order.delete"] != http.StatusInternalServerError {
		t.Fatalf("expected observed failure, got %v", obs.calls)
	}

	status = http.StatusNotFound
	if err := client.Delete(context.Background(), "o1"); !errors.Is(err, domainErrors.ErrNotFound) || !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	status = http.StatusUnauthorized
	if _, err := client.Verify(context.Background(), "token"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestTransportFailureAndTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	client, err := NewHTTPClient(srv.URL, 50*time.Millisecond, testLogger(), nil)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if _, err := client.List(context.Background()); !errors.Is(err, domainErrors.ErrBackendUnavailable) {
		t.Fatalf("expected backend unavailable on timeout, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req authRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch req.Token {
		case "admin":
			_, _ = io.WriteString(w, `{"data":{"userId":"u1","username":"Ann","email":"ann@example.com","role":"admin"}}`)
		case "sales":
			_, _ = io.WriteString(w, `{"data":{"userId":"u2","username":"Sam","email":"sam@example.com"}}`)
		default:
			_, _ = io.WriteString(w, `{"message":"invalid"}`)
		}
	})
	ctx := context.Background()

	user, err := client.Verify(ctx, "admin")
	if err != nil || !user.IsAdmin() || user.Name != "Ann" {
		t.Fatalf("unexpected user %+v err=%v", user, err)
	}
	user, err = client.Verify(ctx, "sales")
	if err != nil || user.Role != model.RoleSalesman {
		t.Fatalf("unexpected user %+v err=%v", user, err)
	}
	if _, err := client.Verify(ctx, "other"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := client.Verify(ctx, ""); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for empty token, got %v", err)
	}
}

func TestDecodeList(t *testing.T) {
	if _, err := decodeList[model.City]([]byte(`"text"`)); err == nil {
		t.Fatal("expected shape error")
	}
	items, err := decodeList[model.City](nil)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", items, err)
	}
	if _, err := decodeList[model.City]([]byte(`{"response":{"_id":"x"}}`)); err == nil {
		t.Fatal("expected error for object response")
	}
}
