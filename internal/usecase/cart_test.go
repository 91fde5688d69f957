package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/ordering"
)

func storedLines(t *testing.T, f *fixture, userID string) []model.Line {
	t.Helper()
	var lines []model.Line
	if err := json.Unmarshal([]byte(f.cartRepo.Stored(userID)), &lines); err != nil {
		t.Fatalf("decode stored cart: %v", err)
	}
	return lines
}

func TestCartUseCaseSavesEveryMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.cart.Add(ctx, salesman, "p2", 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !view.Subtotal.Equal(price(50)) || !view.Total.Equal(price(149)) || !view.Fee.Equal(price(99)) {
		t.Fatalf("unexpected totals: %+v", view)
	}
	if f.cartRepo.Saves != 1 || storedLines(t, f, "u1")[0].Quantity != 2 {
		t.Fatalf("expected cart to be saved after add, saves=%d", f.cartRepo.Saves)
	}

	steps := []struct {
		name string
		run  func() (*CartView, error)
		qty  int
	}{
		{"increment", func() (*CartView, error) { return f.cart.Increment(ctx, salesman, "p2") }, 3},
		{"decrement", func() (*CartView, error) { return f.cart.Decrement(ctx, salesman, "p2") }, 2},
	}
	for i, step := range steps {
		if _, err := step.run(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if f.cartRepo.Saves != i+2 || storedLines(t, f, "u1")[0].Quantity != step.qty {
			t.Fatalf("%s: expected stored quantity %d", step.name, step.qty)
		}
	}

	view, _ = f.cart.Remove(ctx, salesman, "p2")
	if len(view.Lines) != 0 || len(storedLines(t, f, "u1")) != 0 {
		t.Fatalf("expected empty cart after remove: %+v", view)
	}
	if _, err := f.cart.Add(ctx, salesman, "ghost", 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected unknown product error, got %v", err)
	}
}

func TestCartUseCaseQuantityCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.cart.Add(ctx, salesman, "p1", 4); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, _ := f.cart.Increment(ctx, salesman, "p1")
	if view.Lines[0].Quantity != 5 || view.Diagnostic != "" {
		t.Fatalf("unexpected view: %+v", view)
	}
	view, _ = f.cart.Increment(ctx, salesman, "p1")
	if view.Lines[0].Quantity != 5 || view.Diagnostic != ordering.MsgMaxQuantity {
		t.Fatalf("expected cap diagnostic: %+v", view)
	}

	for i := 0; i < 5; i++ {
		view, _ = f.cart.Decrement(ctx, salesman, "p1")
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected last decrement to remove the line: %+v", view)
	}
}

func TestCartUseCaseMalformedContentStartsEmpty(t *testing.T) {
	f := newFixture(t)
	f.cartRepo.Content["u1"] = []byte("{not json")

	view, err := f.cart.Get(context.Background(), salesman)
	if err != nil {
		t.Fatalf("malformed content must not fail: %v", err)
	}
	if len(view.Lines) != 0 || !view.Subtotal.IsZero() {
		t.Fatalf("expected empty cart: %+v", view)
	}
	if f.cartRepo.Saves != 0 {
		t.Fatal("reading the cart must not save it")
	}
}

func TestCartUseCaseLoadError(t *testing.T) {
	f := newFixture(t)
	f.cartRepo.LoadErr = errors.New("db down")
	if _, err := f.cart.Get(context.Background(), salesman); err == nil {
		t.Fatal("expected storage error")
	}
}

func TestCartUseCaseCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.cart.Add(ctx, salesman, "p1", 1)
	_, _ = f.cart.Add(ctx, salesman, "p2", 2)

	order, err := f.cart.Checkout(ctx, salesman, CheckoutRequest{City: "city1", Area: "a2", Shop: "s2"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.ID == "" || !order.Price.Equal(price(159)) {
		t.Fatalf("expected subtotal plus fee, got %+v", order)
	}
	sent := f.orderRepo.Created[0]
	if sent.PaymentMethod != model.PaymentCashOnDelivery || sent.Status != model.OrderStatusPending || len(sent.Items) != 2 {
		t.Fatalf("unexpected order: %+v", sent)
	}
	if f.cartRepo.Deletes != 1 || f.cartRepo.Stored("u1") != "" {
		t.Fatal("expected cart to be cleared after checkout")
	}
	if f.recorder.Submitted[SourceCart] != 1 {
		t.Fatalf("expected cart submission to be recorded: %+v", f.recorder.Submitted)
	}
}

func TestCartUseCaseCheckoutValidation(t *testing.T) {
	cases := []struct {
		name string
		fill bool
		req  CheckoutRequest
		want error
	}{
		{"missing shop", true, CheckoutRequest{City: "city1", Area: "a1"}, domainErrors.ErrLocationRequired},
		{"card payment", true, CheckoutRequest{City: "city1", Area: "a1", Shop: "s1", PaymentMethod: "card"}, domainErrors.ErrInvalidPaymentMethod},
		{"shop outside area", true, CheckoutRequest{City: "city1", Area: "a1", Shop: "s3"}, domainErrors.ErrLocationRequired},
		{"area outside city", true, CheckoutRequest{City: "city2", Area: "a1", Shop: "s1"}, domainErrors.ErrLocationRequired},
		{"empty cart", false, CheckoutRequest{City: "city1", Area: "a1", Shop: "s1"}, domainErrors.ErrEmptyOrder},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			if tc.fill {
				_, _ = f.cart.Add(context.Background(), salesman, "p1", 1)
			}
			_, err := f.cart.Checkout(context.Background(), salesman, tc.req)
			if !errors.Is(err, tc.want) || !domainErrors.IsValidation(err) {
				t.Fatalf("expected validation %v, got %v", tc.want, err)
			}
			if len(f.orderRepo.Created) != 0 {
				t.Fatal("validation failures must not reach the backend")
			}
		})
	}
}

func TestCartUseCaseCheckoutEmptyCartSkipsReferenceFetch(t *testing.T) {
	f := newFixture(t)
	f.catalogRepo.Errs = referenceOutage()

	_, err := f.cart.Checkout(context.Background(), salesman, CheckoutRequest{City: "city1", Area: "a1", Shop: "s1"})
	if !errors.Is(err, domainErrors.ErrEmptyOrder) {
		t.Fatalf("expected empty order rejection, got %v", err)
	}
	if f.catalogRepo.Calls != 0 {
		t.Fatalf("expected no reference fetch, got %d", f.catalogRepo.Calls)
	}
}

func TestCartUseCaseCheckoutRejectsOverLimitContent(t *testing.T) {
	f := newFixture(t)
	content, _ := json.Marshal([]model.Line{{ProductID: "p1", Name: "Shirt A", Price: price(10), Quantity: 7}})
	f.cartRepo.Content["u1"] = content

	_, err := f.cart.Checkout(context.Background(), salesman, CheckoutRequest{City: "city1", Area: "a1", Shop: "s1"})
	if !errors.Is(err, domainErrors.ErrQuantityLimit) {
		t.Fatalf("expected quantity limit, got %v", err)
	}
	if msg, _ := domainErrors.Message(err); msg != MsgQuantityLimit {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestCartUseCaseCheckoutFailureKeepsCart(t *testing.T) {
	f := newFixture(t)
	f.orderRepo.CreateFn = func(context.Context, model.Order) (*model.Order, error) {
		return nil, domainErrors.ErrBackendUnavailable
	}
	_, _ = f.cart.Add(context.Background(), salesman, "p1", 1)

	_, err := f.cart.Checkout(context.Background(), salesman, CheckoutRequest{City: "city1", Area: "a1", Shop: "s1"})
	if msg, _ := domainErrors.Message(err); msg != MsgCheckoutFailed {
		t.Fatalf("expected %q, got %v", MsgCheckoutFailed, err)
	}
	if f.cartRepo.Deletes != 0 || len(storedLines(t, f, "u1")) != 1 {
		t.Fatal("failed checkout must keep the cart")
	}
}

func TestCartUseCaseSerializesPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.cart.Add(ctx, salesman, "p3", 1)
		}()
	}
	wg.Wait()

	lines := storedLines(t, f, "u1")
	if len(lines) != 1 || lines[0].Quantity != 5 {
		t.Fatalf("expected capped quantity from serialized adds, got %+v", lines)
	}
	if f.cart.locks.size() != 0 {
		t.Fatalf("expected idle locks to be released, got %d", f.cart.locks.size())
	}
}
