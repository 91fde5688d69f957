package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/domain/repository"
)

const defaultTimeout = 10 * time.Second

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap maps the status onto a domain error.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domainErrors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return domainErrors.ErrForbidden
	}
	return domainErrors.ErrBackendUnavailable
}

// Observer receives per-call timings.
type Observer interface {
	ObserveBackend(endpoint string, status int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveBackend(string, int, time.Duration) {}

// HTTPClient talks to the REST backend.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	validate   *validator.Validate
	observer   Observer
}

var (
	_ repository.CatalogRepository = (*HTTPClient)(nil)
	_ repository.OrderRepository   = (*HTTPClient)(nil)
	_ repository.SessionVerifier   = (*HTTPClient)(nil)
)

// NewHTTPClient creates a backend client; non-positive timeouts use the default.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger, observer Observer) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("backend url must be absolute")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &HTTPClient{
		baseURL:    parsed,
		logger:     logger,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		observer:   observer,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Products(ctx context.Context) ([]model.Product, error) {
	return fetchList[model.Product](ctx, c, "product")
}

func (c *HTTPClient) Categories(ctx context.Context) ([]model.Category, error) {
	return fetchList[model.Category](ctx, c, "category")
}

func (c *HTTPClient) Cities(ctx context.Context) ([]model.City, error) {
	return fetchList[model.City](ctx, c, "city")
}

func (c *HTTPClient) Areas(ctx context.Context) ([]model.Area, error) {
	return fetchList[model.Area](ctx, c, "area")
}

func (c *HTTPClient) Shops(ctx context.Context) ([]model.Shop, error) {
	return fetchList[model.Shop](ctx, c, "shop")
}

// List returns every order known to the backend.
func (c *HTTPClient) List(ctx context.Context) ([]model.Order, error) {
	payloads, err := fetchList[orderPayload](ctx, c, "order")
	if err != nil {
		return nil, err
	}
	orders := make([]model.Order, 0, len(payloads))
	for _, p := range payloads {
		orders = append(orders, p.toModel())
	}
	return orders, nil
}

// Create posts a new order. The stored order is returned when the backend
// echoes it, otherwise the submitted one.
func (c *HTTPClient) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	payload := newOrderPayload(order)
	payload.ID = ""
	if err := c.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("order payload: %w", err)
	}
	body, err := c.do(ctx, "order.create", http.MethodPost, "order", payload)
	if err != nil {
		return nil, err
	}
	var created orderPayload
	if err := decodeOne(body, &created); err != nil || created.ID == "" {
		return &order, nil
	}
	result := created.toModel()
	return &result, nil
}

// Update replaces the order identified by order.ID. Only the status is
// checked here; the rest is the stored order as the backend returned it.
func (c *HTTPClient) Update(ctx context.Context, order model.Order) error {
	if order.ID == "" {
		return domainErrors.ErrNotFound
	}
	payload := newOrderPayload(order)
	if err := c.validate.StructPartial(payload, "Status"); err != nil {
		return fmt.Errorf("order payload: %w", err)
	}
	_, err := c.do(ctx, "order.update", http.MethodPut, path.Join("order", url.PathEscape(order.ID)), payload)
	return err
}

func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domainErrors.ErrNotFound
	}
	_, err := c.do(ctx, "order.delete", http.MethodDelete, path.Join("order", url.PathEscape(id)), nil)
	return err
}

// Verify exchanges an upstream token for the user it belongs to.
func (c *HTTPClient) Verify(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, domainErrors.ErrForbidden
	}
	body, err := c.do(ctx, "auth", http.MethodPost, "auth/auth", authRequest{Token: token})
	if err != nil {
		return nil, err
	}
	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if resp.Data == nil || resp.Data.UserID == "" {
		return nil, domainErrors.ErrForbidden
	}
	role := model.Role(resp.Data.Role)
	if role != model.RoleAdmin {
		role = model.RoleSalesman
	}
	return &model.User{ID: resp.Data.UserID, Name: resp.Data.Username, Email: resp.Data.Email, Role: role}, nil
}

func fetchList[T any](ctx context.Context, c *HTTPClient, resource string) ([]T, error) {
	body, err := c.do(ctx, resource+".list", http.MethodGet, resource, nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[T](body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource, err)
	}
	return items, nil
}

func (c *HTTPClient) do(ctx context.Context, endpoint, method, resource string, payload any) ([]byte, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, "/api", resource)

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observer.ObserveBackend(endpoint, 0, time.Since(started))
		return nil, fmt.Errorf("%w: %s %s: %v", domainErrors.ErrBackendUnavailable, method, target.Path, err)
	}
	defer resp.Body.Close()
	c.observer.ObserveBackend(endpoint, resp.StatusCode, time.Since(started))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domainErrors.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("backend request failed",
			slog.String("method", method),
			slog.String("path", target.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, &StatusError{Method: method, Path: target.Path, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// IsStatus reports whether err carries the given backend status.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
