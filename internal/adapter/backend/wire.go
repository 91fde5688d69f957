package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/opeak/internal/domain/model"
)

var errUnexpectedShape = errors.New("unexpected payload shape")

// envelope is the {"response": ...} wrapper most list endpoints use.
type envelope struct {
	Response json.RawMessage `json:"response"`
}

func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, err
		}
		if len(env.Response) == 0 || bytes.Equal(env.Response, []byte("null")) {
			return []T{}, nil
		}
		trimmed = env.Response
	}
	if trimmed[0] != '[' {
		return nil, errUnexpectedShape
	}
	items := []T{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeOne[T any](body []byte, dst *T) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errUnexpectedShape
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Response) > 0 && env.Response[0] == '{' {
		trimmed = env.Response
	}
	return json.Unmarshal(trimmed, dst)
}

type itemPayload struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=5"`
}

// orderPayload is the backend's order document.
type orderPayload struct {
	ID            string        `json:"_id,omitempty"`
	Name          string        `json:"name" validate:"required"`
	Email         string        `json:"email" validate:"required,email"`
	City          string        `json:"city" validate:"required"`
	Area          string        `json:"area" validate:"required"`
	Shop          string        `json:"shop" validate:"required"`
	Items         []itemPayload `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string        `json:"paymentMethod" validate:"oneof=cod"`
	Price         orderPrice    `json:"price"`
	Status        string        `json:"status" validate:"oneof=pending processing delivered"`
	CreatedAt     *time.Time    `json:"createdAt,omitempty"`
}

// orderPrice is sent as a plain JSON number and read back leniently.
type orderPrice struct {
	decimal.Decimal
}

func (p orderPrice) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.InexactFloat64())
}

func (p *orderPrice) UnmarshalJSON(data []byte) error {
	return p.Decimal.UnmarshalJSON(data)
}

func newOrderPayload(o model.Order) orderPayload {
	items := make([]itemPayload, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemPayload{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	payment := o.PaymentMethod
	if payment == "" {
		payment = model.PaymentCashOnDelivery
	}
	status := o.Status
	if status == "" {
		status = model.OrderStatusPending
	}
	p := orderPayload{
		ID:            o.ID,
		Name:          o.Name,
		Email:         o.Email,
		City:          o.City,
		Area:          o.Area,
		Shop:          o.Shop,
		Items:         items,
		PaymentMethod: string(payment),
		Price:         orderPrice{o.Price},
		Status:        string(status),
	}
	if !o.CreatedAt.IsZero() {
		created := o.CreatedAt
		p.CreatedAt = &created
	}
	return p
}

func (p orderPayload) toModel() model.Order {
	items := make([]model.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, model.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	o := model.Order{
		ID:            p.ID,
		Name:          p.Name,
		Email:         p.Email,
		City:          p.City,
		Area:          p.Area,
		Shop:          p.Shop,
		Items:         items,
		PaymentMethod: model.PaymentMethod(p.PaymentMethod),
		Price:         p.Price.Decimal,
		Status:        model.OrderStatus(p.Status),
	}
	if p.CreatedAt != nil {
		o.CreatedAt = *p.CreatedAt
	}
	return o
}

type authRequest struct {
	Token string `json:"token"`
}

type authResponse struct {
	Data *struct {
		UserID   string `json:"userId"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	} `json:"data"`
}
