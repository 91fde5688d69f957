package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/opeak/internal/domain/errors"
	"github.com/polkiloo/opeak/internal/domain/model"
	pkgAuth "github.com/polkiloo/opeak/internal/pkg/auth"
	"github.com/polkiloo/opeak/internal/server/http/dto"
	"github.com/polkiloo/opeak/internal/server/http/middleware"
	"github.com/polkiloo/opeak/internal/usecase"
)

// CurrentUser extracts the authenticated user from context.
func CurrentUser(c *gin.Context) model.User {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return model.User{}
	}
	user, _ := val.(model.User)
	return user
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrBackendUnavailable), errors.Is(err, usecase.ErrCatalogUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, pkgAuth.ErrInvalidToken):
		return http.StatusUnauthorized
	case domainErrors.IsValidation(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error": msg}, preferring its user-facing text.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg, ok := domainErrors.Message(err)
	if !ok {
		msg = http.StatusText(status)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Malformed request."})
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toLines(lines []model.Line) []dto.LineResponse {
	out := make([]dto.LineResponse, 0, len(lines))
	for _, l := range lines {
		images := l.Images
		if images == nil {
			images = []string{}
		}
		out = append(out, dto.LineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     money(l.Price),
			Images:    images,
			Quantity:  l.Quantity,
			Subtotal:  money(l.Subtotal()),
		})
	}
	return out
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            o.ID,
		Name:          o.Name,
		Email:         o.Email,
		City:          o.City,
		Area:          o.Area,
		Shop:          o.Shop,
		PaymentMethod: string(o.PaymentMethod),
		Price:         money(o.Price),
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
	}
}
