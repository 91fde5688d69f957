package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/ordering"
	"github.com/polkiloo/opeak/internal/server/http/dto"
)

// OrderHandler lists and manages submitted orders.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	filter := ordering.OrderFilter{
		User: c.Query("user"),
		City: c.Query("city"),
		Area: c.Query("area"),
		Shop: c.Query("shop"),
	}
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUser(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		r := toOrderResponse(o.Order)
		r.Lines = toLines(o.Lines)
		r.Total = money(o.Total)
		response = append(response, r)
	}
	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), CurrentUser(c), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	confirm := false
	if raw := c.Query("confirm"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		confirm = v
	}
	if err := h.facade.DeleteOrder(c.Request.Context(), CurrentUser(c), c.Param("id"), confirm); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
