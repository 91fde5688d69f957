package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/server/http/dto"
	"github.com/polkiloo/opeak/internal/usecase"
)

// CartHandler manages the persisted cart and its checkout.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.facade.Cart(c.Request.Context(), CurrentUser(c))
	h.respond(c, view, err)
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	view, err := h.facade.AddToCart(c.Request.Context(), CurrentUser(c), req.ProductID, quantity)
	h.respond(c, view, err)
}

// Increment handles POST /api/cart/items/:product/increment.
func (h *CartHandler) Increment(c *gin.Context) {
	view, err := h.facade.IncrementCartItem(c.Request.Context(), CurrentUser(c), c.Param("product"))
	h.respond(c, view, err)
}

// Decrement handles POST /api/cart/items/:product/decrement.
func (h *CartHandler) Decrement(c *gin.Context) {
	view, err := h.facade.DecrementCartItem(c.Request.Context(), CurrentUser(c), c.Param("product"))
	h.respond(c, view, err)
}

// Remove handles DELETE /api/cart/items/:product.
func (h *CartHandler) Remove(c *gin.Context) {
	view, err := h.facade.RemoveCartItem(c.Request.Context(), CurrentUser(c), c.Param("product"))
	h.respond(c, view, err)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	view, err := h.facade.ClearCart(c.Request.Context(), CurrentUser(c))
	h.respond(c, view, err)
}

// Checkout handles POST /api/cart/checkout.
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := h.facade.Checkout(c.Request.Context(), CurrentUser(c), usecase.CheckoutRequest{
		City:          req.City,
		Area:          req.Area,
		Shop:          req.Shop,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

func (h *CartHandler) respond(c *gin.Context, view *usecase.CartView, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{
		Lines:      toLines(view.Lines),
		Subtotal:   money(view.Subtotal),
		Fee:        money(view.Fee),
		Total:      money(view.Total),
		Diagnostic: view.Diagnostic,
	})
}
