package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/opeak/internal/ordering"
	"github.com/polkiloo/opeak/internal/server/http/dto"
)

// DraftHandler drives the order entry and edit surfaces.
type DraftHandler struct {
	facade DraftFacade
}

// NewDraftHandler constructs DraftHandler.
func NewDraftHandler(facade DraftFacade) *DraftHandler {
	return &DraftHandler{facade: facade}
}

// Open handles POST /api/drafts.
func (h *DraftHandler) Open(c *gin.Context) {
	var req dto.OpenDraftRequest
	if !bindOptional(c, &req) {
		return
	}
	view, err := h.facade.OpenDraft(c.Request.Context(), CurrentUser(c), req.OrderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDraftResponse(view))
}

// Get handles GET /api/drafts/:id.
func (h *DraftHandler) Get(c *gin.Context) {
	view, err := h.facade.Draft(c.Request.Context(), CurrentUser(c), c.Param("id"))
	h.respond(c, view, err)
}

// Discard handles DELETE /api/drafts/:id.
func (h *DraftHandler) Discard(c *gin.Context) {
	if err := h.facade.DiscardDraft(c.Request.Context(), CurrentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddItem handles POST /api/drafts/:id/items.
func (h *DraftHandler) AddItem(c *gin.Context) {
	var req dto.DraftItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.facade.AddToDraft(c.Request.Context(), CurrentUser(c), c.Param("id"), req.ProductID)
	h.respond(c, view, err)
}

// SetQuantity handles PUT /api/drafts/:id/items/:product.
func (h *DraftHandler) SetQuantity(c *gin.Context) {
	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.facade.SetDraftQuantity(c.Request.Context(), CurrentUser(c), c.Param("id"), c.Param("product"), *req.Quantity)
	h.respond(c, view, err)
}

// RemoveItem handles DELETE /api/drafts/:id/items/:product.
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	view, err := h.facade.RemoveFromDraft(c.Request.Context(), CurrentUser(c), c.Param("id"), c.Param("product"))
	h.respond(c, view, err)
}

// Submit handles POST /api/drafts/:id/submit.
func (h *DraftHandler) Submit(c *gin.Context) {
	var req dto.SubmitDraftRequest
	if !bindOptional(c, &req) {
		return
	}
	order, err := h.facade.SubmitDraft(c.Request.Context(), CurrentUser(c), c.Param("id"), req.Shop)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Apply handles POST /api/drafts/:id/apply.
func (h *DraftHandler) Apply(c *gin.Context) {
	var req dto.ApplyDraftRequest
	if !bindOptional(c, &req) {
		return
	}
	order, err := h.facade.ApplyDraft(c.Request.Context(), CurrentUser(c), c.Param("id"), req.Confirm)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func (h *DraftHandler) respond(c *gin.Context, view ordering.DraftView, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDraftResponse(view))
}

// bindOptional decodes a JSON body that may be absent.
func bindOptional(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return false
	}
	return true
}

func toDraftResponse(v ordering.DraftView) dto.DraftResponse {
	return dto.DraftResponse{
		ID:         v.ID,
		OrderID:    v.Target,
		Lines:      toLines(v.Lines),
		Total:      v.Total,
		Diagnostic: v.Diagnostic,
	}
}
