package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/opeak/internal/domain/model"
	"github.com/polkiloo/opeak/internal/ordering"
	"github.com/polkiloo/opeak/internal/server/http/dto"
)

// CatalogHandler serves products, categories and the location pickers.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Products handles GET /api/catalog/products.
func (h *CatalogHandler) Products(c *gin.Context) {
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, err)
			return
		}
		offset = n
	}
	q := ordering.Query{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
	}

	page, err := h.facade.Products(c.Request.Context(), q, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]dto.ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toProductResponse(p))
	}
	c.JSON(http.StatusOK, dto.ProductPageResponse{
		Items:   items,
		Offset:  page.Offset,
		Total:   page.Total,
		HasNext: page.HasNext,
		HasPrev: page.HasPrev,
	})
}

// Categories handles GET /api/catalog/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		subs := cat.Subcategories
		if subs == nil {
			subs = []string{}
		}
		response = append(response, dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Subcategories: subs})
	}
	c.JSON(http.StatusOK, response)
}

// Locations handles GET /api/locations.
func (h *CatalogHandler) Locations(c *gin.Context) {
	loc, err := h.facade.Locations(c.Request.Context(), c.Query("city"), c.Query("area"), c.Query("shop_search"))
	if err != nil {
		writeError(c, err)
		return
	}

	response := dto.LocationsResponse{
		Cities: make([]dto.LocationResponse, 0, len(loc.Cities)),
		Areas:  make([]dto.LocationResponse, 0, len(loc.Areas)),
		Shops:  make([]dto.LocationResponse, 0, len(loc.Shops)),
		City:   loc.City,
		Area:   loc.Area,
	}
	for _, city := range loc.Cities {
		response.Cities = append(response.Cities, dto.LocationResponse{ID: city.ID, Name: city.Name})
	}
	for _, area := range loc.Areas {
		response.Areas = append(response.Areas, dto.LocationResponse{ID: area.ID, Name: area.Name, Parent: area.City})
	}
	for _, shop := range loc.Shops {
		response.Shops = append(response.Shops, dto.LocationResponse{ID: shop.ID, Name: shop.Name, Parent: shop.Area})
	}
	c.JSON(http.StatusOK, response)
}

func toProductResponse(p model.Product) dto.ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       money(p.Price),
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Images:      images,
	}
}
