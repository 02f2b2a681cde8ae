package handler

import (
	storefrontapp "github.com/consignhq/backend/internal/application/storefront"
	"github.com/consignhq/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// StorefrontHandler handles the public, unauthenticated shop browsing endpoints.
// Everything here is keyed by shop slug and never exposes consignor identities
// or split amounts.
type StorefrontHandler struct {
	BaseHandler
	storefrontService *storefrontapp.StorefrontService
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(storefrontService *storefrontapp.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{storefrontService: storefrontService}
}

// GetShop godoc
// @ID           getPublicShop
// @Summary      Get a public shop profile
// @Tags         storefront
// @Produce      json
// @Param        slug path string true "Shop slug"
// @Success      200 {object} APIResponse[storefrontapp.ShopResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /shops/{slug} [get]
func (h *StorefrontHandler) GetShop(c *gin.Context) {
	slug := c.Param("slug")

	shop, err := h.storefrontService.GetShop(c.Request.Context(), slug)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, shop)
}

// ListItems godoc
// @ID           listPublicShopItems
// @Summary      Browse a shop's available items
// @Tags         storefront
// @Produce      json
// @Param        slug path string true "Shop slug"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by title or brand"
// @Success      200 {object} APIResponse[[]storefrontapp.PublicItemResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /shops/{slug}/items [get]
func (h *StorefrontHandler) ListItems(c *gin.Context) {
	slug := c.Param("slug")

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.storefrontService.ListItems(c.Request.Context(), slug, req.ToFilter())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetItem godoc
// @ID           getPublicShopItem
// @Summary      Get a single listed item
// @Tags         storefront
// @Produce      json
// @Param        slug path string true "Shop slug"
// @Param        id path string true "Item ID" format(uuid)
// @Success      200 {object} APIResponse[storefrontapp.PublicItemResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /shops/{slug}/items/{id} [get]
func (h *StorefrontHandler) GetItem(c *gin.Context) {
	slug := c.Param("slug")

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.storefrontService.GetItem(c.Request.Context(), slug, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}
