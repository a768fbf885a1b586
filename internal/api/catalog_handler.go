package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nutrigo-backend-go/internal/core"
	"nutrigo-backend-go/internal/models"
)

// CatalogHandler serves the menu and membership catalogs.
type CatalogHandler struct {
	catalog core.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog core.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// mapCatalogErrorToStatus maps errors from core.CatalogService to HTTP status
// codes and an ErrorResponse body.
func mapCatalogErrorToStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrMenuItemNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrMenuItemNotFound.Error(), Details: err.Error()})
	case errors.Is(err, core.ErrMembershipNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: core.ErrMembershipNotFound.Error(), Details: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// ListMenu handles GET /menu?category=
func (h *CatalogHandler) ListMenu(c *gin.Context) {
	category := c.DefaultQuery("category", "All")
	items := h.catalog.Menu(category)

	added := make(map[int]bool)
	for _, id := range h.catalog.RecentlyAdded() {
		added[id] = true
	}

	views := make([]MenuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, MenuItemView{MenuItem: item, Added: added[item.ID]})
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": h.catalog.Categories(),
		"category":   category,
		"items":      views,
	})
}

// AddMenuItem handles POST /menu/:id/add
//
// The "order" is purely visual: the item gets a short-lived added marker that
// clears itself after the configured TTL.
func (h *CatalogHandler) AddMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Menu item id must be an integer", Details: c.Param("id")})
		return
	}

	if err := h.catalog.MarkAdded(id); err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Item added",
		Data:    gin.H{"added": h.catalog.RecentlyAdded()},
	})
}

// ListMemberships handles GET /memberships
func (h *CatalogHandler) ListMemberships(c *gin.Context) {
	c.JSON(http.StatusOK, MembershipsResponse{
		Plans:  h.catalog.MembershipOrder(),
		Active: h.catalog.ActiveMembership(),
	})
}

// SelectMembership handles POST /memberships/select
func (h *CatalogHandler) SelectMembership(c *gin.Context) {
	var req models.SelectMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.catalog.SelectMembership(req.ID); err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}

	c.JSON(http.StatusOK, MembershipsResponse{
		Plans:  h.catalog.MembershipOrder(),
		Active: h.catalog.ActiveMembership(),
	})
}
