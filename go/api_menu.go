package restaurantserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	menuhttpmapper "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/adapters/http/mapper"
	menudomain "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
	menuports "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/ports"
	apierrors "github.com/firaolassefa/restaurant-management-system/internal/shared/errors"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

// MenuAPI wires HTTP transport with the menu catalog service.
type MenuAPI struct {
	service menuports.Service
}

// NewMenuAPI creates a MenuAPI backed by the provided service.
func NewMenuAPI(service menuports.Service) MenuAPI {
	return MenuAPI{service: service}
}

// Get /api/v1/menu
// Search the catalog. Guests only ever see available items.
func (api *MenuAPI) SearchMenu(c *gin.Context) {
	category, err := menudomain.ParseCategoryFilter(c.Query("category"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	availableOnly, _, err := parseBoolQuery(c, "available")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if _, staff := identity.FromContext(c.Request.Context()); !staff {
		availableOnly = true
	}
	query := menudomain.SearchQuery{Term: c.Query("q"), Category: category, AvailableOnly: availableOnly}
	items, err := api.service.Search(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := []menuhttpmapper.MenuItem{}
	for item := range items {
		out = append(out, menuhttpmapper.FromDomainItem(item))
	}
	c.JSON(http.StatusOK, out)
}

// Get /api/v1/menu/:itemId
// Guests get 404 for unavailable items, as they never see them in search either.
func (api *MenuAPI) GetMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	item, err := api.service.GetItem(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if _, staff := identity.FromContext(c.Request.Context()); !staff && !item.Available {
		respondServiceError(c, menuports.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomainItem(item))
}

// Post /api/v1/menu
// Add a new item. The catalog assigns the id.
func (api *MenuAPI) AddMenuItem(c *gin.Context) {
	var payload menuhttpmapper.MenuItemInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	item, err := menuhttpmapper.ToDomainItem(payload)
	if err != nil {
		respondInvalidMenuPayload(c, err)
		return
	}
	saved, err := api.service.AddItem(c.Request.Context(), item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, menuhttpmapper.FromDomainItem(saved))
}

// Put /api/v1/menu
// Replace the whole catalog.
func (api *MenuAPI) ReplaceMenu(c *gin.Context) {
	var payload []menuhttpmapper.MenuItemInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	items, err := menuhttpmapper.ToDomainItems(payload)
	if err != nil {
		respondInvalidMenuPayload(c, err)
		return
	}
	saved, err := api.service.ReplaceAll(c.Request.Context(), items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]menuhttpmapper.MenuItem, 0, len(saved))
	for _, item := range saved {
		out = append(out, menuhttpmapper.FromDomainItem(item))
	}
	c.JSON(http.StatusOK, out)
}

// Patch /api/v1/menu/:itemId
func (api *MenuAPI) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	var payload menuhttpmapper.MenuItemPatch
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateItem(c.Request.Context(), id, menuhttpmapper.ToDomainPatch(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomainItem(updated))
}

// Delete /api/v1/menu/:itemId
func (api *MenuAPI) DeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	if err := api.service.DeleteItem(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /api/v1/menu/:itemId/availability
// Flip whether the item can be ordered.
func (api *MenuAPI) ToggleAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	item, err := api.service.ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomainItem(item))
}

// respondInvalidMenuPayload reports payloads the mapper rejected before they reached the service.
func respondInvalidMenuPayload(c *gin.Context, err error) {
	problem := apierrors.ErrValidation.WithDetail(err.Error())
	if errors.Is(err, menuhttpmapper.ErrPriceRequired) {
		problem = problem.WithExtension("fields", map[string]string{"price": err.Error()})
	}
	respondProblem(c, problem)
}
