package handler

import (
	"net/http"

	"shipyard/internal/middleware"
	"shipyard/internal/service"
	"shipyard/pkg/pagination"
	"shipyard/pkg/response"

	"github.com/gin-gonic/gin"
)

type ShipTypeHandler struct {
	shipTypeService service.ShipTypeService
}

func NewShipTypeHandler(shipTypeService service.ShipTypeService) *ShipTypeHandler {
	return &ShipTypeHandler{shipTypeService: shipTypeService}
}

func (h *ShipTypeHandler) RegisterRoutes(router *gin.RouterGroup) {
	shipTypes := router.Group("/api/ship-types")
	{
		shipTypes.GET("", middleware.RequirePermission("ship_type.view"), h.ListShipTypes)
		shipTypes.GET("/:id", middleware.RequirePermission("ship_type.view"), h.GetShipType)
		shipTypes.POST("", middleware.RequirePermission("ship_type.add"), h.CreateShipType)
		shipTypes.PUT("/:id", middleware.RequirePermission("ship_type.edit"), h.UpdateShipType)
		shipTypes.DELETE("/:id", middleware.RequirePermission("ship_type.delete"), h.DeleteShipType)
	}
}

// ListShipTypes returns paginated ship types with optional search
// @Summary      List ship types
// @Tags         ship-types
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 10, max: 20)"
// @Param        search  query     string  false  "Search by type or subtype"
// @Success      200     {object}  response.Response
// @Router       /api/ship-types [get]
func (h *ShipTypeHandler) ListShipTypes(c *gin.Context) {
	params := pagination.Parse(c)
	search := c.Query("search")

	shipTypes, total, err := h.shipTypeService.ListShipTypes(c.Request.Context(), search, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, shipTypes, params.Page, params.Limit, total))
}

// GetShipType returns a single ship type
// @Summary      Get ship type
// @Tags         ship-types
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Ship type ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/ship-types/{id} [get]
func (h *ShipTypeHandler) GetShipType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shipType, err := h.shipTypeService.GetShipType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, shipType))
}

// CreateShipType creates a new ship type
// @Summary      Create ship type
// @Tags         ship-types
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.ShipTypeRequest  true  "Ship type payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/ship-types [post]
func (h *ShipTypeHandler) CreateShipType(c *gin.Context) {
	var req service.ShipTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	shipType, err := h.shipTypeService.CreateShipType(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, shipType))
}

// UpdateShipType updates an existing ship type
// @Summary      Update ship type
// @Tags         ship-types
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                      true  "Ship type ID"
// @Param        payload  body  service.ShipTypeRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/ship-types/{id} [put]
func (h *ShipTypeHandler) UpdateShipType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ShipTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	shipType, err := h.shipTypeService.UpdateShipType(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, shipType))
}

// DeleteShipType deletes a ship type after confirmation
// @Summary      Delete ship type
// @Tags         ship-types
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true   "Ship type ID"
// @Param        confirm  query  string  false  "Must be 'true' to proceed"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/ship-types/{id} [delete]
func (h *ShipTypeHandler) DeleteShipType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !confirmDelete(c, "ship type") {
		return
	}

	if err := h.shipTypeService.DeleteShipType(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Ship type deleted successfully"}))
}
