package handler

import (
	"net/http"

	"shipyard/internal/middleware"
	"shipyard/internal/service"
	"shipyard/pkg/pagination"
	"shipyard/pkg/response"

	"github.com/gin-gonic/gin"
)

type TypicalSectionHandler struct {
	typicalSectionService service.TypicalSectionService
}

func NewTypicalSectionHandler(typicalSectionService service.TypicalSectionService) *TypicalSectionHandler {
	return &TypicalSectionHandler{typicalSectionService: typicalSectionService}
}

func (h *TypicalSectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	sections := router.Group("/api/typical-sections")
	{
		sections.GET("", middleware.RequirePermission("typical_section.view"), h.ListTypicalSections)
		sections.GET("/:id", middleware.RequirePermission("typical_section.view"), h.GetTypicalSection)
		sections.POST("", middleware.RequirePermission("typical_section.add"), h.CreateTypicalSection)
		sections.PUT("/:id", middleware.RequirePermission("typical_section.edit"), h.UpdateTypicalSection)
		sections.DELETE("/:id", middleware.RequirePermission("typical_section.delete"), h.DeleteTypicalSection)
	}
}

// ListTypicalSections returns paginated typical sections
// @Summary      List typical sections
// @Tags         typical-sections
// @Security     BearerAuth
// @Produce      json
// @Param        page          query     int     false  "Page number (default: 1)"
// @Param        limit         query     int     false  "Items per page (default: 10, max: 20)"
// @Param        ship_type_id  query     int     false  "Filter by ship type"
// @Param        search        query     string  false  "Search by section name or code"
// @Success      200  {object}  response.Response
// @Router       /api/typical-sections [get]
func (h *TypicalSectionHandler) ListTypicalSections(c *gin.Context) {
	params := pagination.Parse(c)
	shipTypeID := parseUintQuery(c, "ship_type_id")
	search := c.Query("search")

	sections, total, err := h.typicalSectionService.ListTypicalSections(c.Request.Context(), shipTypeID, search, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, sections, params.Page, params.Limit, total))
}

// GetTypicalSection returns a single typical section
// @Summary      Get typical section
// @Tags         typical-sections
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Typical section ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/typical-sections/{id} [get]
func (h *TypicalSectionHandler) GetTypicalSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	section, err := h.typicalSectionService.GetTypicalSection(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, section))
}

// CreateTypicalSection creates a new typical section
// @Summary      Create typical section
// @Tags         typical-sections
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.TypicalSectionRequest  true  "Typical section payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/typical-sections [post]
func (h *TypicalSectionHandler) CreateTypicalSection(c *gin.Context) {
	var req service.TypicalSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	section, err := h.typicalSectionService.CreateTypicalSection(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, section))
}

// UpdateTypicalSection updates an existing typical section
// @Summary      Update typical section
// @Tags         typical-sections
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                            true  "Typical section ID"
// @Param        payload  body  service.TypicalSectionRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/typical-sections/{id} [put]
func (h *TypicalSectionHandler) UpdateTypicalSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.TypicalSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	section, err := h.typicalSectionService.UpdateTypicalSection(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, section))
}

// DeleteTypicalSection deletes a typical section after confirmation
// @Summary      Delete typical section
// @Tags         typical-sections
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true   "Typical section ID"
// @Param        confirm  query  string  false  "Must be 'true' to proceed"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/typical-sections/{id} [delete]
func (h *TypicalSectionHandler) DeleteTypicalSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !confirmDelete(c, "typical section") {
		return
	}

	if err := h.typicalSectionService.DeleteTypicalSection(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Typical section deleted successfully"}))
}
