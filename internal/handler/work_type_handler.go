package handler

import (
	"net/http"

	"shipyard/internal/middleware"
	"shipyard/internal/service"
	"shipyard/pkg/pagination"
	"shipyard/pkg/response"

	"github.com/gin-gonic/gin"
)

type WorkTypeHandler struct {
	workTypeService service.WorkTypeService
}

func NewWorkTypeHandler(workTypeService service.WorkTypeService) *WorkTypeHandler {
	return &WorkTypeHandler{workTypeService: workTypeService}
}

func (h *WorkTypeHandler) RegisterRoutes(router *gin.RouterGroup) {
	workTypes := router.Group("/api/work-types")
	{
		workTypes.GET("", middleware.RequirePermission("work_type.view"), h.ListWorkTypes)
		workTypes.GET("/:id", middleware.RequirePermission("work_type.view"), h.GetWorkType)
		workTypes.POST("", middleware.RequirePermission("work_type.add"), h.CreateWorkType)
		workTypes.PUT("/:id", middleware.RequirePermission("work_type.edit"), h.UpdateWorkType)
		workTypes.DELETE("/:id", middleware.RequirePermission("work_type.delete"), h.DeleteWorkType)
	}
}

// ListWorkTypes returns paginated work types
// @Summary      List work types
// @Tags         work-types
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 10, max: 20)"
// @Param        search  query     string  false  "Search by name or code"
// @Success      200  {object}  response.Response
// @Router       /api/work-types [get]
func (h *WorkTypeHandler) ListWorkTypes(c *gin.Context) {
	params := pagination.Parse(c)
	search := c.Query("search")

	workTypes, total, err := h.workTypeService.ListWorkTypes(c.Request.Context(), search, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, workTypes, params.Page, params.Limit, total))
}

// GetWorkType returns a single work type
// @Summary      Get work type
// @Tags         work-types
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Work type ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/work-types/{id} [get]
func (h *WorkTypeHandler) GetWorkType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	workType, err := h.workTypeService.GetWorkType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, workType))
}

// CreateWorkType creates a new work type
// @Summary      Create work type
// @Tags         work-types
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.WorkTypeRequest  true  "Work type payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/work-types [post]
func (h *WorkTypeHandler) CreateWorkType(c *gin.Context) {
	var req service.WorkTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	workType, err := h.workTypeService.CreateWorkType(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, workType))
}

// UpdateWorkType updates an existing work type. Changing standard hours does
// not rewrite the derived work hours of existing processes; those refresh on
// their own next save.
// @Summary      Update work type
// @Tags         work-types
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                      true  "Work type ID"
// @Param        payload  body  service.WorkTypeRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/work-types/{id} [put]
func (h *WorkTypeHandler) UpdateWorkType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.WorkTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	workType, err := h.workTypeService.UpdateWorkType(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, workType))
}

// DeleteWorkType deletes a work type after confirmation
// @Summary      Delete work type
// @Tags         work-types
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true   "Work type ID"
// @Param        confirm  query  string  false  "Must be 'true' to proceed"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/work-types/{id} [delete]
func (h *WorkTypeHandler) DeleteWorkType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !confirmDelete(c, "work type") {
		return
	}

	if err := h.workTypeService.DeleteWorkType(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Work type deleted successfully"}))
}
