package handler

import (
	"net/http"

	"shipyard/internal/middleware"
	"shipyard/internal/service"
	"shipyard/pkg/pagination"
	"shipyard/pkg/response"

	"github.com/gin-gonic/gin"
)

type WorkProcessHandler struct {
	workProcessService service.WorkProcessService
}

func NewWorkProcessHandler(workProcessService service.WorkProcessService) *WorkProcessHandler {
	return &WorkProcessHandler{workProcessService: workProcessService}
}

func (h *WorkProcessHandler) RegisterRoutes(router *gin.RouterGroup) {
	processes := router.Group("/api/work-processes")
	{
		processes.GET("", middleware.RequirePermission("work_process.view"), h.ListWorkProcesses)
		processes.GET("/:id", middleware.RequirePermission("work_process.view"), h.GetWorkProcess)
		processes.POST("", middleware.RequirePermission("work_process.add"), h.CreateWorkProcess)
		processes.PUT("/:id", middleware.RequirePermission("work_process.edit"), h.UpdateWorkProcess)
		processes.DELETE("/:id", middleware.RequirePermission("work_process.delete"), h.DeleteWorkProcess)
	}
}

// ListWorkProcesses returns paginated work processes
// @Summary      List work processes
// @Tags         work-processes
// @Security     BearerAuth
// @Produce      json
// @Param        page          query     int     false  "Page number (default: 1)"
// @Param        limit         query     int     false  "Items per page (default: 10, max: 20)"
// @Param        work_type_id  query     int     false  "Filter by work type"
// @Param        search        query     string  false  "Search by name or code"
// @Success      200  {object}  response.Response
// @Router       /api/work-processes [get]
func (h *WorkProcessHandler) ListWorkProcesses(c *gin.Context) {
	params := pagination.Parse(c)
	workTypeID := parseUintQuery(c, "work_type_id")
	search := c.Query("search")

	processes, total, err := h.workProcessService.ListWorkProcesses(c.Request.Context(), workTypeID, search, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, processes, params.Page, params.Limit, total))
}

// GetWorkProcess returns a single work process
// @Summary      Get work process
// @Tags         work-processes
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Work process ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/work-processes/{id} [get]
func (h *WorkProcessHandler) GetWorkProcess(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	process, err := h.workProcessService.GetWorkProcess(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, process))
}

// CreateWorkProcess creates a new work process. Work hours are derived from
// the work type's standard hours and the coefficient, never accepted as
// input.
// @Summary      Create work process
// @Tags         work-processes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.WorkProcessRequest  true  "Work process payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/work-processes [post]
func (h *WorkProcessHandler) CreateWorkProcess(c *gin.Context) {
	var req service.WorkProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	process, err := h.workProcessService.CreateWorkProcess(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, process))
}

// UpdateWorkProcess updates an existing work process and re-derives its
// work hours
// @Summary      Update work process
// @Tags         work-processes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                         true  "Work process ID"
// @Param        payload  body  service.WorkProcessRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/work-processes/{id} [put]
func (h *WorkProcessHandler) UpdateWorkProcess(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.WorkProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	process, err := h.workProcessService.UpdateWorkProcess(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, process))
}

// DeleteWorkProcess deletes a work process after confirmation
// @Summary      Delete work process
// @Tags         work-processes
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true   "Work process ID"
// @Param        confirm  query  string  false  "Must be 'true' to proceed"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/work-processes/{id} [delete]
func (h *WorkProcessHandler) DeleteWorkProcess(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !confirmDelete(c, "work process") {
		return
	}

	if err := h.workProcessService.DeleteWorkProcess(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Work process deleted successfully"}))
}
