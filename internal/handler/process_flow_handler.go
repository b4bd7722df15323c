package handler

import (
	"net/http"

	"shipyard/internal/middleware"
	"shipyard/internal/service"
	"shipyard/pkg/pagination"
	"shipyard/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProcessFlowHandler struct {
	processFlowService service.ProcessFlowService
}

func NewProcessFlowHandler(processFlowService service.ProcessFlowService) *ProcessFlowHandler {
	return &ProcessFlowHandler{processFlowService: processFlowService}
}

func (h *ProcessFlowHandler) RegisterRoutes(router *gin.RouterGroup) {
	flows := router.Group("/api/process-flows")
	{
		flows.GET("", middleware.RequirePermission("process_flow.view"), h.ListFlows)
		flows.GET("/:id", middleware.RequirePermission("process_flow.view"), h.GetFlowDetail)
		flows.POST("", middleware.RequirePermission("process_flow.add"), h.CreateFlow)
		flows.PUT("/:id", middleware.RequirePermission("process_flow.edit"), h.UpdateFlow)
		flows.DELETE("/:id", middleware.RequirePermission("process_flow.delete"), h.DeactivateFlow)
		flows.PUT("/:id/steps", middleware.RequirePermission("process_flow.edit"), h.ReplaceSteps)
		flows.POST("/:id/steps", middleware.RequirePermission("process_flow.edit"), h.AddStep)
	}
	steps := router.Group("/api/process-flow-steps")
	{
		steps.PUT("/:id", middleware.RequirePermission("process_flow.edit"), h.UpdateStep)
		steps.DELETE("/:id", middleware.RequirePermission("process_flow.edit"), h.DeleteStep)
	}
}

// ListFlows returns paginated process flows
// @Summary      List process flows
// @Tags         process-flows
// @Security     BearerAuth
// @Produce      json
// @Param        page                query     int     false  "Page number (default: 1)"
// @Param        limit               query     int     false  "Items per page (default: 10, max: 20)"
// @Param        ship_type_id        query     int     false  "Filter by ship type"
// @Param        typical_section_id  query     int     false  "Filter by typical section"
// @Param        search              query     string  false  "Search by flow name"
// @Param        include_inactive    query     bool    false  "Include deactivated flows"
// @Success      200  {object}  response.Response
// @Router       /api/process-flows [get]
func (h *ProcessFlowHandler) ListFlows(c *gin.Context) {
	params := pagination.Parse(c)
	shipTypeID := parseUintQuery(c, "ship_type_id")
	typicalSectionID := parseUintQuery(c, "typical_section_id")
	search := c.Query("search")
	includeInactive := c.Query("include_inactive") == "true"

	flows, total, err := h.processFlowService.ListFlows(c.Request.Context(), shipTypeID, typicalSectionID, search, includeInactive, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, flows, params.Page, params.Limit, total))
}

// GetFlowDetail returns a flow with its ordered step list, each step carrying
// its work process and prerequisites
// @Summary      Get process flow detail
// @Tags         process-flows
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Flow ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/process-flows/{id} [get]
func (h *ProcessFlowHandler) GetFlowDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	flow, err := h.processFlowService.GetFlowDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, flow))
}

// CreateFlow creates a new process flow with an empty step set
// @Summary      Create process flow
// @Tags         process-flows
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.ProcessFlowRequest  true  "Flow payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/process-flows [post]
func (h *ProcessFlowHandler) CreateFlow(c *gin.Context) {
	var req service.ProcessFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	flow, err := h.processFlowService.CreateFlow(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, flow))
}

// UpdateFlow updates a flow's header fields
// @Summary      Update process flow
// @Tags         process-flows
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                         true  "Flow ID"
// @Param        payload  body  service.ProcessFlowRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/process-flows/{id} [put]
func (h *ProcessFlowHandler) UpdateFlow(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ProcessFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	flow, err := h.processFlowService.UpdateFlow(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, flow))
}

// DeactivateFlow soft-deletes a flow after confirmation. The record and its
// steps remain queryable through include_inactive.
// @Summary      Deactivate process flow
// @Tags         process-flows
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true   "Flow ID"
// @Param        confirm  query  string  false  "Must be 'true' to proceed"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/process-flows/{id} [delete]
func (h *ProcessFlowHandler) DeactivateFlow(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !confirmDelete(c, "process flow") {
		return
	}

	if err := h.processFlowService.DeactivateFlow(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Process flow deactivated successfully"}))
}

// ReplaceSteps replaces a flow's whole step list in one transaction. Rows
// missing a name, a resolvable work process or a numeric step order are
// dropped; the rest are saved and the flow total recomputed.
// @Summary      Replace process flow steps
// @Tags         process-flows
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                          true  "Flow ID"
// @Param        payload  body  service.ReplaceStepsRequest  true  "Full step list"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/process-flows/{id}/steps [put]
func (h *ProcessFlowHandler) ReplaceSteps(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ReplaceStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	flow, err := h.processFlowService.ReplaceSteps(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, flow))
}

// AddStep appends a single step to a flow
// @Summary      Add process flow step
// @Tags         process-flows
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                      true  "Flow ID"
// @Param        payload  body  service.FlowStepRequest  true  "Step payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/process-flows/{id}/steps [post]
func (h *ProcessFlowHandler) AddStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.FlowStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	flow, err := h.processFlowService.AddStep(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, flow))
}

// UpdateStep rewrites a single step
// @Summary      Update process flow step
// @Tags         process-flows
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                      true  "Step ID"
// @Param        payload  body  service.FlowStepRequest  true  "Step payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/process-flow-steps/{id} [put]
func (h *ProcessFlowHandler) UpdateStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.FlowStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	flow, err := h.processFlowService.UpdateStep(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, flow))
}

// DeleteStep removes a single step after confirmation and recomputes the
// flow total
// @Summary      Delete process flow step
// @Tags         process-flows
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true   "Step ID"
// @Param        confirm  query  string  false  "Must be 'true' to proceed"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/process-flow-steps/{id} [delete]
func (h *ProcessFlowHandler) DeleteStep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !confirmDelete(c, "process flow step") {
		return
	}

	if err := h.processFlowService.DeleteStep(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Process flow step deleted successfully"}))
}
