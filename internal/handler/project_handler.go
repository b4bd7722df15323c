package handler

import (
	"net/http"

	"shipyard/internal/middleware"
	"shipyard/internal/service"
	"shipyard/pkg/pagination"
	"shipyard/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/api/projects")
	{
		projects.GET("", middleware.RequirePermission("project.view"), h.ListProjects)
		projects.GET("/:id", middleware.RequirePermission("project.view"), h.GetProject)
		projects.POST("", middleware.RequirePermission("project.add"), h.CreateProject)
		projects.PUT("/:id", middleware.RequirePermission("project.edit"), h.UpdateProject)
		projects.DELETE("/:id", middleware.RequirePermission("project.delete"), h.DeleteProject)
	}
}

// ListProjects returns paginated projects
// @Summary      List projects
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        page          query     int     false  "Page number (default: 1)"
// @Param        limit         query     int     false  "Items per page (default: 10, max: 20)"
// @Param        ship_type_id  query     int     false  "Filter by ship type"
// @Param        search        query     string  false  "Search by project name"
// @Success      200  {object}  response.Response
// @Router       /api/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := pagination.Parse(c)
	shipTypeID := parseUintQuery(c, "ship_type_id")
	search := c.Query("search")

	projects, total, err := h.projectService.ListProjects(c.Request.Context(), shipTypeID, search, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, projects, params.Page, params.Limit, total))
}

// GetProject returns a single project
// @Summary      Get project
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Project ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

// CreateProject creates a new project
// @Summary      Create project
// @Tags         projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.ProjectRequest  true  "Project payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req service.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, project))
}

// UpdateProject updates an existing project
// @Summary      Update project
// @Tags         projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                     true  "Project ID"
// @Param        payload  body  service.ProjectRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, project))
}

// DeleteProject deletes a project after confirmation. Sections and pallets
// under it go with it.
// @Summary      Delete project
// @Tags         projects
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true   "Project ID"
// @Param        confirm  query  string  false  "Must be 'true' to proceed"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !confirmDelete(c, "project") {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Project deleted successfully"}))
}
