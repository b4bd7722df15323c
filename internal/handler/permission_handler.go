package handler

import (
	"net/http"

	"shipyard/internal/middleware"
	"shipyard/internal/service"
	"shipyard/pkg/pagination"
	"shipyard/pkg/response"

	"github.com/gin-gonic/gin"
)

type PermissionHandler struct {
	permissionService service.PermissionService
}

func NewPermissionHandler(permissionService service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

func (h *PermissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	permissions := router.Group("/api/permissions")
	{
		permissions.GET("", middleware.RequirePermission("permission.view"), h.ListPermissions)
		permissions.GET("/:id", middleware.RequirePermission("permission.view"), h.GetPermission)
		permissions.POST("", middleware.RequirePermission("permission.add"), h.CreatePermission)
		permissions.PUT("/:id", middleware.RequirePermission("permission.edit"), h.UpdatePermission)
		permissions.DELETE("/:id", middleware.RequirePermission("permission.delete"), h.DeletePermission)
	}
}

// ListPermissions returns paginated permissions
// @Summary      List permissions
// @Tags         permissions
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 10, max: 20)"
// @Param        module  query     string  false  "Filter by module"
// @Success      200  {object}  response.Response
// @Router       /api/permissions [get]
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	params := pagination.Parse(c)
	module := c.Query("module")

	permissions, total, err := h.permissionService.ListPermissions(c.Request.Context(), module, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, permissions, params.Page, params.Limit, total))
}

// GetPermission returns a single permission
// @Summary      Get permission
// @Tags         permissions
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Permission ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/permissions/{id} [get]
func (h *PermissionHandler) GetPermission(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	permission, err := h.permissionService.GetPermission(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, permission))
}

// CreatePermission creates a new (module, action) grant
// @Summary      Create permission
// @Tags         permissions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.PermissionRequest  true  "Permission payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/permissions [post]
func (h *PermissionHandler) CreatePermission(c *gin.Context) {
	var req service.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	permission, err := h.permissionService.CreatePermission(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, permission))
}

// UpdatePermission updates an existing permission
// @Summary      Update permission
// @Tags         permissions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                        true  "Permission ID"
// @Param        payload  body  service.PermissionRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/permissions/{id} [put]
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	permission, err := h.permissionService.UpdatePermission(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.ClearPermissionCache("")

	c.JSON(http.StatusOK, response.Success(http.StatusOK, permission))
}

// DeletePermission deletes a permission after confirmation
// @Summary      Delete permission
// @Tags         permissions
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true   "Permission ID"
// @Param        confirm  query  string  false  "Must be 'true' to proceed"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/permissions/{id} [delete]
func (h *PermissionHandler) DeletePermission(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !confirmDelete(c, "permission") {
		return
	}

	if err := h.permissionService.DeletePermission(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}

	middleware.ClearPermissionCache("")

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Permission deleted successfully"}))
}
