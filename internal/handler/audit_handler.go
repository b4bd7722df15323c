package handler

import (
	"net/http"

	"shipyard/internal/middleware"
	"shipyard/internal/service"
	"shipyard/pkg/pagination"
	"shipyard/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditLogService
}

func NewAuditHandler(auditService service.AuditLogService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/api/audit-logs")
	{
		// Gated on role.view: the audit trail is an administration surface
		audit.GET("", middleware.RequirePermission("role.view"), h.ListAuditLogs)
	}
}

// ListAuditLogs returns paginated audit entries, newest first
// @Summary      List audit logs
// @Tags         audit-logs
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 10, max: 20)"
// @Param        entity  query     string  false  "Filter by entity name"
// @Param        actor   query     string  false  "Filter by actor employee id"
// @Success      200  {object}  response.Response
// @Router       /api/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	params := pagination.Parse(c)
	entity := c.Query("entity")
	actorFilter := c.Query("actor")

	logs, total, err := h.auditService.ListAuditLogs(c.Request.Context(), entity, actorFilter, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, logs, params.Page, params.Limit, total))
}
