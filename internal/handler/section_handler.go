package handler

import (
	"fmt"
	"net/http"

	"shipyard/internal/middleware"
	"shipyard/internal/service"
	"shipyard/pkg/pagination"
	"shipyard/pkg/response"

	"github.com/gin-gonic/gin"
)

type SectionHandler struct {
	sectionService service.SectionService
	exportService  service.ExportService
}

func NewSectionHandler(sectionService service.SectionService, exportService service.ExportService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService, exportService: exportService}
}

func (h *SectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	sections := router.Group("/api/sections")
	{
		sections.GET("", middleware.RequirePermission("section.view"), h.ListSections)
		sections.GET("/:id", middleware.RequirePermission("section.view"), h.GetSection)
		sections.POST("", middleware.RequirePermission("section.add"), h.CreateSection)
		sections.PUT("/:id", middleware.RequirePermission("section.edit"), h.UpdateSection)
		sections.DELETE("/:id", middleware.RequirePermission("section.delete"), h.DeleteSection)
		sections.GET("/export", middleware.RequirePermission("section.export"), h.ExportSections)
		sections.POST("/import", middleware.RequirePermission("section.import"), h.ImportSections)
	}
}

// ListSections returns paginated sections
// @Summary      List sections
// @Tags         sections
// @Security     BearerAuth
// @Produce      json
// @Param        page        query     int     false  "Page number (default: 1)"
// @Param        limit       query     int     false  "Items per page (default: 10, max: 20)"
// @Param        project_id  query     int     false  "Filter by project"
// @Param        search      query     string  false  "Search by section number"
// @Success      200  {object}  response.Response
// @Router       /api/sections [get]
func (h *SectionHandler) ListSections(c *gin.Context) {
	params := pagination.Parse(c)
	projectID := parseUintQuery(c, "project_id")
	search := c.Query("search")

	sections, total, err := h.sectionService.ListSections(c.Request.Context(), projectID, search, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, sections, params.Page, params.Limit, total))
}

// GetSection returns a single section with its derived cycle days
// @Summary      Get section
// @Tags         sections
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Section ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/sections/{id} [get]
func (h *SectionHandler) GetSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	section, err := h.sectionService.GetSection(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, section))
}

// CreateSection creates a new section
// @Summary      Create section
// @Tags         sections
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.SectionRequest  true  "Section payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/sections [post]
func (h *SectionHandler) CreateSection(c *gin.Context) {
	var req service.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	section, err := h.sectionService.CreateSection(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, section))
}

// UpdateSection updates an existing section
// @Summary      Update section
// @Tags         sections
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                     true  "Section ID"
// @Param        payload  body  service.SectionRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/sections/{id} [put]
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	section, err := h.sectionService.UpdateSection(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, section))
}

// DeleteSection deletes a section after confirmation
// @Summary      Delete section
// @Tags         sections
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true   "Section ID"
// @Param        confirm  query  string  false  "Must be 'true' to proceed"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/sections/{id} [delete]
func (h *SectionHandler) DeleteSection(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !confirmDelete(c, "section") {
		return
	}

	if err := h.sectionService.DeleteSection(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Section deleted successfully"}))
}

// ExportSections streams the filtered section list as an xlsx workbook
// @Summary      Export sections
// @Tags         sections
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        project_id  query  int  false  "Filter by project"
// @Success      200  {file}  binary
// @Router       /api/sections/export [get]
func (h *SectionHandler) ExportSections(c *gin.Context) {
	projectID := parseUintQuery(c, "project_id")

	buf, filename, err := h.exportService.ExportSections(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ImportSections is reserved for the bulk upload workflow, which still runs
// through the legacy office tooling.
// @Summary      Import sections
// @Tags         sections
// @Security     BearerAuth
// @Produce      json
// @Failure      501  {object}  response.Response
// @Router       /api/sections/import [post]
func (h *SectionHandler) ImportSections(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, response.Error(http.StatusNotImplemented, "Section import is not available yet"))
}
