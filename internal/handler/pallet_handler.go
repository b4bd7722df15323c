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

type PalletHandler struct {
	palletService service.PalletService
	exportService service.ExportService
}

func NewPalletHandler(palletService service.PalletService, exportService service.ExportService) *PalletHandler {
	return &PalletHandler{palletService: palletService, exportService: exportService}
}

func (h *PalletHandler) RegisterRoutes(router *gin.RouterGroup) {
	pallets := router.Group("/api/pallets")
	{
		pallets.GET("", middleware.RequirePermission("pallet.view"), h.ListPallets)
		pallets.GET("/:id", middleware.RequirePermission("pallet.view"), h.GetPallet)
		pallets.POST("", middleware.RequirePermission("pallet.add"), h.CreatePallet)
		pallets.PUT("/:id", middleware.RequirePermission("pallet.edit"), h.UpdatePallet)
		pallets.DELETE("/:id", middleware.RequirePermission("pallet.delete"), h.DeletePallet)
		pallets.GET("/export", middleware.RequirePermission("pallet.export"), h.ExportPallets)
		pallets.POST("/import", middleware.RequirePermission("pallet.import"), h.ImportPallets)
	}
}

// ListPallets returns paginated pallets
// @Summary      List pallets
// @Tags         pallets
// @Security     BearerAuth
// @Produce      json
// @Param        page        query     int     false  "Page number (default: 1)"
// @Param        limit       query     int     false  "Items per page (default: 10, max: 20)"
// @Param        project_id  query     int     false  "Filter by project"
// @Param        section_id  query     int     false  "Filter by section"
// @Param        search      query     string  false  "Search by pallet code"
// @Success      200  {object}  response.Response
// @Router       /api/pallets [get]
func (h *PalletHandler) ListPallets(c *gin.Context) {
	params := pagination.Parse(c)
	projectID := parseUintQuery(c, "project_id")
	sectionID := parseUintQuery(c, "section_id")
	search := c.Query("search")

	pallets, total, err := h.palletService.ListPallets(c.Request.Context(), projectID, sectionID, search, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, pallets, params.Page, params.Limit, total))
}

// GetPallet returns a single pallet
// @Summary      Get pallet
// @Tags         pallets
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Pallet ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/pallets/{id} [get]
func (h *PalletHandler) GetPallet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pallet, err := h.palletService.GetPallet(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pallet))
}

// CreatePallet creates a new pallet
// @Summary      Create pallet
// @Tags         pallets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.PalletRequest  true  "Pallet payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/pallets [post]
func (h *PalletHandler) CreatePallet(c *gin.Context) {
	var req service.PalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	pallet, err := h.palletService.CreatePallet(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, pallet))
}

// UpdatePallet updates an existing pallet. Marking it received notifies
// connected planners.
// @Summary      Update pallet
// @Tags         pallets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                    true  "Pallet ID"
// @Param        payload  body  service.PalletRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/pallets/{id} [put]
func (h *PalletHandler) UpdatePallet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.PalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	pallet, err := h.palletService.UpdatePallet(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pallet))
}

// DeletePallet deletes a pallet after confirmation
// @Summary      Delete pallet
// @Tags         pallets
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true   "Pallet ID"
// @Param        confirm  query  string  false  "Must be 'true' to proceed"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/pallets/{id} [delete]
func (h *PalletHandler) DeletePallet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !confirmDelete(c, "pallet") {
		return
	}

	if err := h.palletService.DeletePallet(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Pallet deleted successfully"}))
}

// ExportPallets streams the filtered pallet list as an xlsx workbook
// @Summary      Export pallets
// @Tags         pallets
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        project_id  query  int  false  "Filter by project"
// @Param        section_id  query  int  false  "Filter by section"
// @Success      200  {file}  binary
// @Router       /api/pallets/export [get]
func (h *PalletHandler) ExportPallets(c *gin.Context) {
	projectID := parseUintQuery(c, "project_id")
	sectionID := parseUintQuery(c, "section_id")

	buf, filename, err := h.exportService.ExportPallets(c.Request.Context(), projectID, sectionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ImportPallets is reserved for the bulk upload workflow, which still runs
// through the legacy office tooling.
// @Summary      Import pallets
// @Tags         pallets
// @Security     BearerAuth
// @Produce      json
// @Failure      501  {object}  response.Response
// @Router       /api/pallets/import [post]
func (h *PalletHandler) ImportPallets(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, response.Error(http.StatusNotImplemented, "Pallet import is not available yet"))
}
