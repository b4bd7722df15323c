package handler

import (
	"net/http"

	"shipyard/internal/middleware"
	"shipyard/internal/service"
	"shipyard/pkg/pagination"
	"shipyard/pkg/response"

	"github.com/gin-gonic/gin"
)

type PersonHandler struct {
	personService service.PersonService
}

func NewPersonHandler(personService service.PersonService) *PersonHandler {
	return &PersonHandler{personService: personService}
}

func (h *PersonHandler) RegisterRoutes(router *gin.RouterGroup) {
	persons := router.Group("/api/persons")
	{
		persons.GET("", middleware.RequirePermission("person.view"), h.ListPersons)
		persons.GET("/:id", middleware.RequirePermission("person.view"), h.GetPerson)
		persons.POST("", middleware.RequirePermission("person.add"), h.CreatePerson)
		persons.PUT("/:id", middleware.RequirePermission("person.edit"), h.UpdatePerson)
		persons.DELETE("/:id", middleware.RequirePermission("person.delete"), h.DeletePerson)
		persons.PUT("/:id/roles", middleware.RequirePermission("person.edit"), h.AssignRoles)
	}
}

// ListPersons returns paginated persons with their roles
// @Summary      List persons
// @Tags         persons
// @Security     BearerAuth
// @Produce      json
// @Param        page        query     int     false  "Page number (default: 1)"
// @Param        limit       query     int     false  "Items per page (default: 10, max: 20)"
// @Param        department  query     string  false  "Filter by department"
// @Param        search      query     string  false  "Search by name or employee id"
// @Success      200  {object}  response.Response
// @Router       /api/persons [get]
func (h *PersonHandler) ListPersons(c *gin.Context) {
	params := pagination.Parse(c)
	department := c.Query("department")
	search := c.Query("search")

	persons, total, err := h.personService.ListPersons(c.Request.Context(), department, search, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, persons, params.Page, params.Limit, total))
}

// GetPerson returns a single person with their roles
// @Summary      Get person
// @Tags         persons
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  int  true  "Person ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/persons/{id} [get]
func (h *PersonHandler) GetPerson(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	person, err := h.personService.GetPerson(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, person))
}

// CreatePerson creates a new person record
// @Summary      Create person
// @Tags         persons
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.PersonRequest  true  "Person payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/persons [post]
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req service.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	person, err := h.personService.CreatePerson(c.Request.Context(), req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, person))
}

// UpdatePerson updates an existing person
// @Summary      Update person
// @Tags         persons
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                    true  "Person ID"
// @Param        payload  body  service.PersonRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/persons/{id} [put]
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	person, err := h.personService.UpdatePerson(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, person))
}

// DeletePerson deletes a person after confirmation
// @Summary      Delete person
// @Tags         persons
// @Security     BearerAuth
// @Produce      json
// @Param        id       path   int     true   "Person ID"
// @Param        confirm  query  string  false  "Must be 'true' to proceed"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/persons/{id} [delete]
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !confirmDelete(c, "person") {
		return
	}

	if err := h.personService.DeletePerson(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Person deleted successfully"}))
}

// AssignRoles replaces the person's role set; an empty list clears it
// @Summary      Assign roles to person
// @Tags         persons
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  int                         true  "Person ID"
// @Param        payload  body  service.AssignRolesRequest  true  "Full role id list"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/persons/{id}/roles [put]
func (h *PersonHandler) AssignRoles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.AssignRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	person, err := h.personService.AssignRoles(c.Request.Context(), id, req, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	// Grants changed; drop the whole permission cache rather than chase
	// down which employees held the touched roles.
	middleware.ClearPermissionCache("")

	c.JSON(http.StatusOK, response.Success(http.StatusOK, person))
}
