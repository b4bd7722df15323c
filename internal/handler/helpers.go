package handler

import (
	"errors"
	"net/http"
	"strconv"

	"shipyard/internal/middleware"
	"shipyard/internal/service"
	"shipyard/pkg/response"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads the :id path segment as an unsigned integer.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid "+name+" parameter"))
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery reads an optional numeric filter, 0 when absent or invalid.
func parseUintQuery(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Query(name), 10, 32)
	return uint(v)
}

// statusFromError maps service sentinel errors to HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFromError(err)
	c.JSON(status, response.Error(status, err.Error()))
}

// confirmDelete implements the two-phase delete contract: without
// ?confirm=true the endpoint answers with a confirmation payload and does
// nothing; with it, the delete proceeds.
func confirmDelete(c *gin.Context, entity string) bool {
	if c.Query("confirm") == "true" {
		return true
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"requires_confirmation": true,
		"message":               "Re-send the request with confirm=true to delete this " + entity,
	}))
	return false
}

func actor(c *gin.Context) string {
	return middleware.ActorFromContext(c)
}
