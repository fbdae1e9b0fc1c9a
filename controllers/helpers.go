// File: /controllers/helpers.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"triptracker-api/activeslot"
	"triptracker-api/database"
	"triptracker-api/repositories"
	"triptracker-api/utils"
)

// respondError maps storage and slot errors onto HTTP statuses. Anything not
// in the taxonomy came from input validation and is a 400.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, "Record not found")
	case errors.Is(err, repositories.ErrConstraintViolation):
		utils.SendError(c, http.StatusConflict, "A record with that key or name already exists")
	case errors.Is(err, activeslot.ErrAlreadyInProgress):
		utils.SendError(c, http.StatusConflict, "An activity is already in progress")
	case errors.Is(err, activeslot.ErrNoActiveActivity):
		utils.SendError(c, http.StatusConflict, "No activity is in progress")
	case errors.Is(err, activeslot.ErrOdometerBelowStart):
		utils.SendValidationError(c, err.Error())
	case errors.Is(err, database.ErrStorageUnavailable):
		utils.SendError(c, http.StatusServiceUnavailable, "Storage unavailable")
	case errors.Is(err, repositories.ErrTransactionFailure):
		utils.SendError(c, http.StatusInternalServerError, "Save failed, please retry")
	default:
		utils.SendValidationError(c, err.Error())
	}
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.SendValidationError(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
