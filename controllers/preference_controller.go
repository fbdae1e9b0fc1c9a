// File: /controllers/preference_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"triptracker-api/repositories"
	"triptracker-api/services"
	"triptracker-api/utils"
)

type PreferenceController struct {
	prefs *services.PreferenceService
}

func NewPreferenceController(prefs *services.PreferenceService) *PreferenceController {
	return &PreferenceController{prefs: prefs}
}

type SetPreferenceRequest struct {
	Value string `json:"value" binding:"required"`
}

// GetPreference returns the stored value; a missing key is a normal empty
// answer, not an error.
func (pc *PreferenceController) GetPreference(c *gin.Context) {
	key := c.Param("id")
	value, err := pc.prefs.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"id": key, "value": nil})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": key, "value": value})
}

func (pc *PreferenceController) SetPreference(c *gin.Context) {
	key := c.Param("id")
	if key == "" {
		utils.SendValidationError(c, "preference key is required")
		return
	}

	var req SetPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := pc.prefs.Set(c.Request.Context(), key, req.Value); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": key, "value": req.Value})
}
