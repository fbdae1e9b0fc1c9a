// File: /controllers/vehicle_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"triptracker-api/models"
	"triptracker-api/services"
)

type VehicleController struct {
	vehicles *services.VehicleService
}

func NewVehicleController(vehicles *services.VehicleService) *VehicleController {
	return &VehicleController{vehicles: vehicles}
}

func (vc *VehicleController) GetVehicles(c *gin.Context) {
	vehicles, err := vc.vehicles.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle.ID = 0

	if err := vc.vehicles.Create(c.Request.Context(), &vehicle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle.ID = id

	if err := vc.vehicles.Update(c.Request.Context(), &vehicle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := vc.vehicles.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}
