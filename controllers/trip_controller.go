// File: /controllers/trip_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"triptracker-api/activeslot"
	"triptracker-api/models"
	"triptracker-api/services"
)

type TripController struct {
	trips *services.TripService
}

func NewTripController(trips *services.TripService) *TripController {
	return &TripController{trips: trips}
}

type StartTripRequest struct {
	Type     string `json:"type"`
	User     string `json:"user"`
	Vehicle  string `json:"vehicle"`
	StartKm  int    `json:"startKm"`
	Customer string `json:"customer" binding:"required"`
	Purpose  string `json:"purpose" binding:"required"`
}

type CompleteTripRequest struct {
	EndKm       *int       `json:"endKm"`
	WorkDetails string     `json:"workDetails"`
	EndTime     *time.Time `json:"endTime"`
}

func (tc *TripController) GetTrips(c *gin.Context) {
	trips, err := tc.trips.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (tc *TripController) GetTrip(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	trip, err := tc.trips.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (tc *TripController) StartTrip(c *gin.Context) {
	var req StartTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := models.Trip{
		Type:     req.Type,
		User:     req.User,
		Vehicle:  req.Vehicle,
		StartKm:  req.StartKm,
		Customer: req.Customer,
		Purpose:  req.Purpose,
	}

	started, err := tc.trips.Start(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, started)
}

func (tc *TripController) GetActiveTrip(c *gin.Context) {
	active, err := tc.trips.Active()
	if err != nil {
		respondError(c, err)
		return
	}
	if active == nil {
		c.JSON(http.StatusOK, gin.H{"active": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

func (tc *TripController) UpdateActiveTrip(c *gin.Context) {
	var patch activeslot.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := tc.trips.UpdateActive(patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (tc *TripController) CompleteTrip(c *gin.Context) {
	var req CompleteTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	final := activeslot.Completion{
		EndKm:       req.EndKm,
		WorkDetails: req.WorkDetails,
	}
	if req.EndTime != nil {
		final.EndTime = *req.EndTime
	}

	completed, err := tc.trips.Complete(c.Request.Context(), final)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, completed)
}

func (tc *TripController) DiscardActiveTrip(c *gin.Context) {
	if err := tc.trips.Discard(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Active activity discarded"})
}

func (tc *TripController) UpdateTrip(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var trip models.Trip
	if err := c.ShouldBindJSON(&trip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip.ID = id

	if err := tc.trips.Update(c.Request.Context(), &trip); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (tc *TripController) DeleteTrip(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := tc.trips.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted"})
}
