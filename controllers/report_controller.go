// File: /controllers/report_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"triptracker-api/models"
	"triptracker-api/services"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// GetTripReports lists the fault reports attached to one trip.
func (rc *ReportController) GetTripReports(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	reports, err := rc.reports.ListByTrip(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (rc *ReportController) GetReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	report, err := rc.reports.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (rc *ReportController) CreateReport(c *gin.Context) {
	var report models.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report.ID = 0

	if err := rc.reports.Create(c.Request.Context(), &report); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (rc *ReportController) UpdateReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var report models.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report.ID = id

	if err := rc.reports.Update(c.Request.Context(), &report); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (rc *ReportController) DeleteReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := rc.reports.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted"})
}
