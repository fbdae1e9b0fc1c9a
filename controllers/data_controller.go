// File: /controllers/data_controller.go
package controllers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"triptracker-api/services"
	"triptracker-api/utils"
)

// maxImportSize caps uploaded CSV bodies at 10 MB.
const maxImportSize = 10 << 20

type DataController struct {
	data *services.DataService
}

func NewDataController(data *services.DataService) *DataController {
	return &DataController{data: data}
}

func (dc *DataController) ExportTripsCSV(c *gin.Context) {
	payload, err := dc.data.ExportTripsCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendDownload(c, "trips.csv", "text/csv", payload)
}

func (dc *DataController) ExportCustomersCSV(c *gin.Context) {
	payload, err := dc.data.ExportCustomersCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendDownload(c, "customers.csv", "text/csv", payload)
}

func (dc *DataController) ExportVehiclesCSV(c *gin.Context) {
	payload, err := dc.data.ExportVehiclesCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendDownload(c, "vehicles.csv", "text/csv", payload)
}

// ExportWorkbook streams one XLSX file with every store on its own sheet.
func (dc *DataController) ExportWorkbook(c *gin.Context) {
	payload, err := dc.data.ExportWorkbook(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("triptracker_%s.xlsx", time.Now().Format("2006-01-02"))
	sendDownload(c, name, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

func (dc *DataController) ImportTripsCSV(c *gin.Context) {
	body, ok := readImportBody(c)
	if !ok {
		return
	}
	count, err := dc.data.ImportTripsCSV(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

func (dc *DataController) ImportCustomersCSV(c *gin.Context) {
	body, ok := readImportBody(c)
	if !ok {
		return
	}
	count, err := dc.data.ImportCustomersCSV(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

func (dc *DataController) ImportVehiclesCSV(c *gin.Context) {
	body, ok := readImportBody(c)
	if !ok {
		return
	}
	count, err := dc.data.ImportVehiclesCSV(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

// ClearData wipes every store and the active slot.
func (dc *DataController) ClearData(c *gin.Context) {
	if err := dc.data.ClearAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All data cleared"})
}

func readImportBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		utils.SendValidationError(c, "could not read upload")
		return nil, false
	}
	if len(body) == 0 {
		utils.SendValidationError(c, "empty upload")
		return nil, false
	}
	return body, true
}

func sendDownload(c *gin.Context, filename, contentType string, payload []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
