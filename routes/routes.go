// File: /routes/routes.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"triptracker-api/activeslot"
	"triptracker-api/config"
	"triptracker-api/controllers"
	"triptracker-api/database"
	"triptracker-api/services"
)

// SetupCORS allows the local web client to call the API from another origin.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, slot *activeslot.Slot, cfg *config.Config, log *logrus.Logger) {
	// Services
	preferenceService := services.NewPreferenceService(db)
	vehicleService := services.NewVehicleService(db, log)
	customerService := services.NewCustomerService(db)
	tripService := services.NewTripService(db, slot, vehicleService, preferenceService, log)
	reminderService := services.NewReminderService(db, slot, log)
	reportService := services.NewReportService(db)
	dataService := services.NewDataService(db, slot, log)

	// Controllers
	tripController := controllers.NewTripController(tripService)
	customerController := controllers.NewCustomerController(customerService)
	vehicleController := controllers.NewVehicleController(vehicleService)
	reminderController := controllers.NewReminderController(reminderService)
	reportController := controllers.NewReportController(reportService)
	preferenceController := controllers.NewPreferenceController(preferenceService)
	dataController := controllers.NewDataController(dataService)

	r.GET("/ping", func(c *gin.Context) {
		version, err := database.Version(db)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
			"schema":  version,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	trips := v1.Group("/trips")
	{
		trips.GET("/", tripController.GetTrips)
		trips.POST("/start", tripController.StartTrip)
		trips.GET("/active", tripController.GetActiveTrip)
		trips.PUT("/active", tripController.UpdateActiveTrip)
		trips.POST("/active/complete", tripController.CompleteTrip)
		trips.DELETE("/active", tripController.DiscardActiveTrip)
		trips.GET("/:id", tripController.GetTrip)
		trips.PUT("/:id", tripController.UpdateTrip)
		trips.DELETE("/:id", tripController.DeleteTrip)
		trips.GET("/:id/reports", reportController.GetTripReports)
	}

	customers := v1.Group("/customers")
	{
		customers.GET("/", customerController.GetCustomers)
		customers.POST("/", customerController.CreateCustomer)
		customers.GET("/:id", customerController.GetCustomer)
		customers.PUT("/:id", customerController.UpdateCustomer)
		customers.DELETE("/:id", customerController.DeleteCustomer)
	}

	vehicles := v1.Group("/vehicles")
	{
		vehicles.GET("/", vehicleController.GetVehicles)
		vehicles.POST("/", vehicleController.CreateVehicle)
		vehicles.PUT("/:id", vehicleController.UpdateVehicle)
		vehicles.DELETE("/:id", vehicleController.DeleteVehicle)
	}

	reminders := v1.Group("/reminders")
	{
		reminders.GET("/", reminderController.GetReminders)
		reminders.POST("/", reminderController.CreateReminder)
		reminders.PUT("/:id", reminderController.UpdateReminder)
		reminders.DELETE("/:id", reminderController.DeleteReminder)
		reminders.POST("/:id/promote", reminderController.PromoteReminder)
	}

	reports := v1.Group("/reports")
	{
		reports.GET("/:id", reportController.GetReport)
		reports.POST("/", reportController.CreateReport)
		reports.PUT("/:id", reportController.UpdateReport)
		reports.DELETE("/:id", reportController.DeleteReport)
	}

	preferences := v1.Group("/preferences")
	{
		preferences.GET("/:id", preferenceController.GetPreference)
		preferences.PUT("/:id", preferenceController.SetPreference)
	}

	data := v1.Group("/data")
	{
		data.GET("/export/trips.csv", dataController.ExportTripsCSV)
		data.GET("/export/customers.csv", dataController.ExportCustomersCSV)
		data.GET("/export/vehicles.csv", dataController.ExportVehiclesCSV)
		data.GET("/export/workbook.xlsx", dataController.ExportWorkbook)
		data.POST("/import/trips", dataController.ImportTripsCSV)
		data.POST("/import/customers", dataController.ImportCustomersCSV)
		data.POST("/import/vehicles", dataController.ImportVehiclesCSV)
		data.POST("/clear", dataController.ClearData)
	}
}
