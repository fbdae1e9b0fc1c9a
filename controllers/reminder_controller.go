// File: /controllers/reminder_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"triptracker-api/models"
	"triptracker-api/services"
)

type ReminderController struct {
	reminders *services.ReminderService
}

func NewReminderController(reminders *services.ReminderService) *ReminderController {
	return &ReminderController{reminders: reminders}
}

func (rc *ReminderController) GetReminders(c *gin.Context) {
	reminders, err := rc.reminders.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (rc *ReminderController) CreateReminder(c *gin.Context) {
	var reminder models.Reminder
	if err := c.ShouldBindJSON(&reminder); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reminder.ID = 0

	if err := rc.reminders.Create(c.Request.Context(), &reminder); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

func (rc *ReminderController) UpdateReminder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var reminder models.Reminder
	if err := c.ShouldBindJSON(&reminder); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reminder.ID = id

	if err := rc.reminders.Update(c.Request.Context(), &reminder); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (rc *ReminderController) DeleteReminder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := rc.reminders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}

// PromoteReminder turns a reminder into the active activity. The reminder is
// deleted only when the slot was free.
func (rc *ReminderController) PromoteReminder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	started, err := rc.reminders.PromoteToActive(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, started)
}
