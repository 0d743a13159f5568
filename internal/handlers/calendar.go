package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/requestdata"
	"github.com/cerebra-app/cerebra-backend/internal/services"
)

type CalendarHandler struct {
	log             *logger.Logger
	calendarService services.CalendarService
}

func NewCalendarHandler(log *logger.Logger, calendarService services.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		log:             log.With("handler", "CalendarHandler"),
		calendarService: calendarService,
	}
}

// POST /calendar/add
func (ch *CalendarHandler) AddTask(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := ch.calendarService.AddTask(c.Request.Context(), rd.UserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "Added", "task": task})
}

// GET /calendar/get?date=
func (ch *CalendarHandler) GetTasks(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	tasks, err := ch.calendarService.GetTasks(c.Request.Context(), rd.UserID, date)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"tasks": tasks})
}

// PUT /calendar/update/:id
func (ch *CalendarHandler) UpdateTask(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req struct {
		Task string `json:"task" binding:"required"`
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := ch.calendarService.UpdateTask(c.Request.Context(), rd.UserID, taskID, req.Task, req.Time); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "Updated"})
}

// PATCH /calendar/toggle/:id
func (ch *CalendarHandler) ToggleTask(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req struct {
		Completed *bool `json:"completed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := ch.calendarService.ToggleTask(c.Request.Context(), rd.UserID, taskID, *req.Completed); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "Updated"})
}

// DELETE /calendar/delete/:id
func (ch *CalendarHandler) DeleteTask(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := ch.calendarService.DeleteTask(c.Request.Context(), rd.UserID, taskID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "Deleted"})
}

// DELETE /calendar/reset?date=
func (ch *CalendarHandler) ResetTasks(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	date := c.Query("date")
	if err := ch.calendarService.ResetTasks(c.Request.Context(), rd.UserID, date); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "Calendar Cleared"})
}
