package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/requestdata"
	"github.com/cerebra-app/cerebra-backend/internal/services"
)

type StudyHandler struct {
	log          *logger.Logger
	studyService services.StudyService
}

func NewStudyHandler(log *logger.Logger, studyService services.StudyService) *StudyHandler {
	return &StudyHandler{
		log:          log.With("handler", "StudyHandler"),
		studyService: studyService,
	}
}

// POST /log-session
func (sh *StudyHandler) LogSession(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req struct {
		Topic    string `json:"topic" binding:"required"`
		Duration int    `json:"duration"`
		XP       int    `json:"xp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	total, err := sh.studyService.LogSession(c.Request.Context(), rd.UserID, req.Topic, req.Duration, req.XP)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "Logged", "total_xp": total})
}

// GET /user-stats
func (sh *StudyHandler) GetStats(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	stats, err := sh.studyService.GetStats(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, stats)
}

// DELETE /reset-history?reset_xp=
func (sh *StudyHandler) ResetHistory(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	resetXP, _ := strconv.ParseBool(c.DefaultQuery("reset_xp", "false"))
	if err := sh.studyService.ResetHistory(c.Request.Context(), rd.UserID, resetXP); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "History Cleared"})
}
