package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/services"
	"github.com/cerebra-app/cerebra-backend/internal/types"
)

type GenerationHandler struct {
	log               *logger.Logger
	generationService services.GenerationService
}

func NewGenerationHandler(log *logger.Logger, generationService services.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		log:               log.With("handler", "GenerationHandler"),
		generationService: generationService,
	}
}

// POST /analyze-syllabus (multipart file upload)
//
// Generation failures come back as a structured payload with an empty topic
// list, never as a 500: one malformed model response must not break clients.
func (gh *GenerationHandler) AnalyzeSyllabus(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	topics, err := gh.generationService.AnalyzeSyllabus(c.Request.Context(), mimeType, data)
	if err != nil {
		if types.IsCode(err, types.CodeUnsupportedInput) {
			RespondOK(c, gin.H{"error": "Unsupported file"})
			return
		}
		if types.IsCode(err, types.CodeGenerationFailed) {
			RespondOK(c, gin.H{"topics": []string{}, "error": err.Error()})
			return
		}
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"topics": topics})
}

// POST /generate-plan
func (gh *GenerationHandler) GeneratePlan(c *gin.Context) {
	var req services.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	plan, err := gh.generationService.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		if types.IsCode(err, types.CodeGenerationFailed) {
			RespondOK(c, gin.H{"error": err.Error()})
			return
		}
		RespondError(c, err)
		return
	}
	RespondOK(c, plan)
}

// POST /generate-quiz
func (gh *GenerationHandler) GenerateQuiz(c *gin.Context) {
	var req struct {
		Topic string `json:"topic" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quiz, err := gh.generationService.GenerateQuiz(c.Request.Context(), req.Topic)
	if err != nil {
		if types.IsCode(err, types.CodeGenerationFailed) {
			RespondOK(c, gin.H{"error": "Quiz failed"})
			return
		}
		RespondError(c, err)
		return
	}
	RespondOK(c, quiz)
}
