package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/types"
)

const syllabusPrompt = `Analyze this syllabus. Return STRICT JSON: { "syllabus": [ { "module": "Name", "subtopics": ["Sub 1"] } ] }`

type PlanRequest struct {
	EnergyLevel    string   `json:"energy_level" binding:"required"`
	HoursAvailable int      `json:"hours_available" binding:"required"`
	Subjects       []string `json:"subjects" binding:"required"`
	CurrentTime    string   `json:"current_time" binding:"required"`
	Date           string   `json:"date" binding:"required"`
}

type PlanTask struct {
	Time               string   `json:"time"`
	Task               string   `json:"task"`
	Type               string   `json:"type"`
	Reason             string   `json:"reason"`
	KeyConcepts        []string `json:"key_concepts"`
	SuggestedResources []string `json:"suggested_resources"`
}

type PlanResult struct {
	Schedule []PlanTask `json:"schedule"`
	Tip      string     `json:"tip"`
}

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type QuizResult struct {
	Questions []QuizQuestion `json:"questions"`
}

type GenerationService interface {
	// AnalyzeSyllabus turns an uploaded document into a flat topic list.
	AnalyzeSyllabus(ctx context.Context, mimeType string, data []byte) ([]string, error)
	GeneratePlan(ctx context.Context, req PlanRequest) (*PlanResult, error)
	GenerateQuiz(ctx context.Context, topic string) (*QuizResult, error)
}

type generationService struct {
	log    *logger.Logger
	gemini GeminiClient
}

func NewGenerationService(log *logger.Logger, gemini GeminiClient) GenerationService {
	return &generationService{
		log:    log.With("service", "GenerationService"),
		gemini: gemini,
	}
}

func (gs *generationService) AnalyzeSyllabus(ctx context.Context, mimeType string, data []byte) ([]string, error) {
	content, err := ExtractDocument(mimeType, data)
	if err != nil {
		return nil, err
	}

	var parts []Part
	if content.IsImage() {
		parts = []Part{TextPart(syllabusPrompt), InlinePart(content.ImageMIME, content.ImageData)}
	} else {
		parts = []Part{TextPart(fmt.Sprintf("%s\n\nTEXT:\n%s", syllabusPrompt, content.Text))}
	}

	raw, err := gs.gemini.GenerateJSON(ctx, parts)
	if err != nil {
		return nil, types.GenerationFailed(err)
	}

	// The model's shape is untrusted; anything that does not decode into the
	// requested schema is a generation failure, not a partial result.
	var decoded struct {
		Syllabus []struct {
			Module    string   `json:"module"`
			Subtopics []string `json:"subtopics"`
		} `json:"syllabus"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, types.GenerationFailed(fmt.Errorf("malformed syllabus response: %w", err))
	}
	if decoded.Syllabus == nil {
		return nil, types.GenerationFailed(fmt.Errorf("syllabus response missing syllabus list"))
	}

	topics := make([]string, 0, len(decoded.Syllabus))
	for _, item := range decoded.Syllabus {
		module := item.Module
		if module == "" {
			module = "Topic"
		}
		topics = append(topics, fmt.Sprintf("%s (%s)", module, strings.Join(item.Subtopics, ", ")))
	}
	return topics, nil
}

func (gs *generationService) GeneratePlan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	style := "balanced"
	switch req.EnergyLevel {
	case "Low":
		style = "Passive Learning (Videos/Reading)"
	case "High":
		style = "Active Recall & Problem Solving"
	}

	subjects, err := json.Marshal(req.Subjects)
	if err != nil {
		return nil, fmt.Errorf("failed to encode subjects: %w", err)
	}

	prompt := fmt.Sprintf(`
Create a detailed study schedule for %s, starting at %s.
User Energy: %s (%s).
Time Available: %d Hours.
Topics: %s
INSTRUCTIONS: Provide 3 "key_concepts" and 2 "suggested_resources" per task.
Return STRICT JSON: { "schedule": [ { "time": "HH:MM - HH:MM", "task": "Topic", "type": "Deep Work/Break", "reason": "Strategy", "key_concepts": [], "suggested_resources": [] } ], "tip": "Motivation" }
`, req.Date, req.CurrentTime, req.EnergyLevel, style, req.HoursAvailable, string(subjects))

	raw, err := gs.gemini.GenerateJSON(ctx, []Part{TextPart(prompt)})
	if err != nil {
		return nil, types.GenerationFailed(err)
	}

	var result PlanResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, types.GenerationFailed(fmt.Errorf("malformed plan response: %w", err))
	}
	if result.Schedule == nil {
		return nil, types.GenerationFailed(fmt.Errorf("plan response missing schedule"))
	}
	return &result, nil
}

func (gs *generationService) GenerateQuiz(ctx context.Context, topic string) (*QuizResult, error) {
	prompt := fmt.Sprintf(`Create 3 hard MCQs for '%s'. Return JSON: { "questions": [ { "question": "?", "options": ["A","B"], "answer": "A" } ] }`, topic)

	raw, err := gs.gemini.GenerateJSON(ctx, []Part{TextPart(prompt)})
	if err != nil {
		return nil, types.GenerationFailed(err)
	}

	var result QuizResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, types.GenerationFailed(fmt.Errorf("malformed quiz response: %w", err))
	}
	if len(result.Questions) == 0 {
		return nil, types.GenerationFailed(fmt.Errorf("quiz response missing questions"))
	}
	return &result, nil
}
