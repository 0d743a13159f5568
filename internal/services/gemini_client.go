package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
)

// Part is one piece of prompt content: either text or an inline attachment
// (an uploaded image forwarded to the model as-is).
type Part struct {
	Text       string
	InlineMIME string
	InlineData []byte
}

func TextPart(text string) Part {
	return Part{Text: text}
}

func InlinePart(mimeType string, data []byte) Part {
	return Part{InlineMIME: mimeType, InlineData: data}
}

// GeminiClient submits a prompt to the hosted text-generation service and
// returns the raw JSON the model produced. One attempt per call: a failure is
// reported immediately, the caller decides what to surface.
type GeminiClient interface {
	GenerateJSON(ctx context.Context, parts []Part) (json.RawMessage, error)
}

type geminiClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGeminiClient(log *logger.Logger) (GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	baseURL := os.Getenv("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-flash-latest"
	}

	timeoutSec := 60
	if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &geminiClient{
		log:        log.With("service", "GeminiClient"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type generateContentRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMIMEType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (gc *geminiClient) GenerateJSON(ctx context.Context, parts []Part) (json.RawMessage, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("no prompt parts given")
	}

	req := generateContentRequest{
		Contents: []geminiContent{{Parts: make([]geminiPart, 0, len(parts))}},
	}
	req.GenerationConfig.ResponseMIMEType = "application/json"
	for _, p := range parts {
		if p.InlineData != nil {
			req.Contents[0].Parts = append(req.Contents[0].Parts, geminiPart{
				InlineData: &geminiInlineData{
					MIMEType: p.InlineMIME,
					Data:     base64.StdEncoding.EncodeToString(p.InlineData),
				},
			})
			continue
		}
		req.Contents[0].Parts = append(req.Contents[0].Parts, geminiPart{Text: p.Text})
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", gc.baseURL, gc.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", gc.apiKey)

	resp, err := gc.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("gemini read failed: %w", readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini http %d: %s", resp.StatusCode, string(raw))
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("gemini decode failed: %w", err)
	}

	var text strings.Builder
	for _, cand := range decoded.Candidates {
		for _, p := range cand.Content.Parts {
			text.WriteString(p.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("gemini returned no text")
	}
	return json.RawMessage(text.String()), nil
}
