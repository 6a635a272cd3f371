package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type GeminiClient struct {
	client *resty.Client
	apiKey string
	model  string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(timeout)

	return &GeminiClient{
		client: client,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

// Gemini generateContent request/response shapes
type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string, attachment *Attachment) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("missing GEMINI_API_KEY")
	}
	if g.model == "" {
		return "", errors.New("missing GEMINI_MODEL")
	}
	if prompt == "" {
		return "", errors.New("empty prompt")
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		g.model,
		g.apiKey,
	)

	parts := []geminiPart{{Text: prompt}}
	if attachment != nil {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MimeType: attachment.MimeType,
				Data:     base64.StdEncoding.EncodeToString(attachment.Data),
			},
		})
	}

	req := geminiRequest{Contents: []geminiContent{{Parts: parts}}}
	req.GenerationConfig.Temperature = 0.2
	req.GenerationConfig.MaxOutputTokens = 2048

	var result geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post(url)

	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if result.Error != nil && strings.EqualFold(result.Error.Status, "RESOURCE_EXHAUSTED") {
		return "", ErrRateLimited
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("gemini api error: %s", string(resp.Body()))
	}

	if len(result.Candidates) == 0 ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty gemini response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
