package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/veenakrishnan01/menu-analyser/internal/llm"
)

// ErrModelBusy means the upstream model rejected the call for quota or rate
// limit reasons. It is the one model failure that is NOT absorbed into the
// fallback, so the caller can tell the user to retry later.
var ErrModelBusy = errors.New("analysis model is busy, try again later")

// Engine produces a Result for validated menu text. It never returns a
// malformed-response error: anything unusable from the model collapses into
// the deterministic fallback.
type Engine struct {
	model llm.Client
	log   *logrus.Logger
}

func NewEngine(model llm.Client, log *logrus.Logger) *Engine {
	return &Engine{model: model, log: log}
}

// Analyze calls the model once and returns a structurally valid Result. On
// rate limit it returns ErrModelBusy; on every other model or parse failure
// it returns the fallback. A zero-score result is the model's own non-menu
// verdict and passes through unchanged.
func (e *Engine) Analyze(ctx context.Context, menuText string) (Result, error) {
	raw, err := e.model.Generate(ctx, buildPrompt(menuText), nil)
	if err != nil {
		if errors.Is(err, llm.ErrRateLimited) {
			return Result{}, ErrModelBusy
		}
		e.log.WithError(err).Warn("model analysis failed, using fallback")
		return Fallback(menuText), nil
	}

	result, err := parseResult(raw)
	if err != nil {
		e.log.WithError(err).WithField("response_len", len(raw)).
			Warn("unusable model response, using fallback")
		return Fallback(menuText), nil
	}
	return result, nil
}

// parseResult recovers a Result from a raw model reply: code fences are
// stripped, then the first balanced {...} span is parsed. Brace matching
// survives explanatory prose the model sometimes adds around the JSON.
func parseResult(raw string) (Result, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	span, err := firstJSONObject(cleaned)
	if err != nil {
		return Result{}, err
	}

	var result Result
	if err := json.Unmarshal([]byte(span), &result); err != nil {
		return Result{}, err
	}
	if !result.Valid() {
		return Result{}, errors.New("model response missing required fields")
	}
	return result, nil
}

// firstJSONObject extracts the first balanced top-level {...} span, ignoring
// braces inside JSON strings.
func firstJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", errors.New("no JSON object in model response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", errors.New("unbalanced JSON object in model response")
}
