package llm

import (
	"context"
	"errors"
)

// ErrRateLimited signals an upstream quota or rate-limit rejection. Callers
// surface it as a retry-later condition instead of a bad-input failure.
var ErrRateLimited = errors.New("model quota or rate limit exceeded")

// Attachment is an optional binary part sent alongside a prompt.
type Attachment struct {
	MimeType string
	Data     []byte
}

// Client is the single generative collaborator: one prompt in, raw text out.
// A nil attachment means text-only generation.
type Client interface {
	Generate(ctx context.Context, prompt string, attachment *Attachment) (string, error)
}
