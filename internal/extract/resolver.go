package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"github.com/veenakrishnan01/menu-analyser/internal/llm"
)

// Config holds the intake gates. Zero values fall back to the defaults the
// HTTP surface documents.
type Config struct {
	MaxFileBytes int64
	URLMinChars  int
	FetchTimeout time.Duration
}

const (
	defaultMaxFileBytes = 15 << 20 // 15 MB
	defaultURLMinChars  = 50
	defaultFetchTimeout = 15 * time.Second
)

// Resolver turns any accepted menu source into plain text. It owns the
// cheap-gates-first ordering: size and signature checks always run before a
// single network byte is spent.
type Resolver struct {
	model llm.Client
	http  *resty.Client
	cfg   Config
	log   *logrus.Logger
}

func NewResolver(model llm.Client, cfg Config, log *logrus.Logger) *Resolver {
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = defaultMaxFileBytes
	}
	if cfg.URLMinChars <= 0 {
		cfg.URLMinChars = defaultURLMinChars
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}

	client := resty.New()
	client.SetTimeout(cfg.FetchTimeout)
	client.SetHeader("User-Agent", "menu-analyser/1.0")

	return &Resolver{model: model, http: client, cfg: cfg, log: log}
}

// Resolve dispatches on the source kind and returns extracted plain text or
// an *ExtractionError.
func (r *Resolver) Resolve(ctx context.Context, src Source) (ExtractedText, error) {
	switch src.Kind {
	case SourcePDF:
		return r.resolvePDF(ctx, src)
	case SourceImage:
		return r.resolveImage(ctx, src)
	case SourceURL:
		return r.resolveURL(ctx, src)
	case SourceText:
		return r.resolveText(src)
	default:
		return ExtractedText{}, newError(ErrUnsupportedType, fmt.Sprintf("unsupported source kind %q", src.Kind))
	}
}

func (r *Resolver) resolvePDF(ctx context.Context, src Source) (ExtractedText, error) {
	if len(src.Data) == 0 {
		return ExtractedText{}, newError(ErrEmptyFile, "uploaded PDF is empty")
	}
	if int64(len(src.Data)) > r.cfg.MaxFileBytes {
		return ExtractedText{}, newError(ErrOversized,
			fmt.Sprintf("PDF exceeds the %d MB limit", r.cfg.MaxFileBytes>>20))
	}
	if !bytes.HasPrefix(src.Data, []byte("%PDF")) {
		return ExtractedText{}, newError(ErrBadSignature, "file does not look like a PDF")
	}

	text, err := pdfTextLayer(src.Data)
	if err == nil && strings.TrimSpace(text) != "" {
		return ExtractedText{
			Content:          text,
			OriginKind:       SourcePDF,
			OriginDescriptor: src.FileName,
		}, nil
	}
	if err != nil {
		r.log.WithError(err).WithField("file", src.FileName).
			Warn("pdf text layer unreadable, falling back to model extraction")
	}

	// Scanned or image-only PDF: hand the whole document to the model.
	content, err := r.model.Generate(ctx, llm.BuildPDFExtractPrompt(), &llm.Attachment{
		MimeType: "application/pdf",
		Data:     src.Data,
	})
	if err != nil {
		return ExtractedText{}, wrapError(ErrModelFailed, "could not extract text from PDF", err)
	}
	if strings.TrimSpace(content) == "" {
		return ExtractedText{}, newError(ErrInsufficientContent, "no readable text found in PDF")
	}

	return ExtractedText{
		Content:          content,
		OriginKind:       SourcePDF,
		OriginDescriptor: src.FileName,
	}, nil
}

func (r *Resolver) resolveImage(ctx context.Context, src Source) (ExtractedText, error) {
	if len(src.Data) == 0 {
		return ExtractedText{}, newError(ErrEmptyFile, "uploaded image is empty")
	}
	if int64(len(src.Data)) > r.cfg.MaxFileBytes {
		return ExtractedText{}, newError(ErrOversized,
			fmt.Sprintf("image exceeds the %d MB limit", r.cfg.MaxFileBytes>>20))
	}

	content, err := r.model.Generate(ctx, llm.BuildImageExtractPrompt(), &llm.Attachment{
		MimeType: src.MimeType,
		Data:     src.Data,
	})
	if err != nil {
		return ExtractedText{}, wrapError(ErrModelFailed, "could not extract text from image", err)
	}
	if strings.TrimSpace(content) == "" {
		return ExtractedText{}, newError(ErrInsufficientContent, "no readable text found in image")
	}

	return ExtractedText{
		Content:          content,
		OriginKind:       SourceImage,
		OriginDescriptor: src.FileName,
	}, nil
}

func (r *Resolver) resolveURL(ctx context.Context, src Source) (ExtractedText, error) {
	resp, err := r.http.R().SetContext(ctx).Get(src.URL)
	if err != nil {
		return ExtractedText{}, wrapError(ErrFetchFailed, "could not fetch menu URL", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return ExtractedText{}, newError(ErrFetchFailed,
			fmt.Sprintf("menu URL returned status %d", resp.StatusCode()))
	}

	text := stripHTML(string(resp.Body()))
	if len(text) < r.cfg.URLMinChars {
		return ExtractedText{}, newError(ErrInsufficientContent,
			"could not extract enough menu content from the URL")
	}

	return ExtractedText{
		Content:          text,
		OriginKind:       SourceURL,
		OriginDescriptor: src.URL,
	}, nil
}

func (r *Resolver) resolveText(src Source) (ExtractedText, error) {
	if strings.TrimSpace(src.Text) == "" {
		return ExtractedText{}, newError(ErrInsufficientContent, "no menu text provided")
	}
	// Pasted text is trusted as-is; the validator decides whether it is a menu.
	return ExtractedText{
		Content:          src.Text,
		OriginKind:       SourceText,
		OriginDescriptor: "pasted text",
	}, nil
}

// pdfTextLayer reads the embedded text layer. The parser panics on some
// malformed documents, which is treated like any other unreadable text layer.
func pdfTextLayer(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text layer: %w", err)
	}

	raw, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text layer: %w", err)
	}
	return string(raw), nil
}

var (
	scriptRe     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// stripHTML reduces a fetched page to its visible text: scripts and styles
// removed wholesale, remaining tags dropped, whitespace collapsed.
func stripHTML(html string) string {
	text := scriptRe.ReplaceAllString(html, " ")
	text = styleRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
