package menu

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veenakrishnan01/menu-analyser/internal/analysis"
	"github.com/veenakrishnan01/menu-analyser/internal/extract"
	"github.com/veenakrishnan01/menu-analyser/internal/quota"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type analyzeJSONRequest struct {
	URL          string `json:"url"`
	Text         string `json:"text"`
	BusinessName string `json:"businessName"`
}

// Analyze accepts a menu as multipart upload (file + type) or as JSON
// (exactly one of url/text) and returns the analysis result.
func (h *Handler) Analyze(c *gin.Context) {
	userID := c.GetString("userID")
	userEmail := c.GetString("userEmail")

	sub, ok := h.parseSubmission(c)
	if !ok {
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), userID, userEmail, sub)
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) parseSubmission(c *gin.Context) (Submission, bool) {
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return h.parseMultipart(c)
	}
	return h.parseJSON(c)
}

func (h *Handler) parseMultipart(c *gin.Context) (Submission, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return Submission{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return Submission{}, false
	}

	source := extract.Source{
		Data:     data,
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
	}

	switch c.PostForm("type") {
	case "pdf":
		source.Kind = extract.SourcePDF
		source.MimeType = "application/pdf"
	case "image":
		source.Kind = extract.SourceImage
		if source.MimeType == "" || !strings.HasPrefix(source.MimeType, "image/") {
			source.MimeType = "image/jpeg"
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be 'pdf' or 'image'"})
		return Submission{}, false
	}

	return Submission{
		Source:       source,
		BusinessName: c.PostForm("businessName"),
	}, true
}

func (h *Handler) parseJSON(c *gin.Context) (Submission, bool) {
	var req analyzeJSONRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return Submission{}, false
	}

	hasURL := strings.TrimSpace(req.URL) != ""
	hasText := strings.TrimSpace(req.Text) != ""
	if hasURL == hasText {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide exactly one of 'url' or 'text'"})
		return Submission{}, false
	}

	source := extract.Source{}
	if hasURL {
		source.Kind = extract.SourceURL
		source.URL = req.URL
	} else {
		source.Kind = extract.SourceText
		source.Text = req.Text
	}

	return Submission{
		Source:       source,
		BusinessName: req.BusinessName,
	}, true
}

func respondPipelineError(c *gin.Context, err error) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  rejected.Message,
			"reason": string(rejected.Reason),
		})
		return
	}

	var extraction *extract.ExtractionError
	if errors.As(err, &extraction) {
		switch {
		case extraction.IsRetryable():
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "the analysis service is busy right now, please try again in a few minutes",
			})
		case extraction.Kind == extract.ErrOversized:
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": extraction.Message})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": extraction.Message})
		}
		return
	}

	switch {
	case errors.Is(err, quota.ErrDailyLimitReached):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "you have reached your daily analysis limit, it resets tomorrow",
		})
	case errors.Is(err, analysis.ErrModelBusy):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "the analysis service is busy right now, please try again in a few minutes",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed, please try again"})
	}
}
