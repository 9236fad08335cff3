package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akademika/siakad-api/internal/models"
	"github.com/akademika/siakad-api/pkg/response"
)

type transcriptService interface {
	GetTranscript(ctx context.Context, studentID string, locale models.Locale) (*models.Transcript, error)
}

// TranscriptHandler exposes the transcript read endpoint.
type TranscriptHandler struct {
	transcripts   transcriptService
	defaultLocale models.Locale
}

// NewTranscriptHandler constructs TranscriptHandler.
func NewTranscriptHandler(transcripts transcriptService, defaultLocale models.Locale) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts, defaultLocale: defaultLocale}
}

// Get godoc
// @Summary Get a student's transcript
// @Tags Transcripts
// @Produce json
// @Param id path string true "Student ID"
// @Param locale query string false "Locale for course names (en|id)"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/transcript [get]
func (h *TranscriptHandler) Get(c *gin.Context) {
	transcript, err := h.transcripts.GetTranscript(c.Request.Context(), c.Param("id"), h.locale(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transcript, nil)
}

// locale resolves the requested locale: explicit query param first, then the
// first Accept-Language tag, then the configured default.
func (h *TranscriptHandler) locale(c *gin.Context) models.Locale {
	if tag := c.Query("locale"); tag != "" {
		return models.NormalizeLocale(tag)
	}
	if accept := c.GetHeader("Accept-Language"); accept != "" {
		first := strings.TrimSpace(strings.SplitN(accept, ",", 2)[0])
		if idx := strings.IndexAny(first, "-;"); idx > 0 {
			first = first[:idx]
		}
		if first != "" {
			return models.NormalizeLocale(first)
		}
	}
	return h.defaultLocale
}

func intQuery(c *gin.Context, key string) int {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
