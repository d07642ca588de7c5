package main

import (
	"errors"
	"io"
	"net/http"

	"mentora/internal/database/elastic"
	"mentora/internal/learning_service/service"
	"mentora/internal/models"
	"mentora/internal/rag/generator"
	"mentora/internal/rag/schema"
	"mentora/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HttpHandler exposes the learning service via REST.
type HttpHandler struct {
	service *service.Service
	es      *elastic.Client
	log     *logger.Logger
}

func NewHttpHandler(svc *service.Service, es *elastic.Client, log *logger.Logger) *HttpHandler {
	return &HttpHandler{service: svc, es: es, log: log}
}

// traceMiddleware tags every request with a trace id so log lines of one
// request can be correlated, and logs the request itself.
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set("trace_id", traceID)
		c.Header("X-Trace-ID", traceID)

		logger.New("learning-service", traceID, sessionID(c)).
			WithRequest(models.RequestInfo{
				Method:     c.Request.Method,
				Path:       c.Request.URL.Path,
				RemoteAddr: c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
			}).
			Info("request received")

		c.Next()
	}
}

// sessionID resolves the caller's session. Profile endpoints accept it as
// a header or a query parameter; anonymous callers share one profile.
func sessionID(c *gin.Context) string {
	if id := c.GetHeader("X-Session-ID"); id != "" {
		return id
	}
	if id := c.Query("session_id"); id != "" {
		return id
	}
	return "anonymous"
}

func (h *HttpHandler) uploadMaterial(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.service.UploadMaterial(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		c.JSON(uploadStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"indexed": true, "id": doc.ID})
}

func (h *HttpHandler) ingestURL(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.service.IngestURL(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(uploadStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"indexed": true, "id": doc.ID})
}

// uploadStatus maps ingestion failures to HTTP codes. Caller mistakes
// (unsupported format, file with no extractable text) are 4xx, the rest
// is a server fault.
func uploadStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrNothingExtracted):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *HttpHandler) listMaterials(c *gin.Context) {
	docs, err := h.service.ListMaterials(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": docs})
}

func (h *HttpHandler) search(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
		Type  string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	docs, err := h.service.Search(c.Request.Context(), req.Query, req.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": docs})
}

func (h *HttpHandler) explain(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
		Topic     string `json:"topic" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session := req.SessionID
	if session == "" {
		session = sessionID(c)
	}

	result, err := h.service.Explain(c.Request.Context(), session, req.Topic)
	if err != nil {
		// Generation faults degrade to an apology instead of a 5xx so a
		// study session is never interrupted by a flaky model backend.
		h.log.WithError(models.ErrorInfo{Message: err.Error(), Type: "EXPLAIN_FAILED"}).
			Error("Explanation failed for topic: " + req.Topic)
		c.JSON(http.StatusOK, gin.H{
			"explanation": generator.FallbackMessage,
			"sources":     []*schema.Document{},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"explanation": result.Explanation,
		"sources":     result.Sources,
	})
}

func (h *HttpHandler) getProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), sessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *HttpHandler) updateProfile(c *gin.Context) {
	var req schema.UserProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), sessionID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *HttpHandler) clearDifficulties(c *gin.Context) {
	profile, err := h.service.ClearDifficulties(c.Request.Context(), sessionID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *HttpHandler) health(c *gin.Context) {
	if err := h.es.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
