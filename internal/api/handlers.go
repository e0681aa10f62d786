package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"vibedezine_server/internal/ai"
	"vibedezine_server/internal/export"
	"vibedezine_server/internal/interview"
	"vibedezine_server/internal/page"
	"vibedezine_server/internal/types"
)

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator  *ai.Generator
	interviews *interview.Manager
	exporter   *export.Exporter
	publisher  *export.Publisher // nil when publishing is disabled
	logger     *slog.Logger
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(
	generator *ai.Generator,
	interviews *interview.Manager,
	exporter *export.Exporter,
	publisher *export.Publisher,
	logger *slog.Logger,
) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{
		generator:  generator,
		interviews: interviews,
		exporter:   exporter,
		publisher:  publisher,
		logger:     logger,
	}
}

// --- Structs for API Requests/Responses ---

type AnalyzeURLRequest struct {
	URL string `json:"url" binding:"required"`
}

type AnalyzeURLResponse struct {
	Success   bool               `json:"success"`
	Extracted *types.URLAnalysis `json:"extracted"`
}

type GenerateCopyRequest struct {
	Description string `json:"description" binding:"required"`
	Tone        string `json:"tone"`
}

type GeneratePageRequest struct {
	ExtractedData *types.ExtractedProductData `json:"extractedData" binding:"required"`
	Theme         *types.ThemeConfig          `json:"theme"`
}

type GeneratePageResponse struct {
	LandingPage types.GeneratedLandingPage `json:"landingPage"`
}

type ExportRequest struct {
	LandingPage *types.GeneratedLandingPage `json:"landingPage" binding:"required"`
}

type PublishResponse struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	HTML         string `json:"html"`
	Instructions string `json:"instructions"`
}

type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID     string                      `json:"sessionId"`
	Message       string                      `json:"message"`
	IsComplete    bool                        `json:"isComplete"`
	ExtractedData *types.ExtractedProductData `json:"extractedData"`
}

type SessionResponse struct {
	Session *types.InterviewSession `json:"session"`
}

type ExtractRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

type ExtractResponse struct {
	SessionID     string                      `json:"sessionId"`
	IsComplete    bool                        `json:"isComplete"`
	ExtractedData *types.ExtractedProductData `json:"extractedData"`
}

// --- API Handlers ---

// POST /api/analyze-url
func (h *APIHandler) AnalyzeURL(c *gin.Context) {
	var req AnalyzeURLRequest
	if !h.bind(c, &req, "URL is required") {
		return
	}

	extracted, err := h.generator.AnalyzeURL(c.Request.Context(), req.URL)
	if err != nil {
		h.fail(c, err, "Failed to analyze URL")
		return
	}
	c.JSON(http.StatusOK, AnalyzeURLResponse{Success: true, Extracted: extracted})
}

// POST /api/generate
func (h *APIHandler) GenerateCopy(c *gin.Context) {
	var req GenerateCopyRequest
	if !h.bind(c, &req, "Description is required") {
		return
	}

	generated, err := h.generator.GenerateCopy(c.Request.Context(), req.Description, types.ParseTone(req.Tone))
	if err != nil {
		h.fail(c, err, "Failed to generate copy")
		return
	}
	c.JSON(http.StatusOK, generated)
}

// POST /api/generate/page
func (h *APIHandler) GeneratePage(c *gin.Context) {
	var req GeneratePageRequest
	if !h.bind(c, &req, "Product data is required") {
		return
	}

	pageCopy, err := h.generator.GeneratePageCopy(c.Request.Context(), req.ExtractedData)
	if err != nil {
		h.fail(c, err, "Failed to generate landing page")
		return
	}
	c.JSON(http.StatusOK, GeneratePageResponse{LandingPage: page.Assemble(pageCopy, req.Theme)})
}

// POST /api/export
func (h *APIHandler) Export(c *gin.Context) {
	var req ExportRequest
	if !h.bind(c, &req, "Landing page data is required") {
		return
	}

	exported, err := h.exporter.Export(req.LandingPage)
	if err != nil {
		h.fail(c, err, "Failed to export landing page")
		return
	}
	c.JSON(http.StatusOK, exported)
}

// POST /api/export/publish
func (h *APIHandler) Publish(c *gin.Context) {
	if h.publisher == nil {
		h.fail(c, types.Errorf(types.ECONFIG, "Publishing is not configured"), "")
		return
	}

	var req ExportRequest
	if !h.bind(c, &req, "Landing page data is required") {
		return
	}

	exported, err := h.exporter.Export(req.LandingPage)
	if err != nil {
		h.fail(c, err, "Failed to export landing page")
		return
	}

	id, err := h.publisher.PublishFiles(c.Request.Context(), map[string]string{"index.html": exported.HTML})
	if err != nil {
		h.fail(c, err, "Failed to publish landing page")
		return
	}

	c.JSON(http.StatusCreated, PublishResponse{
		ID:           id,
		URL:          h.publisher.URL(id),
		HTML:         exported.HTML,
		Instructions: exported.Instructions,
	})
}

// POST /api/interview/chat
func (h *APIHandler) InterviewChat(c *gin.Context) {
	var req ChatRequest
	// An empty body starts a new interview.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Info("rejected request body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := h.interviews.Advance(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		h.fail(c, err, "Failed to process message")
		return
	}
	c.JSON(http.StatusOK, ChatResponse{
		SessionID:     res.SessionID,
		Message:       res.Message,
		IsComplete:    res.IsComplete,
		ExtractedData: res.ExtractedData,
	})
}

// GET /api/interview/chat?sessionId=
func (h *APIHandler) GetInterview(c *gin.Context) {
	session, err := h.interviews.Get(c.Request.Context(), c.Query("sessionId"))
	if err != nil {
		h.fail(c, err, "Failed to load session")
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: session})
}

// POST /api/interview/extract
func (h *APIHandler) ExtractInterview(c *gin.Context) {
	var req ExtractRequest
	if !h.bind(c, &req, "Session ID is required") {
		return
	}

	res, err := h.interviews.Extract(c.Request.Context(), req.SessionID)
	if err != nil {
		h.fail(c, err, "Failed to extract product data")
		return
	}
	c.JSON(http.StatusOK, ExtractResponse{
		SessionID:     res.SessionID,
		IsComplete:    res.IsComplete,
		ExtractedData: res.ExtractedData,
	})
}

// bind decodes the JSON body into req. A missing required field answers
// 400 with missing; malformed JSON answers 400 "Invalid request body".
func (h *APIHandler) bind(c *gin.Context, req any, missing string) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	message := "Invalid request body"
	var verr validator.ValidationErrors
	if errors.As(err, &verr) && missing != "" {
		message = missing
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		message = "Invalid request body: " + typeErr.Field + " has the wrong type"
	}

	h.logger.Info("rejected request body", "path", c.FullPath(), "err", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
	return false
}

// fail writes err as {"error": message} with the status its code maps to.
// Errors without a caller-safe message are reported as fallback.
func (h *APIHandler) fail(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)
	message := types.ErrorMessage(err)
	var appErr *types.Error
	if !errors.As(err, &appErr) || message == "" {
		message = fallback
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "status", status, "err", err)
	} else {
		h.logger.Info("request rejected", "path", c.FullPath(), "status", status, "err", err)
	}
	c.JSON(status, gin.H{"error": message})
}

// StatusFor maps an error to its HTTP status. Upstream errors reuse the
// status relayed from the remote service when there is one.
func StatusFor(err error) int {
	switch types.ErrorCode(err) {
	case types.EINVALID, types.ETIMEOUT:
		return http.StatusBadRequest
	case types.ENOTFOUND:
		return http.StatusNotFound
	case types.EUPSTREAM:
		if s := types.ErrorStatus(err); s >= 400 && s <= 599 {
			return s
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
