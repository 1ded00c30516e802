package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/Totanopti/gocomapare-2/internal/domain"
	"github.com/gin-gonic/gin"
)

// SellerAnalyzer is the analysis capability the handler depends on
type SellerAnalyzer interface {
	AnalyzeSeller(ctx context.Context, req *domain.AnalyzeRequest) (*domain.AnalysisResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analyzer SellerAnalyzer
}

// NewHandler creates a new HTTP handler
func NewHandler(analyzer SellerAnalyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "gocompare-backend",
		"version": "1.1.1",
	})
}

// AnalyzeSeller handles seller storefront analysis requests
func (h *Handler) AnalyzeSeller(c *gin.Context) {
	if h.analyzer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "analyzer not configured",
		})
		return
	}

	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.analyzer.AnalyzeSeller(c.Request.Context(), &req)
	if err != nil {
		status, message := mapError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, result)
}

// mapError translates pipeline errors to HTTP status codes. Validation is the
// caller's fault, empty results are not-found, and fatal upstream failures
// surface as a gateway-style 502 with the stage-specific message.
func mapError(err error) (int, string) {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, notFound.Reason
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return http.StatusBadGateway, upstream.Error()
	}

	if errors.Is(err, domain.ErrInvalidMarketplace) {
		return http.StatusBadRequest, err.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}
