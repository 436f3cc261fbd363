package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intent-router/internal/intent"
	pkgErrors "intent-router/pkg/errors"
	"intent-router/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthVersion = "1.0.0"
	ServiceName   = "intent-router"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is healthy"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	stats := srv.router.Stats()
	response.OK(c, gin.H{
		"status":     "healthy",
		"version":    HealthVersion,
		"service":    ServiceName,
		"ready":      stats.Ready,
		"encoder_id": stats.EncoderID,
		"routes":     stats.Routes,
		"embeddings": stats.Embeddings,
	})
}

// readyCheck reports whether the router has a usable reference index.
// @Summary Readiness Check
// @Description 200 once the first sync succeeded, 503 before
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is ready"
// @Failure 503 {object} response.Resp "Router not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	if !srv.router.Ready() {
		response.Error(c, pkgErrors.NewHTTPError(http.StatusServiceUnavailable, intent.ErrNotReady.Error()), nil)
		return
	}
	response.OK(c, gin.H{
		"status":  "ready",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "API is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": HealthVersion,
		"service": ServiceName,
	})
}
