package http

import (
	"github.com/gin-gonic/gin"

	"intent-router/internal/middleware"
)

// RegisterRoutes maps the intent endpoints under rg. Classification is rate
// limited per client.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.POST("/classify", mw.RateLimit(), h.Classify)
	rg.POST("/classify/batch", mw.RateLimit(), h.ClassifyBatch)
	rg.POST("/sync", h.Sync)
	rg.GET("/routes", h.ListRoutes)
	rg.PUT("/routes", h.UpdateRoutes)
	rg.GET("/stats", h.Stats)
}
