package http

import (
	"github.com/gin-gonic/gin"

	"intent-router/internal/middleware"
)

// RegisterRoutes maps the chat endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.POST("", mw.RateLimit(), h.Chat)
	rg.GET("/routes", h.Routes)
}
