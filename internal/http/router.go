// README: HTTP route registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripmate/internal/http/handlers"
)

func registerRoutes(r *gin.Engine, s *Server) {
	chatHandler := handlers.NewChatHandler(s.planner, s.validator)
	chat := r.Group("/api/chat")
	if s.limiter != nil {
		chat.Use(s.limiter.Limit())
	}
	chat.POST("", chatHandler.Chat)
	chat.POST("/merge", chatHandler.Merge)

	destinationHandler := handlers.NewDestinationHandler(s.planner)
	r.GET("/api/destinations", destinationHandler.List)

	conversationHandler := handlers.NewConversationHandler(s.planner)
	r.GET("/api/conversations/:id", conversationHandler.Get)
	r.DELETE("/api/conversations/:id", conversationHandler.Delete)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
