// README: API gateway; builds the gin engine, registers routes and wraps it with CORS.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"tripmate/internal/http/middleware"
	"tripmate/internal/service"
	"tripmate/internal/validation"
)

type ServerDeps struct {
	Planner     *service.TripPlanner
	Validator   *validation.Validator
	Log         *zap.Logger
	CORSOrigins []string
	// RateLimiter guards the chat routes; nil disables limiting.
	RateLimiter *middleware.RateLimiter
}

type Server struct {
	planner     *service.TripPlanner
	validator   *validation.Validator
	log         *zap.Logger
	corsOrigins []string
	limiter     *middleware.RateLimiter
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		planner:     deps.Planner,
		validator:   deps.Validator,
		log:         log,
		corsOrigins: deps.CORSOrigins,
		limiter:     deps.RateLimiter,
	}
}

// Routes returns the full handler chain: CORS, then the gin engine.
func (s *Server) Routes() http.Handler {
	engine := gin.New()
	engine.Use(middleware.Recovery(s.log), middleware.Logging(s.log))
	registerRoutes(engine, s)

	return cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	}).Handler(engine)
}
