package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/health", s.handleHealthLegacy)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)
	s.echo.GET("/", s.handleRoot)

	// Mutating routes carry a per-IP rate limit
	writeLimit := newRateLimiter(s.config.HTTPRatePerSecond, s.config.HTTPBurst)

	mcp := s.echo.Group("/mcp")
	mcp.POST("/post_question", s.handlePostQuestion, writeLimit)
	mcp.GET("/get_questions", s.handleGetQuestions)
	mcp.POST("/post_answer", s.handlePostAnswer, writeLimit)
	mcp.GET("/get_answers/:question_id", s.handleGetAnswers)
	mcp.POST("/vote", s.handleVote, writeLimit)
}
