package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
	apperrors "github.com/venkateshtata/context-overflow-mcp/internal/errors"
)

func (s *Server) handlePostQuestion(c echo.Context) error {
	var req postQuestionRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	question, err := req.validate()
	if err != nil {
		return err
	}

	created, err := s.app.CreateQuestion(c.Request().Context(), question)
	if err != nil {
		return apperrors.InternalError("failed to create question", err)
	}

	return respond(c, http.StatusOK, map[string]any{
		"question_id": created.ID,
		"status":      "posted",
	})
}

func (s *Server) handleGetQuestions(c echo.Context) error {
	filter, err := parseQuestionFilter(c)
	if err != nil {
		return err
	}

	page, err := s.app.ListQuestions(c.Request().Context(), filter)
	if err != nil {
		return apperrors.InternalError("failed to list questions", err)
	}

	questions := make([]questionResponse, 0, len(page.Questions))
	for _, q := range page.Questions {
		questions = append(questions, toQuestionResponse(q))
	}

	return respond(c, http.StatusOK, map[string]any{
		"questions": questions,
		"total":     page.Total,
		"has_more":  page.HasMore,
	})
}

func parseQuestionFilter(c echo.Context) (domain.QuestionFilter, error) {
	filter := domain.QuestionFilter{Limit: defaultListLimit}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			return domain.QuestionFilter{}, apperrors.ValidationError("limit must be between 1 and 100").
				WithContext("field", "limit").
				WithContext("value", raw)
		}
		filter.Limit = limit
	}

	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return domain.QuestionFilter{}, apperrors.ValidationError("offset must be non-negative").
				WithContext("field", "offset").
				WithContext("value", raw)
		}
		filter.Offset = offset
	}

	filter.Language = strings.ToLower(strings.TrimSpace(c.QueryParam("language")))

	if raw := c.QueryParam("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			tag := strings.ToLower(strings.TrimSpace(t))
			if tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	return filter, nil
}
