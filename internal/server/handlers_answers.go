package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
	apperrors "github.com/venkateshtata/context-overflow-mcp/internal/errors"
)

func (s *Server) handlePostAnswer(c echo.Context) error {
	var req postAnswerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	answer, err := req.validate()
	if err != nil {
		return err
	}

	created, err := s.app.CreateAnswer(c.Request().Context(), answer)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return apperrors.NotFoundError("question not found").
				WithContext("question_id", answer.QuestionID)
		}
		return apperrors.InternalError("failed to create answer", err)
	}

	return respond(c, http.StatusOK, map[string]any{
		"answer_id":   created.ID,
		"question_id": created.QuestionID,
		"status":      "posted",
	})
}

func (s *Server) handleGetAnswers(c echo.Context) error {
	questionID, err := strconv.ParseInt(c.Param("question_id"), 10, 64)
	if err != nil || questionID <= 0 {
		return apperrors.ValidationError("question_id must be a positive integer").
			WithContext("value", c.Param("question_id"))
	}

	answers, err := s.app.ListAnswers(c.Request().Context(), questionID)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return apperrors.NotFoundError("question not found").
				WithContext("question_id", questionID)
		}
		return apperrors.InternalError("failed to list answers", err)
	}

	responses := make([]answerResponse, 0, len(answers))
	for _, a := range answers {
		responses = append(responses, toAnswerResponse(a))
	}

	return respond(c, http.StatusOK, map[string]any{
		"answers": responses,
		"total":   len(responses),
	})
}
