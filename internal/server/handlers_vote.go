package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
	apperrors "github.com/venkateshtata/context-overflow-mcp/internal/errors"
	"github.com/venkateshtata/context-overflow-mcp/internal/logging"
	"github.com/venkateshtata/context-overflow-mcp/internal/metrics"
)

func (s *Server) handleVote(c echo.Context) error {
	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	vote, err := req.validate()
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	if s.voteLimiter != nil {
		allowed, err := s.voteLimiter.CheckVoteRateLimit(ctx, vote.VoterID)
		if err != nil {
			// Fail open: a broken limiter must not block voting
			logging.WithVoter(vote.VoterID).WarnContext(ctx, "vote rate limit check failed, allowing vote",
				"error", err,
			)
		} else if !allowed {
			metrics.VotesRateLimited.Inc()
			return apperrors.RateLimitedError("vote rate limit exceeded").
				WithContext("user_id", vote.VoterID)
		}
	}

	result, err := s.app.Vote(ctx, vote)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQuestionNotFound):
			return apperrors.NotFoundError("question not found").
				WithContext("target_id", vote.TargetID)
		case errors.Is(err, domain.ErrAnswerNotFound):
			return apperrors.NotFoundError("answer not found").
				WithContext("target_id", vote.TargetID)
		case errors.Is(err, domain.ErrTargetNotFound):
			return apperrors.NotFoundError("vote target not found").
				WithContext("target_id", vote.TargetID)
		case errors.Is(err, domain.ErrConcurrencyConflict):
			return apperrors.ConflictError("vote conflicted with concurrent updates, try again")
		default:
			return apperrors.InternalError("failed to process vote", err)
		}
	}

	return respond(c, http.StatusOK, toVoteResponse(*result))
}
