package voting

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
	"github.com/venkateshtata/context-overflow-mcp/internal/metrics"
)

// maxVoteAttempts bounds transparent retries after serialization conflicts.
// Conflicts should not occur while the per-target row lock holds; the retry
// loop is a safety net, not a throughput mechanism.
const maxVoteAttempts = 3

// Service composes the vote flow: existence check, ledger mutation, recount.
// All three steps run in one storage transaction, so a crash or conflict
// leaves the ledger and the cached total consistent.
type Service struct {
	storage domain.VoteStorage
	ledger  Ledger
	counter Counter
}

var _ domain.VoteService = (*Service)(nil)

func NewService(storage domain.VoteStorage) *Service {
	return &Service{storage: storage}
}

// Vote processes one vote request and returns the resulting action, the
// voter's previous vote, and the recomputed total. Unknown targets yield
// domain.ErrQuestionNotFound or domain.ErrAnswerNotFound.
func (s *Service) Vote(ctx context.Context, req domain.VoteRequest) (*domain.VoteResult, error) {
	start := time.Now()

	var result *domain.VoteResult
	var err error
	for attempt := 1; attempt <= maxVoteAttempts; attempt++ {
		result, err = s.voteOnce(ctx, req)
		if err == nil || !errors.Is(err, domain.ErrConcurrencyConflict) {
			break
		}
		metrics.VoteConflictRetries.Inc()
		slog.Warn("vote transaction conflict, retrying",
			"attempt", attempt,
			"target_id", req.TargetID,
			"target_kind", req.Kind,
		)
	}
	if err != nil {
		return nil, err
	}

	metrics.VotesProcessedTotal.WithLabelValues(string(result.Action), string(req.Kind)).Inc()
	metrics.VoteFlowDuration.Observe(time.Since(start).Seconds())

	slog.InfoContext(ctx, "vote processed",
		"action", result.Action,
		"target_id", req.TargetID,
		"target_kind", req.Kind,
		"new_total", result.NewTotal,
	)
	return result, nil
}

func (s *Service) voteOnce(ctx context.Context, req domain.VoteRequest) (*domain.VoteResult, error) {
	var result domain.VoteResult

	err := s.storage.InVoteTx(ctx, func(store domain.LedgerStore) error {
		exists, err := store.TargetExists(ctx, req.TargetID, req.Kind)
		if err != nil {
			return err
		}
		if !exists {
			return notFoundFor(req.Kind)
		}

		action, previous, err := s.ledger.ProcessVote(ctx, store, req)
		if err != nil {
			return err
		}

		total, err := s.counter.Recompute(ctx, store, req.TargetID, req.Kind)
		if err != nil {
			return err
		}

		var current *domain.VoteValue
		if action != domain.VoteRemoved {
			v := req.Value
			current = &v
		}

		result = domain.VoteResult{
			TargetID: req.TargetID,
			Kind:     req.Kind,
			Action:   action,
			Previous: previous,
			Current:  current,
			NewTotal: total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func notFoundFor(kind domain.TargetKind) error {
	if kind == domain.TargetQuestion {
		return domain.ErrQuestionNotFound
	}
	return domain.ErrAnswerNotFound
}
