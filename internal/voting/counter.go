package voting

import (
	"context"
	"fmt"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

// Counter keeps a target's cached total equal to upvotes minus downvotes over
// the current ledger rows. The total is always derived by full recount, never
// adjusted incrementally, so repeated calls with an unchanged ledger are
// idempotent and the cache can never drift.
type Counter struct{}

// Recompute recounts the ledger for the target and persists the new total.
// Returns domain.ErrTargetNotFound if the target row vanished.
func (Counter) Recompute(ctx context.Context, store domain.LedgerStore, targetID int64, kind domain.TargetKind) (int, error) {
	votes, err := store.ListVotes(ctx, targetID, kind)
	if err != nil {
		return 0, fmt.Errorf("recount read: %w", err)
	}

	total := 0
	for _, v := range votes {
		if v.Value == domain.Upvote {
			total++
		} else {
			total--
		}
	}

	if err := store.WriteTargetTotal(ctx, targetID, kind, total); err != nil {
		return 0, fmt.Errorf("recount write: %w", err)
	}
	return total, nil
}
