package voting

import (
	"context"
	"errors"
	"fmt"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

// Ledger enforces the one-vote-per-voter-per-target invariant.
//
// State machine per (voter, target):
//
//	[no vote] --vote(V)--> [voted V]
//	[voted V] --vote(V)--> [no vote]   (toggle off)
//	[voted V] --vote(W)--> [voted W]   (flip, W != V)
type Ledger struct{}

// ProcessVote applies one vote request against the ledger and returns what
// happened. previous is nil when the voter had no existing vote; on a toggle
// off it equals the requested value. The caller must run this inside the same
// transaction as the subsequent recount.
func (Ledger) ProcessVote(ctx context.Context, store domain.LedgerStore, req domain.VoteRequest) (domain.VoteAction, *domain.VoteValue, error) {
	existing, err := store.GetVote(ctx, req.VoterID, req.TargetID, req.Kind)
	if errors.Is(err, domain.ErrVoteNotFound) {
		if err := store.InsertVote(ctx, req.VoterID, req.TargetID, req.Kind, req.Value); err != nil {
			return "", nil, fmt.Errorf("ledger insert: %w", err)
		}
		return domain.VoteCreated, nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("ledger lookup: %w", err)
	}

	previous := existing.Value

	if previous == req.Value {
		// Same polarity twice toggles the vote off.
		if err := store.DeleteVote(ctx, req.VoterID, req.TargetID, req.Kind); err != nil {
			return "", nil, fmt.Errorf("ledger delete: %w", err)
		}
		return domain.VoteRemoved, &previous, nil
	}

	// Polarity flip mutates the record in place; created_at is preserved.
	if err := store.UpdateVoteValue(ctx, req.VoterID, req.TargetID, req.Kind, req.Value); err != nil {
		return "", nil, fmt.Errorf("ledger update: %w", err)
	}
	return domain.VoteUpdated, &previous, nil
}
