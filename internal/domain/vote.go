package domain

import (
	"context"
	"time"
)

// TargetKind distinguishes the two independent vote namespaces. A question
// and an answer may share the same numeric ID without sharing any votes.
type TargetKind string

const (
	TargetQuestion TargetKind = "question"
	TargetAnswer   TargetKind = "answer"
)

// ParseTargetKind parses a wire-level target type ("question" or "answer").
func ParseTargetKind(s string) (TargetKind, bool) {
	switch TargetKind(s) {
	case TargetQuestion:
		return TargetQuestion, true
	case TargetAnswer:
		return TargetAnswer, true
	default:
		return "", false
	}
}

// VoteValue is a signed unit vote: +1 for an upvote, -1 for a downvote.
type VoteValue int16

const (
	Upvote   VoteValue = 1
	Downvote VoteValue = -1
)

// Label returns the wire-level name of the vote value.
func (v VoteValue) Label() string {
	if v == Upvote {
		return "upvote"
	}
	return "downvote"
}

// ParseVoteValue parses a wire-level vote type ("upvote" or "downvote").
func ParseVoteValue(s string) (VoteValue, bool) {
	switch s {
	case "upvote":
		return Upvote, true
	case "downvote":
		return Downvote, true
	default:
		return 0, false
	}
}

// Vote is one voter's current stance on one target. At most one row exists
// per (voter, target, kind) triple; CreatedAt survives value flips.
type Vote struct {
	ID        int64
	VoterID   string
	TargetID  int64
	Kind      TargetKind
	Value     VoteValue
	CreatedAt time.Time
}

// VoteAction describes what a vote request did to the ledger.
type VoteAction string

const (
	VoteCreated VoteAction = "created"
	VoteUpdated VoteAction = "updated"
	VoteRemoved VoteAction = "removed"
)

// VoteRequest is a validated vote command entering the core.
type VoteRequest struct {
	VoterID  string
	TargetID int64
	Kind     TargetKind
	Value    VoteValue
}

// VoteResult is the outcome of the composed vote flow.
//
// Previous is nil when this was the voter's first vote on the target.
// Current is nil when the vote was toggled off (Action == VoteRemoved);
// on a toggle-off Previous always equals the requested value.
type VoteResult struct {
	TargetID int64
	Kind     TargetKind
	Action   VoteAction
	Previous *VoteValue
	Current  *VoteValue
	NewTotal int
}

// LedgerStore exposes the vote ledger primitives inside a single storage
// transaction. Implementations must guarantee that TargetExists also
// serializes concurrent vote flows on the same target (row lock), so that
// the recount always observes a complete ledger state.
type LedgerStore interface {
	// TargetExists reports whether the target row exists, and locks it for
	// the remainder of the transaction.
	TargetExists(ctx context.Context, targetID int64, kind TargetKind) (bool, error)

	// GetVote returns the voter's current vote on the target, or ErrVoteNotFound.
	GetVote(ctx context.Context, voterID string, targetID int64, kind TargetKind) (*Vote, error)
	InsertVote(ctx context.Context, voterID string, targetID int64, kind TargetKind, value VoteValue) error
	UpdateVoteValue(ctx context.Context, voterID string, targetID int64, kind TargetKind, value VoteValue) error
	DeleteVote(ctx context.Context, voterID string, targetID int64, kind TargetKind) error

	// ListVotes returns all current votes for the target.
	ListVotes(ctx context.Context, targetID int64, kind TargetKind) ([]Vote, error)

	// WriteTargetTotal persists the recomputed total on the target row.
	// Returns ErrTargetNotFound if the target vanished.
	WriteTargetTotal(ctx context.Context, targetID int64, kind TargetKind, total int) error
}

// VoteStorage runs a vote flow inside one transaction. If the transaction
// aborts due to concurrent access, the returned error wraps
// ErrConcurrencyConflict and the whole flow may be retried.
type VoteStorage interface {
	InVoteTx(ctx context.Context, fn func(LedgerStore) error) error
}

// VoteService is the single operation the core exposes to the HTTP layer.
type VoteService interface {
	Vote(ctx context.Context, req VoteRequest) (*VoteResult, error)
}

// VoteRateLimiter enforces per-voter vote rate limits using a token bucket.
// Allows burst traffic (up to capacity) while limiting sustained rate.
type VoteRateLimiter interface {
	// CheckVoteRateLimit checks if a vote is allowed for the voter.
	// Returns true if allowed (token consumed), false if rate limited.
	CheckVoteRateLimit(ctx context.Context, voterID string) (bool, error)
}
