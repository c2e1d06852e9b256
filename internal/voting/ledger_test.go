package voting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

func upReq(voter string, target int64, kind domain.TargetKind) domain.VoteRequest {
	return domain.VoteRequest{VoterID: voter, TargetID: target, Kind: kind, Value: domain.Upvote}
}

func downReq(voter string, target int64, kind domain.TargetKind) domain.VoteRequest {
	return domain.VoteRequest{VoterID: voter, TargetID: target, Kind: kind, Value: domain.Downvote}
}

func TestLedgerProcessVote(t *testing.T) {
	ctx := context.Background()
	question := targetKey{1, domain.TargetQuestion}

	t.Run("first vote creates a record", func(t *testing.T) {
		storage := newFakeStorage(question)
		store := &fakeLedgerStore{storage: storage}
		var ledger Ledger

		action, previous, err := ledger.ProcessVote(ctx, store, upReq("alice", 1, domain.TargetQuestion))
		require.NoError(t, err)
		assert.Equal(t, domain.VoteCreated, action)
		assert.Nil(t, previous)

		v, ok := storage.vote("alice", 1, domain.TargetQuestion)
		require.True(t, ok)
		assert.Equal(t, domain.Upvote, v.Value)
	})

	t.Run("same value toggles the vote off", func(t *testing.T) {
		storage := newFakeStorage(question)
		store := &fakeLedgerStore{storage: storage}
		var ledger Ledger

		_, _, err := ledger.ProcessVote(ctx, store, upReq("alice", 1, domain.TargetQuestion))
		require.NoError(t, err)

		action, previous, err := ledger.ProcessVote(ctx, store, upReq("alice", 1, domain.TargetQuestion))
		require.NoError(t, err)
		assert.Equal(t, domain.VoteRemoved, action)
		require.NotNil(t, previous)
		assert.Equal(t, domain.Upvote, *previous)

		_, ok := storage.vote("alice", 1, domain.TargetQuestion)
		assert.False(t, ok)
	})

	t.Run("opposite value updates in place", func(t *testing.T) {
		storage := newFakeStorage(question)
		store := &fakeLedgerStore{storage: storage}
		var ledger Ledger

		_, _, err := ledger.ProcessVote(ctx, store, upReq("alice", 1, domain.TargetQuestion))
		require.NoError(t, err)
		original, ok := storage.vote("alice", 1, domain.TargetQuestion)
		require.True(t, ok)

		action, previous, err := ledger.ProcessVote(ctx, store, downReq("alice", 1, domain.TargetQuestion))
		require.NoError(t, err)
		assert.Equal(t, domain.VoteUpdated, action)
		require.NotNil(t, previous)
		assert.Equal(t, domain.Upvote, *previous)

		updated, ok := storage.vote("alice", 1, domain.TargetQuestion)
		require.True(t, ok)
		assert.Equal(t, domain.Downvote, updated.Value)
		assert.Equal(t, original.ID, updated.ID)
		assert.Equal(t, original.CreatedAt, updated.CreatedAt)
		assert.Equal(t, 1, storage.voteCount(1, domain.TargetQuestion))
	})

	t.Run("votes on question and answer with the same id are independent", func(t *testing.T) {
		storage := newFakeStorage(
			targetKey{5, domain.TargetQuestion},
			targetKey{5, domain.TargetAnswer},
		)
		store := &fakeLedgerStore{storage: storage}
		var ledger Ledger

		_, _, err := ledger.ProcessVote(ctx, store, upReq("alice", 5, domain.TargetQuestion))
		require.NoError(t, err)

		action, previous, err := ledger.ProcessVote(ctx, store, upReq("alice", 5, domain.TargetAnswer))
		require.NoError(t, err)
		assert.Equal(t, domain.VoteCreated, action)
		assert.Nil(t, previous)

		assert.Equal(t, 1, storage.voteCount(5, domain.TargetQuestion))
		assert.Equal(t, 1, storage.voteCount(5, domain.TargetAnswer))
	})
}
