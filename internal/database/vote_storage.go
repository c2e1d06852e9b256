package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

// VoteStorage implements domain.VoteStorage. Each vote flow runs inside one
// transaction; TargetExists takes a row lock on the target, so concurrent
// flows on the same target serialize while different targets proceed in
// parallel.
type VoteStorage struct {
	pool *pgxpool.Pool
}

func NewVoteStorage(pool *pgxpool.Pool) *VoteStorage {
	return &VoteStorage{pool: pool}
}

func (s *VoteStorage) InVoteTx(ctx context.Context, fn func(domain.LedgerStore) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := fn(&ledgerStore{tx: tx}); err != nil {
		return mapConflict(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapConflict(fmt.Errorf("failed to commit vote transaction: %w", err))
	}
	return nil
}

// mapConflict tags serialization failures and deadlocks so the voting service
// can retry the whole flow.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
	}
	return err
}

// ledgerStore exposes the ledger primitives scoped to one transaction.
type ledgerStore struct {
	tx pgx.Tx
}

func targetTable(kind domain.TargetKind) string {
	switch kind {
	case domain.TargetQuestion:
		return "questions"
	case domain.TargetAnswer:
		return "answers"
	default:
		// Kinds are validated at the HTTP boundary; anything else is a
		// programming error.
		panic(fmt.Sprintf("unknown target kind %q", kind))
	}
}

func (l *ledgerStore) TargetExists(ctx context.Context, targetID int64, kind domain.TargetKind) (bool, error) {
	// FOR UPDATE serializes concurrent vote flows on the same target for the
	// rest of the transaction.
	query := fmt.Sprintf("SELECT id FROM %s WHERE id = $1 FOR UPDATE", targetTable(kind))

	var id int64
	err := l.tx.QueryRow(ctx, query, targetID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to lock vote target: %w", err)
	}
	return true, nil
}

func (l *ledgerStore) GetVote(ctx context.Context, voterID string, targetID int64, kind domain.TargetKind) (*domain.Vote, error) {
	var vote domain.Vote
	err := l.tx.QueryRow(ctx, `
		SELECT id, voter_id, target_id, target_kind, value, created_at
		FROM votes
		WHERE voter_id = $1 AND target_id = $2 AND target_kind = $3
	`, voterID, targetID, kind).Scan(
		&vote.ID, &vote.VoterID, &vote.TargetID, &vote.Kind, &vote.Value, &vote.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &vote, nil
}

func (l *ledgerStore) InsertVote(ctx context.Context, voterID string, targetID int64, kind domain.TargetKind, value domain.VoteValue) error {
	_, err := l.tx.Exec(ctx, `
		INSERT INTO votes (voter_id, target_id, target_kind, value)
		VALUES ($1, $2, $3, $4)
	`, voterID, targetID, kind, value)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func (l *ledgerStore) UpdateVoteValue(ctx context.Context, voterID string, targetID int64, kind domain.TargetKind, value domain.VoteValue) error {
	// created_at is left untouched on a polarity flip.
	_, err := l.tx.Exec(ctx, `
		UPDATE votes SET value = $4
		WHERE voter_id = $1 AND target_id = $2 AND target_kind = $3
	`, voterID, targetID, kind, value)
	if err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}
	return nil
}

func (l *ledgerStore) DeleteVote(ctx context.Context, voterID string, targetID int64, kind domain.TargetKind) error {
	_, err := l.tx.Exec(ctx, `
		DELETE FROM votes
		WHERE voter_id = $1 AND target_id = $2 AND target_kind = $3
	`, voterID, targetID, kind)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

func (l *ledgerStore) ListVotes(ctx context.Context, targetID int64, kind domain.TargetKind) ([]domain.Vote, error) {
	rows, err := l.tx.Query(ctx, `
		SELECT id, voter_id, target_id, target_kind, value, created_at
		FROM votes
		WHERE target_id = $1 AND target_kind = $2
	`, targetID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	votes := make([]domain.Vote, 0)
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(
			&vote.ID, &vote.VoterID, &vote.TargetID, &vote.Kind, &vote.Value, &vote.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vote row: %w", err)
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vote rows: %w", err)
	}

	return votes, nil
}

func (l *ledgerStore) WriteTargetTotal(ctx context.Context, targetID int64, kind domain.TargetKind, total int) error {
	query := fmt.Sprintf("UPDATE %s SET votes = $2 WHERE id = $1", targetTable(kind))

	tag, err := l.tx.Exec(ctx, query, targetID, total)
	if err != nil {
		return fmt.Errorf("failed to write vote total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTargetNotFound
	}
	return nil
}
