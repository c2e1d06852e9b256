package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

// AnswerRepo implements domain.AnswerRepository backed by PostgreSQL.
// Code examples are stored as a JSONB array.
type AnswerRepo struct {
	pool *pgxpool.Pool
}

func NewAnswerRepo(pool *pgxpool.Pool) *AnswerRepo {
	return &AnswerRepo{pool: pool}
}

func (r *AnswerRepo) Create(ctx context.Context, a domain.NewAnswer) (*domain.Answer, error) {
	examples, err := encodeCodeExamples(a.CodeExamples)
	if err != nil {
		return nil, err
	}

	answer := domain.Answer{
		QuestionID:   a.QuestionID,
		Content:      a.Content,
		Author:       a.Author,
		CodeExamples: a.CodeExamples,
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO answers (question_id, content, author, code_examples)
		VALUES ($1, $2, $3, $4)
		RETURNING id, votes, created_at
	`, a.QuestionID, a.Content, a.Author, examples).Scan(
		&answer.ID, &answer.Votes, &answer.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert answer: %w", err)
	}

	return &answer, nil
}

func (r *AnswerRepo) GetByID(ctx context.Context, id int64) (*domain.Answer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, question_id, content, author, code_examples, votes, created_at
		FROM answers
		WHERE id = $1
	`, id)

	answer, err := scanAnswer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAnswerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	return answer, nil
}

func (r *AnswerRepo) ListByQuestion(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, question_id, content, author, code_examples, votes, created_at
		FROM answers
		WHERE question_id = $1
		ORDER BY votes DESC, created_at ASC
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	answers := make([]domain.Answer, 0)
	for rows.Next() {
		answer, err := scanAnswer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer row: %w", err)
		}
		answers = append(answers, *answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read answer rows: %w", err)
	}

	return answers, nil
}

func scanAnswer(row pgx.Row) (*domain.Answer, error) {
	var answer domain.Answer
	var examples []byte

	err := row.Scan(
		&answer.ID, &answer.QuestionID, &answer.Content, &answer.Author,
		&examples, &answer.Votes, &answer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	answer.CodeExamples = decodeCodeExamples(examples)
	return &answer, nil
}

func encodeCodeExamples(examples []domain.CodeExample) ([]byte, error) {
	if len(examples) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(examples)
	if err != nil {
		return nil, fmt.Errorf("failed to encode code examples: %w", err)
	}
	return data, nil
}

func decodeCodeExamples(data []byte) []domain.CodeExample {
	if len(data) == 0 {
		return []domain.CodeExample{}
	}
	var examples []domain.CodeExample
	if err := json.Unmarshal(data, &examples); err != nil {
		// Malformed stored data should not fail the read path.
		return []domain.CodeExample{}
	}
	return examples
}
