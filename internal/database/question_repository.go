package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

// QuestionRepo implements domain.QuestionRepository backed by PostgreSQL.
type QuestionRepo struct {
	pool *pgxpool.Pool
}

func NewQuestionRepo(pool *pgxpool.Pool) *QuestionRepo {
	return &QuestionRepo{pool: pool}
}

func (r *QuestionRepo) Create(ctx context.Context, q domain.NewQuestion) (*domain.Question, error) {
	question := domain.Question{
		Title:   q.Title,
		Content: q.Content,
		Author:  q.Author,
		Tags:    q.Tags,
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO questions (title, content, author, tags)
		VALUES ($1, $2, $3, $4)
		RETURNING id, votes, created_at
	`, q.Title, q.Content, q.Author, joinTags(q.Tags)).Scan(
		&question.ID, &question.Votes, &question.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert question: %w", err)
	}

	return &question, nil
}

func (r *QuestionRepo) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	var question domain.Question
	var tags string

	err := r.pool.QueryRow(ctx, `
		SELECT id, title, content, author, tags, votes, created_at
		FROM questions
		WHERE id = $1
	`, id).Scan(
		&question.ID, &question.Title, &question.Content, &question.Author,
		&tags, &question.Votes, &question.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrQuestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	question.Tags = splitTags(tags)
	return &question, nil
}

func (r *QuestionRepo) List(ctx context.Context, f domain.QuestionFilter) ([]domain.QuestionSummary, error) {
	where, args := filterClause(f)
	args = append(args, f.Limit, f.Offset)

	query := fmt.Sprintf(`
		SELECT q.id, q.title, q.content, q.author, q.tags, q.votes, q.created_at,
		       COUNT(a.id) AS answer_count
		FROM questions q
		LEFT JOIN answers a ON a.question_id = q.id
		%s
		GROUP BY q.id
		ORDER BY q.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.QuestionSummary, 0)
	for rows.Next() {
		var s domain.QuestionSummary
		var tags string
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Content, &s.Author,
			&tags, &s.Votes, &s.CreatedAt, &s.AnswerCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		s.Tags = splitTags(tags)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read question rows: %w", err)
	}

	return summaries, nil
}

func (r *QuestionRepo) Count(ctx context.Context, f domain.QuestionFilter) (int, error) {
	where, args := filterClause(f)

	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM questions q "+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// filterClause builds the WHERE clause shared by List and Count. Language and
// tags both match by containment against the stored tag string.
func filterClause(f domain.QuestionFilter) (string, []any) {
	var conditions []string
	var args []any

	appendContains := func(term string) {
		args = append(args, "%"+strings.ToLower(term)+"%")
		conditions = append(conditions, fmt.Sprintf("q.tags LIKE $%d", len(args)))
	}

	if f.Language != "" {
		appendContains(f.Language)
	}
	for _, tag := range f.Tags {
		appendContains(tag)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
