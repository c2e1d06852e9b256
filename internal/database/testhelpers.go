package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

// CreateTestQuestion inserts a question with sensible defaults for testing.
func CreateTestQuestion(t *testing.T, pool *pgxpool.Pool, title string) *domain.Question {
	t.Helper()

	repo := NewQuestionRepo(pool)
	question, err := repo.Create(context.Background(), domain.NewQuestion{
		Title:   title,
		Content: "This is test question content long enough to be realistic.",
		Author:  "testuser",
		Tags:    []string{"go", "testing"},
	})
	require.NoError(t, err)
	require.NotZero(t, question.ID)

	return question
}

// CreateTestAnswer inserts an answer to the given question for testing.
func CreateTestAnswer(t *testing.T, pool *pgxpool.Pool, questionID int64) *domain.Answer {
	t.Helper()

	repo := NewAnswerRepo(pool)
	answer, err := repo.Create(context.Background(), domain.NewAnswer{
		QuestionID: questionID,
		Content:    "This is a test answer with enough content to pass checks.",
		Author:     "testuser",
	})
	require.NoError(t, err)
	require.NotZero(t, answer.ID)

	return answer
}
