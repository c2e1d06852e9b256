package domain

import (
	"context"
	"time"
)

// CodeExample is a fenced code snippet attached to an answer.
type CodeExample struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Answer is a posted answer. Votes is the cached aggregate total, derived
// from the vote ledger and owned by the voting core.
type Answer struct {
	ID           int64
	QuestionID   int64
	Content      string
	Author       string
	CodeExamples []CodeExample
	Votes        int
	CreatedAt    time.Time
}

// NewAnswer bundles the validated fields of an answer to create.
type NewAnswer struct {
	QuestionID   int64
	Content      string
	Author       string
	CodeExamples []CodeExample
}

type AnswerRepository interface {
	Create(ctx context.Context, a NewAnswer) (*Answer, error)
	// GetByID returns ErrAnswerNotFound if no such answer exists.
	GetByID(ctx context.Context, id int64) (*Answer, error)
	// ListByQuestion returns answers sorted by votes descending, then
	// creation time ascending.
	ListByQuestion(ctx context.Context, questionID int64) ([]Answer, error)
}

// AnswerService handles answer creation and retrieval. Both operations
// verify the parent question exists.
type AnswerService interface {
	CreateAnswer(ctx context.Context, a NewAnswer) (*Answer, error)
	ListAnswers(ctx context.Context, questionID int64) ([]Answer, error)
}
