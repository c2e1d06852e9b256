package domain

import (
	"context"
	"time"
)

// Question is a posted question. Votes is the cached aggregate total,
// derived from the vote ledger and owned by the voting core.
type Question struct {
	ID        int64
	Title     string
	Content   string
	Author    string
	Tags      []string
	Votes     int
	CreatedAt time.Time
}

// QuestionSummary is a question enriched with its answer count for listings.
type QuestionSummary struct {
	Question
	AnswerCount int
}

// NewQuestion bundles the validated fields of a question to create.
type NewQuestion struct {
	Title   string
	Content string
	Author  string
	Tags    []string
}

// QuestionFilter selects questions for listing. Tags match by containment;
// Language is folded into tags at the storage level.
type QuestionFilter struct {
	Language string
	Tags     []string
	Limit    int
	Offset   int
}

// QuestionPage is one page of a filtered question listing.
type QuestionPage struct {
	Questions []QuestionSummary
	Total     int
	HasMore   bool
}

type QuestionRepository interface {
	Create(ctx context.Context, q NewQuestion) (*Question, error)
	// GetByID returns ErrQuestionNotFound if no such question exists.
	GetByID(ctx context.Context, id int64) (*Question, error)
	List(ctx context.Context, f QuestionFilter) ([]QuestionSummary, error)
	Count(ctx context.Context, f QuestionFilter) (int, error)
}

// QuestionService handles question creation and filtered listing.
type QuestionService interface {
	CreateQuestion(ctx context.Context, q NewQuestion) (*Question, error)
	ListQuestions(ctx context.Context, f QuestionFilter) (*QuestionPage, error)
}
