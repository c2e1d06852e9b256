package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
	"github.com/venkateshtata/context-overflow-mcp/internal/metrics"
)

// Service implements domain.AppService on top of the repositories and the
// voting service.
type Service struct {
	questions domain.QuestionRepository
	answers   domain.AnswerRepository
	votes     domain.VoteService
}

var _ domain.AppService = (*Service)(nil)

func NewService(questions domain.QuestionRepository, answers domain.AnswerRepository, votes domain.VoteService) *Service {
	return &Service{
		questions: questions,
		answers:   answers,
		votes:     votes,
	}
}

func (s *Service) CreateQuestion(ctx context.Context, q domain.NewQuestion) (*domain.Question, error) {
	created, err := s.questions.Create(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	metrics.QuestionsCreatedTotal.Inc()
	slog.InfoContext(ctx, "question created",
		"question_id", created.ID,
		"author", created.Author,
		"tags", created.Tags,
	)
	return created, nil
}

func (s *Service) ListQuestions(ctx context.Context, f domain.QuestionFilter) (*domain.QuestionPage, error) {
	questions, err := s.questions.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	total, err := s.questions.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	return &domain.QuestionPage{
		Questions: questions,
		Total:     total,
		HasMore:   f.Offset+f.Limit < total,
	}, nil
}

// CreateAnswer verifies the parent question exists before inserting, so a
// missing question surfaces as ErrQuestionNotFound rather than a foreign key
// violation.
func (s *Service) CreateAnswer(ctx context.Context, a domain.NewAnswer) (*domain.Answer, error) {
	if _, err := s.questions.GetByID(ctx, a.QuestionID); err != nil {
		return nil, err
	}

	created, err := s.answers.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}

	metrics.AnswersCreatedTotal.Inc()
	slog.InfoContext(ctx, "answer created",
		"answer_id", created.ID,
		"question_id", created.QuestionID,
		"author", created.Author,
	)
	return created, nil
}

func (s *Service) ListAnswers(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}

	answers, err := s.answers.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}

func (s *Service) Vote(ctx context.Context, req domain.VoteRequest) (*domain.VoteResult, error) {
	return s.votes.Vote(ctx, req)
}
