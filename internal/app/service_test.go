package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

type stubQuestionRepo struct {
	questions map[int64]*domain.Question
	listed    []domain.QuestionSummary
	total     int
	nextID    int64

	lastFilter domain.QuestionFilter
	createErr  error
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{questions: make(map[int64]*domain.Question)}
}

func (r *stubQuestionRepo) Create(ctx context.Context, q domain.NewQuestion) (*domain.Question, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	created := &domain.Question{
		ID:        r.nextID,
		Title:     q.Title,
		Content:   q.Content,
		Author:    q.Author,
		Tags:      q.Tags,
		CreatedAt: time.Now(),
	}
	r.questions[created.ID] = created
	return created, nil
}

func (r *stubQuestionRepo) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (r *stubQuestionRepo) List(ctx context.Context, f domain.QuestionFilter) ([]domain.QuestionSummary, error) {
	r.lastFilter = f
	return r.listed, nil
}

func (r *stubQuestionRepo) Count(ctx context.Context, f domain.QuestionFilter) (int, error) {
	return r.total, nil
}

type stubAnswerRepo struct {
	answers map[int64][]domain.Answer
	nextID  int64
}

func newStubAnswerRepo() *stubAnswerRepo {
	return &stubAnswerRepo{answers: make(map[int64][]domain.Answer)}
}

func (r *stubAnswerRepo) Create(ctx context.Context, a domain.NewAnswer) (*domain.Answer, error) {
	r.nextID++
	created := domain.Answer{
		ID:           r.nextID,
		QuestionID:   a.QuestionID,
		Content:      a.Content,
		Author:       a.Author,
		CodeExamples: a.CodeExamples,
		CreatedAt:    time.Now(),
	}
	r.answers[a.QuestionID] = append(r.answers[a.QuestionID], created)
	return &created, nil
}

func (r *stubAnswerRepo) GetByID(ctx context.Context, id int64) (*domain.Answer, error) {
	for _, list := range r.answers {
		for _, a := range list {
			if a.ID == id {
				return &a, nil
			}
		}
	}
	return nil, domain.ErrAnswerNotFound
}

func (r *stubAnswerRepo) ListByQuestion(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	return r.answers[questionID], nil
}

type stubVoteService struct {
	lastReq domain.VoteRequest
	result  *domain.VoteResult
	err     error
}

func (s *stubVoteService) Vote(ctx context.Context, req domain.VoteRequest) (*domain.VoteResult, error) {
	s.lastReq = req
	return s.result, s.err
}

func TestCreateQuestion(t *testing.T) {
	questions := newStubQuestionRepo()
	svc := NewService(questions, newStubAnswerRepo(), &stubVoteService{})

	created, err := svc.CreateQuestion(context.Background(), domain.NewQuestion{
		Title:   "How do I use channels?",
		Content: "I keep deadlocking when sending on an unbuffered channel.",
		Author:  "alice",
		Tags:    []string{"go", "concurrency"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "alice", created.Author)
}

func TestCreateQuestionPropagatesError(t *testing.T) {
	questions := newStubQuestionRepo()
	questions.createErr = errors.New("connection refused")
	svc := NewService(questions, newStubAnswerRepo(), &stubVoteService{})

	_, err := svc.CreateQuestion(context.Background(), domain.NewQuestion{Title: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create question")
}

func TestListQuestionsPagination(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		offset  int
		total   int
		hasMore bool
	}{
		{"first page of many", 10, 0, 25, true},
		{"middle page", 10, 10, 25, true},
		{"last page", 10, 20, 25, false},
		{"exact fit", 10, 0, 10, false},
		{"empty", 10, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := newStubQuestionRepo()
			questions.total = tt.total
			svc := NewService(questions, newStubAnswerRepo(), &stubVoteService{})

			page, err := svc.ListQuestions(context.Background(), domain.QuestionFilter{
				Limit:  tt.limit,
				Offset: tt.offset,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.hasMore, page.HasMore)
		})
	}
}

func TestCreateAnswer(t *testing.T) {
	questions := newStubQuestionRepo()
	answers := newStubAnswerRepo()
	svc := NewService(questions, answers, &stubVoteService{})

	q, err := questions.Create(context.Background(), domain.NewQuestion{Title: "t"})
	require.NoError(t, err)

	created, err := svc.CreateAnswer(context.Background(), domain.NewAnswer{
		QuestionID: q.ID,
		Content:    "Use a buffered channel or a second goroutine.",
		Author:     "bob",
	})
	require.NoError(t, err)
	assert.Equal(t, q.ID, created.QuestionID)
}

func TestCreateAnswerUnknownQuestion(t *testing.T) {
	svc := NewService(newStubQuestionRepo(), newStubAnswerRepo(), &stubVoteService{})

	_, err := svc.CreateAnswer(context.Background(), domain.NewAnswer{QuestionID: 42})
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func TestListAnswersUnknownQuestion(t *testing.T) {
	svc := NewService(newStubQuestionRepo(), newStubAnswerRepo(), &stubVoteService{})

	_, err := svc.ListAnswers(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func TestListAnswersEmpty(t *testing.T) {
	questions := newStubQuestionRepo()
	svc := NewService(questions, newStubAnswerRepo(), &stubVoteService{})

	q, err := questions.Create(context.Background(), domain.NewQuestion{Title: "t"})
	require.NoError(t, err)

	answers, err := svc.ListAnswers(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestVoteDelegates(t *testing.T) {
	votes := &stubVoteService{result: &domain.VoteResult{NewTotal: 3}}
	svc := NewService(newStubQuestionRepo(), newStubAnswerRepo(), votes)

	req := domain.VoteRequest{VoterID: "alice", TargetID: 1, Kind: domain.TargetQuestion, Value: domain.Upvote}
	result, err := svc.Vote(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, result.NewTotal)
	assert.Equal(t, req, votes.lastReq)
}
