package server

import (
	"context"
	"errors"

	"github.com/venkateshtata/context-overflow-mcp/internal/config"
	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

type mockAppService struct {
	createQuestionFn func(ctx context.Context, q domain.NewQuestion) (*domain.Question, error)
	listQuestionsFn  func(ctx context.Context, f domain.QuestionFilter) (*domain.QuestionPage, error)
	createAnswerFn   func(ctx context.Context, a domain.NewAnswer) (*domain.Answer, error)
	listAnswersFn    func(ctx context.Context, questionID int64) ([]domain.Answer, error)
	voteFn           func(ctx context.Context, req domain.VoteRequest) (*domain.VoteResult, error)
}

var errNotStubbed = errors.New("not stubbed")

func (m *mockAppService) CreateQuestion(ctx context.Context, q domain.NewQuestion) (*domain.Question, error) {
	if m.createQuestionFn == nil {
		return nil, errNotStubbed
	}
	return m.createQuestionFn(ctx, q)
}

func (m *mockAppService) ListQuestions(ctx context.Context, f domain.QuestionFilter) (*domain.QuestionPage, error) {
	if m.listQuestionsFn == nil {
		return nil, errNotStubbed
	}
	return m.listQuestionsFn(ctx, f)
}

func (m *mockAppService) CreateAnswer(ctx context.Context, a domain.NewAnswer) (*domain.Answer, error) {
	if m.createAnswerFn == nil {
		return nil, errNotStubbed
	}
	return m.createAnswerFn(ctx, a)
}

func (m *mockAppService) ListAnswers(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	if m.listAnswersFn == nil {
		return nil, errNotStubbed
	}
	return m.listAnswersFn(ctx, questionID)
}

func (m *mockAppService) Vote(ctx context.Context, req domain.VoteRequest) (*domain.VoteResult, error) {
	if m.voteFn == nil {
		return nil, errNotStubbed
	}
	return m.voteFn(ctx, req)
}

type mockVoteLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (m *mockVoteLimiter) CheckVoteRateLimit(ctx context.Context, voterID string) (bool, error) {
	m.calls++
	return m.allowed, m.err
}

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Ping(ctx context.Context) error {
	return m.err
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:            "test",
		Port:              "8080",
		LogLevel:          "info",
		LogFormat:         "text",
		VoteRatePerMinute: 60,
		VoteBurst:         10,
		HTTPRatePerSecond: 1000,
		HTTPBurst:         1000,
	}
}

func newTestServer(app domain.AppService, limiter domain.VoteRateLimiter, db, redis healthChecker) *Server {
	return NewServer(testConfig(), app, limiter, db, redis)
}
