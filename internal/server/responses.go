package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
)

// envelope is the wire format every successful response uses.
type envelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

type questionResponse struct {
	QuestionID  int64     `json:"question_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Tags        []string  `json:"tags"`
	Votes       int       `json:"votes"`
	AnswerCount int       `json:"answer_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func toQuestionResponse(q domain.QuestionSummary) questionResponse {
	return questionResponse{
		QuestionID:  q.ID,
		Title:       q.Title,
		Content:     q.Content,
		Author:      q.Author,
		Tags:        q.Tags,
		Votes:       q.Votes,
		AnswerCount: q.AnswerCount,
		CreatedAt:   q.CreatedAt,
	}
}

type answerResponse struct {
	AnswerID     int64                `json:"answer_id"`
	QuestionID   int64                `json:"question_id"`
	Content      string               `json:"content"`
	Author       string               `json:"author"`
	CodeExamples []domain.CodeExample `json:"code_examples"`
	Votes        int                  `json:"votes"`
	CreatedAt    time.Time            `json:"created_at"`
}

func toAnswerResponse(a domain.Answer) answerResponse {
	examples := a.CodeExamples
	if examples == nil {
		examples = []domain.CodeExample{}
	}
	return answerResponse{
		AnswerID:     a.ID,
		QuestionID:   a.QuestionID,
		Content:      a.Content,
		Author:       a.Author,
		CodeExamples: examples,
		Votes:        a.Votes,
		CreatedAt:    a.CreatedAt,
	}
}

type voteResponse struct {
	TargetID     int64   `json:"target_id"`
	TargetType   string  `json:"target_type"`
	VoteType     *string `json:"vote_type"`
	NewVoteTotal int     `json:"new_vote_total"`
	PreviousVote *string `json:"previous_vote"`
}

func toVoteResponse(r domain.VoteResult) voteResponse {
	return voteResponse{
		TargetID:     r.TargetID,
		TargetType:   string(r.Kind),
		VoteType:     voteLabel(r.Current),
		NewVoteTotal: r.NewTotal,
		PreviousVote: voteLabel(r.Previous),
	}
}

func voteLabel(v *domain.VoteValue) *string {
	if v == nil {
		return nil
	}
	label := v.Label()
	return &label
}
