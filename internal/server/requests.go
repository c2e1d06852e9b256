package server

import (
	"strings"
	"unicode/utf8"

	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
	apperrors "github.com/venkateshtata/context-overflow-mcp/internal/errors"
)

const (
	titleMinLen       = 10
	titleMaxLen       = 200
	questionMinLen    = 20
	questionMaxLen    = 5000
	answerMinLen      = 20
	answerMaxLen      = 10000
	authorMinLen      = 2
	authorMaxLen      = 100
	tagMaxLen         = 30
	maxTags           = 10
	languageMinLen    = 2
	languageMaxLen    = 50
	maxCodeExamples   = 5
	codeMaxLen        = 10000
	voterIDMaxLen     = 100
	defaultListLimit  = 10
	maxListLimit      = 100
	defaultAuthorName = "anonymous"
)

type postQuestionRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Language string   `json:"language"`
	Author   string   `json:"author"`
}

func (r *postQuestionRequest) validate() (domain.NewQuestion, error) {
	title := strings.TrimSpace(r.Title)
	if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
		return domain.NewQuestion{}, apperrors.ValidationError("title must be 10-200 characters").
			WithContext("field", "title")
	}

	if n := utf8.RuneCountInString(r.Content); n < questionMinLen || n > questionMaxLen {
		return domain.NewQuestion{}, apperrors.ValidationError("content must be 20-5000 characters").
			WithContext("field", "content")
	}

	language := strings.ToLower(strings.TrimSpace(r.Language))
	if n := utf8.RuneCountInString(language); n < languageMinLen || n > languageMaxLen {
		return domain.NewQuestion{}, apperrors.ValidationError("language must be 2-50 characters").
			WithContext("field", "language")
	}

	tags, err := normalizeTags(r.Tags)
	if err != nil {
		return domain.NewQuestion{}, err
	}
	// Language is searchable as a tag
	if !containsTag(tags, language) {
		tags = append(tags, language)
	}

	author, err := normalizeAuthor(r.Author)
	if err != nil {
		return domain.NewQuestion{}, err
	}

	return domain.NewQuestion{
		Title:   title,
		Content: r.Content,
		Author:  author,
		Tags:    tags,
	}, nil
}

type postAnswerRequest struct {
	QuestionID   int64                `json:"question_id"`
	Content      string               `json:"content"`
	Author       string               `json:"author"`
	CodeExamples []domain.CodeExample `json:"code_examples"`
}

func (r *postAnswerRequest) validate() (domain.NewAnswer, error) {
	if r.QuestionID <= 0 {
		return domain.NewAnswer{}, apperrors.ValidationError("question_id must be positive").
			WithContext("field", "question_id")
	}

	if n := utf8.RuneCountInString(r.Content); n < answerMinLen || n > answerMaxLen {
		return domain.NewAnswer{}, apperrors.ValidationError("content must be 20-10000 characters").
			WithContext("field", "content")
	}

	author := strings.TrimSpace(r.Author)
	if n := utf8.RuneCountInString(author); n < authorMinLen || n > authorMaxLen {
		return domain.NewAnswer{}, apperrors.ValidationError("author must be 2-100 characters").
			WithContext("field", "author")
	}

	if len(r.CodeExamples) > maxCodeExamples {
		return domain.NewAnswer{}, apperrors.ValidationError("at most 5 code examples allowed").
			WithContext("field", "code_examples")
	}
	for i, ex := range r.CodeExamples {
		if n := utf8.RuneCountInString(strings.TrimSpace(ex.Language)); n < languageMinLen || n > languageMaxLen {
			return domain.NewAnswer{}, apperrors.ValidationError("code example language must be 2-50 characters").
				WithContext("field", "code_examples").
				WithContext("index", i)
		}
		if n := utf8.RuneCountInString(ex.Code); n < 1 || n > codeMaxLen {
			return domain.NewAnswer{}, apperrors.ValidationError("code example code must be 1-10000 characters").
				WithContext("field", "code_examples").
				WithContext("index", i)
		}
	}

	return domain.NewAnswer{
		QuestionID:   r.QuestionID,
		Content:      r.Content,
		Author:       author,
		CodeExamples: r.CodeExamples,
	}, nil
}

type voteRequest struct {
	TargetID   int64  `json:"target_id"`
	TargetType string `json:"target_type"`
	VoteType   string `json:"vote_type"`
	UserID     string `json:"user_id"`
}

func (r *voteRequest) validate() (domain.VoteRequest, error) {
	if r.TargetID <= 0 {
		return domain.VoteRequest{}, apperrors.ValidationError("target_id must be positive").
			WithContext("field", "target_id")
	}

	kind, ok := domain.ParseTargetKind(r.TargetType)
	if !ok {
		return domain.VoteRequest{}, apperrors.ValidationError("target_type must be 'question' or 'answer'").
			WithContext("field", "target_type").
			WithContext("value", r.TargetType)
	}

	value, ok := domain.ParseVoteValue(r.VoteType)
	if !ok {
		return domain.VoteRequest{}, apperrors.ValidationError("vote_type must be 'upvote' or 'downvote'").
			WithContext("field", "vote_type").
			WithContext("value", r.VoteType)
	}

	voterID := strings.TrimSpace(r.UserID)
	if n := utf8.RuneCountInString(voterID); n < 1 || n > voterIDMaxLen {
		return domain.VoteRequest{}, apperrors.ValidationError("user_id must be 1-100 characters").
			WithContext("field", "user_id")
	}

	return domain.VoteRequest{
		VoterID:  voterID,
		TargetID: r.TargetID,
		Kind:     kind,
		Value:    value,
	}, nil
}

func normalizeTags(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, apperrors.ValidationError("at least one tag is required").WithContext("field", "tags")
	}
	if len(raw) > maxTags {
		return nil, apperrors.ValidationError("at most 10 tags allowed").WithContext("field", "tags")
	}

	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag == "" || utf8.RuneCountInString(tag) > tagMaxLen {
			return nil, apperrors.ValidationError("tags must be 1-30 characters").
				WithContext("field", "tags").
				WithContext("value", t)
		}
		if !containsTag(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func normalizeAuthor(raw string) (string, error) {
	author := strings.TrimSpace(raw)
	if author == "" {
		return defaultAuthorName, nil
	}
	if n := utf8.RuneCountInString(author); n < authorMinLen || n > authorMaxLen {
		return "", apperrors.ValidationError("author must be 2-100 characters").
			WithContext("field", "author")
	}
	return author, nil
}
