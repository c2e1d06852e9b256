package domain

import "errors"

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrTargetNotFound   = errors.New("vote target not found")
	ErrVoteNotFound     = errors.New("vote not found")

	// ErrConcurrencyConflict marks a storage transaction aborted by a
	// concurrent writer. The composed vote flow retries on it.
	ErrConcurrencyConflict = errors.New("concurrent vote conflict")
)
