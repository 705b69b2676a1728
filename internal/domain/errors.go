package domain

import "errors"

var (
	// ErrMissingQuery is returned when a procurement request has no query text
	ErrMissingQuery = errors.New("query is required")

	// ErrAIUnavailable is returned when the AI parsing backend cannot be reached
	ErrAIUnavailable = errors.New("AI parsing service unavailable")

	// ErrAIResponseInvalid is returned when the AI backend returns content that
	// cannot be decoded into a ParsedQuery
	ErrAIResponseInvalid = errors.New("AI response could not be parsed")
)
