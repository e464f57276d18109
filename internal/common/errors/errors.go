// Package errors provides standardized error handling for the consultation
// ranking engine.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Fatal: the relational store is the backbone of candidate generation,
	// nothing meaningful can be answered without it.
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"

	// Non-fatal: a relevance source (text or vector index) failed or timed
	// out; its contribution degrades to zero.
	ErrCodeSourceDegraded ErrorCode = "SOURCE_DEGRADED"

	// The query itself is malformed.
	ErrCodeInvalidQuery ErrorCode = "INVALID_QUERY"

	// Embedding service failure; degrades the vector source only.
	ErrCodeEmbeddingFailed ErrorCode = "EMBEDDING_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewStoreUnavailableError creates the fatal relational-store error. The
// caller aborts the query and surfaces the user apology.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Catalog store unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSourceDegradedError creates the non-fatal degraded-source error. It is
// absorbed by the engine, never returned to callers.
func NewSourceDegradedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceDegraded,
		Message:   fmt.Sprintf("Relevance source '%s' degraded", source),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidQueryError creates a non-retryable validation error.
func NewInvalidQueryError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQuery,
		Message:   "Query validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingFailedError creates the embedding-service error. Treated the
// same as a degraded vector source.
func NewEmbeddingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingFailed,
		Message:   "Query embedding failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. User-Facing Messages
// ==========================

// User-facing reply texts. The empty-result cases live on models.Outcome;
// these cover the error paths. Kept here so every call site says the same
// thing.
const (
	UserMsgStoreUnavailable = "Sorry, something went wrong on our side. Please try again in a moment."
	UserMsgInvalidQuery     = "I could not make sense of those requirements. Could you rephrase them?"
)

// UserMessage maps an error to the sentence the dialogue layer should show.
func UserMessage(err error) string {
	var se *StandardError
	if errors.As(err, &se) && se.Code == ErrCodeInvalidQuery {
		return UserMsgInvalidQuery
	}
	return UserMsgStoreUnavailable
}

// ==========================
// 4. Utility Functions
// ==========================

// IsFatal reports whether err must abort the query rather than degrade.
func IsFatal(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code == ErrCodeStoreUnavailable
	}
	return true
}

// CodeOf extracts the error code, or "UNKNOWN" for foreign errors.
func CodeOf(err error) string {
	var se *StandardError
	if errors.As(err, &se) {
		return string(se.Code)
	}
	return "UNKNOWN"
}
