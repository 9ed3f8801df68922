// Package mcp implements the Model Context Protocol server for
// resultsmcp, exposing tournament queries and search as tools and raw
// records as resources.
package mcp

import (
	"context"
	"errors"
	"fmt"

	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
)

// JSON-RPC error codes used on the protocol surface.
const (
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
	ErrCodeMethodNotFound = -32601

	// ErrCodeNotFound covers missing teams, events, and placements.
	// Missing tournaments never reach the protocol layer: they become
	// normal "not found" answers.
	ErrCodeNotFound = -32001

	// ErrCodeFetchFailed indicates the external catalog was unreachable.
	ErrCodeFetchFailed = -32002

	// ErrCodeBadRecord indicates the stored record failed to parse or
	// interpret consistently.
	ErrCodeBadRecord = -32003
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts internal errors to MCP protocol errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var re *rerrors.ResultsError
	if errors.As(err, &re) {
		message := re.Message
		if re.Suggestion != "" {
			message = fmt.Sprintf("%s %s", re.Message, re.Suggestion)
		}
		switch re.Category {
		case rerrors.CategoryValidation:
			return &MCPError{Code: ErrCodeInvalidParams, Message: message}
		case rerrors.CategoryNotFound:
			return &MCPError{Code: ErrCodeNotFound, Message: message}
		case rerrors.CategoryFetch:
			return &MCPError{Code: ErrCodeFetchFailed, Message: message}
		case rerrors.CategoryParse, rerrors.CategoryConsistency:
			return &MCPError{Code: ErrCodeBadRecord, Message: message}
		default:
			return &MCPError{Code: ErrCodeInternalError, Message: message}
		}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeInternalError, Message: "Request timed out."}
	case errors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeInternalError, Message: "Request was canceled."}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
	}
}

// NewInvalidParamsError creates an error for invalid parameters.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
}

// NewResourceNotFoundError creates an error for unknown resources.
func NewResourceNotFoundError(uri string) *MCPError {
	return &MCPError{Code: ErrCodeMethodNotFound, Message: fmt.Sprintf("Resource '%s' not found.", uri)}
}
