// Package errors renders API failures as RFC 7807 problem documents.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem document.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	// Detail explains this occurrence, usually the wrapped service error.
	Detail string `json:"detail,omitempty"`
	// Instance defaults to the request path.
	Instance string `json:"instance,omitempty"`
	// Code is a stable machine-readable reason, e.g. "empty_cart".
	Code       string         `json:"code,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithCode returns a copy tagged with a machine-readable reason.
func (p ProblemDetail) WithCode(code string) ProblemDetail {
	p.Code = code
	return p
}

// WithInstance returns a copy with the given instance URI.
func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithExtension returns a copy with an additional extension property.
// The extension map is copied so templates are never mutated.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// Problem type URI references.
const (
	TypeValidation   = "/problems/validation-error"
	TypeNotFound     = "/problems/not-found"
	TypeConflict     = "/problems/conflict"
	TypeInternal     = "/problems/internal-error"
	TypeUnauthorized = "/problems/unauthorized"
	TypeForbidden    = "/problems/forbidden"
	TypeBadRequest   = "/problems/bad-request"
)

func template(typ, title string, status int) ProblemDetail {
	return ProblemDetail{Type: typ, Title: title, Status: status}
}

var (
	// ErrValidation is a well-formed request that breaks a business rule.
	ErrValidation = template(TypeValidation, "Validation Error", http.StatusBadRequest)
	// ErrBadRequest is a request that could not be parsed or bound.
	ErrBadRequest   = template(TypeBadRequest, "Bad Request", http.StatusBadRequest)
	ErrNotFound     = template(TypeNotFound, "Resource Not Found", http.StatusNotFound)
	ErrConflict     = template(TypeConflict, "Conflict", http.StatusConflict)
	ErrUnauthorized = template(TypeUnauthorized, "Unauthorized", http.StatusUnauthorized)
	ErrForbidden    = template(TypeForbidden, "Forbidden", http.StatusForbidden)
	ErrInternal     = template(TypeInternal, "Internal Server Error", http.StatusInternalServerError)
)

// NewValidationProblem reports field-level failures.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	return ErrValidation.WithExtension("fields", fieldErrors)
}

// NewNotFoundProblem names the missing resource.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s %v not found", resourceType, identifier)).
		WithExtension("resourceType", resourceType)
}
