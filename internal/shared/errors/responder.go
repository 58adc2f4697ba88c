package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for problem documents.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper claims an error and describes it as a problem.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem documents. Mappers are consulted in order before
// the fallback, which passes ProblemDetail errors through and turns anything
// else into a 500 without leaking its message.
type Responder struct {
	// BaseURI is prepended to relative problem types.
	BaseURI string
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with the given error mappers.
func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, mappers: mappers}
}

// AddMapper appends a mapper to the chain.
func (r *Responder) AddMapper(mapper ErrorMapper) {
	if mapper != nil {
		r.mappers = append(r.mappers, mapper)
	}
}

// Respond writes the problem with the problem+json content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError maps err and responds.
func (r *Responder) RespondError(c *gin.Context, err error) {
	r.Respond(c, r.Map(err))
}

// Map resolves err to a problem without writing it.
func (r *Responder) Map(err error) ProblemDetail {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	return ErrInternal.WithDetail("unexpected server error")
}

// HTTPStatusFromError extracts the status of a ProblemDetail error, defaulting to 500.
func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
