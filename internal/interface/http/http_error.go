package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/lastactive/internal/interface/screen"
	"github.com/yanqian/lastactive/internal/platform/dispatch"
	"github.com/yanqian/lastactive/internal/screens/questionslist"
	apperrors "github.com/yanqian/lastactive/pkg/errors"
)

const (
	codeScreenUnavailable = "screen_unavailable"
	codeScreenFailed      = "screen_failed"
	codeRateLimited       = "rate_limit_exceeded"
)

// HTTPError is an error response: status, a stable code and a message for the client.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// screenError maps a screen host failure onto a response.
func screenError(err error) *HTTPError {
	switch {
	case apperrors.IsCode(err, screen.CodeQuestionNotFound):
		return NewHTTPError(http.StatusNotFound, screen.CodeQuestionNotFound, err.Error(), err)
	case apperrors.IsCode(err, questionslist.CodeViewNotBound):
		return NewHTTPError(http.StatusInternalServerError, codeScreenUnavailable, err.Error(), err)
	case errors.Is(err, dispatch.ErrLoopStopped):
		return NewHTTPError(http.StatusServiceUnavailable, codeScreenUnavailable, "screen is shutting down", err)
	default:
		return NewHTTPError(http.StatusInternalServerError, codeScreenFailed, "screen request failed", err)
	}
}

// asHTTPError falls back to screenError for anything a handler did not classify.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return screenError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
