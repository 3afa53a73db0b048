package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/xy-planning-network/reqbody/logger"
	"github.com/xy-planning-network/reqbody/parser"
)

// A FailureHandler writes the response for a request whose body failed to parse.
//
// err is the decode failure or nil.
// A FailureHandler is called at most once per request and never when parsing succeeds.
type FailureHandler interface {
	HandleFailure(w http.ResponseWriter, r *http.Request, err error)
}

// FailureHandlerFunc adapts an ordinary function to a FailureHandler.
type FailureHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// HandleFailure calls fn(w, r, err).
func (fn FailureHandlerFunc) HandleFailure(w http.ResponseWriter, r *http.Request, err error) {
	fn(w, r, err)
}

// BadRequestHandler responds with http.StatusBadRequest.
//
// The body of the response is the status text.
// When err is not nil, the body continues with a newline and the error message.
type BadRequestHandler struct {
	logger     logger.Logger
	hideDetail bool
}

// NewBadRequestHandler constructs a *BadRequestHandler
// that logs each failure at Warn through l.
// l may be nil.
func NewBadRequestHandler(l logger.Logger) *BadRequestHandler {
	return &BadRequestHandler{logger: l}
}

// WithoutDetail returns a copy of h that leaves the error message out of the response body.
func (h BadRequestHandler) WithoutDetail() *BadRequestHandler {
	h.hideDetail = true
	return &h
}

// HandleFailure writes the response.
func (h BadRequestHandler) HandleFailure(w http.ResponseWriter, r *http.Request, err error) {
	if h.logger != nil {
		h.logger.Warn("bad request body", &logger.LogContext{Caller: logger.CurrentCaller(), Error: err, Request: r})
	}

	body := http.StatusText(http.StatusBadRequest)
	if err != nil && !h.hideDetail {
		body += "\n" + failureMessage(err)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusBadRequest)
	io.WriteString(w, body)
}

// failureMessage prefers the message of a *parser.DecodeError in err's chain.
func failureMessage(err error) string {
	var de *parser.DecodeError
	if errors.As(err, &de) {
		return de.Msg
	}

	return err.Error()
}
