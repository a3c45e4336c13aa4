package http

import (
	"errors"
	"net/http"

	"runplanner/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed API call.
type Error struct {
	Code    int       `json:"code"`
	Kind    errs.Kind `json:"kind"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
}

var kindResponses = map[errs.Kind]struct {
	status  int
	message string
}{
	errs.KindNotFound:        {http.StatusNotFound, "The order, run or assignment does not exist"},
	errs.KindAlreadyAssigned: {http.StatusConflict, "The order is already assigned to a run"},
	errs.KindInvalidState:    {http.StatusUnprocessableEntity, "The change is not allowed in the current state"},
	errs.KindValidation:      {http.StatusBadRequest, "The request is invalid"},
	errs.KindInternal:        {http.StatusInternalServerError, "The request could not be processed"},
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind errs.Kind) int {
	if r, ok := kindResponses[kind]; ok {
		return r.status
	}
	return http.StatusInternalServerError
}

// fail writes err as an Error body. Internal errors are logged and their
// details withheld from the client.
func (s *Server) fail(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	if kind == "" {
		kind = errs.KindInternal
	}
	r := kindResponses[kind]

	body := Error{Code: r.status, Kind: kind, Message: r.message}
	if kind == errs.KindInternal {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	} else {
		body.Detail = err.Error()
	}
	return c.JSON(r.status, body)
}

// invalid wraps a binding failure so it is reported as a validation error.
func invalid(field string, err error) error {
	var required *errs.ValueIsRequiredError
	if errors.As(err, &required) {
		return err
	}
	return errs.NewValueIsInvalidErrorWithCause(field, err)
}
