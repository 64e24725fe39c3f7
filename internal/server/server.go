// Package server wires registered operations to echo routes. Inbound
// bodies are strictly decoded and validated against the operation's input
// schema before business logic runs, and every outbound body is checked
// against the schema registered for its status before it is written.
package server

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrovista/smart-farm-api/internal/contract"
	"github.com/agrovista/smart-farm-api/internal/model"
)

const maxBodyBytes = 1 << 20

// HandlerFunc receives the validated, typed input and returns the status
// code plus response body. Returning a non-nil error means an unexpected
// internal failure; expected business failures (bad credentials,
// duplicates, upstream trouble) are returned as a status plus
// model.ErrorMessage so they stay inside the contract.
type HandlerFunc[In any] func(c echo.Context, in In) (int, any, error)

// Handle registers the route for one operation. Handlers never see input
// that failed validation.
func Handle[In any](e *echo.Echo, reg *contract.Registry, key string, fn HandlerFunc[In], mw ...echo.MiddlewareFunc) {
	op := reg.MustResolve(key)
	e.Add(op.Method, op.Path, func(c echo.Context) error {
		in, err := bindInput[In](c, op)
		if err != nil {
			slog.Debug("request rejected", "op", op.Key, "err", err)
			return fail(c, http.StatusBadRequest, "Invalid input")
		}

		status, body, err := fn(c, in)
		if err != nil {
			slog.Error("handler failed", "op", op.Key, "err", err)
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
		if err := op.ValidateResponse(status, body); err != nil {
			// Drift between a handler and the declared shape is a bug;
			// log it loudly and keep the details off the wire.
			slog.Error("contract violation", "op", op.Key, "status", status, "err", err)
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
		return c.JSON(status, body)
	}, mw...)
}

// bindInput produces the typed input for an operation: strict JSON for
// body-carrying methods, bound-and-validated query parameters for GET.
func bindInput[In any](c echo.Context, op *contract.Operation) (In, error) {
	var zero In
	if op.Input == nil {
		return zero, nil
	}

	if op.Method == http.MethodGet || op.Method == http.MethodDelete {
		v := op.Input.NewValue()
		if err := (&echo.DefaultBinder{}).BindQueryParams(c, v); err != nil {
			return zero, err
		}
		if err := op.Input.Validate(v); err != nil {
			return zero, &contract.InvalidRequestError{Key: op.Key, Err: err}
		}
		in, ok := v.(*In)
		if !ok {
			return zero, &contract.InvalidRequestError{Key: op.Key, Err: echo.ErrInternalServerError}
		}
		return *in, nil
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return zero, err
	}
	v, err := op.Input.Decode(raw)
	if err != nil {
		return zero, &contract.InvalidRequestError{Key: op.Key, Err: err}
	}
	in, ok := v.(*In)
	if !ok {
		return zero, &contract.InvalidRequestError{Key: op.Key, Err: echo.ErrInternalServerError}
	}
	return *in, nil
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, model.ErrorMessage{Message: msg})
}
