// Package httperr translates errors into the API's JSON error surface.
// Every error body has the shape {"detail": ...} where detail is either a
// message string or, for validation failures, a list of field errors.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorHandler returns a custom echo error handler rendering the {"detail"}
// body. Errors that are not echo.HTTPError are logged and collapsed into a
// generic 500 so persistence faults never leak internals to clients.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var detail interface{} = "Internal Server Error"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			detail = httpErr.Message
		} else {
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, map[string]interface{}{"detail": detail})
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}
