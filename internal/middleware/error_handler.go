package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Powromita/EazyVenue/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const msgInternal = "Internal server error"

// ErrorHandler renders every error as {"error": message}. Validation errors
// carry per-field details; anything that is not an *echo.HTTPError is logged
// and answered with a generic 500.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		resp := dto.ErrorResponse{Error: msgInternal}

		var (
			verrs validator.ValidationErrors
			he    *echo.HTTPError
		)
		switch {
		case errors.As(err, &verrs):
			code = http.StatusBadRequest
			resp = dto.ErrorResponse{Error: "Invalid data", Details: fieldErrors(verrs)}
		case errors.As(err, &he):
			code = he.Code
			if m, ok := he.Message.(string); ok {
				resp.Error = m
			} else {
				resp.Error = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func fieldErrors(verrs validator.ValidationErrors) []dto.FieldError {
	out := make([]dto.FieldError, len(verrs))
	for i, fe := range verrs {
		out[i] = dto.FieldError{Field: fe.Field(), Message: fieldMessage(fe)}
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "datetime":
		return fmt.Sprintf("must be a date in the form %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
