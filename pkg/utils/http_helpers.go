package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "lab-inventory/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

// ErrorPage is the data of the "error" template.
type ErrorPage struct {
	Code    int
	Message string
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

// ErrorResponse logs err and renders it as JSON or as the HTML error page,
// depending on what the client accepts.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	code := http.StatusInternalServerError
	message := "Error interno del servidor"

	var httpErr *apperrors.HttpError
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
	case errors.As(err, &validationErrors):
		code = http.StatusBadRequest
		message = "Error de validación: " + ValidationMessage(validationErrors)
	default:
		logger.Error("Unexpected Error", zap.Error(err))
	}

	if WantsJSON(c) {
		return c.JSON(code, &HTTPResponse{Status: false, Message: message})
	}
	return c.Render(code, "error", ErrorPage{Code: code, Message: message})
}

// ValidationMessage joins validator failures into one readable line.
func ValidationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("el campo '%s' no cumple '%s'", e.Field(), e.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func WantsJSON(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON) && !strings.Contains(accept, echo.MIMETextHTML)
}

// SeeOther finishes a form POST by redirecting the browser to a page that
// reloads its data.
func SeeOther(c echo.Context, path string) error {
	return c.Redirect(http.StatusSeeOther, path)
}
