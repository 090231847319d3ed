package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/infrastructure/validate"
)

// envelope uniform response body: success responses wrap their payload
// in data, failures carry a message and, in development only, the
// underlying error detail
type envelope struct {
	Success bool                   `json:"success"`
	Data    interface{}            `json:"data,omitempty"`
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Fields  []*validate.FieldError `json:"fields,omitempty"`
}

func respondOK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func respondCreated(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

func respondError(c echo.Context, code int, message string) error {
	return c.JSON(code, envelope{Success: false, Message: message})
}

func respondErrorDetail(c echo.Context, code int, message, detail string) error {
	return c.JSON(code, envelope{Success: false, Message: message, Error: detail})
}

func respondValidation(c echo.Context, message string, fields []*validate.FieldError) error {
	return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: message, Fields: fields})
}

func respondNotFound(c echo.Context, message string) error {
	return respondError(c, http.StatusNotFound, message)
}
