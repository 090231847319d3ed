package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandlingOption options for error handling
type ErrorHandlingOption struct {
	Handler func(c echo.Context, err error)
	Logger  *zap.Logger
}

// ErrorHandling converts panics and returned errors into a single
// terminal handler so no request ends without a response
func ErrorHandling(option *ErrorHandlingOption) echo.MiddlewareFunc {
	handler := option.Handler
	logger := option.Logger
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if any := recover(); any != nil {
					err, ok := any.(error)
					if !ok {
						err = echo.NewHTTPError(500, any)
					}
					if logger != nil {
						logger.Error(err.Error(),
							zap.String("url.path", c.Request().RequestURI),
							zap.String("client.address", c.Request().RemoteAddr),
							zap.String("http.request.method", c.Request().Method),
							zap.Strings("route.params.name", c.ParamNames()),
							zap.Strings("route.params.value", c.ParamValues()),
						)
					}
					handler(c, err)
				}
			}()
			if err := next(c); err != nil {
				handler(c, err)
			}
			return nil
		}
	}
}
