package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/period"
)

type endpoint struct {
	apiPrefix   string
	middlewares []echo.MiddlewareFunc
	groups      []*apiGroup
}

type apiGroup struct {
	prefix      string
	middlewares []echo.MiddlewareFunc
	routes      []*route
}

type route struct {
	method      string
	path        string
	handler     echo.HandlerFunc
	middlewares []echo.MiddlewareFunc
}

func createEndpoint(app *echo.Echo, def *endpoint) {
	type RESTMethod func(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route

	var root *echo.Group
	if strings.HasPrefix(def.apiPrefix, "/") {
		root = app.Group(def.apiPrefix, def.middlewares...)
	} else {
		root = app.Group("/"+def.apiPrefix, def.middlewares...)
	}

	for _, group := range def.groups {
		echoGroup := root.Group(group.prefix, group.middlewares...)
		for _, api := range group.routes {
			var method RESTMethod
			switch api.method {
			case "GET":
				method = echoGroup.GET
			case "POST":
				method = echoGroup.POST
			case "PUT":
				method = echoGroup.PUT
			case "DELETE":
				method = echoGroup.DELETE
			case "HEAD":
				method = echoGroup.HEAD
			default:
				panic(fmt.Errorf("createEndpoint: unknown method %s", api.method))
			}
			method(api.path, api.handler, api.middlewares...)
		}
	}
}

// monthFromQuery reads and validates the ?month=YYYY-MM query
// parameter; responded is true when a 400 has already been written.
func monthFromQuery(c echo.Context) (m period.Month, responded bool, err error) {
	m, perr := period.ParseMonth(c.QueryParam("month"))
	if perr != nil {
		return m, true, respondError(c, http.StatusBadRequest, "month must be in YYYY-MM format")
	}
	return m, false, nil
}

// monthFromPeriodQuery reads the ?period=YYYY-MM-DD query parameter,
// the first day of the month to summarize, and derives the month from
// it. A bare YYYY-MM token is accepted too.
func monthFromPeriodQuery(c echo.Context) (m period.Month, responded bool, err error) {
	token := c.QueryParam("period")
	if day, perr := period.ParseDay(token); perr == nil {
		return period.MonthOf(day), false, nil
	}
	m, perr := period.ParseMonth(token)
	if perr != nil {
		return m, true, respondError(c, http.StatusBadRequest, "period must be in YYYY-MM-DD format")
	}
	return m, false, nil
}

// dayFromToken validates a YYYY-MM-DD token; responded is true when a
// 400 has already been written.
func dayFromToken(c echo.Context, token string) (day time.Time, responded bool, err error) {
	day, perr := period.ParseDay(token)
	if perr != nil {
		return day, true, respondError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
	}
	return day, false, nil
}
