package http

import (
	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/analytics"
	"github.com/task-meadow/server/internal/infrastructure/auth"
)

type AnalyticsHandler struct {
	analyticsUseCase analytics.UseCase
	jwtUtil          *auth.JWTUtil
}

func NewAnalyticsHandler(AnalyticsUseCase analytics.UseCase, JWTUtil *auth.JWTUtil) *AnalyticsHandler {
	return &AnalyticsHandler{AnalyticsUseCase, JWTUtil}
}

// HandleGetDay GET /analytics/day?date=YYYY-MM-DD, everything recorded
// on one day across features
func (ah *AnalyticsHandler) HandleGetDay(c echo.Context) (err error) {
	day, responded, err := dayFromToken(c, c.QueryParam("date"))
	if responded {
		return err
	}
	claims := ah.jwtUtil.GetContextToken(c)

	out, err := ah.analyticsUseCase.Day(c.Request().Context(), claims.UID, day)
	if err != nil {
		return err
	}
	return respondOK(c, out)
}
