package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/infrastructure/auth"
	"github.com/task-meadow/server/internal/infrastructure/validate"
	"github.com/task-meadow/server/internal/weight"
)

type WeightHandler struct {
	weightUseCase weight.UseCase
	jwtUtil       *auth.JWTUtil
	validator     validate.Validator
}

func NewWeightHandler(WeightUseCase weight.UseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *WeightHandler {
	return &WeightHandler{WeightUseCase, JWTUtil, Validator}
}

// HandleList GET /weight-tracking?period=week|month|year or explicit
// ?start=YYYY-MM-DD&end=YYYY-MM-DD
func (wh *WeightHandler) HandleList(c echo.Context) (err error) {
	claims := wh.jwtUtil.GetContextToken(c)
	ctx := c.Request().Context()

	var out []*weight.Entry
	if start := c.QueryParam("start"); start != "" {
		startDay, responded, err := dayFromToken(c, start)
		if responded {
			return err
		}
		endDay, responded, err := dayFromToken(c, c.QueryParam("end"))
		if responded {
			return err
		}
		out, err = wh.weightUseCase.ListRange(ctx, claims.UID, startDay, endDay)
		if err != nil {
			return err
		}
	} else {
		periodName := c.QueryParam("period")
		if periodName == "" {
			periodName = "month"
		}
		out, err = wh.weightUseCase.ListPeriod(ctx, claims.UID, periodName)
		if errors.Is(err, weight.ErrBadPeriod) {
			return respondError(c, http.StatusBadRequest, "period must be week, month or year")
		}
		if err != nil {
			return err
		}
	}
	if out == nil {
		out = []*weight.Entry{}
	}
	return respondOK(c, out)
}

// HandleEnter POST /weight-tracking/entry
func (wh *WeightHandler) HandleEnter(c echo.Context) (err error) {
	post := new(weight.Entry)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind weight entry")
	}
	if fields := wh.validator.Struct(post); fields != nil {
		return respondValidation(c, "Failed to validate fields", fields)
	}
	claims := wh.jwtUtil.GetContextToken(c)
	post.UserID = claims.UID

	out, err := wh.weightUseCase.Enter(c.Request().Context(), post)
	if err != nil {
		return err
	}
	return respondCreated(c, out)
}

// HandleAnalytics GET /weight-tracking/analytics
func (wh *WeightHandler) HandleAnalytics(c echo.Context) (err error) {
	claims := wh.jwtUtil.GetContextToken(c)

	out, err := wh.weightUseCase.Analytics(c.Request().Context(), claims.UID)
	if err != nil {
		return err
	}
	return respondOK(c, out)
}

// HandleCanEnter GET /weight-tracking/can-enter
func (wh *WeightHandler) HandleCanEnter(c echo.Context) (err error) {
	claims := wh.jwtUtil.GetContextToken(c)

	out, err := wh.weightUseCase.CanEnter(c.Request().Context(), claims.UID)
	if err != nil {
		return err
	}
	return respondOK(c, out)
}
