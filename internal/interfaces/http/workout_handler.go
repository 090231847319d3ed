package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/infrastructure/auth"
	"github.com/task-meadow/server/internal/infrastructure/validate"
	"github.com/task-meadow/server/internal/workout"
)

type WorkoutHandler struct {
	workoutUseCase workout.UseCase
	jwtUtil        *auth.JWTUtil
	validator      validate.Validator
}

func NewWorkoutHandler(WorkoutUseCase workout.UseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *WorkoutHandler {
	return &WorkoutHandler{WorkoutUseCase, JWTUtil, Validator}
}

// HandleGetSummary GET /workouts/summary?period=YYYY-MM-DD
func (wh *WorkoutHandler) HandleGetSummary(c echo.Context) (err error) {
	month, responded, err := monthFromPeriodQuery(c)
	if responded {
		return err
	}
	claims := wh.jwtUtil.GetContextToken(c)

	out, err := wh.workoutUseCase.Summary(c.Request().Context(), claims.UID, month)
	if err != nil {
		return err
	}
	return respondOK(c, out)
}

// HandleGetByDay GET /workouts/:date
func (wh *WorkoutHandler) HandleGetByDay(c echo.Context) (err error) {
	day, responded, err := dayFromToken(c, c.Param("date"))
	if responded {
		return err
	}
	claims := wh.jwtUtil.GetContextToken(c)

	out, err := wh.workoutUseCase.GetByDay(c.Request().Context(), claims.UID, day)
	if err != nil {
		return err
	}
	if out == nil {
		return respondNotFound(c, "No workout for this day")
	}
	return respondOK(c, out)
}

// HandleSave POST /workouts, upserts the day's workout
func (wh *WorkoutHandler) HandleSave(c echo.Context) (err error) {
	post := new(workout.Model)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind workout entity")
	}
	if post.Date.IsZero() {
		return respondError(c, http.StatusBadRequest, "date is required")
	}
	// a cardio block without activity or duration is noise
	if post.Cardio != nil && post.Cardio.Activity == "" && post.Cardio.Duration == 0 {
		post.Cardio = nil
	}
	claims := wh.jwtUtil.GetContextToken(c)
	post.UserID = claims.UID

	out, err := wh.workoutUseCase.Save(c.Request().Context(), post)
	if err != nil {
		return err
	}
	return respondCreated(c, out)
}

// HandleDeleteByDay DELETE /workouts/:date
func (wh *WorkoutHandler) HandleDeleteByDay(c echo.Context) (err error) {
	day, responded, err := dayFromToken(c, c.Param("date"))
	if responded {
		return err
	}
	claims := wh.jwtUtil.GetContextToken(c)

	deleted, err := wh.workoutUseCase.DeleteByDay(c.Request().Context(), claims.UID, day)
	if err != nil {
		return err
	}
	if !deleted {
		return respondNotFound(c, "No workout for this day")
	}
	return respondOK(c, nil)
}
