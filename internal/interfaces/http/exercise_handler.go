package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/exercise"
	"github.com/task-meadow/server/internal/infrastructure/auth"
	"github.com/task-meadow/server/internal/infrastructure/validate"
)

type ExerciseHandler struct {
	exerciseUseCase exercise.UseCase
	jwtUtil         *auth.JWTUtil
	validator       validate.Validator
}

func NewExerciseHandler(ExerciseUseCase exercise.UseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *ExerciseHandler {
	return &ExerciseHandler{ExerciseUseCase, JWTUtil, Validator}
}

// HandleList GET /exercises
func (xh *ExerciseHandler) HandleList(c echo.Context) (err error) {
	claims := xh.jwtUtil.GetContextToken(c)

	out, err := xh.exerciseUseCase.List(c.Request().Context(), claims.UID)
	if err != nil {
		return err
	}
	return respondOK(c, out)
}

// HandleCreate POST /exercises
func (xh *ExerciseHandler) HandleCreate(c echo.Context) (err error) {
	post := new(exercise.Model)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind exercise entity")
	}
	if fields := xh.validator.Struct(post); fields != nil {
		return respondValidation(c, "Failed to validate fields", fields)
	}
	claims := xh.jwtUtil.GetContextToken(c)
	post.UserID = claims.UID

	out, err := xh.exerciseUseCase.Create(c.Request().Context(), post)
	if err != nil {
		return err
	}
	return respondCreated(c, out)
}

// HandleUpdate PUT /exercises/:id
func (xh *ExerciseHandler) HandleUpdate(c echo.Context) (err error) {
	post := new(exercise.Model)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind exercise entity")
	}
	if fields := xh.validator.Struct(post); fields != nil {
		return respondValidation(c, "Failed to validate fields", fields)
	}
	claims := xh.jwtUtil.GetContextToken(c)
	post.ID = c.Param("id")
	post.UserID = claims.UID

	out, err := xh.exerciseUseCase.Update(c.Request().Context(), post)
	if errors.Is(err, exercise.ErrNoSuchExercise) {
		return respondNotFound(c, "Exercise not found")
	}
	if err != nil {
		return err
	}
	return respondOK(c, out)
}

// HandleDelete DELETE /exercises/:id
func (xh *ExerciseHandler) HandleDelete(c echo.Context) (err error) {
	claims := xh.jwtUtil.GetContextToken(c)

	deleted, err := xh.exerciseUseCase.Delete(c.Request().Context(), claims.UID, c.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return respondNotFound(c, "Exercise not found")
	}
	return respondOK(c, nil)
}
