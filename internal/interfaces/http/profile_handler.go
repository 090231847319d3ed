package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/infrastructure/auth"
	"github.com/task-meadow/server/internal/infrastructure/validate"
	"github.com/task-meadow/server/internal/profile"
)

type ProfileHandler struct {
	profileUseCase profile.UseCase
	jwtUtil        *auth.JWTUtil
	validator      validate.Validator
}

func NewProfileHandler(ProfileUseCase profile.UseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *ProfileHandler {
	return &ProfileHandler{ProfileUseCase, JWTUtil, Validator}
}

// HandleGet GET /profile
func (ph *ProfileHandler) HandleGet(c echo.Context) (err error) {
	claims := ph.jwtUtil.GetContextToken(c)

	out, err := ph.profileUseCase.Get(c.Request().Context(), claims.UID)
	if err != nil {
		return err
	}
	return respondOK(c, out)
}

// HandleSave POST /profile, full upsert
func (ph *ProfileHandler) HandleSave(c echo.Context) (err error) {
	post := new(profile.Model)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind profile entity")
	}
	claims := ph.jwtUtil.GetContextToken(c)
	post.UserID = claims.UID

	out, err := ph.profileUseCase.Save(c.Request().Context(), post)
	if err != nil {
		return err
	}
	return respondOK(c, out)
}
