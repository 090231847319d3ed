package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/event"
	"github.com/task-meadow/server/internal/infrastructure/auth"
	"github.com/task-meadow/server/internal/infrastructure/validate"
)

type EventHandler struct {
	eventUseCase event.UseCase
	jwtUtil      *auth.JWTUtil
	validator    validate.Validator
}

func NewEventHandler(EventUseCase event.UseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *EventHandler {
	return &EventHandler{EventUseCase, JWTUtil, Validator}
}

// HandleList GET /events?date=YYYY-MM-DD
func (eh *EventHandler) HandleList(c echo.Context) (err error) {
	day, responded, err := dayFromToken(c, c.QueryParam("date"))
	if responded {
		return err
	}
	claims := eh.jwtUtil.GetContextToken(c)

	out, err := eh.eventUseCase.ListByDay(c.Request().Context(), claims.UID, day)
	if err != nil {
		return err
	}
	if out == nil {
		out = []*event.Model{}
	}
	return respondOK(c, out)
}

// HandleListRange GET /events/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (eh *EventHandler) HandleListRange(c echo.Context) (err error) {
	start, responded, err := dayFromToken(c, c.QueryParam("start"))
	if responded {
		return err
	}
	end, responded, err := dayFromToken(c, c.QueryParam("end"))
	if responded {
		return err
	}
	if end.Before(start) {
		return respondError(c, http.StatusBadRequest, "end must not precede start")
	}
	claims := eh.jwtUtil.GetContextToken(c)

	out, err := eh.eventUseCase.ListByRange(c.Request().Context(), claims.UID, start, end)
	if err != nil {
		return err
	}
	if out == nil {
		out = []*event.Model{}
	}
	return respondOK(c, out)
}

// HandleCreate POST /events
func (eh *EventHandler) HandleCreate(c echo.Context) (err error) {
	post := new(event.Model)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind event entity")
	}
	if fields := eh.validator.Struct(post); fields != nil {
		return respondValidation(c, "Failed to validate fields", fields)
	}
	if post.Date.IsZero() {
		return respondError(c, http.StatusBadRequest, "date is required")
	}
	claims := eh.jwtUtil.GetContextToken(c)
	post.UserID = claims.UID

	out, err := eh.eventUseCase.Create(c.Request().Context(), post)
	if err != nil {
		return err
	}
	return respondCreated(c, out)
}

// HandleUpdate PUT /events/:id
func (eh *EventHandler) HandleUpdate(c echo.Context) (err error) {
	post := new(event.Model)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind event entity")
	}
	if fields := eh.validator.Struct(post); fields != nil {
		return respondValidation(c, "Failed to validate fields", fields)
	}
	claims := eh.jwtUtil.GetContextToken(c)
	post.ID = c.Param("id")
	post.UserID = claims.UID

	out, err := eh.eventUseCase.Update(c.Request().Context(), post)
	if errors.Is(err, event.ErrNoSuchEvent) {
		return respondNotFound(c, "Event not found")
	}
	if err != nil {
		return err
	}
	return respondOK(c, out)
}

// HandleDelete DELETE /events/:id
func (eh *EventHandler) HandleDelete(c echo.Context) (err error) {
	claims := eh.jwtUtil.GetContextToken(c)

	deleted, err := eh.eventUseCase.Delete(c.Request().Context(), claims.UID, c.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return respondNotFound(c, "Event not found")
	}
	return respondOK(c, nil)
}
