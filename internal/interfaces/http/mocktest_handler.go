package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/infrastructure/auth"
	"github.com/task-meadow/server/internal/infrastructure/validate"
	"github.com/task-meadow/server/internal/mocktest"
)

type MockTestHandler struct {
	mockTestUseCase mocktest.UseCase
	jwtUtil         *auth.JWTUtil
	validator       validate.Validator
}

func NewMockTestHandler(MockTestUseCase mocktest.UseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *MockTestHandler {
	return &MockTestHandler{MockTestUseCase, JWTUtil, Validator}
}

// HandleListByDay GET /cat/mocks?date=YYYY-MM-DD
func (mh *MockTestHandler) HandleListByDay(c echo.Context) (err error) {
	day, responded, err := dayFromToken(c, c.QueryParam("date"))
	if responded {
		return err
	}
	claims := mh.jwtUtil.GetContextToken(c)

	out, err := mh.mockTestUseCase.ListByDay(c.Request().Context(), claims.UID, day)
	if err != nil {
		return err
	}
	if out == nil {
		out = []*mocktest.Model{}
	}
	return respondOK(c, out)
}

// HandleRecord POST /cat/mocks
func (mh *MockTestHandler) HandleRecord(c echo.Context) (err error) {
	post := new(mocktest.Model)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind mock test entity")
	}
	if fields := mh.validator.Struct(post); fields != nil {
		return respondValidation(c, "Failed to validate fields", fields)
	}
	if !mocktest.ValidType(post.TestType) {
		return respondError(c, http.StatusBadRequest, "testType must be one of VARC, LRDI, QA, FULL")
	}
	if post.Date.IsZero() {
		return respondError(c, http.StatusBadRequest, "date is required")
	}
	claims := mh.jwtUtil.GetContextToken(c)
	post.UserID = claims.UID

	out, err := mh.mockTestUseCase.Record(c.Request().Context(), post)
	if err != nil {
		return err
	}
	return respondCreated(c, out)
}

// HandleDelete DELETE /cat/mocks/:id
func (mh *MockTestHandler) HandleDelete(c echo.Context) (err error) {
	claims := mh.jwtUtil.GetContextToken(c)

	deleted, err := mh.mockTestUseCase.Delete(c.Request().Context(), claims.UID, c.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return respondNotFound(c, "Mock test not found")
	}
	return respondOK(c, nil)
}

// HandleGetSummary GET /cat/summary?period=YYYY-MM-DD
func (mh *MockTestHandler) HandleGetSummary(c echo.Context) (err error) {
	month, responded, err := monthFromPeriodQuery(c)
	if responded {
		return err
	}
	claims := mh.jwtUtil.GetContextToken(c)

	out, err := mh.mockTestUseCase.Summary(c.Request().Context(), claims.UID, month)
	if err != nil {
		return err
	}
	return respondOK(c, out)
}
