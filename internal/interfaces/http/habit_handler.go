package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/habit"
	"github.com/task-meadow/server/internal/infrastructure/auth"
	"github.com/task-meadow/server/internal/infrastructure/validate"
	"github.com/task-meadow/server/internal/period"
)

type HabitHandler struct {
	habitUseCase habit.UseCase
	jwtUtil      *auth.JWTUtil
	validator    validate.Validator
}

func NewHabitHandler(HabitUseCase habit.UseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *HabitHandler {
	return &HabitHandler{HabitUseCase, JWTUtil, Validator}
}

type saveGridPost struct {
	MonthKey string            `json:"monthKey"`
	Habits   []habit.SaveHabit `json:"habits"`
}

type dailyTogglePost struct {
	HabitID   string `json:"habitId"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type weeklyTogglePost struct {
	HabitID   string `json:"habitId"`
	WeekIndex int    `json:"weekIndex"`
	Completed bool   `json:"completed"`
}

// HandleGetGrid GET /habits/daily?month= and /habits/weekly?month=
func (hh *HabitHandler) HandleGetGrid(kind string) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		month, responded, err := monthFromQuery(c)
		if responded {
			return err
		}
		claims := hh.jwtUtil.GetContextToken(c)

		out, err := hh.habitUseCase.Grid(c.Request().Context(), claims.UID, month, kind)
		if err != nil {
			return err
		}
		return respondOK(c, out)
	}
}

// HandleSaveGrid POST /habits/daily and /habits/weekly, full-grid save
func (hh *HabitHandler) HandleSaveGrid(kind string) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		post := new(saveGridPost)
		if err = c.Bind(post); err != nil {
			return respondError(c, http.StatusBadRequest, "Failed to bind habit grid")
		}
		month, perr := period.ParseMonth(post.MonthKey)
		if perr != nil {
			return respondError(c, http.StatusBadRequest, "monthKey must be in YYYY-MM format")
		}
		claims := hh.jwtUtil.GetContextToken(c)

		out, err := hh.habitUseCase.SaveGrid(c.Request().Context(), claims.UID, month, kind, post.Habits)
		if err != nil {
			return err
		}
		return respondOK(c, out)
	}
}

// HandleToggleDaily PUT /habits/daily/completion
func (hh *HabitHandler) HandleToggleDaily(c echo.Context) (err error) {
	post := new(dailyTogglePost)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind completion")
	}
	day, responded, err := dayFromToken(c, post.Date)
	if responded {
		return err
	}
	claims := hh.jwtUtil.GetContextToken(c)

	out, err := hh.habitUseCase.ToggleDaily(c.Request().Context(), claims.UID, post.HabitID, day, post.Completed)
	return hh.respondToggle(c, out, err)
}

// HandleToggleWeekly PUT /habits/weekly/completion
func (hh *HabitHandler) HandleToggleWeekly(c echo.Context) (err error) {
	post := new(weeklyTogglePost)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind completion")
	}
	claims := hh.jwtUtil.GetContextToken(c)

	out, err := hh.habitUseCase.ToggleWeekly(c.Request().Context(), claims.UID, post.HabitID, post.WeekIndex, post.Completed)
	return hh.respondToggle(c, out, err)
}

func (hh *HabitHandler) respondToggle(c echo.Context, out *habit.Grid, err error) error {
	if errors.Is(err, habit.ErrNoSuchHabit) {
		return respondNotFound(c, "Habit not found")
	}
	if errors.Is(err, habit.ErrBadSlot) {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}
	return respondOK(c, out)
}

// HandleDelete DELETE /habits/:id
func (hh *HabitHandler) HandleDelete(c echo.Context) (err error) {
	claims := hh.jwtUtil.GetContextToken(c)

	deleted, err := hh.habitUseCase.DeleteHabit(c.Request().Context(), claims.UID, c.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return respondNotFound(c, "Habit not found")
	}
	return respondOK(c, nil)
}
