package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/infrastructure/auth"
	"github.com/task-meadow/server/internal/infrastructure/validate"
	"github.com/task-meadow/server/internal/todo"
)

type TodoHandler struct {
	todoUseCase todo.UseCase
	jwtUtil     *auth.JWTUtil
	validator   validate.Validator
}

func NewTodoHandler(TodoUseCase todo.UseCase, JWTUtil *auth.JWTUtil, Validator validate.Validator) *TodoHandler {
	return &TodoHandler{TodoUseCase, JWTUtil, Validator}
}

// HandleList GET /todo-lists
func (th *TodoHandler) HandleList(c echo.Context) (err error) {
	claims := th.jwtUtil.GetContextToken(c)

	out, err := th.todoUseCase.Lists(c.Request().Context(), claims.UID)
	if err != nil {
		return err
	}
	return respondOK(c, out)
}

// HandleCreateList POST /todo-lists
func (th *TodoHandler) HandleCreateList(c echo.Context) (err error) {
	post := new(todo.List)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind list entity")
	}
	if fields := th.validator.Struct(post); fields != nil {
		return respondValidation(c, "Failed to validate fields", fields)
	}
	claims := th.jwtUtil.GetContextToken(c)
	post.UserID = claims.UID

	out, err := th.todoUseCase.CreateList(c.Request().Context(), post)
	if err != nil {
		return err
	}
	return respondCreated(c, out)
}

// HandleRenameList PUT /todo-lists/:id
func (th *TodoHandler) HandleRenameList(c echo.Context) (err error) {
	post := new(todo.List)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind list entity")
	}
	if fields := th.validator.Struct(post); fields != nil {
		return respondValidation(c, "Failed to validate fields", fields)
	}
	claims := th.jwtUtil.GetContextToken(c)

	out, err := th.todoUseCase.RenameList(c.Request().Context(), claims.UID, c.Param("id"), post.Title)
	if errors.Is(err, todo.ErrNoSuchList) {
		return respondNotFound(c, "List not found")
	}
	if err != nil {
		return err
	}
	return respondOK(c, out)
}

// HandleDeleteList DELETE /todo-lists/:id
func (th *TodoHandler) HandleDeleteList(c echo.Context) (err error) {
	claims := th.jwtUtil.GetContextToken(c)

	deleted, err := th.todoUseCase.DeleteList(c.Request().Context(), claims.UID, c.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return respondNotFound(c, "List not found")
	}
	return respondOK(c, nil)
}

// HandleAddTask POST /todo-lists/:id/tasks
func (th *TodoHandler) HandleAddTask(c echo.Context) (err error) {
	post := new(todo.Task)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind task entity")
	}
	if fields := th.validator.Struct(post); fields != nil {
		return respondValidation(c, "Failed to validate fields", fields)
	}
	claims := th.jwtUtil.GetContextToken(c)

	out, err := th.todoUseCase.AddTask(c.Request().Context(), claims.UID, c.Param("id"), post)
	if errors.Is(err, todo.ErrNoSuchList) {
		return respondNotFound(c, "List not found")
	}
	if err != nil {
		return err
	}
	return respondCreated(c, out)
}

// HandleUpdateTask PUT /todo-lists/tasks/:taskId
func (th *TodoHandler) HandleUpdateTask(c echo.Context) (err error) {
	post := new(todo.Task)
	if err = c.Bind(post); err != nil {
		return respondError(c, http.StatusBadRequest, "Failed to bind task entity")
	}
	if fields := th.validator.Struct(post); fields != nil {
		return respondValidation(c, "Failed to validate fields", fields)
	}
	claims := th.jwtUtil.GetContextToken(c)
	post.ID = c.Param("taskId")

	out, err := th.todoUseCase.UpdateTask(c.Request().Context(), claims.UID, post)
	if errors.Is(err, todo.ErrNoSuchTask) {
		return respondNotFound(c, "Task not found")
	}
	if err != nil {
		return err
	}
	return respondOK(c, out)
}

// HandleDeleteTask DELETE /todo-lists/tasks/:taskId
func (th *TodoHandler) HandleDeleteTask(c echo.Context) (err error) {
	claims := th.jwtUtil.GetContextToken(c)

	deleted, err := th.todoUseCase.DeleteTask(c.Request().Context(), claims.UID, c.Param("taskId"))
	if err != nil {
		return err
	}
	if !deleted {
		return respondNotFound(c, "Task not found")
	}
	return respondOK(c, nil)
}
