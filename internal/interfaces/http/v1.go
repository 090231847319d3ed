package http

import (
	"github.com/labstack/echo/v4"

	"github.com/task-meadow/server/internal/habit"
)

func v1Endpoint(
	AuthHandler *AuthHandler,
	WorkoutHandler *WorkoutHandler,
	MockTestHandler *MockTestHandler,
	HabitHandler *HabitHandler,
	EventHandler *EventHandler,
	WeightHandler *WeightHandler,
	TodoHandler *TodoHandler,
	ProfileHandler *ProfileHandler,
	ExerciseHandler *ExerciseHandler,
	AnalyticsHandler *AnalyticsHandler,
	jwtMiddleware echo.MiddlewareFunc,
	refreshMiddleware echo.MiddlewareFunc,
	requestIDMiddleware echo.MiddlewareFunc,
	traceLoggerMiddleware echo.MiddlewareFunc,
) *endpoint {
	authed := []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware}
	return &endpoint{
		apiPrefix:   "api",
		middlewares: []echo.MiddlewareFunc{requestIDMiddleware, traceLoggerMiddleware},
		groups: []*apiGroup{
			{
				prefix: "/auth",
				routes: []*route{
					{"POST", "/register", AuthHandler.HandleRegister, nil},
					{"POST", "/login", AuthHandler.HandleLogin, nil},
					{"GET", "/user", AuthHandler.HandleCurrentUser, authed},
					{"PUT", "/sign-out", AuthHandler.HandleSignOut, authed},
				},
			},
			{
				prefix:      "/workouts",
				middlewares: authed,
				routes: []*route{
					{"GET", "/summary", WorkoutHandler.HandleGetSummary, nil},
					{"GET", "/:date", WorkoutHandler.HandleGetByDay, nil},
					{"POST", "", WorkoutHandler.HandleSave, nil},
					{"DELETE", "/:date", WorkoutHandler.HandleDeleteByDay, nil},
				},
			},
			{
				prefix:      "/cat",
				middlewares: authed,
				routes: []*route{
					{"GET", "/mocks", MockTestHandler.HandleListByDay, nil},
					{"POST", "/mocks", MockTestHandler.HandleRecord, nil},
					{"DELETE", "/mocks/:id", MockTestHandler.HandleDelete, nil},
					{"GET", "/summary", MockTestHandler.HandleGetSummary, nil},
				},
			},
			{
				prefix:      "/habits",
				middlewares: authed,
				routes: []*route{
					{"GET", "/daily", HabitHandler.HandleGetGrid(habit.KindDaily), nil},
					{"POST", "/daily", HabitHandler.HandleSaveGrid(habit.KindDaily), nil},
					{"PUT", "/daily/completion", HabitHandler.HandleToggleDaily, nil},
					{"DELETE", "/daily/:id", HabitHandler.HandleDelete, nil},
					{"GET", "/weekly", HabitHandler.HandleGetGrid(habit.KindWeekly), nil},
					{"POST", "/weekly", HabitHandler.HandleSaveGrid(habit.KindWeekly), nil},
					{"PUT", "/weekly/completion", HabitHandler.HandleToggleWeekly, nil},
					{"DELETE", "/weekly/:id", HabitHandler.HandleDelete, nil},
					{"DELETE", "/:id", HabitHandler.HandleDelete, nil},
				},
			},
			{
				prefix:      "/events",
				middlewares: authed,
				routes: []*route{
					{"GET", "", EventHandler.HandleList, nil},
					{"GET", "/range", EventHandler.HandleListRange, nil},
					{"POST", "", EventHandler.HandleCreate, nil},
					{"PUT", "/:id", EventHandler.HandleUpdate, nil},
					{"DELETE", "/:id", EventHandler.HandleDelete, nil},
				},
			},
			{
				prefix:      "/weight-tracking",
				middlewares: authed,
				routes: []*route{
					{"GET", "", WeightHandler.HandleList, nil},
					{"POST", "/entry", WeightHandler.HandleEnter, nil},
					{"GET", "/analytics", WeightHandler.HandleAnalytics, nil},
					{"GET", "/can-enter", WeightHandler.HandleCanEnter, nil},
				},
			},
			{
				prefix:      "/todo-lists",
				middlewares: authed,
				routes: []*route{
					{"GET", "", TodoHandler.HandleList, nil},
					{"POST", "", TodoHandler.HandleCreateList, nil},
					{"PUT", "/:id", TodoHandler.HandleRenameList, nil},
					{"DELETE", "/:id", TodoHandler.HandleDeleteList, nil},
					{"POST", "/:id/tasks", TodoHandler.HandleAddTask, nil},
					{"PUT", "/tasks/:taskId", TodoHandler.HandleUpdateTask, nil},
					{"DELETE", "/tasks/:taskId", TodoHandler.HandleDeleteTask, nil},
				},
			},
			{
				prefix:      "/exercises",
				middlewares: authed,
				routes: []*route{
					{"GET", "", ExerciseHandler.HandleList, nil},
					{"POST", "", ExerciseHandler.HandleCreate, nil},
					{"PUT", "/:id", ExerciseHandler.HandleUpdate, nil},
					{"DELETE", "/:id", ExerciseHandler.HandleDelete, nil},
				},
			},
			{
				prefix:      "/profile",
				middlewares: authed,
				routes: []*route{
					{"GET", "", ProfileHandler.HandleGet, nil},
					{"POST", "", ProfileHandler.HandleSave, nil},
				},
			},
			{
				prefix:      "/analytics",
				middlewares: authed,
				routes: []*route{
					{"GET", "/day", AnalyticsHandler.HandleGetDay, nil},
				},
			},
		},
	}
}
