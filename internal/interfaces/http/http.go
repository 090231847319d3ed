package http

import (
	"expvar"
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
	"go.elastic.co/apm/module/apmechov4"
	"go.uber.org/zap"

	"github.com/task-meadow/server/internal/analytics"
	"github.com/task-meadow/server/internal/event"
	"github.com/task-meadow/server/internal/exercise"
	"github.com/task-meadow/server/internal/habit"
	infra "github.com/task-meadow/server/internal/infrastructure"
	"github.com/task-meadow/server/internal/infrastructure/auth"
	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/validate"
	"github.com/task-meadow/server/internal/interfaces/http/middleware"
	"github.com/task-meadow/server/internal/mocktest"
	"github.com/task-meadow/server/internal/profile"
	"github.com/task-meadow/server/internal/todo"
	"github.com/task-meadow/server/internal/user"
	"github.com/task-meadow/server/internal/weight"
	"github.com/task-meadow/server/internal/workout"
)

// UseCases everything the transport layer serves
type UseCases struct {
	User      user.UseCase
	Workout   workout.UseCase
	MockTest  mocktest.UseCase
	Habit     habit.UseCase
	Event     event.UseCase
	Weight    weight.UseCase
	Todo      todo.UseCase
	Profile   profile.UseCase
	Exercise  exercise.UseCase
	Analytics analytics.UseCase
}

// Serve create http transport server
func Serve(
	conn driver.ITransactionalDB,
	rdb driver.KeyValueDB,
	option *infra.AppConfig,
	userRepo user.Repository,
	ucs *UseCases,
	logger *zap.Logger,
) {
	app := echo.New()
	app.HideBanner = true
	jwtUtil := auth.NewJWTUtil(option.Security.JWTMethod,
		option.Security.JWTSecret,
		option.Security.TokenHeader,
		option.SessionTimeout)
	validator := validate.NewValidator()
	jwtMiddleware := middleware.VerifyToken(jwtUtil, &middleware.ValidateTokenOption{
		InBlackList: func(token string) (bool, error) {
			return rdb.Exists(token)
		},
	})
	refreshMiddleware := middleware.RefreshToken(jwtUtil, &middleware.RefreshTokenOption{
		Threshold: option.SessionRefresh,
	})

	registerLivenessProbe(app, conn, rdb)
	if option.Env == infra.EnvDevelopment {
		registerProfileEndpoints(app)
	}
	app.Use(middleware.Logging(logger, &middleware.LoggingConfig{
		Skipper: func(e echo.Context) bool {
			return strings.HasPrefix(e.Request().RequestURI, "/healthz")
		},
	}))
	debug := option.Env == infra.EnvDevelopment
	app.Use(middleware.ErrorHandling(
		&middleware.ErrorHandlingOption{
			Handler: func(c echo.Context, err error) {
				traceID := c.Response().Header().Get(echo.HeaderXRequestID)
				logger.Error(err.Error(), zap.String("trace.id", traceID))
				if debug {
					respondErrorDetail(c, http.StatusInternalServerError, "Internal server error", err.Error())
					return
				}
				respondError(c, http.StatusInternalServerError, "Internal server error")
			},
			Logger: logger,
		},
	))
	app.Use(echo_middleware.Secure())
	if option.DevOP.APM {
		app.Use(apmechov4.Middleware())
	}
	app.Use(echo_middleware.CORS())
	app.Use(middleware.AbortRequest(&middleware.AbortRequestOption{
		Timeout: option.RequestTimeout,
	}))

	authHandler := NewAuthHandler(
		jwtUtil, conn, userRepo, rdb, ucs.User,
		option.Security.MaxLoginAttempts,
		validator,
	)
	workoutHandler := NewWorkoutHandler(ucs.Workout, jwtUtil, validator)
	mockTestHandler := NewMockTestHandler(ucs.MockTest, jwtUtil, validator)
	habitHandler := NewHabitHandler(ucs.Habit, jwtUtil, validator)
	eventHandler := NewEventHandler(ucs.Event, jwtUtil, validator)
	weightHandler := NewWeightHandler(ucs.Weight, jwtUtil, validator)
	todoHandler := NewTodoHandler(ucs.Todo, jwtUtil, validator)
	profileHandler := NewProfileHandler(ucs.Profile, jwtUtil, validator)
	exerciseHandler := NewExerciseHandler(ucs.Exercise, jwtUtil, validator)
	analyticsHandler := NewAnalyticsHandler(ucs.Analytics, jwtUtil)

	createEndpoint(app, v1Endpoint(
		authHandler,
		workoutHandler,
		mockTestHandler,
		habitHandler,
		eventHandler,
		weightHandler,
		todoHandler,
		profileHandler,
		exerciseHandler,
		analyticsHandler,
		jwtMiddleware, refreshMiddleware, echo_middleware.RequestID(), middleware.SetTraceLogger(logger),
	))

	printRoutes(app, logger)
	if err := app.Start(fmt.Sprintf("%s:%d", option.Host, option.Port)); err != nil {
		log.Fatal(err)
	}
}

func printRoutes(app *echo.Echo, logger *zap.Logger) {
	for _, route := range app.Routes() {
		if !strings.HasPrefix(route.Name, "github.com/labstack/echo") {
			name := route.Name
			trimIndex := strings.LastIndexByte(name, '/')
			logger.Debug("Registered route", zap.String("method", route.Method), zap.String("path", route.Path), zap.String("name", string(name[trimIndex+1:])))
		}
	}
}

func registerLivenessProbe(app *echo.Echo, db driver.ITransactionalDB, rdb driver.KeyValueDB) {
	app.GET("/healthz", func(c echo.Context) error {
		if db.Ping() == nil && rdb.Ping() == nil {
			c.NoContent(http.StatusOK)
		} else {
			c.NoContent(http.StatusServiceUnavailable)
		}
		return nil
	})
}

func registerProfileEndpoints(app *echo.Echo) {
	expvarHandler := expvar.Handler()
	app.GET("/debug/vars", func(c echo.Context) error {
		expvarHandler.ServeHTTP(c.Response().Writer, c.Request())
		return nil
	})
	app.GET("/debug/pprof/", func(c echo.Context) error {
		pprof.Index(c.Response().Writer, c.Request())
		return nil
	})
	app.GET("/debug/pprof/:name", func(c echo.Context) error {
		switch c.Param("name") {
		case "cmdline":
			pprof.Cmdline(c.Response().Writer, c.Request())
		case "profile":
			pprof.Profile(c.Response().Writer, c.Request())
		case "symbol":
			pprof.Symbol(c.Response().Writer, c.Request())
		case "trace":
			pprof.Trace(c.Response().Writer, c.Request())
		default:
			pprof.Handler(c.Param("name")).ServeHTTP(c.Response().Writer, c.Request())
		}
		return nil
	})
}
