package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/task-meadow/server/internal/analytics"
	"github.com/task-meadow/server/internal/event"
	"github.com/task-meadow/server/internal/exercise"
	"github.com/task-meadow/server/internal/habit"
	infra "github.com/task-meadow/server/internal/infrastructure"
	"github.com/task-meadow/server/internal/infrastructure/driver"
	"github.com/task-meadow/server/internal/infrastructure/logging"
	"github.com/task-meadow/server/internal/infrastructure/uuid"
	ihttp "github.com/task-meadow/server/internal/interfaces/http"
	"github.com/task-meadow/server/internal/mocktest"
	"github.com/task-meadow/server/internal/profile"
	"github.com/task-meadow/server/internal/todo"
	"github.com/task-meadow/server/internal/user"
	"github.com/task-meadow/server/internal/weight"
	"github.com/task-meadow/server/internal/workout"
)

func main() {
	log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)
	option, err := infra.InitConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.Config{
		FilePath: option.Logging.FilePath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      option.Env,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %s\n", err)
	}
	logger = logger.With(
		zap.String("service.id", option.AppID),
	)
	defer logger.Sync()

	dbConn, err := driver.GetDBConnection(&driver.DBConfig{
		User:     option.Database.User,
		Password: option.Database.Password,
		MaxConn:  option.Database.MaxConn,
		Protocol: option.Database.Protocol,
		Driver:   option.Database.Driver,
		Host:     option.Database.Host,
		Port:     option.Database.Port,
		Query:    option.Database.Query,
		Schema:   option.Database.Schema,
	})
	if err != nil {
		log.Fatalf("Failed to create DB connection: %s\n", err)
	}
	logger.Debug("Create db connection instance", zap.String("db.driver", option.Database.Driver),
		zap.String("db.schema", option.Database.Schema),
		zap.String("db.host", option.Database.Host),
	)

	rdb := driver.NewRedisClient(option.KVStore.Host, option.KVStore.Port, option.KVStore.Password)

	idGenerator := uuid.NewNanoIDGenerator(option.Security.IDLength)

	userRepo := user.NewUserRepository(dbConn, idGenerator)
	workoutRepo := workout.NewWorkoutRepository(dbConn, idGenerator)
	mockTestRepo := mocktest.NewMockTestRepository(dbConn, idGenerator)
	habitRepo := habit.NewHabitRepository(dbConn, idGenerator)
	eventRepo := event.NewEventRepository(dbConn, idGenerator)
	weightRepo := weight.NewWeightRepository(dbConn, idGenerator)
	todoRepo := todo.NewTodoRepository(dbConn, idGenerator)
	profileRepo := profile.NewProfileRepository(dbConn)
	exerciseRepo := exercise.NewExerciseRepository(dbConn, idGenerator)

	ucs := &ihttp.UseCases{
		User:      user.NewUserUseCase(userRepo),
		Workout:   workout.NewWorkoutUseCase(workoutRepo),
		MockTest:  mocktest.NewMockTestUseCase(mockTestRepo),
		Habit:     habit.NewHabitUseCase(habitRepo),
		Event:     event.NewEventUseCase(eventRepo),
		Weight:    weight.NewWeightUseCase(weightRepo, profileRepo),
		Todo:      todo.NewTodoUseCase(todoRepo),
		Profile:   profile.NewProfileUseCase(profileRepo),
		Exercise:  exercise.NewExerciseUseCase(exerciseRepo),
		Analytics: analytics.NewAnalyticsUseCase(workoutRepo, mockTestRepo, eventRepo, habitRepo),
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down")
		dbConn.Close(context.Background())
		os.Exit(0)
	}()

	ihttp.Serve(dbConn, rdb, option, userRepo, ucs, logger)
}
