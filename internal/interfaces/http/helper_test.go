package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/task-meadow/server/internal/period"
)

func queryContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestMonthFromPeriodQueryDayToken(t *testing.T) {
	c, _ := queryContext("/api/workouts/summary?period=2024-03-01")

	m, responded, err := monthFromPeriodQuery(c)
	require.NoError(t, err)
	assert.False(t, responded)
	assert.Equal(t, period.Month{Year: 2024, Month: 3}, m)
}

func TestMonthFromPeriodQueryMidMonthDay(t *testing.T) {
	c, _ := queryContext("/api/cat/summary?period=2024-03-15")

	m, responded, err := monthFromPeriodQuery(c)
	require.NoError(t, err)
	assert.False(t, responded)
	assert.Equal(t, "2024-03", m.Key())
}

func TestMonthFromPeriodQueryMonthToken(t *testing.T) {
	c, _ := queryContext("/api/workouts/summary?period=2024-03")

	m, responded, err := monthFromPeriodQuery(c)
	require.NoError(t, err)
	assert.False(t, responded)
	assert.Equal(t, "2024-03", m.Key())
}

func TestMonthFromPeriodQueryBadToken(t *testing.T) {
	c, rec := queryContext("/api/workouts/summary?period=March")

	_, responded, err := monthFromPeriodQuery(c)
	require.NoError(t, err)
	assert.True(t, responded)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDayFromTokenRejectsBadDay(t *testing.T) {
	c, rec := queryContext("/api/events?date=2024-02-30")

	_, responded, err := dayFromToken(c, c.QueryParam("date"))
	require.NoError(t, err)
	assert.True(t, responded)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHabitDeleteRoutes(t *testing.T) {
	def := v1Endpoint(
		new(AuthHandler),
		new(WorkoutHandler),
		new(MockTestHandler),
		new(HabitHandler),
		new(EventHandler),
		new(WeightHandler),
		new(TodoHandler),
		new(ProfileHandler),
		new(ExerciseHandler),
		new(AnalyticsHandler),
		nil, nil, nil, nil,
	)

	var habits *apiGroup
	for _, g := range def.groups {
		if g.prefix == "/habits" {
			habits = g
		}
	}
	require.NotNil(t, habits)

	paths := map[string]bool{}
	for _, r := range habits.routes {
		if r.method == "DELETE" {
			paths[r.path] = true
		}
	}
	assert.True(t, paths["/daily/:id"])
	assert.True(t, paths["/weekly/:id"])
	assert.True(t, paths["/:id"])
}
