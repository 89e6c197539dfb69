package taskservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type upstreamObservation struct {
	operation string
	err       error
}

type fakeMetrics struct {
	observations []upstreamObservation
}

func (f *fakeMetrics) ObserveUpstream(operation string, _ time.Duration, err error) {
	f.observations = append(f.observations, upstreamObservation{operation: operation, err: err})
}

func TestGetDriverTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/v1/drivers/tasks", r.URL.Path)
		assert.Equal(t, "2025-01-06", r.URL.Query().Get("date"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"date": "2025-01-06",
			"tasks": [
				{"id": 1, "driverId": 7, "startTime": "2025-01-06T13:00:00Z", "endTime": "2025-01-06T14:00:00Z"},
				{"id": 2, "driverId": 7, "startTime": "2025-01-06T16:00:00Z", "endTime": "2025-01-06T17:00:00Z"},
				{"id": 3, "driverId": 9, "startTime": "2025-01-06T10:00:00Z", "endTime": "2025-01-06T11:00:00Z"}
			]
		}`))
	}))
	defer srv.Close()

	recorder := &fakeMetrics{}
	client := NewClient(srv.URL, time.Second, recorder, nopLogger{})

	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	conflicts, err := client.GetDriverTasks(context.Background(), date)
	require.NoError(t, err)

	assert.Len(t, conflicts[7], 2)
	assert.Len(t, conflicts[9], 1)
	assert.Equal(t, time.Date(2025, 1, 6, 13, 0, 0, 0, time.UTC), conflicts[7][0].Window.Start)

	// Успешный запрос наблюдается без ошибки
	require.Len(t, recorder.observations, 1)
	assert.Equal(t, "taskservice.get_driver_tasks", recorder.observations[0].operation)
	assert.NoError(t, recorder.observations[0].err)
}

func TestGetDriverTasks_SkipsInvalidWindows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"date": "2025-01-06",
			"tasks": [
				{"id": 1, "driverId": 7, "startTime": "2025-01-06T14:00:00Z", "endTime": "2025-01-06T13:00:00Z"},
				{"id": 2, "driverId": 7, "startTime": "2025-01-06T16:00:00Z", "endTime": "2025-01-06T17:00:00Z"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, nopLogger{})

	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	conflicts, err := client.GetDriverTasks(context.Background(), date)
	require.NoError(t, err)

	// Задача с перевёрнутым окном пропускается
	assert.Len(t, conflicts[7], 1)
	assert.Equal(t, time.Date(2025, 1, 6, 16, 0, 0, 0, time.UTC), conflicts[7][0].Window.Start)
}

func TestGetDriverTasks_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	recorder := &fakeMetrics{}
	client := NewClient(srv.URL, time.Second, recorder, nopLogger{})

	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	_, err := client.GetDriverTasks(context.Background(), date)
	assert.ErrorIs(t, err, ErrUnavailable)

	// Неудачный запрос наблюдается с ошибкой
	require.Len(t, recorder.observations, 1)
	assert.Error(t, recorder.observations[0].err)
}

func TestGetDriverTasks_InvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil, nopLogger{})

	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	_, err := client.GetDriverTasks(context.Background(), date)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
