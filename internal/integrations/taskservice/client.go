package taskservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder интерфейс для записи метрик запросов к внешней системе
// Реализуется pkg/metrics; nil-реализация допустима
type MetricsRecorder interface {
	ObserveUpstream(operation string, duration time.Duration, err error)
}

// Client клиент для работы с внешней системой задач логистики
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    MetricsRecorder
	log        Logger
}

// NewClient создает новый экземпляр клиента TaskService
// metrics может быть nil
func NewClient(baseURL string, timeout time.Duration, metrics MetricsRecorder, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		log:     log,
	}
}

// GetDriverTasks получает окна задач водителей на дату,
// сгруппированные по ID водителя
func (c *Client) GetDriverTasks(ctx context.Context, date time.Time) (_ map[int64][]domain.ExternalTaskConflict, err error) {
	started := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.ObserveUpstream("taskservice.get_driver_tasks", time.Since(started), err)
		}
	}()

	url := fmt.Sprintf("%s/internal/v1/drivers/tasks?date=%s", c.baseURL, date.UTC().Format(domain.DateFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidResponse)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return nil, fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var parsed driverTasksResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	conflicts := make(map[int64][]domain.ExternalTaskConflict, len(parsed.Tasks))
	for _, task := range parsed.Tasks {
		if !task.StartTime.Before(task.EndTime) {
			c.log.Warn("GetDriverTasks: skipping task id=%d with invalid window [%s, %s)",
				task.ID, task.StartTime.Format(time.RFC3339), task.EndTime.Format(time.RFC3339))
			continue
		}

		conflicts[task.DriverID] = append(conflicts[task.DriverID], domain.ExternalTaskConflict{
			DriverID: task.DriverID,
			Window: domain.TimeWindow{
				Start: task.StartTime.UTC(),
				End:   task.EndTime.UTC(),
			},
		})
	}

	c.log.Info("GetDriverTasks: fetched %d tasks for %d drivers on %s",
		len(parsed.Tasks), len(conflicts), date.UTC().Format(domain.DateFormat))

	return conflicts, nil
}
