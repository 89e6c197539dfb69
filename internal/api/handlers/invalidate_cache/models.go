package invalidate_cache

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Типы событий инвалидации
const (
	EventBookingChanged            = "booking_changed"
	EventDriverAvailabilityChanged = "driver_availability_changed"
	EventMoverAvailabilityChanged  = "mover_availability_changed"
	EventAll                       = "all"
)

// InvalidateCacheRequest HTTP request model
// Поля date/dates/resourceId интерпретируются в зависимости от события:
// booking_changed требует date, события расписаний требуют resourceId и dates,
// all не требует ничего
type InvalidateCacheRequest struct {
	Event      string   `json:"event"`
	Date       string   `json:"date,omitempty"`
	Dates      []string `json:"dates,omitempty"`
	ResourceID int64    `json:"resourceId,omitempty"`
}

// InvalidateCacheResponse HTTP response model
type InvalidateCacheResponse struct {
	Event          string `json:"event"`
	EntriesRemoved int    `json:"entriesRemoved"`
}

// ParseDate парсит дату события
func (r *InvalidateCacheRequest) ParseDate() (time.Time, error) {
	if r.Date == "" {
		return time.Time{}, fmt.Errorf("date is required for event %s", r.Event)
	}
	return time.Parse(domain.DateFormat, r.Date)
}

// ParseDates парсит список дат события
func (r *InvalidateCacheRequest) ParseDates() ([]time.Time, error) {
	if len(r.Dates) == 0 {
		return nil, fmt.Errorf("dates are required for event %s", r.Event)
	}

	dates := make([]time.Time, len(r.Dates))
	for i, s := range r.Dates {
		date, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		dates[i] = date
	}
	return dates, nil
}
