package get_daily_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ResourceRepository интерфейс репозитория данных о ресурсах
type ResourceRepository interface {
	// GetDailySnapshot возвращает ростеры с расписаниями и конфликты бронирований на дату
	GetDailySnapshot(ctx context.Context, date time.Time, excludeAppointmentID *int64) (*domain.DailySnapshot, error)
}

// TaskServiceClient интерфейс клиента внешней системы задач логистики
type TaskServiceClient interface {
	GetDriverTasks(ctx context.Context, date time.Time) (map[int64][]domain.ExternalTaskConflict, error)
}

// Cache интерфейс кэша ответов
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
