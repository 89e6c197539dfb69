package get_monthly_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ResourceRepository интерфейс репозитория данных о ресурсах
type ResourceRepository interface {
	// CountResourcesByWeekday возвращает предагрегированное количество ресурсов по дням недели
	CountResourcesByWeekday(ctx context.Context, weekdays []domain.Weekday) (map[domain.Weekday]domain.ResourceCounts, error)
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
