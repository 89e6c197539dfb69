package warmup

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_daily_slots"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_monthly_availability"
)

// MonthlyAvailabilityUseCase интерфейс use case месячного обзора
type MonthlyAvailabilityUseCase interface {
	Execute(ctx context.Context, req *get_monthly_availability.Request) (*get_monthly_availability.Response, error)
}

// DailySlotsUseCase интерфейс use case слотов дня
type DailySlotsUseCase interface {
	Execute(ctx context.Context, req *get_daily_slots.Request) (*get_daily_slots.Response, error)
}

// StatsCache интерфейс кэша с диагностикой содержимого
type StatsCache interface {
	Stats(ctx context.Context) (cache.Stats, error)
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
