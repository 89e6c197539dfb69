package invalidate_cache

import (
	"context"
	"time"
)

type InvalidationService interface {
	BookingChanged(ctx context.Context, date time.Time) (int, error)
	DriverAvailabilityChanged(ctx context.Context, driverID int64, dates []time.Time) (int, error)
	MoverAvailabilityChanged(ctx context.Context, moverID int64, dates []time.Time) (int, error)
	InvalidateAll(ctx context.Context) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
