package warm_cache

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/warmup"
)

type WarmupService interface {
	WarmAhead(ctx context.Context) warmup.Result
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
