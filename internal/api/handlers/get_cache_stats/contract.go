package get_cache_stats

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
)

type WarmupService interface {
	CacheStats(ctx context.Context) (cache.Stats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
