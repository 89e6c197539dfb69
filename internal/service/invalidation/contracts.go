package invalidation

import "context"

// Cache интерфейс кэша с удалением по шаблону
type Cache interface {
	DeletePattern(ctx context.Context, pattern string) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
