package resources

import (
	"context"
	"database/sql"
	"time"
)

// DBExecutor интерфейс для выполнения запросов к БД
// Поддерживает *sql.DB и *sql.Tx
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// MetricsRecorder интерфейс для записи метрик запросов к БД
// Реализуется pkg/metrics; nil-реализация допустима
type MetricsRecorder interface {
	ObserveUpstream(operation string, duration time.Duration, err error)
}
