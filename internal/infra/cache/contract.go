package cache

import "time"

// Clock интерфейс для получения текущего времени (для тестирования)
type Clock interface {
	Now() time.Time
}

// systemClock реальные часы для production
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// MetricsRecorder интерфейс для записи метрик кэша
// Реализуется pkg/metrics; nil-реализация допустима
type MetricsRecorder interface {
	CacheHit()
	CacheMiss()
	CacheEviction()
	CacheExpiry()
	SetCacheSize(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EntryStat информация об одной записи кэша для мониторинга
type EntryStat struct {
	Key        string `json:"key"`
	AgeSeconds int64  `json:"ageSeconds"`
	TTLSeconds int64  `json:"ttlSeconds"`
}

// Stats снимок состояния кэша для мониторинга
type Stats struct {
	Backend string      `json:"backend"`
	Size    int         `json:"size"`
	MaxSize int         `json:"maxSize"`
	Entries []EntryStat `json:"entries"`
}
