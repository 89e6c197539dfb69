package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// entry запись кэша
// Записи неизменяемы после создания: Set с тем же ключом заменяет запись целиком
type entry struct {
	data      []byte
	writtenAt time.Time
	ttl       time.Duration
}

func (e entry) expiresAt() time.Time {
	return e.writtenAt.Add(e.ttl)
}

// MemoryCache процессно-локальный TTL кэш с ограничением ёмкости
//
// Истечение TTL проверяется лениво при чтении и дополнительно фоновой
// очисткой с фиксированным интервалом. При переполнении вытесняется
// одна запись с самым старым временем записи (не LRU по доступу -
// намеренно простая политика)
//
// Кэш локален для процесса: несколько экземпляров сервиса имеют независимые,
// потенциально расходящиеся кэши. Для горизонтального масштабирования
// используется RedisCache за тем же интерфейсом
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry

	maxSize       int
	defaultTTL    time.Duration
	sweepInterval time.Duration

	clock   Clock
	metrics MetricsRecorder
	logger  Logger

	sweepMu   sync.Mutex
	stopSweep chan struct{}
}

// NewMemoryCache создает новый кэш в памяти
// metrics может быть nil
func NewMemoryCache(maxSize int, defaultTTL, sweepInterval time.Duration, metrics MetricsRecorder, logger Logger) *MemoryCache {
	return &MemoryCache{
		entries:       make(map[string]entry),
		maxSize:       maxSize,
		defaultTTL:    defaultTTL,
		sweepInterval: sweepInterval,
		clock:         systemClock{},
		metrics:       metrics,
		logger:        logger,
	}
}

// Get возвращает значение по ключу
// Запись с истёкшим TTL ведёт себя как отсутствующая и удаляется
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.recordMiss()
		return nil, false
	}

	if !c.clock.Now().Before(e.expiresAt()) {
		delete(c.entries, key)
		c.recordExpiry()
		c.recordMiss()
		c.recordSize()
		return nil, false
	}

	c.recordHit()
	return e.data, true
}

// Set сохраняет значение по ключу
// ttl <= 0 означает TTL по умолчанию. Существующая запись заменяется
// При заполненной ёмкости перед вставкой вытесняется самая старая по времени записи
func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}

	c.entries[key] = entry{
		data:      data,
		writtenAt: c.clock.Now(),
		ttl:       ttl,
	}
	c.recordSize()
}

// evictOldestLocked удаляет одну запись с самым старым временем записи
// Вызывается под write-блокировкой
func (c *MemoryCache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time

	for key, e := range c.entries {
		if oldestKey == "" || e.writtenAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.writtenAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.recordEviction()
	}
}

// Delete удаляет запись по ключу
func (c *MemoryCache) Delete(_ context.Context, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	c.recordSize()
	return true
}

// DeletePattern удаляет все записи, ключи которых соответствуют шаблону
// Шаблон поддерживает '*' - любую подстроку (включая пустую)
// Возвращает количество удалённых записей
func (c *MemoryCache) DeletePattern(_ context.Context, pattern string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if matchPattern(pattern, key) {
			delete(c.entries, key)
			removed++
		}
	}

	if removed > 0 {
		c.recordSize()
	}
	return removed, nil
}

// Has проверяет наличие непросроченной записи без учёта попадания в метриках
func (c *MemoryCache) Has(_ context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return ok && c.clock.Now().Before(e.expiresAt())
}

// Clear удаляет все записи
func (c *MemoryCache) Clear(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := len(c.entries)
	c.entries = make(map[string]entry)
	c.recordSize()
	return removed, nil
}

// Stats возвращает снимок состояния кэша для мониторинга
func (c *MemoryCache) Stats(_ context.Context) (Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.clock.Now()
	entries := make([]EntryStat, 0, len(c.entries))
	for key, e := range c.entries {
		entries = append(entries, EntryStat{
			Key:        key,
			AgeSeconds: int64(now.Sub(e.writtenAt).Seconds()),
			TTLSeconds: int64(e.ttl.Seconds()),
		})
	}

	return Stats{
		Backend: "memory",
		Size:    len(c.entries),
		MaxSize: c.maxSize,
		Entries: entries,
	}, nil
}

// StartSweep запускает фоновую очистку просроченных записей
// Очистка останавливается вызовом StopSweep; повторный запуск без остановки игнорируется
func (c *MemoryCache) StartSweep() {
	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()

	if c.stopSweep != nil {
		return
	}
	c.stopSweep = make(chan struct{})

	go func(stop chan struct{}) {
		ticker := time.NewTicker(c.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.sweepExpired()
			case <-stop:
				return
			}
		}
	}(c.stopSweep)
}

// StopSweep останавливает фоновую очистку
func (c *MemoryCache) StopSweep() {
	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()

	if c.stopSweep == nil {
		return
	}
	close(c.stopSweep)
	c.stopSweep = nil
}

// sweepExpired удаляет все просроченные записи независимо от обращений к ним
func (c *MemoryCache) sweepExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt()) {
			delete(c.entries, key)
			removed++
			c.recordExpiry()
		}
	}

	if removed > 0 {
		c.recordSize()
		if c.logger != nil {
			c.logger.Info("MemoryCache: sweep removed %d expired entries, %d remain", removed, len(c.entries))
		}
	}
}

// matchPattern проверяет соответствие ключа шаблону с '*' (любая подстрока)
func matchPattern(pattern, key string) bool {
	parts := strings.Split(pattern, "*")

	// Без wildcard - точное совпадение
	if len(parts) == 1 {
		return pattern == key
	}

	// Первая часть должна быть префиксом
	if !strings.HasPrefix(key, parts[0]) {
		return false
	}
	key = key[len(parts[0]):]

	// Последняя часть должна быть суффиксом
	last := parts[len(parts)-1]
	if !strings.HasSuffix(key, last) {
		return false
	}
	key = key[:len(key)-len(last)]

	// Промежуточные части должны встречаться по порядку
	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(key, part)
		if idx < 0 {
			return false
		}
		key = key[idx+len(part):]
	}

	return true
}

func (c *MemoryCache) recordHit() {
	if c.metrics != nil {
		c.metrics.CacheHit()
	}
}

func (c *MemoryCache) recordMiss() {
	if c.metrics != nil {
		c.metrics.CacheMiss()
	}
}

func (c *MemoryCache) recordEviction() {
	if c.metrics != nil {
		c.metrics.CacheEviction()
	}
}

func (c *MemoryCache) recordExpiry() {
	if c.metrics != nil {
		c.metrics.CacheExpiry()
	}
}

func (c *MemoryCache) recordSize() {
	if c.metrics != nil {
		c.metrics.SetCacheSize(len(c.entries))
	}
}
