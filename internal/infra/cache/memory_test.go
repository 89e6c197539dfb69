package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock управляемые часы для тестов
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestCache(maxSize int, defaultTTL time.Duration) (*MemoryCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(maxSize, defaultTTL, time.Minute, nil, nil)
	c.clock = clock
	return c, clock
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(10, time.Minute)

	c.Set(ctx, "key", []byte("value"), 0)

	data, ok := c.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), data)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestMemoryCache_SetReplaces(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(10, time.Minute)

	c.Set(ctx, "key", []byte("old"), 0)
	c.Set(ctx, "key", []byte("new"), 0)

	data, ok := c.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), data)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Size)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(10, time.Minute)

	c.Set(ctx, "key", []byte("value"), 0)
	c.Set(ctx, "other", []byte("value"), 0)

	// Удаление существующего ключа
	assert.True(t, c.Delete(ctx, "key"))
	_, ok := c.Get(ctx, "key")
	assert.False(t, ok)

	// Повторное удаление и удаление отсутствующего ключа
	assert.False(t, c.Delete(ctx, "key"))
	assert.False(t, c.Delete(ctx, "missing"))

	// Соседние ключи не задеты
	assert.True(t, c.Has(ctx, "other"))

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Size)
}

func TestMemoryCache_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(10, time.Minute)

	c.Set(ctx, "key", []byte("value"), 30*time.Second)

	_, ok := c.Get(ctx, "key")
	assert.True(t, ok)

	// Ровно на границе TTL запись уже считается отсутствующей
	clock.Advance(30 * time.Second)
	_, ok = c.Get(ctx, "key")
	assert.False(t, ok)
	assert.False(t, c.Has(ctx, "key"))
}

func TestMemoryCache_TTLOverride(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(10, time.Minute)

	c.Set(ctx, "short", []byte("a"), 10*time.Second)
	c.Set(ctx, "default", []byte("b"), 0)

	clock.Advance(15 * time.Second)

	_, ok := c.Get(ctx, "short")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "default")
	assert.True(t, ok)
}

func TestMemoryCache_EvictsOldestOnCapacity(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(3, time.Hour)

	c.Set(ctx, "first", []byte("1"), 0)
	clock.Advance(time.Second)
	c.Set(ctx, "second", []byte("2"), 0)
	clock.Advance(time.Second)
	c.Set(ctx, "third", []byte("3"), 0)
	clock.Advance(time.Second)

	// Вставка сверх ёмкости вытесняет ровно одну самую старую запись
	c.Set(ctx, "fourth", []byte("4"), 0)

	_, ok := c.Get(ctx, "first")
	assert.False(t, ok, "oldest entry must be evicted")

	for _, key := range []string{"second", "third", "fourth"} {
		_, ok := c.Get(ctx, key)
		assert.True(t, ok, "entry %s must survive", key)
	}
}

func TestMemoryCache_EvictionIsByWriteTimeNotAccess(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(2, time.Hour)

	c.Set(ctx, "first", []byte("1"), 0)
	clock.Advance(time.Second)
	c.Set(ctx, "second", []byte("2"), 0)
	clock.Advance(time.Second)

	// Чтение самой старой записи не спасает её от вытеснения (не LRU)
	_, _ = c.Get(ctx, "first")

	c.Set(ctx, "third", []byte("3"), 0)

	_, ok := c.Get(ctx, "first")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "second")
	assert.True(t, ok)
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(100, time.Hour)

	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	otherDate := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)

	c.Set(ctx, DailyKey(date, "DIY", 1, nil), []byte("a"), 0)
	c.Set(ctx, DailyKey(date, "FULL_SERVICE", 2, nil), []byte("b"), 0)
	c.Set(ctx, DailyKey(otherDate, "DIY", 1, nil), []byte("c"), 0)
	c.Set(ctx, MonthlyKey(2025, time.January, "DIY", 1), []byte("d"), 0)

	removed, err := c.DeletePattern(ctx, "availability:daily:*date:2025-01-06*")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	// Записи других дат и месячные записи не затронуты
	assert.True(t, c.Has(ctx, DailyKey(otherDate, "DIY", 1, nil)))
	assert.True(t, c.Has(ctx, MonthlyKey(2025, time.January, "DIY", 1)))
}

func TestMemoryCache_DeletePatternExactKey(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(10, time.Hour)

	c.Set(ctx, "exact", []byte("a"), 0)
	c.Set(ctx, "exact:suffix", []byte("b"), 0)

	removed, err := c.DeletePattern(ctx, "exact")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.True(t, c.Has(ctx, "exact:suffix"))
}

func TestMemoryCache_Sweep(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(10, time.Minute)

	c.Set(ctx, "expired", []byte("a"), 10*time.Second)
	c.Set(ctx, "alive", []byte("b"), time.Hour)

	clock.Advance(30 * time.Second)
	c.sweepExpired()

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Size)
	assert.True(t, c.Has(ctx, "alive"))
}

func TestMemoryCache_StartStopSweep(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	c.StartSweep()
	// Повторный запуск без остановки игнорируется
	c.StartSweep()
	c.StopSweep()
	// Повторная остановка безопасна
	c.StopSweep()
}

func TestMemoryCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(10, time.Hour)

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)

	removed, err := c.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Size)
}

func TestMemoryCache_Stats(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(5, time.Minute)

	c.Set(ctx, "key", []byte("value"), 90*time.Second)
	clock.Advance(30 * time.Second)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "memory", stats.Backend)
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 5, stats.MaxSize)
	require.Len(t, stats.Entries, 1)
	assert.Equal(t, "key", stats.Entries[0].Key)
	assert.Equal(t, int64(30), stats.Entries[0].AgeSeconds)
	assert.Equal(t, int64(90), stats.Entries[0].TTLSeconds)
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"availability:*", "availability:daily:date:2025-01-06", true},
		{"availability:daily:*date:2025-01-06*", "availability:daily:date:2025-01-06:plan:DIY:units:1", true},
		{"availability:daily:*date:2025-01-06*", "availability:daily:date:2025-01-07:plan:DIY:units:1", false},
		{"availability:monthly:2025-01:*", "availability:monthly:2025-01:plan:DIY:units:1", true},
		{"availability:monthly:2025-01:*", "availability:daily:date:2025-01-06:plan:DIY:units:1", false},
		{"exact", "exact", true},
		{"exact", "exact:more", false},
		{"*", "anything", true},
		{"a*a", "a", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPattern(tt.pattern, tt.key), "pattern=%q key=%q", tt.pattern, tt.key)
	}
}
