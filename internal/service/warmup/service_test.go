package warmup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_daily_slots"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_monthly_availability"
)

type fakeMonthlyUC struct {
	requests []*get_monthly_availability.Request
	err      error
}

func (f *fakeMonthlyUC) Execute(_ context.Context, req *get_monthly_availability.Request) (*get_monthly_availability.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &get_monthly_availability.Response{}, nil
}

type fakeDailyUC struct {
	requests []*get_daily_slots.Request
	err      error
}

func (f *fakeDailyUC) Execute(_ context.Context, req *get_daily_slots.Request) (*get_daily_slots.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &get_daily_slots.Response{}, nil
}

type fakeStatsCache struct {
	stats cache.Stats
	err   error
}

func (f *fakeStatsCache) Stats(_ context.Context) (cache.Stats, error) {
	return f.stats, f.err
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestWarmAhead(t *testing.T) {
	monthly := &fakeMonthlyUC{}
	daily := &fakeDailyUC{}
	svc := NewService(Config{DaysAhead: 3, UnitCounts: []int{1, 2}}, monthly, daily, &fakeStatsCache{}, nopLogger{})
	svc.timeProvider = &fixedTime{now: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)}

	res := svc.WarmAhead(context.Background())

	// 2 месяца * 2 плана * 2 количества юнитов
	assert.Equal(t, 8, res.MonthlyWarmed)
	assert.Len(t, monthly.requests, 8)

	// 3 дня * 2 плана * 2 количества юнитов
	assert.Equal(t, 12, res.DailyWarmed)
	assert.Len(t, daily.requests, 12)
	assert.Equal(t, 0, res.Failed)

	// Прогреваются текущий и следующий месяц
	assert.Equal(t, time.January, monthly.requests[0].Month)
	assert.Equal(t, time.February, monthly.requests[len(monthly.requests)-1].Month)

	// Дневной прогрев начинается с сегодняшнего дня
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), daily.requests[0].Date)
}

func TestWarmAhead_YearBoundary(t *testing.T) {
	monthly := &fakeMonthlyUC{}
	svc := NewService(Config{DaysAhead: 1, UnitCounts: []int{1}}, monthly, &fakeDailyUC{}, &fakeStatsCache{}, nopLogger{})
	svc.timeProvider = &fixedTime{now: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)}

	svc.WarmAhead(context.Background())

	last := monthly.requests[len(monthly.requests)-1]
	assert.Equal(t, 2026, last.Year)
	assert.Equal(t, time.January, last.Month)
}

func TestWarmAhead_FailuresDoNotAbort(t *testing.T) {
	monthly := &fakeMonthlyUC{err: errors.New("db down")}
	daily := &fakeDailyUC{}
	svc := NewService(Config{DaysAhead: 2, UnitCounts: []int{1}}, monthly, daily, &fakeStatsCache{}, nopLogger{})
	svc.timeProvider = &fixedTime{now: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)}

	res := svc.WarmAhead(context.Background())

	// Месячные прогоны упали, но дневные всё равно выполнились
	assert.Equal(t, 0, res.MonthlyWarmed)
	assert.Equal(t, 4, res.Failed)
	assert.Equal(t, 4, res.DailyWarmed)
}

func TestNewService_Defaults(t *testing.T) {
	daily := &fakeDailyUC{}
	svc := NewService(Config{}, &fakeMonthlyUC{}, daily, &fakeStatsCache{}, nopLogger{})
	svc.timeProvider = &fixedTime{now: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)}

	res := svc.WarmAhead(context.Background())

	// По умолчанию: 7 дней, один юнит
	assert.Equal(t, 14, res.DailyWarmed)
}

func TestCacheStats(t *testing.T) {
	stats := cache.Stats{Backend: "memory", Size: 3, MaxSize: 100}
	svc := NewService(Config{}, &fakeMonthlyUC{}, &fakeDailyUC{}, &fakeStatsCache{stats: stats}, nopLogger{})

	got, err := svc.CacheStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats, got)
}

func TestCacheStats_Error(t *testing.T) {
	svc := NewService(Config{}, &fakeMonthlyUC{}, &fakeDailyUC{}, &fakeStatsCache{err: errors.New("redis down")}, nopLogger{})

	_, err := svc.CacheStats(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
