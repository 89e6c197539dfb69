package get_daily_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Понедельник
var testDate = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

type fakeResourceRepo struct {
	snapshot *domain.DailySnapshot
	err      error
	calls    int
	lastExcl *int64
}

func (f *fakeResourceRepo) GetDailySnapshot(_ context.Context, _ time.Time, excludeAppointmentID *int64) (*domain.DailySnapshot, error) {
	f.calls++
	f.lastExcl = excludeAppointmentID
	return f.snapshot, f.err
}

type fakeTaskClient struct {
	tasks map[int64][]domain.ExternalTaskConflict
	err   error
	calls int
}

func (f *fakeTaskClient) GetDriverTasks(_ context.Context, _ time.Time) (map[int64][]domain.ExternalTaskConflict, error) {
	f.calls++
	return f.tasks, f.err
}

type fakeCache struct {
	store map[string][]byte
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	data, ok := f.store[key]
	return data, ok
}

func (f *fakeCache) Set(_ context.Context, key string, data []byte, _ time.Duration) {
	f.sets++
	f.store[key] = data
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testConfig() Config {
	return Config{
		OpenTime:            "08:00",
		CloseTime:           "20:00",
		SlotDurationMinutes: 60,
		CacheTTL:            5 * time.Minute,
	}
}

func weekPattern(start, end string) domain.AvailabilityPattern {
	return domain.AvailabilityPattern{
		domain.WeekdayMonday: []domain.TimeRange{{Start: types.TimeString(start), End: types.TimeString(end)}},
	}
}

func testSnapshot() *domain.DailySnapshot {
	return &domain.DailySnapshot{
		Date: testDate,
		Movers: []domain.Resource{
			{ID: 10, Name: "Грузчик", Type: domain.ResourceMover, Pattern: weekPattern("09:00", "17:00")},
		},
		Drivers: []domain.Resource{
			{ID: 1, Name: "Водитель 1", Type: domain.ResourceDriver, Pattern: weekPattern("09:00", "17:00")},
			{ID: 2, Name: "Водитель 2", Type: domain.ResourceDriver, Pattern: weekPattern("09:00", "17:00")},
		},
		MoverConflicts:  map[int64][]domain.BookingConflict{},
		DriverConflicts: map[int64][]domain.BookingConflict{},
	}
}

func newTestUseCase(repo *fakeResourceRepo, tasks *fakeTaskClient, cacheStore *fakeCache, now time.Time) *UseCase {
	uc := NewUseCase(testConfig(), repo, tasks, cacheStore, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func slotByStart(t *testing.T, resp *Response, start string) TimeSlot {
	t.Helper()
	for _, s := range resp.TimeSlots {
		if s.StartTime.String() == start {
			return s
		}
	}
	t.Fatalf("slot %s not found in response", start)
	return TimeSlot{}
}

func TestExecute_FullServiceHappyPath(t *testing.T) {
	repo := &fakeResourceRepo{snapshot: testSnapshot()}
	tasks := &fakeTaskClient{}
	cacheStore := newFakeCache()
	uc := newTestUseCase(repo, tasks, cacheStore, testDate.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		PlanType:  domain.PlanFullService,
		UnitCount: 2,
	})
	require.NoError(t, err)

	// Рабочий день 08:00-20:00 с часовыми слотами
	assert.Len(t, resp.TimeSlots, 12)
	assert.Equal(t, 12, resp.Meta.SlotsEvaluated)
	assert.Equal(t, 3, resp.Meta.TotalResources)
	assert.False(t, resp.Meta.CacheHit)

	// Ресурсы работают 09:00-17:00: доступны слоты с 09:00 по 16:00
	for _, start := range []string{"09:00", "12:00", "16:00"} {
		slot := slotByStart(t, resp, start)
		assert.True(t, slot.Available, "slot %s", start)
		assert.Equal(t, 1, slot.AvailableMovers)
		assert.Equal(t, 2, slot.AvailableDrivers)
		// FULL_SERVICE с грузчиком: max(2-1, 1) = 1 водитель
		assert.Equal(t, 1, slot.DriversNeeded)
	}

	for _, start := range []string{"08:00", "17:00", "19:00"} {
		slot := slotByStart(t, resp, start)
		assert.False(t, slot.Available, "slot %s", start)
	}

	// Результат закэширован
	assert.Equal(t, 1, cacheStore.sets)
}

func TestExecute_DriverBookingConflictWithBuffers(t *testing.T) {
	snapshot := testSnapshot()
	// Бронирование водителя 1 на 10:00-11:30: с буферами блокирует [09:45, 11:45)
	snapshot.DriverConflicts[1] = []domain.BookingConflict{{
		ResourceID:   1,
		ServiceStart: time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
		ServiceEnd:   time.Date(2025, 1, 6, 11, 30, 0, 0, time.UTC),
	}}

	repo := &fakeResourceRepo{snapshot: snapshot}
	uc := newTestUseCase(repo, &fakeTaskClient{}, newFakeCache(), testDate.AddDate(0, 0, -1))

	// DIY с двумя юнитами требует двух водителей
	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		PlanType:  domain.PlanDIY,
		UnitCount: 2,
	})
	require.NoError(t, err)

	for _, start := range []string{"09:00", "10:00", "11:00"} {
		slot := slotByStart(t, resp, start)
		assert.False(t, slot.Available, "slot %s", start)
		assert.Equal(t, 1, slot.AvailableDrivers)
	}

	// Окно блокировки кончается в 11:45 - слот 12:00 не задет
	slot := slotByStart(t, resp, "12:00")
	assert.True(t, slot.Available)
	assert.Equal(t, 2, slot.AvailableDrivers)

	assert.Equal(t, 1, resp.Meta.BookingConflicts)
}

func TestExecute_ExternalTaskConflict(t *testing.T) {
	repo := &fakeResourceRepo{snapshot: testSnapshot()}
	tasks := &fakeTaskClient{tasks: map[int64][]domain.ExternalTaskConflict{
		2: {{
			DriverID: 2,
			Window: domain.TimeWindow{
				Start: time.Date(2025, 1, 6, 13, 0, 0, 0, time.UTC),
				End:   time.Date(2025, 1, 6, 14, 0, 0, 0, time.UTC),
			},
		}},
	}}
	uc := newTestUseCase(repo, tasks, newFakeCache(), testDate.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		PlanType:  domain.PlanDIY,
		UnitCount: 2,
	})
	require.NoError(t, err)

	// Задачи внешней системы проверяются без буферов
	assert.False(t, slotByStart(t, resp, "13:00").Available)
	assert.True(t, slotByStart(t, resp, "12:00").Available)
	assert.True(t, slotByStart(t, resp, "14:00").Available)

	assert.Equal(t, 1, resp.Meta.TaskConflicts)
}

func TestExecute_PastDate(t *testing.T) {
	repo := &fakeResourceRepo{snapshot: testSnapshot()}
	tasks := &fakeTaskClient{}
	cacheStore := newFakeCache()
	// "Сегодня" позже запрашиваемой даты
	uc := newTestUseCase(repo, tasks, cacheStore, testDate.AddDate(0, 0, 3))

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		PlanType:  domain.PlanDIY,
		UnitCount: 1,
	})
	require.NoError(t, err)

	// Форма ответа сохраняется, но все слоты недоступны
	assert.Len(t, resp.TimeSlots, 12)
	for _, slot := range resp.TimeSlots {
		assert.False(t, slot.Available)
		assert.Equal(t, domain.LevelLow, slot.AvailabilityLevel)
	}

	// Источники данных не трогаются, ответ не кэшируется
	assert.Equal(t, 0, repo.calls)
	assert.Equal(t, 0, tasks.calls)
	assert.Equal(t, 0, cacheStore.sets)
}

func TestExecute_CacheHit(t *testing.T) {
	repo := &fakeResourceRepo{snapshot: testSnapshot()}
	cacheStore := newFakeCache()
	uc := newTestUseCase(repo, &fakeTaskClient{}, cacheStore, testDate.AddDate(0, 0, -1))

	req := &Request{Date: testDate, PlanType: domain.PlanDIY, UnitCount: 1}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Meta.CacheHit)
	assert.Equal(t, 1, repo.calls)

	// Повторный запрос отдается из кэша без обращения к данным
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Meta.CacheHit)
	assert.Equal(t, 1, repo.calls)

	// Ответы идентичны во всём, кроме флага кэша
	assert.Equal(t, first.TimeSlots, second.TimeSlots)
	assert.Equal(t, first.Meta.SlotsEvaluated, second.Meta.SlotsEvaluated)
}

func TestExecute_CorruptedCacheEntryRecomputes(t *testing.T) {
	repo := &fakeResourceRepo{snapshot: testSnapshot()}
	cacheStore := newFakeCache()
	uc := newTestUseCase(repo, &fakeTaskClient{}, cacheStore, testDate.AddDate(0, 0, -1))

	req := &Request{Date: testDate, PlanType: domain.PlanDIY, UnitCount: 1}

	// Повреждённая запись в кэше трактуется как промах
	cacheStore.store["availability:daily:date:2025-01-06:plan:DIY:units:1"] = []byte("{not json")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Meta.CacheHit)
	assert.Equal(t, 1, repo.calls)
}

func TestExecute_ExcludeAppointmentID(t *testing.T) {
	repo := &fakeResourceRepo{snapshot: testSnapshot()}
	uc := newTestUseCase(repo, &fakeTaskClient{}, newFakeCache(), testDate.AddDate(0, 0, -1))

	_, err := uc.Execute(context.Background(), &Request{
		Date:                 testDate,
		PlanType:             domain.PlanDIY,
		UnitCount:            1,
		ExcludeAppointmentID: ptr.Ptr(int64(42)),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastExcl)
	assert.Equal(t, int64(42), *repo.lastExcl)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeResourceRepo{}, &fakeTaskClient{}, newFakeCache(), testDate)

	tests := []struct {
		name string
		req  *Request
	}{
		{"unknown plan", &Request{Date: testDate, PlanType: "PREMIUM", UnitCount: 1}},
		{"zero units", &Request{Date: testDate, PlanType: domain.PlanDIY, UnitCount: 0}},
		{"too many units", &Request{Date: testDate, PlanType: domain.PlanDIY, UnitCount: domain.MaxUnitCount + 1}},
		{"zero date", &Request{PlanType: domain.PlanDIY, UnitCount: 1}},
		{"non-positive exclude id", &Request{Date: testDate, PlanType: domain.PlanDIY, UnitCount: 1, ExcludeAppointmentID: ptr.Ptr(int64(0))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_UpstreamErrors(t *testing.T) {
	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeResourceRepo{err: errors.New("connection refused")}
		uc := newTestUseCase(repo, &fakeTaskClient{}, newFakeCache(), testDate.AddDate(0, 0, -1))

		_, err := uc.Execute(context.Background(), &Request{Date: testDate, PlanType: domain.PlanDIY, UnitCount: 1})
		// Сбой источника - это ошибка, а не "нет доступности"
		assert.ErrorIs(t, err, ErrUpstreamData)
	})

	t.Run("task service failure", func(t *testing.T) {
		tasks := &fakeTaskClient{err: errors.New("timeout")}
		uc := newTestUseCase(&fakeResourceRepo{snapshot: testSnapshot()}, tasks, newFakeCache(), testDate.AddDate(0, 0, -1))

		_, err := uc.Execute(context.Background(), &Request{Date: testDate, PlanType: domain.PlanDIY, UnitCount: 1})
		assert.ErrorIs(t, err, ErrUpstreamData)
	})
}

func TestExecute_NoMoversFullService(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.Movers = nil

	uc := newTestUseCase(&fakeResourceRepo{snapshot: snapshot}, &fakeTaskClient{}, newFakeCache(), testDate.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		PlanType:  domain.PlanFullService,
		UnitCount: 2,
	})
	require.NoError(t, err)

	// Без грузчика FULL_SERVICE требует водителя на каждый юнит
	slot := slotByStart(t, resp, "10:00")
	assert.Equal(t, 2, slot.DriversNeeded)
	assert.False(t, slot.Available)
	assert.Equal(t, domain.LevelLow, slot.AvailabilityLevel)
}
