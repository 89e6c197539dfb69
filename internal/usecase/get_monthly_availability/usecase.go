package get_monthly_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// Config параметры кэширования месячного представления
type Config struct {
	CacheTTL time.Duration
}

// UseCase use case месячного обзора доступности
//
// Работает на предагрегированных количествах ресурсов по дням недели:
// одна выборка на все различные дни недели месяца вместо запроса на каждый
// день. Временная гранулярность слотов на этом уровне не применяется
type UseCase struct {
	cfg          Config
	resourceRepo ResourceRepository
	cache        Cache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cfg Config,
	resourceRepo ResourceRepository,
	cacheStore Cache,
	logger Logger,
) *UseCase {
	return &UseCase{
		cfg:          cfg,
		resourceRepo: resourceRepo,
		cache:        cacheStore,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case месячного обзора
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetMonthlyAvailability: year=%d, month=%d, plan=%s, units=%d",
		req.Year, req.Month, req.PlanType, req.UnitCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthlyAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Чтение кэша
	key := cache.MonthlyKey(req.Year, req.Month, string(req.PlanType), req.UnitCount)
	if resp, ok := uc.fromCache(ctx, key); ok {
		uc.logger.Info("GetMonthlyAvailability: cache hit for %s", key)
		return resp, nil
	}

	started := time.Now()
	now := uc.timeProvider.Now()

	// 3. Собираем дни месяца; для прошедших дней проверка ресурсов не выполняется
	totalDays := domain.DaysInMonth(req.Year, req.Month)
	days := make([]DayAvailability, 0, totalDays)
	weekdaySet := make(map[domain.Weekday]struct{})

	for d := 1; d <= totalDays; d++ {
		date := time.Date(req.Year, req.Month, d, 0, 0, 0, 0, time.UTC)
		days = append(days, DayAvailability{Date: date})

		if !domain.IsPastDate(date, now) {
			weekdaySet[domain.DayOfWeek(date)] = struct{}{}
		}
	}

	// 4. Одна выборка предагрегированных количеств на все различные дни недели
	// Если весь месяц в прошлом, источники данных не трогаем вовсе
	var counts map[domain.Weekday]domain.ResourceCounts
	if len(weekdaySet) > 0 {
		weekdays := make([]domain.Weekday, 0, len(weekdaySet))
		for day := range weekdaySet {
			weekdays = append(weekdays, day)
		}

		var err error
		counts, err = uc.resourceRepo.CountResourcesByWeekday(ctx, weekdays)
		if err != nil {
			uc.logger.Error("GetMonthlyAvailability: failed to count resources: %v", err)
			return nil, fmt.Errorf("%w: failed to count resources: %v", ErrUpstreamData, err)
		}
	}

	// 5. Проверка достаточности ресурсов на уровне количеств
	evaluated := 0
	for i := range days {
		if domain.IsPastDate(days[i].Date, now) {
			continue
		}
		evaluated++
		uc.evaluateDay(&days[i], counts[domain.DayOfWeek(days[i].Date)], req)
	}

	totalResources := 0
	for _, c := range counts {
		if c.Movers+c.Drivers > totalResources {
			totalResources = c.Movers + c.Drivers
		}
	}

	resp := &Response{
		Year:      req.Year,
		Month:     req.Month,
		PlanType:  req.PlanType,
		UnitCount: req.UnitCount,
		Days:      days,
		Meta: Metadata{
			DurationMs:     time.Since(started).Milliseconds(),
			DaysEvaluated:  evaluated,
			TotalResources: totalResources,
			CacheHit:       false,
		},
	}

	// 6. Сохраняем в кэш
	uc.toCache(ctx, key, resp)

	uc.logger.Info("GetMonthlyAvailability: evaluated %d of %d days for %04d-%02d",
		evaluated, totalDays, req.Year, int(req.Month))

	return resp, nil
}

// evaluateDay проверяет достаточность ресурсов дня по предагрегированным количествам
func (uc *UseCase) evaluateDay(day *DayAvailability, counts domain.ResourceCounts, req *Request) {
	requiredMovers := 0
	moverAdequate := true
	if req.PlanType.RequiresMover() {
		requiredMovers = 1
		moverAdequate = counts.Movers >= requiredMovers
	}

	requirement := domain.CalculateDriverRequirement(req.PlanType, req.UnitCount, moverAdequate)

	day.HasAvailability = moverAdequate && counts.Drivers >= requirement.DriversNeeded
	if day.HasAvailability {
		day.Level = ptr.Ptr(domain.DetermineAvailabilityLevel(
			counts.Movers, counts.Drivers, requiredMovers, requirement.DriversNeeded))
	}
}

// fromCache читает и разбирает закэшированный ответ
// Повреждённая запись трактуется как промах
func (uc *UseCase) fromCache(ctx context.Context, key string) (*Response, bool) {
	data, ok := uc.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		uc.logger.Warn("GetMonthlyAvailability: corrupted cache entry %s, recomputing: %v", key, err)
		return nil, false
	}

	resp.Meta.CacheHit = true
	return &resp, true
}

// toCache сохраняет ответ в кэш
// Ошибка сериализации не мешает вернуть корректный ответ
func (uc *UseCase) toCache(ctx context.Context, key string, resp *Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		uc.logger.Warn("GetMonthlyAvailability: failed to marshal response for cache: %v", err)
		return
	}
	uc.cache.Set(ctx, key, data, uc.cfg.CacheTTL)
}
