package get_daily_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Config параметры генерации слотов и кэширования
type Config struct {
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	CacheTTL            time.Duration
}

// UseCase use case получения слотов дня с вычисленной доступностью
//
// Шаблон выполнения: ключ кэша -> чтение кэша -> при промахе вычисление ->
// запись в кэш -> ответ. Кэш - оптимизация: его сбои деградируют
// к свежему вычислению, а не к ошибке запроса
type UseCase struct {
	cfg          Config
	resourceRepo ResourceRepository
	taskClient   TaskServiceClient
	cache        Cache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cfg Config,
	resourceRepo ResourceRepository,
	taskClient TaskServiceClient,
	cacheStore Cache,
	logger Logger,
) *UseCase {
	return &UseCase{
		cfg:          cfg,
		resourceRepo: resourceRepo,
		taskClient:   taskClient,
		cache:        cacheStore,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDailySlots: date=%s, plan=%s, units=%d",
		req.Date.Format(domain.DateFormat), req.PlanType, req.UnitCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDailySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Чтение кэша
	key := cache.DailyKey(req.Date, string(req.PlanType), req.UnitCount, req.ExcludeAppointmentID)
	if resp, ok := uc.fromCache(ctx, key); ok {
		uc.logger.Info("GetDailySlots: cache hit for %s", key)
		return resp, nil
	}

	started := time.Now()
	now := uc.timeProvider.Now()

	// 3. Генерируем кандидатные слоты рабочего дня
	slots, err := domain.GenerateBusinessHourSlots(req.Date, uc.cfg.OpenTime, uc.cfg.CloseTime, uc.cfg.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetDailySlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 4. Прошедшая дата: полный список слотов с available=false,
	// без обращения к источникам данных. Форма ответа сохраняется
	// для стабильности API-контракта
	if domain.IsPastDate(req.Date, now) {
		uc.logger.Info("GetDailySlots: date %s is in the past, skipping resource checks",
			req.Date.Format(domain.DateFormat))
		return uc.pastDateResponse(req, slots, started), nil
	}

	// 5. Срез данных о ресурсах на дату (одно пакетное чтение)
	snapshot, err := uc.resourceRepo.GetDailySnapshot(ctx, req.Date, req.ExcludeAppointmentID)
	if err != nil {
		uc.logger.Error("GetDailySlots: failed to get daily snapshot: %v", err)
		return nil, fmt.Errorf("%w: failed to get daily snapshot: %v", ErrUpstreamData, err)
	}

	// 6. Окна задач внешней системы (независимый источник конфликтов,
	// проверяется отдельно от бронирований)
	taskConflicts, err := uc.taskClient.GetDriverTasks(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetDailySlots: failed to get driver tasks: %v", err)
		return nil, fmt.Errorf("%w: failed to get driver tasks: %v", ErrUpstreamData, err)
	}

	// 7. Вычисляем доступность каждого слота
	day := domain.DayOfWeek(req.Date)
	timeSlots := make([]TimeSlot, len(slots))
	for i, slot := range slots {
		timeSlots[i] = uc.evaluateSlot(req, day, slot, snapshot, taskConflicts)
	}

	totalTasks := 0
	for _, windows := range taskConflicts {
		totalTasks += len(windows)
	}

	resp := &Response{
		Date:      domain.StartOfDayUTC(req.Date),
		PlanType:  req.PlanType,
		UnitCount: req.UnitCount,
		TimeSlots: timeSlots,
		Meta: Metadata{
			DurationMs:       time.Since(started).Milliseconds(),
			SlotsEvaluated:   len(slots),
			TotalResources:   snapshot.TotalResources(),
			BookingConflicts: snapshot.TotalBookingConflicts(),
			TaskConflicts:    totalTasks,
			CacheHit:         false,
		},
	}

	// 8. Сохраняем в кэш
	uc.toCache(ctx, key, resp)

	uc.logger.Info("GetDailySlots: evaluated %d slots for %s (resources=%d, bookingConflicts=%d, taskConflicts=%d)",
		len(slots), req.Date.Format(domain.DateFormat),
		resp.Meta.TotalResources, resp.Meta.BookingConflicts, resp.Meta.TaskConflicts)

	return resp, nil
}

// evaluateSlot вычисляет доступность одного слота
func (uc *UseCase) evaluateSlot(
	req *Request,
	day domain.Weekday,
	slot domain.CandidateSlot,
	snapshot *domain.DailySnapshot,
	taskConflicts map[int64][]domain.ExternalTaskConflict,
) TimeSlot {
	requiredMovers := 0
	freeMovers := 0
	moverAdequate := true

	// Грузчики проверяются только для FULL_SERVICE
	if req.PlanType.RequiresMover() {
		requiredMovers = 1
		freeMovers = domain.CountFreeResources(snapshot.Movers, day, slot, snapshot.MoverConflicts, nil)
		moverAdequate = freeMovers >= requiredMovers
	}

	// Для DIY аргумент moverAvailable не влияет на результат
	requirement := domain.CalculateDriverRequirement(req.PlanType, req.UnitCount, moverAdequate)

	// Водители: бронирования и задачи внешней системы - раздельные источники конфликтов
	freeDrivers := domain.CountFreeResources(snapshot.Drivers, day, slot, snapshot.DriverConflicts, taskConflicts)

	available := moverAdequate && freeDrivers >= requirement.DriversNeeded

	return TimeSlot{
		StartTime:         slot.Start,
		EndTime:           slot.End,
		DisplayLabel:      slot.DisplayLabel,
		Available:         available,
		AvailabilityLevel: domain.DetermineAvailabilityLevel(freeMovers, freeDrivers, requiredMovers, requirement.DriversNeeded),
		AvailableMovers:   freeMovers,
		AvailableDrivers:  freeDrivers,
		DriversNeeded:     requirement.DriversNeeded,
	}
}

// pastDateResponse формирует ответ для прошедшей даты: все слоты недоступны
// Ответ не кэшируется - прошедшие даты не инвалидируются событиями
// и вычисляются без обращения к данным
func (uc *UseCase) pastDateResponse(req *Request, slots []domain.CandidateSlot, started time.Time) *Response {
	timeSlots := make([]TimeSlot, len(slots))
	for i, slot := range slots {
		timeSlots[i] = TimeSlot{
			StartTime:         slot.Start,
			EndTime:           slot.End,
			DisplayLabel:      slot.DisplayLabel,
			Available:         false,
			AvailabilityLevel: domain.LevelLow,
		}
	}

	return &Response{
		Date:      domain.StartOfDayUTC(req.Date),
		PlanType:  req.PlanType,
		UnitCount: req.UnitCount,
		TimeSlots: timeSlots,
		Meta: Metadata{
			DurationMs:     time.Since(started).Milliseconds(),
			SlotsEvaluated: len(slots),
			CacheHit:       false,
		},
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
		uc.logger.Warn("GetDailySlots: corrupted cache entry %s, recomputing: %v", key, err)
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
		uc.logger.Warn("GetDailySlots: failed to marshal response for cache: %v", err)
		return
	}
	uc.cache.Set(ctx, key, data, uc.cfg.CacheTTL)
}
