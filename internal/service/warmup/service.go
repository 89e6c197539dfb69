package warmup

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_daily_slots"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_monthly_availability"
)

// Config параметры прогрева кэша
type Config struct {
	// DaysAhead сколько ближайших дней прогревать на дневной гранулярности
	DaysAhead int

	// UnitCounts типовые количества юнитов, для которых прогреваются ответы
	UnitCounts []int
}

// Result итог одного прогона прогрева
type Result struct {
	MonthlyWarmed int   // Успешно прогретых месячных ответов
	DailyWarmed   int   // Успешно прогретых дневных ответов
	Failed        int   // Запросов, завершившихся ошибкой
	DurationMs    int64 // Длительность прогона
}

// Service плановый прогрев кэша доступности
//
// Прогрев идёт через обычные use case: промах кэша вычисляет и кэширует
// ответ, попадание ничего не стоит. Ошибки отдельных запросов не прерывают
// прогон - следующий прогон по расписанию повторит неудавшиеся комбинации
type Service struct {
	cfg          Config
	monthlyUC    MonthlyAvailabilityUseCase
	dailyUC      DailySlotsUseCase
	statsCache   StatsCache
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса прогрева
func NewService(
	cfg Config,
	monthlyUC MonthlyAvailabilityUseCase,
	dailyUC DailySlotsUseCase,
	statsCache StatsCache,
	logger Logger,
) *Service {
	if len(cfg.UnitCounts) == 0 {
		cfg.UnitCounts = []int{1}
	}
	if cfg.DaysAhead <= 0 {
		cfg.DaysAhead = 7
	}

	return &Service{
		cfg:          cfg,
		monthlyUC:    monthlyUC,
		dailyUC:      dailyUC,
		statsCache:   statsCache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WarmAhead прогревает месячные ответы текущего и следующего месяца
// и дневные ответы ближайших DaysAhead дней для обоих тарифных планов
// и типовых количеств юнитов
func (s *Service) WarmAhead(ctx context.Context) Result {
	started := time.Now()
	now := s.timeProvider.Now()
	plans := []domain.PlanType{domain.PlanDIY, domain.PlanFullService}

	var res Result

	// Текущий и следующий месяц
	months := []time.Time{now, now.AddDate(0, 1, 0)}
	for _, m := range months {
		for _, plan := range plans {
			for _, units := range s.cfg.UnitCounts {
				_, err := s.monthlyUC.Execute(ctx, &get_monthly_availability.Request{
					Year:      m.Year(),
					Month:     m.Month(),
					PlanType:  plan,
					UnitCount: units,
				})
				if err != nil {
					s.logger.Warn("WarmAhead: monthly %04d-%02d plan=%s units=%d failed: %v",
						m.Year(), int(m.Month()), plan, units, err)
					res.Failed++
					continue
				}
				res.MonthlyWarmed++
			}
		}
	}

	// Ближайшие дни
	for d := 0; d < s.cfg.DaysAhead; d++ {
		date := domain.StartOfDayUTC(now.AddDate(0, 0, d))
		for _, plan := range plans {
			for _, units := range s.cfg.UnitCounts {
				_, err := s.dailyUC.Execute(ctx, &get_daily_slots.Request{
					Date:      date,
					PlanType:  plan,
					UnitCount: units,
				})
				if err != nil {
					s.logger.Warn("WarmAhead: daily %s plan=%s units=%d failed: %v",
						date.Format(domain.DateFormat), plan, units, err)
					res.Failed++
					continue
				}
				res.DailyWarmed++
			}
		}
	}

	res.DurationMs = time.Since(started).Milliseconds()
	s.logger.Info("WarmAhead: monthly=%d, daily=%d, failed=%d in %dms",
		res.MonthlyWarmed, res.DailyWarmed, res.Failed, res.DurationMs)

	return res
}

// CacheStats возвращает диагностику содержимого кэша
func (s *Service) CacheStats(ctx context.Context) (cache.Stats, error) {
	stats, err := s.statsCache.Stats(ctx)
	if err != nil {
		s.logger.Error("CacheStats: failed to collect stats: %v", err)
		return cache.Stats{}, ErrInternal
	}
	return stats, nil
}
