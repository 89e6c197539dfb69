package invalidation

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
)

// Service фасад событийной инвалидации кэша доступности
//
// Подписчики событий (бронирования, расписания ресурсов) не знают формата
// ключей кэша: они сообщают фасаду даты, которые затронуты изменением,
// а фасад переводит их в шаблоны удаления
type Service struct {
	cache  Cache
	logger Logger
}

// NewService создает новый экземпляр сервиса инвалидации
func NewService(cacheStore Cache, logger Logger) *Service {
	return &Service{
		cache:  cacheStore,
		logger: logger,
	}
}

// BookingChanged инвалидирует кэш после создания, изменения или отмены
// бронирования на дату: все дневные ответы этой даты и месячные ответы
// её месяца
func (s *Service) BookingChanged(ctx context.Context, date time.Time) (int, error) {
	if date.IsZero() {
		return 0, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	s.logger.Info("BookingChanged: invalidating availability for %s", date.Format(domain.DateFormat))
	return s.invalidateDates(ctx, []time.Time{date})
}

// DriverAvailabilityChanged инвалидирует кэш после изменения расписания
// водителя на перечисленные даты
func (s *Service) DriverAvailabilityChanged(ctx context.Context, driverID int64, dates []time.Time) (int, error) {
	if driverID <= 0 {
		return 0, fmt.Errorf("%w: driverId must be positive", ErrInvalidInput)
	}
	if len(dates) == 0 {
		return 0, fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}

	s.logger.Info("DriverAvailabilityChanged: driver=%d, dates=%d", driverID, len(dates))
	return s.invalidateDates(ctx, dates)
}

// MoverAvailabilityChanged инвалидирует кэш после изменения расписания
// грузчика на перечисленные даты
func (s *Service) MoverAvailabilityChanged(ctx context.Context, moverID int64, dates []time.Time) (int, error) {
	if moverID <= 0 {
		return 0, fmt.Errorf("%w: moverId must be positive", ErrInvalidInput)
	}
	if len(dates) == 0 {
		return 0, fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}

	s.logger.Info("MoverAvailabilityChanged: mover=%d, dates=%d", moverID, len(dates))
	return s.invalidateDates(ctx, dates)
}

// InvalidateAll удаляет все ответы доступности из кэша
// Используется при массовых изменениях данных (миграции, импорт расписаний)
func (s *Service) InvalidateAll(ctx context.Context) (int, error) {
	removed, err := s.cache.DeletePattern(ctx, cache.AllPattern())
	if err != nil {
		s.logger.Error("InvalidateAll: failed to delete cache entries: %v", err)
		return 0, fmt.Errorf("%w: InvalidateAll - cache error: %v", ErrInternal, err)
	}

	s.logger.Info("InvalidateAll: removed %d cache entries", removed)
	return removed, nil
}

// invalidateDates удаляет дневные ответы каждой даты и месячные ответы
// затронутых месяцев. Месяцы дедуплицируются: несколько дат одного месяца
// дают одно удаление по месячному шаблону
func (s *Service) invalidateDates(ctx context.Context, dates []time.Time) (int, error) {
	total := 0
	months := make(map[string]time.Time)

	for _, date := range dates {
		removed, err := s.cache.DeletePattern(ctx, cache.DailyDatePattern(date))
		if err != nil {
			s.logger.Error("invalidateDates: failed to delete daily entries for %s: %v",
				date.Format(domain.DateFormat), err)
			return total, fmt.Errorf("%w: invalidateDates - cache error: %v", ErrInternal, err)
		}
		total += removed

		months[date.UTC().Format(domain.MonthFormat)] = date
	}

	for _, date := range months {
		removed, err := s.cache.DeletePattern(ctx, cache.MonthPattern(date))
		if err != nil {
			s.logger.Error("invalidateDates: failed to delete monthly entries for %s: %v",
				date.Format(domain.MonthFormat), err)
			return total, fmt.Errorf("%w: invalidateDates - cache error: %v", ErrInternal, err)
		}
		total += removed
	}

	return total, nil
}
