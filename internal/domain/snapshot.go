package domain

import "time"

// ResourceCounts предагрегированное количество ресурсов, доступных в день недели
// Используется месячным представлением: одна выборка на все дни недели месяца
// вместо запроса на каждый день
type ResourceCounts struct {
	Movers  int
	Drivers int
}

// DailySnapshot полный срез данных о ресурсах на конкретную дату:
// ростеры с расписаниями и окна конфликтов по бронированиям
// Конфликты сгруппированы по ID ресурса; ID грузчиков и водителей -
// независимые пространства, поэтому карты раздельные
type DailySnapshot struct {
	Date            time.Time
	Movers          []Resource
	Drivers         []Resource
	MoverConflicts  map[int64][]BookingConflict
	DriverConflicts map[int64][]BookingConflict
}

// TotalResources возвращает общее количество рассмотренных ресурсов
func (s *DailySnapshot) TotalResources() int {
	return len(s.Movers) + len(s.Drivers)
}

// TotalBookingConflicts возвращает общее количество конфликтов по бронированиям
func (s *DailySnapshot) TotalBookingConflicts() int {
	total := 0
	for _, conflicts := range s.MoverConflicts {
		total += len(conflicts)
	}
	for _, conflicts := range s.DriverConflicts {
		total += len(conflicts)
	}
	return total
}
