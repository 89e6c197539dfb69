package domain

import "time"

// BookingConflict окно существующего бронирования, занимающее ресурс
type BookingConflict struct {
	ResourceID   int64
	ServiceStart time.Time
	ServiceEnd   time.Time
}

// BlockedWindow возвращает эффективное окно блокировки:
// сервисное окно, расширенное фиксированными буферами до и после
func (c BookingConflict) BlockedWindow() TimeWindow {
	return TimeWindow{
		Start: c.ServiceStart.Add(-BookingBufferBeforeMinutes * time.Minute),
		End:   c.ServiceEnd.Add(BookingBufferAfterMinutes * time.Minute),
	}
}

// ExternalTaskConflict окно задачи из внешней системы логистики, блокирующее водителя
// Проверяется отдельно от бронирований: это независимый источник конфликтов
type ExternalTaskConflict struct {
	DriverID int64
	Window   TimeWindow
}

// IsResourceFreeInWindow проверяет, свободен ли ресурс в окне слота
//
// Ресурс свободен, только если выполняются все условия:
//  1. недельное расписание ресурса содержит диапазон, полностью покрывающий слот
//  2. слот не пересекается ни с одним эффективным окном блокировки бронирований
//  3. слот не пересекается ни с одной задачей внешней системы
//
// bookings и tasks - конфликты именно этого ресурса
func IsResourceFreeInWindow(
	res Resource,
	day Weekday,
	slot CandidateSlot,
	bookings []BookingConflict,
	tasks []ExternalTaskConflict,
) bool {
	if !res.Pattern.CoversWindow(day, slot.Start, slot.End) {
		return false
	}

	window := slot.Window()

	for _, b := range bookings {
		if window.Overlaps(b.BlockedWindow()) {
			return false
		}
	}

	for _, t := range tasks {
		if window.Overlaps(t.Window) {
			return false
		}
	}

	return true
}

// CountFreeResources возвращает точное количество ресурсов, свободных в окне слота
// Счёт не прерывается досрочно: ответ содержит истинное количество,
// от которого зависит уровень доступности
func CountFreeResources(
	resources []Resource,
	day Weekday,
	slot CandidateSlot,
	bookings map[int64][]BookingConflict,
	tasks map[int64][]ExternalTaskConflict,
) int {
	count := 0
	for _, res := range resources {
		if IsResourceFreeInWindow(res, day, slot, bookings[res.ID], tasks[res.ID]) {
			count++
		}
	}
	return count
}
