package domain

import "time"

// TimeWindow полуоткрытый интервал моментов времени [Start, End)
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов
// Интервалы пересекаются, только если начало одного СТРОГО раньше конца другого и наоборот
// Граничащие интервалы ([9:00,10:00) и [10:00,11:00)) НЕ пересекаются
//
// Это единственный примитив проверки пересечения в движке: и бронирования,
// и задачи внешней системы проверяются через него, чтобы исключить
// несимметричную трактовку границ
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Duration возвращает длительность окна
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
