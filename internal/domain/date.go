package domain

import "time"

// Weekday день недели в нижнем регистре
// Используется как ключ недельного расписания и значение колонки day_of_week
type Weekday string

const (
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
	WeekdaySaturday  Weekday = "saturday"
	WeekdaySunday    Weekday = "sunday"
)

// DayOfWeek возвращает день недели для даты
// Дата приводится к UTC, чтобы результат не зависел от часового пояса вызывающего
func DayOfWeek(date time.Time) Weekday {
	switch date.UTC().Weekday() {
	case time.Monday:
		return WeekdayMonday
	case time.Tuesday:
		return WeekdayTuesday
	case time.Wednesday:
		return WeekdayWednesday
	case time.Thursday:
		return WeekdayThursday
	case time.Friday:
		return WeekdayFriday
	case time.Saturday:
		return WeekdaySaturday
	default:
		return WeekdaySunday
	}
}

// StartOfDayUTC возвращает полночь UTC для указанной даты
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// IsPastDate проверяет, что дата строго раньше сегодняшнего дня (по UTC)
func IsPastDate(date, now time.Time) bool {
	return StartOfDayUTC(date).Before(StartOfDayUTC(now))
}

// DaysInMonth возвращает количество дней в месяце
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
