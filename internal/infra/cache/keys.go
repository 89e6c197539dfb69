package cache

import (
	"fmt"
	"time"
)

// Формат ключей кэша доступности
// Ключи собираются только здесь; другие подсистемы работают с кэшем
// через фасад инвалидации и не конструируют ключи сами
const (
	dateFormat  = "2006-01-02"
	monthFormat = "2006-01"
)

// MonthlyKey ключ месячного представления доступности
func MonthlyKey(year int, month time.Month, planType string, unitCount int) string {
	return fmt.Sprintf("availability:monthly:%04d-%02d:plan:%s:units:%d", year, int(month), planType, unitCount)
}

// DailyKey ключ дневного представления доступности
// excludeAppointmentID участвует в ключе: ответы с исключённой заявкой и без неё различаются
func DailyKey(date time.Time, planType string, unitCount int, excludeAppointmentID *int64) string {
	key := fmt.Sprintf("availability:daily:date:%s:plan:%s:units:%d", date.UTC().Format(dateFormat), planType, unitCount)
	if excludeAppointmentID != nil {
		key += fmt.Sprintf(":excl:%d", *excludeAppointmentID)
	}
	return key
}

// DailyDatePattern шаблон всех дневных ключей на дату
func DailyDatePattern(date time.Time) string {
	return fmt.Sprintf("availability:daily:*date:%s*", date.UTC().Format(dateFormat))
}

// MonthPattern шаблон всех месячных ключей на месяц даты
func MonthPattern(date time.Time) string {
	return fmt.Sprintf("availability:monthly:%s:*", date.UTC().Format(monthFormat))
}

// AllPattern шаблон всех ключей доступности
func AllPattern() string {
	return "availability:*"
}
