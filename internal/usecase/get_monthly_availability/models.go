package get_monthly_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса месячного обзора доступности
type Request struct {
	Year      int             // Год
	Month     time.Month      // Месяц
	PlanType  domain.PlanType // Тип тарифного плана
	UnitCount int             // Количество складских юнитов
}

// Response модель ответа с доступностью по дням месяца
type Response struct {
	Year      int               // Год из запроса
	Month     time.Month        // Месяц из запроса
	PlanType  domain.PlanType   // Тип плана из запроса
	UnitCount int               // Количество юнитов из запроса
	Days      []DayAvailability // По одной записи на каждый день месяца
	Meta      Metadata          // Метаданные вычисления
}

// DayAvailability доступность одного календарного дня
// Level заполняется только для доступных дней
type DayAvailability struct {
	Date            time.Time                 // Дата (полночь UTC)
	HasAvailability bool                      // Достаточно ли ресурсов в этот день
	Level           *domain.AvailabilityLevel // Уровень уверенности (nil, если день недоступен)
}

// Metadata метаданные вычисления ответа
// Месячное представление работает на предагрегированных количествах и не
// загружает окна конфликтов, поэтому счётчики конфликтов здесь всегда нулевые
type Metadata struct {
	DurationMs       int64 // Длительность вычисления
	DaysEvaluated    int   // Количество дней, для которых выполнялась проверка ресурсов
	TotalResources   int   // Максимум рассмотренных ресурсов среди дней недели
	BookingConflicts int   // Конфликтов по бронированиям (0 на этой гранулярности)
	TaskConflicts    int   // Конфликтов по задачам внешней системы (0 на этой гранулярности)
	CacheHit         bool  // Ответ отдан из кэша
}
