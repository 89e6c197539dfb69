package get_daily_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на получение слотов дня
type Request struct {
	Date                 time.Time       // Дата (без времени)
	PlanType             domain.PlanType // Тип тарифного плана
	UnitCount            int             // Количество складских юнитов
	ExcludeAppointmentID *int64          // Исключить конфликты собственной заявки (редактирование)
}

// Response модель ответа со слотами дня
type Response struct {
	Date      time.Time       // Дата, на которую запрашивались слоты
	PlanType  domain.PlanType // Тип плана из запроса
	UnitCount int             // Количество юнитов из запроса
	TimeSlots []TimeSlot      // Все кандидатные слоты рабочего дня
	Meta      Metadata        // Метаданные вычисления
}

// TimeSlot слот с вычисленной доступностью
type TimeSlot struct {
	StartTime         types.TimeString         // Время начала слота
	EndTime           types.TimeString         // Время конца слота
	DisplayLabel      string                   // Отображаемая метка ("09:00 - 10:00")
	Available         bool                     // Достаточно ли свободных ресурсов
	AvailabilityLevel domain.AvailabilityLevel // Уровень уверенности в доступности
	AvailableMovers   int                      // Свободных грузчиков (0 для DIY - не проверяются)
	AvailableDrivers  int                      // Свободных водителей (точное количество)
	DriversNeeded     int                      // Требуемое количество водителей
}

// Metadata метаданные вычисления ответа
type Metadata struct {
	DurationMs       int64 // Длительность вычисления
	SlotsEvaluated   int   // Количество рассмотренных слотов
	TotalResources   int   // Количество рассмотренных ресурсов
	BookingConflicts int   // Конфликтов по бронированиям
	TaskConflicts    int   // Конфликтов по задачам внешней системы
	CacheHit         bool  // Ответ отдан из кэша
}
