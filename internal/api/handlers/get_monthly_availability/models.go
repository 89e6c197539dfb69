package get_monthly_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getMonthlyAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_monthly_availability"
)

// MonthlyAvailabilityResponse HTTP response model
type MonthlyAvailabilityResponse struct {
	Year      int          `json:"year"`
	Month     int          `json:"month"`
	PlanType  string       `json:"planType"`
	UnitCount int          `json:"unitCount"`
	Days      []DayInfo    `json:"days"`
	Meta      MetadataInfo `json:"meta"`
}

// DayInfo доступность одного календарного дня
type DayInfo struct {
	Date            string  `json:"date"`
	HasAvailability bool    `json:"hasAvailability"`
	Level           *string `json:"availabilityLevel,omitempty"`
}

// MetadataInfo метаданные вычисления
// Счётчики конфликтов присутствуют для единообразия с дневным ответом,
// в месячном обзоре они всегда нулевые
type MetadataInfo struct {
	DurationMs       int64 `json:"durationMs"`
	DaysEvaluated    int   `json:"daysEvaluated"`
	TotalResources   int   `json:"totalResources"`
	BookingConflicts int   `json:"bookingConflicts"`
	TaskConflicts    int   `json:"taskConflicts"`
	CacheHit         bool  `json:"cacheHit"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMonthlyAvailability.Response) *MonthlyAvailabilityResponse {
	days := make([]DayInfo, len(resp.Days))
	for i, day := range resp.Days {
		info := DayInfo{
			Date:            day.Date.Format(domain.DateFormat),
			HasAvailability: day.HasAvailability,
		}
		if day.Level != nil {
			level := string(*day.Level)
			info.Level = &level
		}
		days[i] = info
	}

	return &MonthlyAvailabilityResponse{
		Year:      resp.Year,
		Month:     int(resp.Month),
		PlanType:  string(resp.PlanType),
		UnitCount: resp.UnitCount,
		Days:      days,
		Meta: MetadataInfo{
			DurationMs:       resp.Meta.DurationMs,
			DaysEvaluated:    resp.Meta.DaysEvaluated,
			TotalResources:   resp.Meta.TotalResources,
			BookingConflicts: resp.Meta.BookingConflicts,
			TaskConflicts:    resp.Meta.TaskConflicts,
			CacheHit:         resp.Meta.CacheHit,
		},
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(year, month, unitCount int, planTypeStr string) (*getMonthlyAvailability.Request, error) {
	planType, err := domain.ParsePlanType(planTypeStr)
	if err != nil {
		return nil, err
	}

	return &getMonthlyAvailability.Request{
		Year:      year,
		Month:     time.Month(month),
		PlanType:  planType,
		UnitCount: unitCount,
	}, nil
}
