package get_daily_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getDailySlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_daily_slots"
)

// DailySlotsResponse HTTP response model
type DailySlotsResponse struct {
	Date      string         `json:"date"`
	PlanType  string         `json:"planType"`
	UnitCount int            `json:"unitCount"`
	TimeSlots []TimeSlotInfo `json:"timeSlots"`
	Meta      MetadataInfo   `json:"meta"`
}

// TimeSlotInfo слот с вычисленной доступностью
type TimeSlotInfo struct {
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	DisplayLabel      string `json:"displayLabel"`
	Available         bool   `json:"available"`
	AvailabilityLevel string `json:"availabilityLevel"`
	AvailableMovers   int    `json:"availableMovers"`
	AvailableDrivers  int    `json:"availableDrivers"`
	DriversNeeded     int    `json:"driversNeeded"`
}

// MetadataInfo метаданные вычисления
type MetadataInfo struct {
	DurationMs       int64 `json:"durationMs"`
	SlotsEvaluated   int   `json:"slotsEvaluated"`
	TotalResources   int   `json:"totalResources"`
	BookingConflicts int   `json:"bookingConflicts"`
	TaskConflicts    int   `json:"taskConflicts"`
	CacheHit         bool  `json:"cacheHit"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDailySlots.Response) *DailySlotsResponse {
	slots := make([]TimeSlotInfo, len(resp.TimeSlots))
	for i, slot := range resp.TimeSlots {
		slots[i] = TimeSlotInfo{
			StartTime:         slot.StartTime.String(),
			EndTime:           slot.EndTime.String(),
			DisplayLabel:      slot.DisplayLabel,
			Available:         slot.Available,
			AvailabilityLevel: string(slot.AvailabilityLevel),
			AvailableMovers:   slot.AvailableMovers,
			AvailableDrivers:  slot.AvailableDrivers,
			DriversNeeded:     slot.DriversNeeded,
		}
	}

	return &DailySlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		PlanType:  string(resp.PlanType),
		UnitCount: resp.UnitCount,
		TimeSlots: slots,
		Meta: MetadataInfo{
			DurationMs:       resp.Meta.DurationMs,
			SlotsEvaluated:   resp.Meta.SlotsEvaluated,
			TotalResources:   resp.Meta.TotalResources,
			BookingConflicts: resp.Meta.BookingConflicts,
			TaskConflicts:    resp.Meta.TaskConflicts,
			CacheHit:         resp.Meta.CacheHit,
		},
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr, planTypeStr string, unitCount int, excludeAppointmentID *int64) (*getDailySlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	planType, err := domain.ParsePlanType(planTypeStr)
	if err != nil {
		return nil, err
	}

	return &getDailySlots.Request{
		Date:                 date,
		PlanType:             planType,
		UnitCount:            unitCount,
		ExcludeAppointmentID: excludeAppointmentID,
	}, nil
}
