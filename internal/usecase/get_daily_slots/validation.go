package get_daily_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Ошибки валидации возвращаются сразу, без обращения к кэшу и источникам данных
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.PlanType.IsValid() {
		return fmt.Errorf("%w: unknown plan type %q", ErrInvalidInput, req.PlanType)
	}

	if req.UnitCount < domain.MinUnitCount || req.UnitCount > domain.MaxUnitCount {
		return fmt.Errorf("%w: unitCount must be between %d and %d",
			ErrInvalidInput, domain.MinUnitCount, domain.MaxUnitCount)
	}

	if req.ExcludeAppointmentID != nil && *req.ExcludeAppointmentID <= 0 {
		return fmt.Errorf("%w: excludeAppointmentId must be positive", ErrInvalidInput)
	}

	return nil
}
