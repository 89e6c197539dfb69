package get_monthly_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Ошибки валидации возвращаются сразу, без обращения к кэшу и источникам данных
func validateRequest(req *Request) error {
	if req.Year < domain.MinYear || req.Year > domain.MaxYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, domain.MinYear, domain.MaxYear)
	}

	if req.Month < time.January || req.Month > time.December {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}

	if !req.PlanType.IsValid() {
		return fmt.Errorf("%w: unknown plan type %q", ErrInvalidInput, req.PlanType)
	}

	if req.UnitCount < domain.MinUnitCount || req.UnitCount > domain.MaxUnitCount {
		return fmt.Errorf("%w: unitCount must be between %d and %d",
			ErrInvalidInput, domain.MinUnitCount, domain.MaxUnitCount)
	}

	return nil
}
