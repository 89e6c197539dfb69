package get_monthly_availability

import (
	"context"

	getMonthlyAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_monthly_availability"
)

type GetMonthlyAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getMonthlyAvailability.Request) (*getMonthlyAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
