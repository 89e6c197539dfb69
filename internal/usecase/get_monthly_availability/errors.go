package get_monthly_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUpstreamData возвращается, когда источник данных недоступен
	// или вернул некорректные данные. Никогда не маскируется под
	// "нет доступности"
	ErrUpstreamData = errors.New("upstream data unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
