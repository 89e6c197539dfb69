package get_daily_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// Проверка выполняется до обращения к кэшу и источникам данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUpstreamData возвращается, когда источник данных (БД, TaskService)
	// недоступен или вернул некорректные данные
	// Намеренно отличим от "нет доступности": вызывающий должен различать
	// "всё занято" и "данные недоступны"
	ErrUpstreamData = errors.New("upstream data unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
