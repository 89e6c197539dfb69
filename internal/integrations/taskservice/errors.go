package taskservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("taskservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("taskservice client: invalid response")

	// ErrUnavailable возвращается, когда TaskService недоступен
	// Клиент НЕ применяет graceful degradation: недоступность источника конфликтов
	// должна дойти до вызывающего как ошибка, а не превратиться в "всё свободно"
	ErrUnavailable = errors.New("taskservice client: service unavailable")
)
