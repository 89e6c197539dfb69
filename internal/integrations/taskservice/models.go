package taskservice

import "time"

// DriverTask задача водителя из внешней системы логистики
type DriverTask struct {
	ID        int64     `json:"id"`
	DriverID  int64     `json:"driverId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// driverTasksResponse ответ TaskService со списком задач на дату
type driverTasksResponse struct {
	Date  string       `json:"date"`
	Tasks []DriverTask `json:"tasks"`
}

// ErrorResponse модель ошибки от TaskService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
