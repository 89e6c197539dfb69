package domain

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

// ResourceType тип ресурса
type ResourceType string

const (
	ResourceMover  ResourceType = "mover"
	ResourceDriver ResourceType = "driver"
)

// TimeRange диапазон времени суток [Start, End) в рамках одного дня
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains проверяет, что диапазон полностью содержит окно [start, end)
func (r TimeRange) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(r.Start) && !end.IsAfter(r.End)
}

// AvailabilityPattern недельное расписание доступности ресурса:
// день недели -> упорядоченный список доступных диапазонов
// Принадлежит подсистеме управления ресурсами; движок читает его как есть
type AvailabilityPattern map[Weekday][]TimeRange

// CoversWindow проверяет, что хотя бы один диапазон дня day
// полностью содержит окно [start, end)
func (p AvailabilityPattern) CoversWindow(day Weekday, start, end types.TimeString) bool {
	for _, r := range p[day] {
		if r.Contains(start, end) {
			return true
		}
	}
	return false
}

// Resource грузчик или водитель, рассматриваемый при проверке доступности
type Resource struct {
	ID      int64
	Name    string
	Type    ResourceType
	Pattern AvailabilityPattern
}
