package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// CandidateSlot кандидатное окно фиксированной длительности в рамках рабочего дня
// Живёт только в пределах одного запроса, никогда не сохраняется
type CandidateSlot struct {
	Date         time.Time
	Start        types.TimeString
	End          types.TimeString
	StartsAt     time.Time // момент начала (UTC)
	EndsAt       time.Time // момент конца (UTC)
	DisplayLabel string    // "09:00 - 10:00"
}

// Window возвращает окно слота как интервал моментов времени
func (s CandidateSlot) Window() TimeWindow {
	return TimeWindow{Start: s.StartsAt, End: s.EndsAt}
}

// GenerateBusinessHourSlots генерирует все кандидатные слоты рабочего дня
// от open до close с фиксированным шагом stepMinutes
// Слот, конец которого выходит за close, не включается
// Чистая функция даты и параметров: без побочных эффектов
func GenerateBusinessHourSlots(date time.Time, open, close types.TimeString, stepMinutes int) ([]CandidateSlot, error) {
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("slot step must be positive, got %d", stepMinutes)
	}
	if !open.IsBefore(close) {
		return nil, fmt.Errorf("open time %s must be before close time %s", open, close)
	}

	day := StartOfDayUTC(date)
	slots := make([]CandidateSlot, 0)
	current := open

	for current.IsBefore(close) {
		end, err := current.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
		if end.IsAfter(close) {
			break
		}

		slots = append(slots, CandidateSlot{
			Date:         day,
			Start:        current,
			End:          end,
			StartsAt:     current.AtDate(day),
			EndsAt:       end.AtDate(day),
			DisplayLabel: fmt.Sprintf("%s - %s", current, end),
		})

		current = end
	}

	return slots, nil
}
