package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBusinessHourSlots(t *testing.T) {
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	slots, err := GenerateBusinessHourSlots(date, "09:00", "17:00", 60)
	require.NoError(t, err)
	require.Len(t, slots, 8)

	first := slots[0]
	assert.Equal(t, "09:00", first.Start.String())
	assert.Equal(t, "10:00", first.End.String())
	assert.Equal(t, "09:00 - 10:00", first.DisplayLabel)
	assert.Equal(t, time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), first.StartsAt)
	assert.Equal(t, time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC), first.EndsAt)

	// Последний полный час перед закрытием
	last := slots[len(slots)-1]
	assert.Equal(t, "16:00", last.Start.String())
	assert.Equal(t, "17:00", last.End.String())
}

func TestGenerateBusinessHourSlots_PartialSlotDropped(t *testing.T) {
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	// Слот 17:00-18:00 вышел бы за время закрытия 17:30 и не включается
	slots, err := GenerateBusinessHourSlots(date, "09:00", "17:30", 60)
	require.NoError(t, err)
	require.Len(t, slots, 8)
	assert.Equal(t, "16:00", slots[len(slots)-1].Start.String())
}

func TestGenerateBusinessHourSlots_Deterministic(t *testing.T) {
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	a, err := GenerateBusinessHourSlots(date, "08:00", "20:00", 60)
	require.NoError(t, err)
	b, err := GenerateBusinessHourSlots(date, "08:00", "20:00", 60)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateBusinessHourSlots_InvalidInput(t *testing.T) {
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	_, err := GenerateBusinessHourSlots(date, "09:00", "17:00", 0)
	assert.Error(t, err)

	_, err = GenerateBusinessHourSlots(date, "17:00", "09:00", 60)
	assert.Error(t, err)
}

func TestDayOfWeek(t *testing.T) {
	// 2025-01-06 - понедельник
	assert.Equal(t, WeekdayMonday, DayOfWeek(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, WeekdaySunday, DayOfWeek(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)))

	// Результат не зависит от часового пояса вызывающего:
	// 2025-01-06 23:00 UTC-4 - это уже 2025-01-07 по UTC
	loc := time.FixedZone("UTC-4", -4*60*60)
	assert.Equal(t, WeekdayTuesday, DayOfWeek(time.Date(2025, 1, 6, 23, 0, 0, 0, loc)))
}

func TestIsPastDate(t *testing.T) {
	now := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsPastDate(time.Date(2025, 1, 5, 23, 59, 0, 0, time.UTC), now))
	assert.False(t, IsPastDate(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsPastDate(time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), now))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2025, time.January))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 30, DaysInMonth(2025, time.April))
}
