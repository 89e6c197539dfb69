package domain

// Буферы вокруг существующих бронирований
// Эффективное окно блокировки = [serviceStart - before, serviceEnd + after)
// Бизнес-константы: не хранятся в записях бронирований
const (
	BookingBufferBeforeMinutes = 15
	BookingBufferAfterMinutes  = 15
)

// Default configuration values
const (
	DefaultOpenTime            = "08:00"
	DefaultCloseTime           = "20:00"
	DefaultSlotDurationMinutes = 60
)

// Business validation constants
const (
	MinUnitCount = 1
	MaxUnitCount = 50

	MinYear = 2000
	MaxYear = 2100
)

// HighAvailabilityMinSlack минимальный запас ресурсов сверх требования,
// при котором уровень доступности считается высоким
const HighAvailabilityMinSlack = 2

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)
