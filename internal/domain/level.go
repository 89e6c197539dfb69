package domain

// AvailabilityLevel уровень уверенности в доступности ресурсов
type AvailabilityLevel string

const (
	LevelHigh   AvailabilityLevel = "high"
	LevelMedium AvailabilityLevel = "medium"
	LevelLow    AvailabilityLevel = "low"
)

// DetermineAvailabilityLevel вычисляет уровень доступности по запасу ресурсов
// сверх минимального требования
//
// Запас = минимум из запаса водителей и запаса грузчиков (грузчики учитываются,
// только если они требуются). Больший запас никогда не даёт более низкий уровень
//
// Для отрицательного запаса (ресурсов не хватает) возвращает LevelLow -
// в этом случае слот и так помечается недоступным, но функция определена
// на всех входах
func DetermineAvailabilityLevel(availableMovers, availableDrivers, requiredMovers, requiredDrivers int) AvailabilityLevel {
	slack := availableDrivers - requiredDrivers
	if requiredMovers > 0 {
		if moverSlack := availableMovers - requiredMovers; moverSlack < slack {
			slack = moverSlack
		}
	}

	switch {
	case slack < 0:
		return LevelLow
	case slack >= HighAvailabilityMinSlack:
		return LevelHigh
	default:
		return LevelMedium
	}
}
