package domain

import "errors"

// PlanType тип тарифного плана доставки складских юнитов
type PlanType string

const (
	// PlanDIY клиент загружает юниты сам, компания предоставляет только водителей
	PlanDIY PlanType = "DIY"

	// PlanFullService компания предоставляет грузчика для погрузки и водителей
	PlanFullService PlanType = "FULL_SERVICE"
)

// ErrUnknownPlanType возвращается при неизвестном типе плана
var ErrUnknownPlanType = errors.New("unknown plan type")

// ParsePlanType парсит тип плана из строки
func ParsePlanType(s string) (PlanType, error) {
	switch PlanType(s) {
	case PlanDIY:
		return PlanDIY, nil
	case PlanFullService:
		return PlanFullService, nil
	default:
		return "", ErrUnknownPlanType
	}
}

// IsValid проверяет, что значение является известным типом плана
func (p PlanType) IsValid() bool {
	return p == PlanDIY || p == PlanFullService
}

// RequiresMover возвращает true, если план требует наличия грузчика
func (p PlanType) RequiresMover() bool {
	return p == PlanFullService
}

// DriverRequirement требуемое количество водителей для заявки
type DriverRequirement struct {
	DriversNeeded int
}

// CalculateDriverRequirement вычисляет требуемое количество водителей
//
// DIY: каждый юнит везёт отдельный водитель, грузчик на требование не влияет
// FULL_SERVICE: без грузчика требование совпадает с DIY; доступный грузчик
// берёт на себя погрузку первого юнита и снижает требование на одного водителя,
// но не ниже одного - транспортом всё равно должен кто-то управлять
//
// Инварианты:
//   - монотонно не убывает по unitCount при фиксированном плане
//   - calc(FULL_SERVICE, n, true) <= calc(FULL_SERVICE, n, false) <= calc(DIY, n)
func CalculateDriverRequirement(plan PlanType, unitCount int, moverAvailable bool) DriverRequirement {
	if unitCount <= 0 {
		return DriverRequirement{DriversNeeded: 0}
	}

	if plan == PlanFullService && moverAvailable {
		needed := unitCount - 1
		if needed < 1 {
			needed = 1
		}
		return DriverRequirement{DriversNeeded: needed}
	}

	return DriverRequirement{DriversNeeded: unitCount}
}
