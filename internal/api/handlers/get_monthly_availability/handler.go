package get_monthly_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getMonthlyAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_monthly_availability"
)

const (
	msgMissingYear      = "год обязателен"
	msgInvalidYear      = "некорректный год"
	msgMissingMonth     = "месяц обязателен"
	msgInvalidMonth     = "некорректный месяц"
	msgMissingPlanType  = "тип плана обязателен"
	msgInvalidPlanType  = "некорректный тип плана, ожидается DIY или FULL_SERVICE"
	msgMissingUnitCount = "количество юнитов обязательно"
	msgInvalidUnitCount = "некорректное количество юнитов"
	msgInvalidInput     = "некорректные параметры запроса"
	msgUpstreamData     = "источник данных о ресурсах недоступен"
)

type Handler struct {
	useCase GetMonthlyAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthlyAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/monthly
// Query params: year (required), month (required), planType (required), unitCount (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Извлекаем year из query параметров
	yearStr := query.Get("year")
	if yearStr == "" {
		h.logger.Warn("GET /availability/monthly - Missing year")
		handlers.RespondBadRequest(w, msgMissingYear)
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		h.logger.Warn("GET /availability/monthly - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	// Извлекаем month из query параметров
	monthStr := query.Get("month")
	if monthStr == "" {
		h.logger.Warn("GET /availability/monthly - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		h.logger.Warn("GET /availability/monthly - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	// Извлекаем planType из query параметров
	planTypeStr := query.Get("planType")
	if planTypeStr == "" {
		h.logger.Warn("GET /availability/monthly - Missing plan type")
		handlers.RespondBadRequest(w, msgMissingPlanType)
		return
	}

	// Извлекаем unitCount из query параметров
	unitCountStr := query.Get("unitCount")
	if unitCountStr == "" {
		h.logger.Warn("GET /availability/monthly - Missing unit count")
		handlers.RespondBadRequest(w, msgMissingUnitCount)
		return
	}
	unitCount, err := strconv.Atoi(unitCountStr)
	if err != nil {
		h.logger.Warn("GET /availability/monthly - Invalid unit count: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitCount)
		return
	}

	// Формируем запрос к use case
	useCaseReq, err := ToUseCaseRequest(year, month, unitCount, planTypeStr)
	if err != nil {
		h.logger.Warn("GET /availability/monthly - Invalid plan type: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlanType)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getMonthlyAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability/monthly - Invalid input: year=%d, month=%d, plan=%s, units=%d, error=%v",
				year, month, planTypeStr, unitCount, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getMonthlyAvailability.ErrUpstreamData):
			h.logger.Error("GET /availability/monthly - Upstream data error: year=%d, month=%d, error=%v",
				year, month, err)
			handlers.RespondBadGateway(w, msgUpstreamData)

		default:
			h.logger.Error("GET /availability/monthly - Failed to get availability: year=%d, month=%d, error=%v",
				year, month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/monthly - Availability retrieved: year=%d, month=%d, days=%d, cacheHit=%v",
		year, month, len(result.Days), result.Meta.CacheHit)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
