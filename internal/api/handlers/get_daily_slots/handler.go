package get_daily_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getDailySlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_daily_slots"
)

const (
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingPlanType  = "тип плана обязателен"
	msgInvalidPlanType  = "некорректный тип плана, ожидается DIY или FULL_SERVICE"
	msgMissingUnitCount = "количество юнитов обязательно"
	msgInvalidUnitCount = "некорректное количество юнитов"
	msgInvalidExcludeID = "некорректный ID исключаемой заявки"
	msgInvalidInput     = "некорректные параметры запроса"
	msgUpstreamData     = "источник данных о ресурсах недоступен"
)

type Handler struct {
	useCase GetDailySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDailySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/daily
// Query params: date (required, YYYY-MM-DD), planType (required),
// unitCount (required), excludeAppointmentId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Извлекаем date из query параметров
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability/daily - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем planType из query параметров
	planTypeStr := query.Get("planType")
	if planTypeStr == "" {
		h.logger.Warn("GET /availability/daily - Missing plan type")
		handlers.RespondBadRequest(w, msgMissingPlanType)
		return
	}

	// Извлекаем unitCount из query параметров
	unitCountStr := query.Get("unitCount")
	if unitCountStr == "" {
		h.logger.Warn("GET /availability/daily - Missing unit count")
		handlers.RespondBadRequest(w, msgMissingUnitCount)
		return
	}
	unitCount, err := strconv.Atoi(unitCountStr)
	if err != nil {
		h.logger.Warn("GET /availability/daily - Invalid unit count: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitCount)
		return
	}

	// Извлекаем excludeAppointmentId из query параметров (опциональный)
	var excludeAppointmentID *int64
	if excludeStr := query.Get("excludeAppointmentId"); excludeStr != "" {
		id, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability/daily - Invalid exclude appointment ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		excludeAppointmentID = &id
	}

	// Формируем запрос к use case (с парсингом даты и типа плана)
	useCaseReq, err := ToUseCaseRequest(dateStr, planTypeStr, unitCount, excludeAppointmentID)
	if err != nil {
		h.logger.Warn("GET /availability/daily - Invalid request parameters: %v", err)
		if errors.Is(err, domain.ErrUnknownPlanType) {
			handlers.RespondBadRequest(w, msgInvalidPlanType)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDailySlots.ErrInvalidInput):
			h.logger.Warn("GET /availability/daily - Invalid input: date=%s, plan=%s, units=%d, error=%v",
				dateStr, planTypeStr, unitCount, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getDailySlots.ErrUpstreamData):
			h.logger.Error("GET /availability/daily - Upstream data error: date=%s, error=%v", dateStr, err)
			handlers.RespondBadGateway(w, msgUpstreamData)

		default:
			h.logger.Error("GET /availability/daily - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/daily - Slots retrieved: date=%s, slots=%d, cacheHit=%v",
		dateStr, len(result.TimeSlots), result.Meta.CacheHit)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
