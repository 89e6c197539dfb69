package invalidate_cache

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/invalidation"
)

const (
	msgInvalidBody  = "некорректное тело запроса"
	msgUnknownEvent = "неизвестный тип события"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput = "некорректные параметры события"
)

type Handler struct {
	service InvalidationService
	logger  Logger
}

func NewHandler(service InvalidationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /internal/v1/cache/invalidate
// Принимает событие изменения данных и удаляет затронутые ответы из кэша
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req InvalidateCacheRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /internal/cache/invalidate - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	var (
		removed int
		err     error
	)

	switch req.Event {
	case EventBookingChanged:
		date, parseErr := req.ParseDate()
		if parseErr != nil {
			h.logger.Warn("POST /internal/cache/invalidate - Invalid date: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		removed, err = h.service.BookingChanged(r.Context(), date)

	case EventDriverAvailabilityChanged:
		dates, parseErr := req.ParseDates()
		if parseErr != nil {
			h.logger.Warn("POST /internal/cache/invalidate - Invalid dates: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		removed, err = h.service.DriverAvailabilityChanged(r.Context(), req.ResourceID, dates)

	case EventMoverAvailabilityChanged:
		dates, parseErr := req.ParseDates()
		if parseErr != nil {
			h.logger.Warn("POST /internal/cache/invalidate - Invalid dates: %v", parseErr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		removed, err = h.service.MoverAvailabilityChanged(r.Context(), req.ResourceID, dates)

	case EventAll:
		removed, err = h.service.InvalidateAll(r.Context())

	default:
		h.logger.Warn("POST /internal/cache/invalidate - Unknown event: %s", req.Event)
		handlers.RespondBadRequest(w, msgUnknownEvent)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, invalidation.ErrInvalidInput):
			h.logger.Warn("POST /internal/cache/invalidate - Invalid input for event %s: %v", req.Event, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /internal/cache/invalidate - Failed to invalidate for event %s: %v", req.Event, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/cache/invalidate - Event %s processed, removed %d entries", req.Event, removed)
	handlers.RespondJSON(w, http.StatusOK, &InvalidateCacheResponse{
		Event:          req.Event,
		EntriesRemoved: removed,
	})
}
