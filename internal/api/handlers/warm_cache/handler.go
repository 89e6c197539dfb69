package warm_cache

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

type Handler struct {
	service WarmupService
	logger  Logger
}

func NewHandler(service WarmupService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /internal/v1/cache/warm
// Запускает внеплановый прогрев кэша; тот же прогон выполняется по расписанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	res := h.service.WarmAhead(r.Context())

	h.logger.Info("POST /internal/cache/warm - Warmup finished: monthly=%d, daily=%d, failed=%d",
		res.MonthlyWarmed, res.DailyWarmed, res.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(res))
}
