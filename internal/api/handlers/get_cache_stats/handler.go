package get_cache_stats

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

// Handle GET /internal/v1/cache/stats
// Диагностика содержимого кэша: размер, возраст и остаток TTL записей
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.CacheStats(r.Context())
	if err != nil {
		h.logger.Error("GET /internal/cache/stats - Failed to collect stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /internal/cache/stats - Stats collected: backend=%s, size=%d", stats.Backend, stats.Size)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
