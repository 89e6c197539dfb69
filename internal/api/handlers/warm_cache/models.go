package warm_cache

import "github.com/m04kA/SMC-AvailabilityService/internal/service/warmup"

// WarmCacheResponse HTTP response model
type WarmCacheResponse struct {
	MonthlyWarmed int   `json:"monthlyWarmed"`
	DailyWarmed   int   `json:"dailyWarmed"`
	Failed        int   `json:"failed"`
	DurationMs    int64 `json:"durationMs"`
}

// FromServiceResult конвертирует результат прогрева в HTTP response
func FromServiceResult(res warmup.Result) *WarmCacheResponse {
	return &WarmCacheResponse{
		MonthlyWarmed: res.MonthlyWarmed,
		DailyWarmed:   res.DailyWarmed,
		Failed:        res.Failed,
		DurationMs:    res.DurationMs,
	}
}
