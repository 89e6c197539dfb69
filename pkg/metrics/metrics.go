package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics prometheus-метрики сервиса
type Metrics struct {
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec

	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEvictions prometheus.Counter
	cacheExpiries  prometheus.Counter
	cacheSize      prometheus.Gauge

	upstreamDuration *prometheus.HistogramVec
	upstreamErrors   *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "availability_cache_hits_total",
			Help:        "Total number of availability cache hits",
			ConstLabels: constLabels,
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "availability_cache_misses_total",
			Help:        "Total number of availability cache misses",
			ConstLabels: constLabels,
		}),

		cacheEvictions: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "availability_cache_evictions_total",
			Help:        "Total number of cache entries evicted by capacity",
			ConstLabels: constLabels,
		}),

		cacheExpiries: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "availability_cache_expiries_total",
			Help:        "Total number of cache entries removed by TTL expiry",
			ConstLabels: constLabels,
		}),

		cacheSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "availability_cache_entries",
			Help:        "Current number of entries in the availability cache",
			ConstLabels: constLabels,
		}),

		upstreamDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "upstream_request_duration_seconds",
			Help:        "Upstream (database, task service) request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),

		upstreamErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_errors_total",
			Help:        "Total number of upstream request errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),
	}
}

// ObserveHTTP записывает метрики обработанного HTTP запроса
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// CacheHit увеличивает счётчик попаданий в кэш
func (m *Metrics) CacheHit() { m.cacheHits.Inc() }

// CacheMiss увеличивает счётчик промахов кэша
func (m *Metrics) CacheMiss() { m.cacheMisses.Inc() }

// CacheEviction увеличивает счётчик вытеснений по ёмкости
func (m *Metrics) CacheEviction() { m.cacheEvictions.Inc() }

// CacheExpiry увеличивает счётчик удалений по TTL
func (m *Metrics) CacheExpiry() { m.cacheExpiries.Inc() }

// SetCacheSize устанавливает текущий размер кэша
func (m *Metrics) SetCacheSize(n int) { m.cacheSize.Set(float64(n)) }

// ObserveUpstream записывает длительность запроса к внешнему источнику данных
func (m *Metrics) ObserveUpstream(operation string, duration time.Duration, err error) {
	m.upstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.upstreamErrors.WithLabelValues(operation).Inc()
	}
}
