package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMiddleware регистрирует метрики HTTP и пайплайна генерации.
// Маршрут /metrics добавляется отдельно методом RegisterMetricsEndpoint.
// Использование:
//   mw := middleware.NewPrometheusMiddleware("cubeglobe")
//   r.Use(mw.Handler())
//   mw.RegisterMetricsEndpoint(r)
//
// Метрики:
// * http_request_duration_seconds{method,path,status} — histogram
// * http_requests_inflight — gauge
// * http_request_errors_total{method,path,status} — counter (4xx/5xx)
// * generation_duration_seconds — histogram
// * render_duration_seconds — histogram
// * maps_generated_total — counter

type PrometheusMiddleware struct {
	reqDuration *prometheus.HistogramVec
	reqInflight prometheus.Gauge
	reqErrors   *prometheus.CounterVec

	genDuration    prometheus.Histogram
	renderDuration prometheus.Histogram
	mapsGenerated  prometheus.Counter
}

// NewPrometheusMiddleware создаёт middleware и регистрирует метрики в дефолтном регистре.
func NewPrometheusMiddleware(service string) *PrometheusMiddleware {
	pm := &PrometheusMiddleware{
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность HTTP-запросов.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "path", "status"}),
		reqInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: service,
			Name:      "http_requests_inflight",
			Help:      "Текущее количество обрабатываемых HTTP-запросов.",
		}),
		reqErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Name:      "http_request_errors_total",
			Help:      "Общее число запросов, завершившихся ошибкой (4xx/5xx).",
		}, []string{"method", "path", "status"}),
		genDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "generation_duration_seconds",
			Help:      "Длительность генерации ландшафта.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "render_duration_seconds",
			Help:      "Длительность рендеринга изометрической карты.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		}),
		mapsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: service,
			Name:      "maps_generated_total",
			Help:      "Общее число сгенерированных карт.",
		}),
	}

	prometheus.MustRegister(
		pm.reqDuration, pm.reqInflight, pm.reqErrors,
		pm.genDuration, pm.renderDuration, pm.mapsGenerated,
	)
	return pm
}

// Handler возвращает gin.HandlerFunc, которую нужно добавить через router.Use().
func (pm *PrometheusMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		pm.reqInflight.Inc()
		// Обработать запрос.
		c.Next()
		pm.reqInflight.Dec()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path // для не-матченных маршрутов
		}
		method := c.Request.Method

		pm.reqDuration.WithLabelValues(method, path, status).Observe(duration)

		// Ошибочные статусы >=400
		if c.Writer.Status() >= 400 {
			pm.reqErrors.WithLabelValues(method, path, status).Inc()
		}
	}
}

// ObserveGeneration фиксирует длительность одной генерации карты
func (pm *PrometheusMiddleware) ObserveGeneration(d time.Duration) {
	pm.genDuration.Observe(d.Seconds())
	pm.mapsGenerated.Inc()
}

// ObserveRender фиксирует длительность одного рендера
func (pm *PrometheusMiddleware) ObserveRender(d time.Duration) {
	pm.renderDuration.Observe(d.Seconds())
}

// RegisterMetricsEndpoint добавляет GET /metrics в указанный router.
func (pm *PrometheusMiddleware) RegisterMetricsEndpoint(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
