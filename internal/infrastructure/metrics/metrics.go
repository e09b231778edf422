// Package metrics expone contadores Prometheus de HTTP y de eventos del negocio.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/prisma-api/internal/application/ports"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prisma_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prisma_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	stageAdvances = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prisma_sale_stage_advances_total",
		Help: "Pipeline stages marked as done through the advance action",
	}, []string{"stage"})

	secondDepositPayments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prisma_portal_second_deposit_payments_total",
		Help: "Second deposit payments confirmed from the customer portal",
	})

	documentDownloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prisma_portal_document_downloads_total",
		Help: "Final documents downloaded from the customer portal",
	})

	supportMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prisma_portal_support_messages_total",
		Help: "Support messages sent from the customer portal by result",
	}, []string{"result"})
)

// ObserveHTTPRequest registra una request HTTP.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// Middleware mide cada request. El label path es la ruta registrada (":id"), no la URL.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		ObserveHTTPRequest(c.Method(), c.Route().Path, strconv.Itoa(status), time.Since(start))
		return err
	}
}

// Handler GET /metrics para Fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

var _ ports.EventRecorder = Recorder{}

// Recorder implementa ports.EventRecorder sobre los contadores globales.
type Recorder struct{}

func (Recorder) StageAdvanced(stage string) { stageAdvances.WithLabelValues(stage).Inc() }
func (Recorder) SecondDepositPaid()         { secondDepositPayments.Inc() }
func (Recorder) DocumentDownloaded()        { documentDownloads.Inc() }

func (Recorder) SupportMessage(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	supportMessages.WithLabelValues(result).Inc()
}
