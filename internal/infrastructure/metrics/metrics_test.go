package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_UsaRutaRegistrada(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/sales/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/sales/:id", "204"))
	resp, err := app.Test(httptest.NewRequest("GET", "/api/sales/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/sales/:id", "204"))
	assert.Equal(t, before+1, after)
}

func TestRecorder_Contadores(t *testing.T) {
	r := Recorder{}
	before := testutil.ToFloat64(stageAdvances.WithLabelValues("production"))
	r.StageAdvanced("production")
	assert.Equal(t, before+1, testutil.ToFloat64(stageAdvances.WithLabelValues("production")))

	failed := testutil.ToFloat64(supportMessages.WithLabelValues("error"))
	r.SupportMessage(false)
	assert.Equal(t, failed+1, testutil.ToFloat64(supportMessages.WithLabelValues("error")))
}

func TestHandler_ExponeMetricas(t *testing.T) {
	Recorder{}.SecondDepositPaid()
	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "prisma_portal_second_deposit_payments_total")
}
