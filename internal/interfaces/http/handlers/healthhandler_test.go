package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ba6/gatekeeper/internal/interfaces/http/handlers/testutil"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func TestHealthHandler_Healthz(t *testing.T) {
	t.Run("all up", func(t *testing.T) {
		h := NewHealthHandler(map[string]PingFunc{
			"database": func() error { return nil },
		}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/healthz", nil)
		h.Healthz(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var body healthBody
		require.NoError(t, testutil.ParseResponse(w, &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "up", body.Checks["database"])
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthHandler(map[string]PingFunc{
			"database": func() error { return errors.New("connection refused") },
			"redis":    func() error { return nil },
		}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/healthz", nil)
		h.Healthz(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body healthBody
		require.NoError(t, testutil.ParseResponse(w, &body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "down", body.Checks["database"])
		assert.Equal(t, "up", body.Checks["redis"])
	})
}
