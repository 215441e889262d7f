package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polyfill/internal/adapters/metrics"
	"go.trai.ch/polyfill/internal/core/ports"
)

var _ ports.Metrics = (*metrics.Prometheus)(nil)

func TestPrometheus_ObserveRequest(t *testing.T) {
	t.Parallel()

	p := metrics.New()
	p.ObserveRequest("chrome", 70, 0.01)
	p.ObserveRequest("chrome", 70, 0.02)
	p.ObserveRequest("ie", 11, 0.03)

	srv := httptest.NewServer(p.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, "polyfill_hits_total 3")
	assert.Contains(t, out, `polyfill_useragent_total{family="chrome",major="70"} 2`)
	assert.Contains(t, out, `polyfill_useragent_total{family="ie",major="11"} 1`)
	assert.Contains(t, out, "polyfill_response_seconds_count 3")
}
