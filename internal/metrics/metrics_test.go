package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nainya/shelfkey/pkg/shelfindex"
)

var _ shelfindex.Observer = (*Metrics)(nil)

func TestRecordGrpcRequest(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordGrpcRequest("/svc/Browse", "success", 10*time.Millisecond)
	m.RecordGrpcRequest("/svc/Browse", "error", time.Millisecond)
	m.RecordGrpcRequest("/svc/Browse", "success", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GrpcRequestsTotal.WithLabelValues("/svc/Browse", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GrpcRequestsTotal.WithLabelValues("/svc/Browse", "error")))
}

func TestIndexObserver(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveIndexOp("add", "ok", time.Millisecond)
	m.SetIndexEntries(42)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.IndexOperationsTotal.WithLabelValues("add", "ok")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.IndexEntries))
}

func TestRegistryContents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.RecordKeys("LC")
	m.WatchMemo(func() (int64, int64) { return 3, 1 })

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"shelfkey_keys_computed_total",
		"shelfkey_server_uptime_seconds",
		"shelfkey_memo_hits_total",
		"shelfkey_memo_misses_total",
	} {
		assert.True(t, names[want], "missing %s", want)
	}

	n, err := testutil.GatherAndCount(reg, "shelfkey_memo_hits_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegisterTwicePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
