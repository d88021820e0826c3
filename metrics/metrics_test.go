package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersWithoutCollision(t *testing.T) {
	m := New("extern_test")
	reg := prometheus.NewRegistry()
	m.MustRegister(reg)

	m.EncodeTotal.WithLabelValues("demo.Widget").Inc()
	require.Equal(t, float64(1), testutil.ToFloat64(m.EncodeTotal.WithLabelValues("demo.Widget")))
}
