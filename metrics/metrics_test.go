package metrics_test

import (
	// Go Internal Packages
	"os"
	"path/filepath"
	"testing"

	// Local Packages
	metrics "ypbank/metrics"

	// External Packages
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteToTextfile(t *testing.T) {
	m := metrics.NewMetrics("ypbank")
	m.RecordsRead.WithLabelValues("csv").Add(3)
	m.Comparisons.WithLabelValues("mismatch").Inc()

	path := filepath.Join(t.TempDir(), "ypbank.prom")
	require.NoError(t, m.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ypbank_records_read_total{format="csv"} 3`)
	assert.Contains(t, string(data), `ypbank_comparisons_total{outcome="mismatch"} 1`)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := metrics.NewMetrics("ypbank")
	b := metrics.NewMetrics("ypbank")
	a.RecordsWritten.WithLabelValues("binary").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.RecordsWritten.WithLabelValues("binary")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RecordsWritten.WithLabelValues("binary")))

	n, err := testutil.GatherAndCount(a.Gatherer(), "ypbank_records_written_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
