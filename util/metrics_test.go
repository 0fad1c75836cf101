package util

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSamplesRoundTrip(t *testing.T) {
	outPath := t.TempDir()
	now := time.Now()
	samples := []*Sample{
		{Ts: now, V: 1},
		{Ts: now.Add(time.Second), V: 2},
		{Ts: now.Add(2 * time.Second), V: 3},
	}
	assert.NoError(t, WriteSamples("pools_live", outPath, samples))

	data, err := ReadSamples(filepath.Join(outPath, "pools_live.csv"))
	assert.NoError(t, err)
	assert.Equal(t, 3, len(data))
	for _, sample := range samples {
		assert.Equal(t, sample.V, data[sample.Ts.UnixNano()])
	}
}

func TestMetricsIdRoundTrip(t *testing.T) {
	outPath := t.TempDir()
	assert.NoError(t, WriteMetricsId("rastershm.1", outPath, map[string]string{"host": "test"}))

	mid, err := ReadMetricsId(filepath.Join(outPath, "metrics.id"))
	assert.NoError(t, err)
	assert.Equal(t, "rastershm.1", mid.Id)
	assert.Equal(t, "test", mid.Values["host"])
}

func TestDiscoverMetrics(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, WriteMetricsId("rastershm.1", root, nil))

	metrics, err := DiscoverMetrics(root)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(metrics))
	for dir, mid := range metrics {
		assert.Equal(t, root, dir)
		assert.Equal(t, "rastershm.1", mid.Id)
	}
}
