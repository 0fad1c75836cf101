package rastershm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/torizon/rastershm/util"
)

func TestNewInstrument(t *testing.T) {
	i, err := NewInstrument("nil", nil)
	assert.NoError(t, err)
	assert.NotNil(t, i.NewInstance("shm"))

	i, err = NewInstrument("trace", map[string]interface{}{"pools": false})
	assert.NoError(t, err)
	assert.NotNil(t, i.NewInstance("shm"))

	_, err = NewInstrument("bogus", nil)
	assert.Error(t, err)
}

func TestTraceInstrumentEvents(t *testing.T) {
	i, err := NewTraceInstrument(nil)
	assert.NoError(t, err)
	ii := i.NewInstance("shm")
	ii.PoolCreated("pool-1", 4096)
	ii.PoolResized("pool-1", 4096, 8192)
	ii.BufferCreated("pool-1", 1024)
	ii.BufferCreated("", 2048)
	ii.BufferDestroyed()
	ii.RequestRejected(errors.New("rejected"))
	ii.PoolFreed("pool-1")
	ii.Shutdown()
}

func TestMetricsInstrumentWritesDatasets(t *testing.T) {
	root := t.TempDir()
	i, err := NewMetricsInstrument(map[string]interface{}{"path": root, "snapshot_ms": 10})
	assert.NoError(t, err)

	ii := i.NewInstance("shm")
	ii.PoolCreated("pool-1", 4096)
	ii.BufferCreated("pool-1", 1024)
	ii.RequestRejected(errors.New("rejected"))
	ii.BufferDestroyed()
	ii.PoolFreed("pool-1")
	ii.Shutdown()

	mi := i.(*metricsInstrument)
	assert.NoError(t, mi.writeAllSamples())

	metrics, err := util.DiscoverMetrics(root)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(metrics))
	for dir, mid := range metrics {
		assert.Equal(t, "rastershm.1", mid.Id)
		_, err := os.Stat(filepath.Join(dir, "pools_live.csv"))
		assert.NoError(t, err)
	}

	mi.clean()
	assert.Equal(t, 0, len(mi.instances))
}
