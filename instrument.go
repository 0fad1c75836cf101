package rastershm

import "github.com/pkg/errors"

type Instrument interface {
	NewInstance(id string) InstrumentInstance
}

type InstrumentInstance interface {
	// pool lifecycle
	PoolCreated(poolId string, sz int32)
	PoolResized(poolId string, oldSz, newSz int32)
	PoolFreed(poolId string)

	// buffer lifecycle
	BufferCreated(poolId string, footprint int64)
	BufferDestroyed()

	// request validation
	RequestRejected(err error)

	// instrument lifecycle
	Shutdown()
}

func NewInstrument(name string, config map[string]interface{}) (i Instrument, err error) {
	switch name {
	case "nil":
		return NewNilInstrument(), nil
	case "trace":
		return NewTraceInstrument(config)
	case "metrics":
		return NewMetricsInstrument(config)
	default:
		return nil, errors.Errorf("unknown instrument '%s'", name)
	}
}
