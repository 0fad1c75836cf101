package rastershm

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/torizon/rastershm/cf"
)

type traceInstrument struct {
	config *traceInstrumentConfig
}

type traceInstrumentConfig struct {
	Pools   bool `cf:"pools"`
	Buffers bool `cf:"buffers"`
	Errors  bool `cf:"errors"`
}

func NewTraceInstrument(config map[string]interface{}) (Instrument, error) {
	i := &traceInstrument{
		config: &traceInstrumentConfig{
			Pools:   true,
			Buffers: true,
			Errors:  true,
		},
	}
	if err := cf.Load(config, i.config); err != nil {
		return nil, errors.Wrap(err, "unable to load config")
	}
	logrus.Info(cf.Dump("config", i.config))
	return i, nil
}

func (self *traceInstrument) NewInstance(id string) InstrumentInstance {
	return &traceInstrumentInstance{id: id, i: self}
}

type traceInstrumentInstance struct {
	id string
	i  *traceInstrument
}

func (self *traceInstrumentInstance) PoolCreated(poolId string, sz int32) {
	if self.i.config.Pools {
		logrus.Infof("[%s] pool [%s] created, %d bytes", self.id, poolId, sz)
	}
}

func (self *traceInstrumentInstance) PoolResized(poolId string, oldSz, newSz int32) {
	if self.i.config.Pools {
		logrus.Infof("[%s] pool [%s] resized, %d -> %d bytes", self.id, poolId, oldSz, newSz)
	}
}

func (self *traceInstrumentInstance) PoolFreed(poolId string) {
	if self.i.config.Pools {
		logrus.Infof("[%s] pool [%s] freed", self.id, poolId)
	}
}

func (self *traceInstrumentInstance) BufferCreated(poolId string, footprint int64) {
	if self.i.config.Buffers {
		if poolId == "" {
			logrus.Infof("[%s] standalone buffer created, %d bytes", self.id, footprint)
		} else {
			logrus.Infof("[%s] buffer created in pool [%s], %d bytes", self.id, poolId, footprint)
		}
	}
}

func (self *traceInstrumentInstance) BufferDestroyed() {
	if self.i.config.Buffers {
		logrus.Infof("[%s] buffer destroyed", self.id)
	}
}

func (self *traceInstrumentInstance) RequestRejected(err error) {
	if self.i.config.Errors {
		logrus.Errorf("[%s] request rejected (%v)", self.id, err)
	}
}

func (self *traceInstrumentInstance) Shutdown() {
}
