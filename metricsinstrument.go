package rastershm

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/torizon/rastershm/cf"
	"github.com/torizon/rastershm/util"
)

type metricsInstrument struct {
	lock      *sync.Mutex
	config    *metricsInstrumentConfig
	instances []*metricsInstrumentInstance
}

type metricsInstrumentConfig struct {
	Path       string `cf:"path"`
	SnapshotMs int    `cf:"snapshot_ms"`
	Enabled    bool   `cf:"enabled"`
}

func NewMetricsInstrument(config map[string]interface{}) (Instrument, error) {
	i := &metricsInstrument{
		lock: new(sync.Mutex),
		config: &metricsInstrumentConfig{
			SnapshotMs: 1000,
			Enabled:    true,
		},
	}
	if err := cf.Load(config, i.config); err != nil {
		return nil, errors.Wrap(err, "unable to load config")
	}
	cl, err := util.GetCtrlListener(i.config.Path, "rastershm")
	if err != nil {
		return nil, errors.Wrap(err, "unable to get metrics ctrl listener")
	}
	cl.AddCallback("start", func(string) error {
		i.config.Enabled = true
		return nil
	})
	cl.AddCallback("stop", func(string) error {
		i.config.Enabled = false
		return nil
	})
	cl.AddCallback("write", func(string) error {
		err := i.writeAllSamples()
		if err != nil {
			logrus.Errorf("error writing samples (%v)", err)
		}
		return err
	})
	cl.AddCallback("clean", func(string) error {
		i.clean()
		return nil
	})
	cl.Start()
	logrus.Info(cf.Dump("config", i.config))
	return i, nil
}

func (self *metricsInstrument) NewInstance(id string) InstrumentInstance {
	self.lock.Lock()
	defer self.lock.Unlock()

	ii := &metricsInstrumentInstance{id: id, config: self.config, close: make(chan struct{}, 1)}
	go ii.snapshotter(self.config.SnapshotMs)
	self.instances = append(self.instances, ii)
	return ii
}

func (self *metricsInstrument) writeAllSamples() error {
	self.lock.Lock()
	defer self.lock.Unlock()

	for _, ii := range self.instances {
		if err := os.MkdirAll(self.config.Path, os.ModePerm); err != nil {
			return err
		}
		outPath, err := os.MkdirTemp(self.config.Path, fmt.Sprintf("%s_", ii.id))
		if err != nil {
			return err
		}
		logrus.Infof("writing metrics to: %s", outPath)

		if err := util.WriteMetricsId("rastershm.1", outPath, nil); err != nil {
			return err
		}
		if err := util.WriteSamples("pools_live", outPath, ii.poolsLive); err != nil {
			return err
		}
		if err := util.WriteSamples("buffers_live", outPath, ii.buffersLive); err != nil {
			return err
		}
		if err := util.WriteSamples("bytes_mapped", outPath, ii.bytesMapped); err != nil {
			return err
		}
		if err := util.WriteSamples("buffer_bytes", outPath, ii.bufferBytes); err != nil {
			return err
		}
		if err := util.WriteSamples("allocations", outPath, ii.allocations); err != nil {
			return err
		}
		if err := util.WriteSamples("rejections", outPath, ii.rejections); err != nil {
			return err
		}
	}
	return nil
}

func (self *metricsInstrument) clean() {
	self.lock.Lock()
	defer self.lock.Unlock()

	idx := self.findClosed()
	for idx != -1 {
		logrus.Infof("removed metricsInstrumentInstance #%p", self.instances[idx])
		self.instances = append(self.instances[:idx], self.instances[idx+1:]...)
		idx = self.findClosed()
	}
}

func (self *metricsInstrument) findClosed() int {
	for i, ii := range self.instances {
		if ii.closed {
			return i
		}
	}
	return -1
}

type metricsInstrumentInstance struct {
	id     string
	config *metricsInstrumentConfig

	poolsLiveAccum   int64
	poolsLive        []*util.Sample
	buffersLiveAccum int64
	buffersLive      []*util.Sample
	bytesMappedAccum int64
	bytesMapped      []*util.Sample
	bufferBytesAccum int64
	bufferBytes      []*util.Sample
	allocationsAccum int64
	allocations      []*util.Sample
	rejectionsAccum  int64
	rejections       []*util.Sample

	close  chan struct{}
	closed bool
}

func (self *metricsInstrumentInstance) PoolCreated(_ string, sz int32) {
	atomic.AddInt64(&self.poolsLiveAccum, 1)
	atomic.AddInt64(&self.bytesMappedAccum, int64(sz))
	atomic.AddInt64(&self.allocationsAccum, 1)
}

func (self *metricsInstrumentInstance) PoolResized(_ string, oldSz, newSz int32) {
	atomic.AddInt64(&self.bytesMappedAccum, int64(newSz)-int64(oldSz))
}

func (self *metricsInstrumentInstance) PoolFreed(_ string) {
	atomic.AddInt64(&self.poolsLiveAccum, -1)
}

func (self *metricsInstrumentInstance) BufferCreated(_ string, footprint int64) {
	atomic.AddInt64(&self.buffersLiveAccum, 1)
	atomic.AddInt64(&self.bufferBytesAccum, footprint)
	atomic.AddInt64(&self.allocationsAccum, 1)
}

func (self *metricsInstrumentInstance) BufferDestroyed() {
	atomic.AddInt64(&self.buffersLiveAccum, -1)
}

func (self *metricsInstrumentInstance) RequestRejected(_ error) {
	atomic.AddInt64(&self.rejectionsAccum, 1)
}

func (self *metricsInstrumentInstance) Shutdown() {
	if !self.closed {
		self.closed = true
		close(self.close)
	}
}

func (self *metricsInstrumentInstance) snapshotter(ms int) {
	logrus.Infof("started for [%s]", self.id)
	defer logrus.Warnf("exited for [%s]", self.id)
	for {
		time.Sleep(time.Duration(ms) * time.Millisecond)
		if self.config.Enabled {
			self.snapshot()
		}
		select {
		case <-self.close:
			return
		default:
		}
	}
}

func (self *metricsInstrumentInstance) snapshot() {
	now := time.Now()
	self.poolsLive = append(self.poolsLive, &util.Sample{Ts: now, V: atomic.LoadInt64(&self.poolsLiveAccum)})
	self.buffersLive = append(self.buffersLive, &util.Sample{Ts: now, V: atomic.LoadInt64(&self.buffersLiveAccum)})
	self.bytesMapped = append(self.bytesMapped, &util.Sample{Ts: now, V: atomic.LoadInt64(&self.bytesMappedAccum)})
	self.bufferBytes = append(self.bufferBytes, &util.Sample{Ts: now, V: atomic.LoadInt64(&self.bufferBytesAccum)})
	self.allocations = append(self.allocations, &util.Sample{Ts: now, V: atomic.LoadInt64(&self.allocationsAccum)})
	self.rejections = append(self.rejections, &util.Sample{Ts: now, V: atomic.LoadInt64(&self.rejectionsAccum)})
}
