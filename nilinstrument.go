package rastershm

type nilInstrument struct{}

func NewNilInstrument() Instrument {
	return &nilInstrument{}
}

func (self *nilInstrument) NewInstance(_ string) InstrumentInstance {
	return &nilInstrumentInstance{}
}

type nilInstrumentInstance struct{}

func (self *nilInstrumentInstance) PoolCreated(string, int32)        {}
func (self *nilInstrumentInstance) PoolResized(string, int32, int32) {}
func (self *nilInstrumentInstance) PoolFreed(string)                 {}
func (self *nilInstrumentInstance) BufferCreated(string, int64)      {}
func (self *nilInstrumentInstance) BufferDestroyed()                 {}
func (self *nilInstrumentInstance) RequestRejected(error)            {}
func (self *nilInstrumentInstance) Shutdown()                        {}
