package rastershm

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Pool owns one mapped region supplied by a peer descriptor. The refcount
// starts at 1 for the pool's own handle; every buffer carved from the pool
// holds another reference. The region is released exactly once, on the 1->0
// transition, regardless of the order handles and buffers are torn down in.
type Pool struct {
	id     string
	data   []byte
	size   int32
	refs   int32
	mapper Mapper
	ii     InstrumentInstance
}

// newPool maps size bytes of fd read/write shared. The descriptor is consumed:
// it is closed after the map attempt whether or not the map succeeded.
func newPool(id string, fd int, size int32, mapper Mapper, ii InstrumentInstance) (*Pool, error) {
	defer func() {
		if err := mapper.Close(fd); err != nil {
			logrus.Errorf("error closing fd [%d] (%v)", fd, err)
		}
	}()

	if size <= 0 {
		return nil, &InvalidGeometryError{PoolSize: size}
	}
	data, err := mapper.Map(fd, int(size))
	if err != nil {
		return nil, &MappingError{Op: "map", Fd: fd, Cause: err}
	}
	pool := &Pool{
		id:     id,
		data:   data,
		size:   size,
		refs:   1,
		mapper: mapper,
		ii:     ii,
	}
	if ii != nil {
		ii.PoolCreated(id, size)
	}
	return pool, nil
}

// resize remaps the region to newSize, possibly relocating it. On failure the
// previous mapping stays intact and valid. Outstanding buffers are unaffected
// either way; they hold offsets, not addresses.
func (self *Pool) resize(newSize int32) error {
	if newSize <= 0 {
		return &InvalidGeometryError{PoolSize: newSize}
	}
	data, err := self.mapper.Remap(self.data, int(newSize))
	if err != nil {
		return &MappingError{Op: "remap", Cause: err}
	}
	oldSize := self.size
	self.data = data
	self.size = newSize
	if self.ii != nil {
		self.ii.PoolResized(self.id, oldSize, newSize)
	}
	return nil
}

func (self *Pool) ref() {
	atomic.AddInt32(&self.refs, 1)
}

func (self *Pool) unref() {
	if atomic.AddInt32(&self.refs, -1) > 0 {
		return
	}
	if err := self.mapper.Unmap(self.data); err != nil {
		logrus.Errorf("error unmapping pool [%s] (%v)", self.id, err)
	}
	self.data = nil
	if self.ii != nil {
		self.ii.PoolFreed(self.id)
	}
}

func (self *Pool) Id() string {
	return self.id
}

func (self *Pool) Size() int32 {
	return self.size
}
