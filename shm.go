package rastershm

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/torizon/rastershm/util"
)

// Shm is the pool/buffer lifecycle controller. It is driven synchronously,
// one request at a time; a multi-threaded host must serialize calls per Shm.
type Shm struct {
	registry *FormatRegistry
	mapper   Mapper
	handles  *HandleTable
	ii       InstrumentInstance
	seq      *util.Sequence
}

func NewShm(profile *Profile) (*Shm, error) {
	mapper, err := NewMapper(profile.Mapper)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create mapper")
	}
	var ii InstrumentInstance
	if profile.i != nil {
		ii = profile.i.NewInstance("shm")
	}
	return &Shm{
		registry: NewBaselineRegistry(),
		mapper:   mapper,
		handles:  NewHandleTableWithCapacity(profile.HandleTableCapacity),
		ii:       ii,
		seq:      util.NewSequence(1),
	}, nil
}

// Bind advertises the whitelisted formats to a connecting peer.
func (self *Shm) Bind() []Format {
	return self.registry.Formats()
}

// CreatePool maps size bytes of fd as a shared pool and binds it to a new
// handle. The descriptor is consumed on every path.
func (self *Shm) CreatePool(fd int, size int32) (int32, error) {
	pool, err := newPool(fmt.Sprintf("pool-%d", self.seq.Next()), fd, size, self.mapper, self.ii)
	if err != nil {
		self.reject(err)
		return 0, err
	}
	h, err := self.handles.Create(KindPool, pool, pool.unref)
	if err != nil {
		// unwind the freshly mapped region
		pool.unref()
		self.reject(err)
		return 0, err
	}
	return h, nil
}

// CreateBuffer validates the requested geometry against the pool's current
// size and, on success, carves a buffer view that takes a pool reference.
// Validation failure creates nothing and takes no reference.
func (self *Shm) CreateBuffer(poolHandle int32, offset, width, height, stride int32, format Format) (int32, error) {
	pool, err := self.pool(poolHandle)
	if err != nil {
		self.reject(err)
		return 0, err
	}
	if err := validateGeometry(self.registry, format, offset, width, height, stride, pool.size); err != nil {
		self.reject(err)
		return 0, err
	}
	buffer := newPoolBuffer(pool, offset, width, height, stride, format)
	h, err := self.handles.Create(KindBuffer, buffer, buffer.destroy)
	if err != nil {
		buffer.destroy()
		self.reject(err)
		return 0, err
	}
	if self.ii != nil {
		self.ii.BufferCreated(pool.id, int64(stride)*int64(height))
	}
	return h, nil
}

// CreateStandaloneBuffer allocates a buffer with private storage; only the
// format whitelist, positivity, and footprint overflow apply.
func (self *Shm) CreateStandaloneBuffer(width, height, stride int32, format Format) (int32, error) {
	if err := validateStandalone(self.registry, format, width, height, stride); err != nil {
		self.reject(err)
		return 0, err
	}
	buffer := newStandaloneBuffer(width, height, stride, format)
	h, err := self.handles.Create(KindBuffer, buffer, buffer.destroy)
	if err != nil {
		buffer.destroy()
		self.reject(err)
		return 0, err
	}
	if self.ii != nil {
		self.ii.BufferCreated("", int64(stride)*int64(height))
	}
	return h, nil
}

// ResizePool remaps the pool's region. A failed remap leaves the pool in its
// prior valid state. No outstanding buffer is re-validated against a shrink;
// that contract rests with the caller.
func (self *Shm) ResizePool(poolHandle int32, size int32) error {
	pool, err := self.pool(poolHandle)
	if err != nil {
		self.reject(err)
		return err
	}
	if err := pool.resize(size); err != nil {
		self.reject(err)
		return err
	}
	return nil
}

// DestroyPool releases the handle's own pool reference. The region stays
// mapped until every buffer carved from the pool is destroyed too.
func (self *Shm) DestroyPool(poolHandle int32) error {
	if _, err := self.pool(poolHandle); err != nil {
		self.reject(err)
		return err
	}
	self.handles.Destroy(poolHandle)
	return nil
}

func (self *Shm) DestroyBuffer(bufferHandle int32) error {
	if _, err := self.buffer(bufferHandle); err != nil {
		self.reject(err)
		return err
	}
	self.handles.Destroy(bufferHandle)
	if self.ii != nil {
		self.ii.BufferDestroyed()
	}
	return nil
}

// BufferFromHandle is the identity downcast for foreign handles: it returns
// the buffer only if the handle names a buffer created by this controller.
func (self *Shm) BufferFromHandle(h int32) (*Buffer, bool) {
	v, kind, found := self.handles.Get(h)
	if !found || kind != KindBuffer {
		return nil, false
	}
	return v.(*Buffer), true
}

func (self *Shm) PoolFromHandle(h int32) (*Pool, bool) {
	v, kind, found := self.handles.Get(h)
	if !found || kind != KindPool {
		return nil, false
	}
	return v.(*Pool), true
}

func (self *Shm) Handles() *HandleTable {
	return self.handles
}

func (self *Shm) pool(h int32) (*Pool, error) {
	v, kind, found := self.handles.Get(h)
	if !found || kind != KindPool {
		return nil, errors.Errorf("no pool for handle [%d]", h)
	}
	return v.(*Pool), nil
}

func (self *Shm) buffer(h int32) (*Buffer, error) {
	v, kind, found := self.handles.Get(h)
	if !found || kind != KindBuffer {
		return nil, errors.Errorf("no buffer for handle [%d]", h)
	}
	return v.(*Buffer), nil
}

func (self *Shm) reject(err error) {
	if self.ii != nil {
		self.ii.RequestRejected(err)
	}
}
