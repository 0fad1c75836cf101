package rastershm

// Buffer is a rectangular, strided pixel view. Pool-backed buffers store an
// offset into the pool and share ownership of its lifetime; standalone
// buffers exclusively own a private allocation.
type Buffer struct {
	width  int32
	height int32
	stride int32
	format Format
	offset int32
	pool   *Pool
	data   []byte
}

func newPoolBuffer(pool *Pool, offset, width, height, stride int32, format Format) *Buffer {
	pool.ref()
	return &Buffer{
		width:  width,
		height: height,
		stride: stride,
		format: format,
		offset: offset,
		pool:   pool,
	}
}

func newStandaloneBuffer(width, height, stride int32, format Format) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		stride: stride,
		format: format,
		data:   make([]byte, int64(stride)*int64(height)),
	}
}

// Data resolves the buffer's bytes. For pool-backed buffers the slice is
// recomputed from the pool's current base on every call, so a remap that moved
// the region is always reflected. Never cache the returned slice across a
// pool resize.
func (self *Buffer) Data() []byte {
	if self.pool != nil {
		end := int64(self.offset) + int64(self.stride)*int64(self.height)
		return self.pool.data[self.offset:end]
	}
	return self.data
}

// destroy releases the pool reference for pool-backed buffers and drops
// private storage for standalone ones. It never touches pool memory directly.
func (self *Buffer) destroy() {
	if self.pool != nil {
		self.pool.unref()
		self.pool = nil
	}
	self.data = nil
}

func (self *Buffer) Width() int32 {
	return self.width
}

func (self *Buffer) Height() int32 {
	return self.height
}

func (self *Buffer) Stride() int32 {
	return self.stride
}

func (self *Buffer) Format() Format {
	return self.format
}

func (self *Buffer) Offset() int32 {
	return self.offset
}

// Pool returns the backing pool, or nil for standalone buffers.
func (self *Buffer) Pool() *Pool {
	return self.pool
}
