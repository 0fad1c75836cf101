package rastershm

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// testMapper wraps the heap mapper with failure injection and call counting.
type testMapper struct {
	inner     Mapper
	failMap   bool
	failRemap bool
	maps      int
	remaps    int
	unmaps    int
	closes    int
}

func newTestMapper() *testMapper {
	return &testMapper{inner: NewHeapMapper()}
}

func (self *testMapper) Map(fd int, size int) ([]byte, error) {
	self.maps++
	if self.failMap {
		return nil, errors.New("injected map failure")
	}
	return self.inner.Map(fd, size)
}

func (self *testMapper) Remap(region []byte, newSize int) ([]byte, error) {
	self.remaps++
	if self.failRemap {
		return nil, errors.New("injected remap failure")
	}
	return self.inner.Remap(region, newSize)
}

func (self *testMapper) Unmap(region []byte) error {
	self.unmaps++
	return self.inner.Unmap(region)
}

func (self *testMapper) Close(fd int) error {
	self.closes++
	return self.inner.Close(fd)
}

func TestPoolCreate(t *testing.T) {
	mapper := newTestMapper()
	pool, err := newPool("pool-1", 7, 4096, mapper, nil)
	assert.NoError(t, err)
	assert.Equal(t, int32(4096), pool.Size())
	assert.Equal(t, 1, mapper.closes)

	pool.unref()
	assert.Equal(t, 1, mapper.unmaps)
}

func TestPoolCreateInvalidSize(t *testing.T) {
	mapper := newTestMapper()
	_, err := newPool("pool-1", 7, 0, mapper, nil)
	geometryErr := &InvalidGeometryError{}
	assert.ErrorAs(t, err, &geometryErr)
	assert.Equal(t, 0, mapper.maps)
	// fd is consumed even when creation fails
	assert.Equal(t, 1, mapper.closes)

	_, err = newPool("pool-2", 7, -4096, mapper, nil)
	assert.ErrorAs(t, err, &geometryErr)
	assert.Equal(t, 2, mapper.closes)
}

func TestPoolCreateMapFailure(t *testing.T) {
	mapper := newTestMapper()
	mapper.failMap = true
	_, err := newPool("pool-1", 7, 4096, mapper, nil)
	mappingErr := &MappingError{}
	assert.ErrorAs(t, err, &mappingErr)
	assert.Equal(t, "map", mappingErr.Op)
	assert.Equal(t, 1, mapper.closes)
	assert.Equal(t, 0, mapper.unmaps)
}

func TestPoolResize(t *testing.T) {
	mapper := newTestMapper()
	pool, err := newPool("pool-1", 7, 4096, mapper, nil)
	assert.NoError(t, err)

	copy(pool.data, []byte{0xca, 0xfe})
	assert.NoError(t, pool.resize(8192))
	assert.Equal(t, int32(8192), pool.Size())
	assert.Equal(t, []byte{0xca, 0xfe}, pool.data[:2])

	pool.unref()
}

func TestPoolResizeFailureKeepsState(t *testing.T) {
	mapper := newTestMapper()
	pool, err := newPool("pool-1", 7, 4096, mapper, nil)
	assert.NoError(t, err)
	copy(pool.data, []byte{0xbe, 0xef})

	mapper.failRemap = true
	err = pool.resize(8192)
	mappingErr := &MappingError{}
	assert.ErrorAs(t, err, &mappingErr)
	assert.Equal(t, int32(4096), pool.Size())
	assert.Equal(t, []byte{0xbe, 0xef}, pool.data[:2])

	pool.unref()
	assert.Equal(t, 1, mapper.unmaps)
}

func TestPoolResizeInvalidSize(t *testing.T) {
	mapper := newTestMapper()
	pool, err := newPool("pool-1", 7, 4096, mapper, nil)
	assert.NoError(t, err)

	geometryErr := &InvalidGeometryError{}
	assert.ErrorAs(t, pool.resize(0), &geometryErr)
	assert.Equal(t, 0, mapper.remaps)

	pool.unref()
}

func TestPoolRefcount(t *testing.T) {
	mapper := newTestMapper()
	pool, err := newPool("pool-1", 7, 4096, mapper, nil)
	assert.NoError(t, err)

	pool.ref()
	pool.ref()
	pool.unref()
	assert.Equal(t, 0, mapper.unmaps)
	pool.unref()
	assert.Equal(t, 0, mapper.unmaps)
	pool.unref()
	assert.Equal(t, 1, mapper.unmaps)
}
