package rastershm

import (
	"github.com/pkg/errors"
)

// Mapper abstracts the OS mapping primitive underneath a Pool. Map consumes
// nothing; descriptor lifetime is the caller's concern (Pool closes the fd
// after the map attempt).
type Mapper interface {
	Map(fd int, size int) ([]byte, error)
	Remap(region []byte, newSize int) ([]byte, error)
	Unmap(region []byte) error
	Close(fd int) error
}

func NewMapper(name string) (Mapper, error) {
	switch name {
	case "heap":
		return NewHeapMapper(), nil
	case "shared":
		return newSharedMapper()
	default:
		return nil, errors.Errorf("unknown mapper '%s'", name)
	}
}

// heapMapper backs regions with ordinary allocations. It ignores the
// descriptor contents, which makes it useful for tests and for hosts without
// shared mapping support.
type heapMapper struct{}

func NewHeapMapper() Mapper {
	return &heapMapper{}
}

func (self *heapMapper) Map(_ int, size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (self *heapMapper) Remap(region []byte, newSize int) ([]byte, error) {
	next := make([]byte, newSize)
	copy(next, region)
	return next, nil
}

func (self *heapMapper) Unmap(_ []byte) error {
	return nil
}

func (self *heapMapper) Close(_ int) error {
	return nil
}
