//go:build linux

package rastershm

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// sharedMapper maps peer descriptors read/write shared, so both sides see the
// same bytes. Remap uses MREMAP_MAYMOVE; callers never hold raw addresses
// across a resize, only offsets.
type sharedMapper struct{}

func newSharedMapper() (Mapper, error) {
	return &sharedMapper{}, nil
}

func (self *sharedMapper) Map(fd int, size int) ([]byte, error) {
	return unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func (self *sharedMapper) Remap(region []byte, newSize int) ([]byte, error) {
	return unix.Mremap(region, newSize, unix.MREMAP_MAYMOVE)
}

func (self *sharedMapper) Unmap(region []byte) error {
	return unix.Munmap(region)
}

func (self *sharedMapper) Close(fd int) error {
	return unix.Close(fd)
}

// CreateAnonymousFile produces a sealable memfd descriptor of the given size,
// suitable for handing to Pool creation in demos and tests.
func CreateAnonymousFile(size int64) (int, error) {
	fd, err := unix.MemfdCreate("rastershm", unix.MFD_CLOEXEC|unix.MFD_ALLOW_SEALING)
	if err != nil {
		return -1, errors.Wrap(err, "memfd_create")
	}
	if err := unix.Ftruncate(fd, size); err != nil {
		_ = unix.Close(fd)
		return -1, errors.Wrap(err, "ftruncate")
	}
	return fd, nil
}
