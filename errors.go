package rastershm

import "fmt"

// Protocol error codes posted to the peer by the boundary layer.
const (
	ErrCodeInvalidFormat uint32 = 0
	ErrCodeInvalidStride uint32 = 1
	ErrCodeInvalidFd     uint32 = 2
)

type InvalidFormatError struct {
	Format Format
}

func (self *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format [%d]", uint32(self.Format))
}

type InvalidGeometryError struct {
	Offset   int32
	Width    int32
	Height   int32
	Stride   int32
	PoolSize int32
}

func (self *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry [%dx%d, stride %d, offset %d] for pool size [%d]",
		self.Width, self.Height, self.Stride, self.Offset, self.PoolSize)
}

type MappingError struct {
	Op    string
	Fd    int
	Cause error
}

func (self *MappingError) Error() string {
	return fmt.Sprintf("%s failed for fd [%d] (%v)", self.Op, self.Fd, self.Cause)
}

func (self *MappingError) Unwrap() error {
	return self.Cause
}

type AllocationError struct {
	What string
}

func (self *AllocationError) Error() string {
	return fmt.Sprintf("out of memory allocating %s", self.What)
}

// ProtocolErrorCode maps a core error onto the protocol error code the boundary
// layer posts to the peer. The second return is false for allocation failures,
// which travel as an out-of-memory notification instead.
func ProtocolErrorCode(err error) (uint32, bool) {
	switch err.(type) {
	case *InvalidFormatError:
		return ErrCodeInvalidFormat, true
	case *InvalidGeometryError:
		return ErrCodeInvalidStride, true
	case *MappingError:
		return ErrCodeInvalidFd, true
	default:
		return 0, false
	}
}
