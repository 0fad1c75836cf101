package rastershm

import "github.com/pkg/errors"

// Request is the closed set of peer request variants the dispatch substrate
// delivers. Apply is the single entry point; each variant delegates to the
// corresponding controller operation.
type Request interface {
	requestKind() string
}

type CreatePool struct {
	Fd   int
	Size int32
}

type CreateBuffer struct {
	Pool   int32
	Offset int32
	Width  int32
	Height int32
	Stride int32
	Format Format
}

type ResizePool struct {
	Pool int32
	Size int32
}

type DestroyPool struct {
	Pool int32
}

type DestroyBuffer struct {
	Buffer int32
}

func (CreatePool) requestKind() string    { return "create-pool" }
func (CreateBuffer) requestKind() string  { return "create-buffer" }
func (ResizePool) requestKind() string    { return "resize-pool" }
func (DestroyPool) requestKind() string   { return "destroy-pool" }
func (DestroyBuffer) requestKind() string { return "destroy-buffer" }

// Apply dispatches one request. Creation variants return the new handle;
// the rest return 0. Errors are scoped to the failing request and leave no
// partial state behind.
func (self *Shm) Apply(req Request) (int32, error) {
	switch r := req.(type) {
	case CreatePool:
		return self.CreatePool(r.Fd, r.Size)
	case CreateBuffer:
		return self.CreateBuffer(r.Pool, r.Offset, r.Width, r.Height, r.Stride, r.Format)
	case ResizePool:
		return 0, self.ResizePool(r.Pool, r.Size)
	case DestroyPool:
		return 0, self.DestroyPool(r.Pool)
	case DestroyBuffer:
		return 0, self.DestroyBuffer(r.Buffer)
	default:
		return 0, errors.Errorf("unsupported request type [%T]", req)
	}
}
