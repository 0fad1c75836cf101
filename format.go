package rastershm

import "fmt"

type Format uint32

const (
	FormatARGB8888 Format = 0
	FormatXRGB8888 Format = 1
)

func (self Format) String() string {
	switch self {
	case FormatARGB8888:
		return "ARGB8888"
	case FormatXRGB8888:
		return "XRGB8888"
	default:
		return fmt.Sprintf("Format(%d)", uint32(self))
	}
}

// FormatRegistry is the immutable whitelist of pixel formats advertised to peers.
type FormatRegistry struct {
	formats []Format
}

func NewBaselineRegistry() *FormatRegistry {
	return &FormatRegistry{formats: []Format{FormatARGB8888, FormatXRGB8888}}
}

func NewRegistry(formats ...Format) *FormatRegistry {
	out := make([]Format, len(formats))
	copy(out, formats)
	return &FormatRegistry{formats: out}
}

func (self *FormatRegistry) Supported(f Format) bool {
	for _, candidate := range self.formats {
		if candidate == f {
			return true
		}
	}
	return false
}

// Formats returns the advertised whitelist.
func (self *FormatRegistry) Formats() []Format {
	out := make([]Format, len(self.formats))
	copy(out, self.formats)
	return out
}

// PixelSize returns the bytes per pixel for a whitelisted format.
func (self *FormatRegistry) PixelSize(f Format) int32 {
	switch f {
	case FormatARGB8888, FormatXRGB8888:
		return 4
	default:
		return 0
	}
}
