package rastershm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryWhitelist(t *testing.T) {
	registry := NewBaselineRegistry()
	assert.True(t, registry.Supported(FormatARGB8888))
	assert.True(t, registry.Supported(FormatXRGB8888))
	assert.False(t, registry.Supported(Format(7)))
	assert.Equal(t, []Format{FormatARGB8888, FormatXRGB8888}, registry.Formats())

	narrow := NewRegistry(FormatXRGB8888)
	assert.False(t, narrow.Supported(FormatARGB8888))
	assert.True(t, narrow.Supported(FormatXRGB8888))
}

func TestRegistryPixelSize(t *testing.T) {
	registry := NewBaselineRegistry()
	assert.Equal(t, int32(4), registry.PixelSize(FormatARGB8888))
	assert.Equal(t, int32(4), registry.PixelSize(FormatXRGB8888))
	assert.Equal(t, int32(0), registry.PixelSize(Format(7)))
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "ARGB8888", FormatARGB8888.String())
	assert.Equal(t, "XRGB8888", FormatXRGB8888.String())
	assert.Equal(t, "Format(7)", Format(7).String())
}
