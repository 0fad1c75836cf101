package rastershm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAccepts(t *testing.T) {
	registry := NewBaselineRegistry()
	err := validateGeometry(registry, FormatARGB8888, 0, 32, 32, 128, 4096)
	assert.NoError(t, err)
	err = validateGeometry(registry, FormatXRGB8888, 2048, 16, 32, 64, 4096)
	assert.NoError(t, err)
}

func TestValidateRejectsFormat(t *testing.T) {
	registry := NewBaselineRegistry()
	err := validateGeometry(registry, Format(7), 0, 32, 32, 128, 4096)
	formatErr := &InvalidFormatError{}
	assert.ErrorAs(t, err, &formatErr)
	assert.Equal(t, Format(7), formatErr.Format)
}

func TestValidateRejectsGeometry(t *testing.T) {
	registry := NewBaselineRegistry()
	cases := []struct {
		name                                    string
		offset, width, height, stride, poolSize int32
	}{
		{"negative offset", -1, 32, 32, 128, 4096},
		{"zero width", 0, 0, 32, 128, 4096},
		{"zero height", 0, 32, 0, 128, 4096},
		{"negative height", 0, 32, -1, 128, 4096},
		{"stride below row bytes", 0, 32, 32, 127, 4096},
		{"footprint exceeds pool", 0, 32, 33, 128, 4096},
		{"offset pushes past pool", 1, 32, 32, 128, 4096},
	}
	for _, tc := range cases {
		err := validateGeometry(registry, FormatARGB8888, tc.offset, tc.width, tc.height, tc.stride, tc.poolSize)
		geometryErr := &InvalidGeometryError{}
		assert.ErrorAs(t, err, &geometryErr, tc.name)
	}
}

func TestValidateFootprintOverflow(t *testing.T) {
	registry := NewBaselineRegistry()
	// 2^30 * 8 wraps a naive int32 multiply to a small positive number
	err := validateGeometry(registry, FormatARGB8888, 0, 32, 8, 1<<30, 4096)
	geometryErr := &InvalidGeometryError{}
	assert.ErrorAs(t, err, &geometryErr)
	assert.Equal(t, int32(1<<30), geometryErr.Stride)
	assert.Equal(t, int32(8), geometryErr.Height)
}

func TestValidateExactFit(t *testing.T) {
	registry := NewBaselineRegistry()
	assert.NoError(t, validateGeometry(registry, FormatARGB8888, 0, 32, 32, 128, 4096))
	assert.Error(t, validateGeometry(registry, FormatARGB8888, 0, 32, 32, 128, 4095))
}

func TestValidateStandalone(t *testing.T) {
	registry := NewBaselineRegistry()
	assert.NoError(t, validateStandalone(registry, FormatXRGB8888, 640, 480, 2560))
	assert.Error(t, validateStandalone(registry, Format(99), 640, 480, 2560))
	assert.Error(t, validateStandalone(registry, FormatXRGB8888, 640, 0, 2560))
	assert.Error(t, validateStandalone(registry, FormatXRGB8888, 640, 8, 1<<30))
}
