package rastershm

import "math"

// validateGeometry is the single choke point for untrusted buffer descriptions.
// Every width/height/stride/offset combination passes through here before any
// memory view is materialized. The footprint arithmetic widens to 64 bits so a
// stride*height product that would wrap int32 is caught instead of comparing a
// wrapped, falsely small number against the pool size.
func validateGeometry(registry *FormatRegistry, format Format, offset, width, height, stride, poolSize int32) error {
	if !registry.Supported(format) {
		return &InvalidFormatError{Format: format}
	}
	geometry := &InvalidGeometryError{Offset: offset, Width: width, Height: height, Stride: stride, PoolSize: poolSize}
	if offset < 0 || width <= 0 || height <= 0 {
		return geometry
	}
	if int64(stride) < int64(width)*int64(registry.PixelSize(format)) {
		return geometry
	}
	footprint := int64(stride) * int64(height)
	if footprint > math.MaxInt32 {
		return geometry
	}
	if int64(offset)+footprint > int64(poolSize) {
		return geometry
	}
	return nil
}

// validateStandalone covers buffers with no pool to bound against: the format
// whitelist plus positivity and footprint overflow only.
func validateStandalone(registry *FormatRegistry, format Format, width, height, stride int32) error {
	return validateGeometry(registry, format, 0, width, height, stride, math.MaxInt32)
}
