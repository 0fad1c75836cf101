//go:build !linux

package rastershm

import "github.com/pkg/errors"

func newSharedMapper() (Mapper, error) {
	return nil, errors.New("shared mapper requires linux")
}

func CreateAnonymousFile(_ int64) (int, error) {
	return -1, errors.New("anonymous files require linux")
}
