package rastershm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileLoad(t *testing.T) {
	p := NewBaselineProfile()
	d := make(map[string]interface{})
	d["profile_version"] = 1
	d["mapper"] = "heap"
	d["handle_table_capacity"] = 256
	assert.Equal(t, "shared", p.Mapper)
	assert.Equal(t, 0, p.HandleTableCapacity)
	err := p.Load(d)
	assert.NoError(t, err)
	assert.Equal(t, "heap", p.Mapper)
	assert.Equal(t, 256, p.HandleTableCapacity)
	fmt.Println(p.Dump())
}

func TestProfileLoadVersionRequired(t *testing.T) {
	p := NewBaselineProfile()
	err := p.Load(map[string]interface{}{"mapper": "heap"})
	assert.Error(t, err)

	err = p.Load(map[string]interface{}{"profile_version": 99})
	assert.Error(t, err)
}

func TestProfileLoadInstrument(t *testing.T) {
	p := NewBaselineProfile()
	d := map[string]interface{}{
		"profile_version": 1,
		"instrument": map[string]interface{}{
			"name": "nil",
		},
	}
	assert.Nil(t, p.i)
	assert.NoError(t, p.Load(d))
	assert.NotNil(t, p.i)
}

func TestProfileLoadUnknownInstrument(t *testing.T) {
	p := NewBaselineProfile()
	d := map[string]interface{}{
		"profile_version": 1,
		"instrument": map[string]interface{}{
			"name": "bogus",
		},
	}
	assert.Error(t, p.Load(d))
}

func TestNewShmFromProfile(t *testing.T) {
	p := NewBaselineProfile()
	p.Mapper = "heap"
	shm, err := NewShm(p)
	assert.NoError(t, err)
	assert.NotNil(t, shm)

	p.Mapper = "bogus"
	_, err = NewShm(p)
	assert.Error(t, err)
}
