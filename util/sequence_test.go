package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence(t *testing.T) {
	seq := NewSequence(1)
	assert.Equal(t, int32(1), seq.Next())
	assert.Equal(t, int32(2), seq.Next())
	seq.ResetTo(10)
	assert.Equal(t, int32(10), seq.Next())
}

func TestSequenceStart(t *testing.T) {
	seq := NewSequence(100)
	assert.Equal(t, int32(100), seq.Next())
	assert.Equal(t, int32(101), seq.Next())
}
