package elf

import (
	"testing"

	"github.com/Manu343726/objfile/pkg/objerr"
	"github.com/stretchr/testify/assert"
)

func TestReadULEB_WorkedExamples(t *testing.T) {
	cases := []struct {
		name     string
		bytes    []byte
		value    uint64
		consumed int
	}{
		{"624485", []byte{0xE5, 0x8E, 0x26}, 624485, 3},
		{"zero", []byte{0x00}, 0, 1},
		{"max-single-byte", []byte{0x7F}, 127, 1},
		{"two-bytes", []byte{0x80, 0x01}, 128, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewReader(c.bytes, LittleEndian)
			v, n, err := r.ReadULEB(0)
			assert.NoError(t, err)
			assert.Equal(t, c.value, v)
			assert.Equal(t, c.consumed, n)
		})
	}
}

func TestReadSLEB_WorkedExamples(t *testing.T) {
	cases := []struct {
		name     string
		bytes    []byte
		value    int64
		consumed int
	}{
		{"-123456", []byte{0xC0, 0xBB, 0x78}, -123456, 3},
		{"-2", []byte{0x7E}, -2, 1},
		{"127", []byte{0xFF, 0x00}, 127, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewReader(c.bytes, LittleEndian)
			v, n, err := r.ReadSLEB(0)
			assert.NoError(t, err)
			assert.Equal(t, c.value, v)
			assert.Equal(t, c.consumed, n)
		})
	}
}

func TestReadULEB_Overflow(t *testing.T) {
	bytes := make([]byte, 11)
	for i := range bytes {
		bytes[i] = 0x80
	}
	bytes[len(bytes)-1] = 0x01

	r := NewReader(bytes, LittleEndian)
	_, _, err := r.ReadULEB(0)
	assert.ErrorIs(t, err, objerr.ErrLebOverflow)
}

func TestReadULEB_Truncated(t *testing.T) {
	r := NewReader([]byte{0x80, 0x80}, LittleEndian)
	_, _, err := r.ReadULEB(0)
	assert.Error(t, err)
}
