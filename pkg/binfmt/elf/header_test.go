package elf

import (
	"testing"

	"github.com/Manu343726/objfile/pkg/objerr"
	"github.com/stretchr/testify/assert"
)

func minimalHeader64(endian byte) []byte {
	data := make([]byte, 64)
	copy(data, Magic[:])
	data[4] = byte(Class64)
	data[5] = endian
	data[6] = 1 // EI_VERSION

	order := uint16le
	if endian == byte(BigEndian) {
		order = uint16be
	}
	order(data[16:], uint16(TypeExecutable))
	order(data[18:], uint16(MachineX86_64))
	order(data[62:], uint16(1)) // e_shstrndx

	return data
}

func uint16le(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func uint16be(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func TestDecodeHeader_BadMagic(t *testing.T) {
	data := minimalHeader64(byte(LittleEndian))
	data[0] = 0x00

	_, err := DecodeHeader(data)
	assert.ErrorIs(t, err, objerr.ErrBadMagic)
}

func TestDecodeHeader_UnsupportedClass(t *testing.T) {
	data := minimalHeader64(byte(LittleEndian))
	data[4] = 0x09

	_, err := DecodeHeader(data)
	assert.ErrorIs(t, err, objerr.ErrUnsupportedClass)
}

func TestDecodeHeader_UnsupportedEndianness(t *testing.T) {
	data := minimalHeader64(byte(LittleEndian))
	data[5] = 0x09

	_, err := DecodeHeader(data)
	assert.ErrorIs(t, err, objerr.ErrUnsupportedEndianness)
}

func TestDecodeHeader_Truncated(t *testing.T) {
	_, err := DecodeHeader([]byte{0x7f, 'E', 'L'})
	assert.ErrorIs(t, err, objerr.ErrTruncated)
}

func TestDecodeHeader_64BitLittleEndian(t *testing.T) {
	data := minimalHeader64(byte(LittleEndian))

	h, err := DecodeHeader(data)
	assert.NoError(t, err)
	assert.Equal(t, Class64, h.Class)
	assert.Equal(t, LittleEndian, h.Endianness)
	assert.Equal(t, TypeExecutable, h.Type)
	assert.Equal(t, MachineX86_64, h.Machine)
	assert.Equal(t, 8, h.AddressSize())
}

func TestDecodeHeader_BigEndian(t *testing.T) {
	data := minimalHeader64(byte(BigEndian))

	h, err := DecodeHeader(data)
	assert.NoError(t, err)
	assert.Equal(t, BigEndian, h.Endianness)
	assert.Equal(t, TypeExecutable, h.Type)
}
