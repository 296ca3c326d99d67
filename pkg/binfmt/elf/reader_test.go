package elf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Manu343726/objfile/pkg/objerr"
)

func TestReader_EndiannessSelectsByteOrder(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78}

	le := NewReader(data, LittleEndian)
	v, err := le.ReadU32(0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x78563412), v)

	be := NewReader(data, BigEndian)
	v, err = be.ReadU32(0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)
}

func TestReader_SignedReads(t *testing.T) {
	r := NewReader([]byte{0xff, 0xff, 0xfe, 0xff}, LittleEndian)

	i8, err := r.ReadI8(0)
	assert.NoError(t, err)
	assert.Equal(t, int8(-1), i8)

	i16, err := r.ReadI16(2)
	assert.NoError(t, err)
	assert.Equal(t, int16(-2), i16)
}

func TestReader_TruncatedCarriesPosition(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02}, LittleEndian)

	_, err := r.ReadU32(1)
	assert.ErrorIs(t, err, objerr.ErrTruncated)

	var truncated *objerr.TruncatedError
	assert.ErrorAs(t, err, &truncated)
	assert.Equal(t, int64(1), truncated.Pos)
	assert.Equal(t, 4, truncated.Requested)
}

func TestReader_ReadAddrWidths(t *testing.T) {
	r := NewReader([]byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}, LittleEndian)

	v, err := r.ReadAddr(0, 4)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	v, err = r.ReadAddr(0, 8)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x0000000200000001), v)

	_, err = r.ReadAddr(0, 3)
	assert.ErrorIs(t, err, objerr.ErrUnsupported)
}

func TestReadCStringASCII(t *testing.T) {
	r := NewReader([]byte("hello\x00world\x00"), LittleEndian)

	s, n, err := r.ReadCStringASCII(0)
	assert.NoError(t, err)
	assert.Equal(t, "hello", s)
	assert.Equal(t, 6, n)

	s, n, err = r.ReadCStringASCII(6)
	assert.NoError(t, err)
	assert.Equal(t, "world", s)
	assert.Equal(t, 6, n)
}

func TestReadCStringASCII_MissingTerminator(t *testing.T) {
	r := NewReader([]byte("abc"), LittleEndian)

	_, _, err := r.ReadCStringASCII(0)
	assert.ErrorIs(t, err, objerr.ErrTruncated)
}

func TestReadCStringUTF8_Latin1Fallback(t *testing.T) {
	// 0xe9 is 'é' in ISO 8859-1 but invalid as a standalone UTF-8 byte.
	r := NewReader([]byte{'c', 'a', 'f', 0xe9, 0x00}, LittleEndian)

	s, n, err := r.ReadCStringUTF8(0)
	assert.NoError(t, err)
	assert.Equal(t, "café", s)
	assert.Equal(t, 5, n)
}

func TestReadBlock(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4}, LittleEndian)

	b, err := r.ReadBlock(1, 2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{2, 3}, b)

	_, err = r.ReadBlock(3, 2)
	assert.ErrorIs(t, err, objerr.ErrTruncated)
}

func TestReadStrP(t *testing.T) {
	strTable := []byte("\x00first\x00second\x00")
	r := NewReader([]byte{0x07, 0x00, 0x00, 0x00}, LittleEndian)

	s, err := r.ReadStrP(0, strTable)
	assert.NoError(t, err)
	assert.Equal(t, "second", s)
}
