package dwarf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/objfile/pkg/binfmt/elf"
)

func TestParseArangesHeader(t *testing.T) {
	var out []byte
	out = append(out, 0, 0, 0, 0) // unit_length, patched below
	out = append(out, 2, 0)       // version
	out = append(out, 0x34, 0x12, 0, 0)
	out = append(out, 8) // address_size
	out = append(out, 0) // segment_size
	out = append(out, 0, 0, 0, 0) // alignment padding to 2*address_size
	out = append(out, make([]byte, 32)...) // two (addr, length) tuples
	binary.LittleEndian.PutUint32(out[0:], uint32(len(out)-4))

	h, next, err := ParseArangesHeader(out, elf.LittleEndian, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(len(out)), next)
	assert.Equal(t, uint16(2), h.Version)
	assert.Equal(t, uint32(0x1234), h.DebugInfoOff)
	assert.Equal(t, uint8(8), h.AddressSize)
	assert.Equal(t, int64(16), h.TuplesStart, "tuples start aligned to twice the address size")
	assert.Equal(t, int64(len(out)), h.TuplesEnd)
}

func TestParsePubnamesHeader(t *testing.T) {
	var out []byte
	out = append(out, 0, 0, 0, 0)
	out = append(out, 2, 0)
	out = append(out, 0x10, 0, 0, 0) // debug_info offset
	out = append(out, 0x80, 0, 0, 0) // debug_info length
	out = append(out, 0xde, 0xad)    // opaque pair bytes
	binary.LittleEndian.PutUint32(out[0:], uint32(len(out)-4))

	h, next, err := ParsePubnamesHeader(out, elf.LittleEndian, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(len(out)), next)
	assert.Equal(t, uint32(0x10), h.DebugInfoOffset)
	assert.Equal(t, uint32(0x80), h.DebugInfoLength)
	assert.Equal(t, int64(14), h.PairsStart)
	assert.Equal(t, int64(len(out)), h.PairsEnd)
}

func TestParseMacroUnitHeader_Legacy(t *testing.T) {
	h, err := ParseMacroUnitHeader([]byte{0x01, 0x02}, elf.LittleEndian, 0, true)
	require.NoError(t, err)
	assert.True(t, h.Legacy)
	assert.Equal(t, int64(0), h.BodyStart, "legacy macinfo has no header")
}

func TestParseMacroUnitHeader_V5(t *testing.T) {
	var out []byte
	out = append(out, 5, 0)       // version
	out = append(out, 0)          // flags: 4-byte line offset, no operand table
	out = append(out, 0, 0, 0, 0) // debug_line offset
	out = append(out, 0x01)       // first macro opcode

	h, err := ParseMacroUnitHeader(out, elf.LittleEndian, 0, false)
	require.NoError(t, err)
	assert.False(t, h.Legacy)
	assert.Equal(t, uint16(5), h.Version)
	assert.Equal(t, int64(7), h.BodyStart)
}

func TestParseMacroUnitHeader_OperandTableSkipped(t *testing.T) {
	var out []byte
	out = append(out, 5, 0)
	out = append(out, 0x02)       // opcode_operands_table_flag set
	out = append(out, 0, 0, 0, 0) // debug_line offset
	out = append(out, 1)          // one table entry
	out = append(out, 0xe0)       // vendor opcode
	out = uleb(out, 2)            // two operand forms
	out = uleb(out, uint64(FormUdata))
	out = uleb(out, uint64(FormString))
	out = append(out, 0x01) // body

	h, err := ParseMacroUnitHeader(out, elf.LittleEndian, 0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(len(out)-1), h.BodyStart)
}

func TestData_FromFile(t *testing.T) {
	file := &elf.File{
		Header: &elf.Header{Endianness: elf.BigEndian},
		Sections: []elf.Section{
			{Name: ".debug_info", Image: []byte{1}},
			{Name: ".debug_abbrev", Image: []byte{2}},
			{Name: ".debug_str", Image: []byte{3}},
		},
	}

	d := FromFile(file)
	assert.Equal(t, elf.BigEndian, d.Order)
	assert.True(t, d.HasDebugInfo())
	assert.Equal(t, []byte{1}, d.Info)
	assert.Equal(t, []byte{3}, d.Str)
	assert.Nil(t, d.Line)
}
