package dwarf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/objfile/pkg/binfmt/elf"
)

// buildLineProgramV4 assembles one version-4 line program: header,
// include directory and file tables, and a two-byte opcode stream.
func buildLineProgramV4() []byte {
	var out []byte

	out = append(out, 0, 0, 0, 0) // unit_length, patched below
	out = append(out, 4, 0)       // version

	headerLenPatch := len(out)
	out = append(out, 0, 0, 0, 0) // header_length, patched below
	headerStart := len(out)

	out = append(out, 1)          // minimum_instruction_length
	out = append(out, 1)          // maximum_operations_per_instruction
	out = append(out, 1)          // default_is_stmt
	out = append(out, 0xfb)       // line_base (-5)
	out = append(out, 14)         // line_range
	out = append(out, 4)          // opcode_base
	out = append(out, 0, 1, 1)    // standard_opcode_lengths

	out = append(out, "include\x00"...)
	out = append(out, 0) // end of include_directories

	out = append(out, "main.c\x00"...)
	out = uleb(out, 1) // dir index
	out = uleb(out, 0) // mtime
	out = uleb(out, 0) // length
	out = append(out, 0) // end of file_names

	binary.LittleEndian.PutUint32(out[headerLenPatch:], uint32(len(out)-headerStart))

	out = append(out, 0x13, 0x02) // opaque opcode stream
	binary.LittleEndian.PutUint32(out[0:], uint32(len(out)-4))

	return out
}

func TestParseLineProgramHeader_V4(t *testing.T) {
	data := buildLineProgramV4()

	h, next, err := ParseLineProgramHeader(data, elf.LittleEndian, 0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), next)

	assert.Equal(t, uint16(4), h.Version)
	assert.Equal(t, uint8(1), h.MinInstructionLength)
	assert.Equal(t, 1, h.MaxOpsPerInstruction)
	assert.True(t, h.DefaultIsStmt)
	assert.Equal(t, int8(-5), h.LineBase)
	assert.Equal(t, uint8(14), h.LineRange)
	assert.Equal(t, uint8(4), h.OpcodeBase)
	assert.Equal(t, []uint8{0, 1, 1}, h.StandardOpcodeLengths)
	assert.Equal(t, []string{"include"}, h.IncludeDirectories)

	require.Len(t, h.FileNames, 1)
	assert.Equal(t, "main.c", h.FileNames[0].Name)
	assert.Equal(t, uint64(1), h.FileNames[0].DirIdx)

	assert.Equal(t, int64(len(data)-2), h.ProgramStart, "opcode stream follows the header")
	assert.Equal(t, int64(len(data)), h.ProgramEnd)
}

func TestParseLineProgramHeader_V2HeaderLengthIsU16(t *testing.T) {
	var out []byte
	out = append(out, 0, 0, 0, 0)
	out = append(out, 2, 0) // version

	headerLenPatch := len(out)
	out = append(out, 0, 0) // header_length is 2 bytes in v2
	headerStart := len(out)

	out = append(out, 1)       // minimum_instruction_length
	out = append(out, 1)       // default_is_stmt (no max_ops before v4)
	out = append(out, 0xff)    // line_base (-1)
	out = append(out, 4)       // line_range
	out = append(out, 1)       // opcode_base: no standard opcode lengths
	out = append(out, 0)       // empty include_directories
	out = append(out, 0)       // empty file_names

	binary.LittleEndian.PutUint16(out[headerLenPatch:], uint16(len(out)-headerStart))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(out)-4))

	h, _, err := ParseLineProgramHeader(out, elf.LittleEndian, 0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), h.Version)
	assert.Equal(t, 1, h.MaxOpsPerInstruction, "defaults to 1 before v4")
	assert.Equal(t, int8(-1), h.LineBase)
	assert.Empty(t, h.IncludeDirectories)
	assert.Empty(t, h.FileNames)
}

// buildLineProgramV5 uses the v5 entry-format tables, with the file name
// indirected through .debug_line_str.
func buildLineProgramV5(fileNameOff uint32) []byte {
	var out []byte

	out = append(out, 0, 0, 0, 0)
	out = append(out, 5, 0) // version
	out = append(out, 8)    // address_size
	out = append(out, 0)    // segment_selector_size

	headerLenPatch := len(out)
	out = append(out, 0, 0, 0, 0)
	headerStart := len(out)

	out = append(out, 1)    // minimum_instruction_length
	out = append(out, 1)    // maximum_operations_per_instruction
	out = append(out, 1)    // default_is_stmt
	out = append(out, 0xfb) // line_base
	out = append(out, 14)   // line_range
	out = append(out, 1)    // opcode_base

	// directory_entry_format: one (DW_LNCT_path, DW_FORM_string) pair.
	out = append(out, 1)
	out = uleb(out, lnctPath)
	out = uleb(out, uint64(FormString))
	out = uleb(out, 1) // directories_count
	out = append(out, "/src\x00"...)

	// file_name_entry_format: path via line_strp, then directory index.
	out = append(out, 2)
	out = uleb(out, lnctPath)
	out = uleb(out, uint64(FormLineStrp))
	out = uleb(out, lnctDirectoryIndex)
	out = uleb(out, uint64(FormUdata))
	out = uleb(out, 1) // file_names_count
	out = append(out, byte(fileNameOff), 0, 0, 0)
	out = uleb(out, 0)

	binary.LittleEndian.PutUint32(out[headerLenPatch:], uint32(len(out)-headerStart))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(out)-4))

	return out
}

func TestParseLineProgramHeader_V5Tables(t *testing.T) {
	debugLineStr := []byte("\x00a.c\x00")
	data := buildLineProgramV5(1)

	h, _, err := ParseLineProgramHeader(data, elf.LittleEndian, 0, nil, debugLineStr)
	require.NoError(t, err)

	assert.Equal(t, uint16(5), h.Version)
	assert.Equal(t, []string{"/src"}, h.IncludeDirectories)
	require.Len(t, h.FileNames, 1)
	assert.Equal(t, "a.c", h.FileNames[0].Name)
	assert.Equal(t, uint64(0), h.FileNames[0].DirIdx)
}

func TestParseLineProgramHeader_Truncated(t *testing.T) {
	_, _, err := ParseLineProgramHeader([]byte{0x01, 0x02}, elf.LittleEndian, 0, nil, nil)
	assert.Error(t, err)
}
