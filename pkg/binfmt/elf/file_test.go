package elf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestELF64 assembles a minimal but complete little-endian ELF64
// executable image: one PT_LOAD segment, a .text section with content
// and the section-name string table.
func buildTestELF64() []byte {
	const (
		phOff      = 64
		textOff    = 120
		textAddr   = 0x1000
		textSize   = 8
		shstrOff   = 128
		shOff      = 160
		shstrIndex = 2
	)

	shstrtab := []byte("\x00.text\x00.shstrtab\x00")

	data := make([]byte, shOff+3*64)
	le := binary.LittleEndian

	copy(data, Magic[:])
	data[4] = byte(Class64)
	data[5] = byte(LittleEndian)
	data[6] = 1
	le.PutUint16(data[16:], uint16(TypeExecutable))
	le.PutUint16(data[18:], uint16(MachineX86_64))
	le.PutUint32(data[20:], 1)
	le.PutUint64(data[24:], textAddr)  // e_entry
	le.PutUint64(data[32:], phOff)     // e_phoff
	le.PutUint64(data[40:], shOff)     // e_shoff
	le.PutUint16(data[52:], 64)        // e_ehsize
	le.PutUint16(data[54:], 56)        // e_phentsize
	le.PutUint16(data[56:], 1)         // e_phnum
	le.PutUint16(data[58:], 64)        // e_shentsize
	le.PutUint16(data[60:], 3)         // e_shnum
	le.PutUint16(data[62:], shstrIndex)

	// PT_LOAD covering .text.
	le.PutUint32(data[phOff+0:], uint32(PTLoad))
	le.PutUint32(data[phOff+4:], uint32(PFRead|PFExec))
	le.PutUint64(data[phOff+8:], textOff)
	le.PutUint64(data[phOff+16:], textAddr)
	le.PutUint64(data[phOff+24:], textAddr)
	le.PutUint64(data[phOff+32:], textSize)
	le.PutUint64(data[phOff+40:], textSize)
	le.PutUint64(data[phOff+48:], 0x1000)

	copy(data[textOff:], []byte{0x55, 0x48, 0x89, 0xe5, 0x5d, 0xc3, 0x90, 0x90})
	copy(data[shstrOff:], shstrtab)

	putShdr := func(i int, name uint32, typ SectionType, flags SectionFlags, addr, offset, size uint64) {
		base := shOff + i*64
		le.PutUint32(data[base+0:], name)
		le.PutUint32(data[base+4:], uint32(typ))
		le.PutUint64(data[base+8:], uint64(flags))
		le.PutUint64(data[base+16:], addr)
		le.PutUint64(data[base+24:], offset)
		le.PutUint64(data[base+32:], size)
	}

	putShdr(0, 0, SHTNull, 0, 0, 0, 0)
	putShdr(1, 1, SHTProgBits, SHFAlloc|SHFExecInstr, textAddr, textOff, textSize)
	putShdr(2, 7, SHTStrTab, 0, 0, shstrOff, uint64(len(shstrtab)))

	return data
}

func TestParseFile_SectionsResolved(t *testing.T) {
	file, err := ParseFile(buildTestELF64())
	require.NoError(t, err)

	require.Len(t, file.Sections, 3)
	assert.Equal(t, "", file.Sections[0].Name)
	assert.Equal(t, ".text", file.Sections[1].Name)
	assert.Equal(t, ".shstrtab", file.Sections[2].Name)

	for i := range file.Sections {
		s := &file.Sections[i]
		if s.HasContent() {
			assert.Equal(t, int(s.Size), len(s.Image), "section %q image length", s.Name)
		} else {
			assert.Nil(t, s.Image, "section %q should carry no image", s.Name)
		}
	}
}

func TestParseFile_SegmentsAndMapping(t *testing.T) {
	file, err := ParseFile(buildTestELF64())
	require.NoError(t, err)

	require.Len(t, file.Segments, 1)
	assert.Equal(t, PTLoad, file.Segments[0].Type)

	assert.Equal(t, []int{0}, file.SectionToSegment[1], ".text belongs to the PT_LOAD")
	for si, segs := range file.SectionToSegment {
		for _, pi := range segs {
			assert.True(t, SectionInSegment(&file.Sections[si], &file.Segments[pi]))
		}
	}
}

func TestParseFile_Idempotent(t *testing.T) {
	data := buildTestELF64()

	first, err := ParseFile(data)
	require.NoError(t, err)
	second, err := ParseFile(data)
	require.NoError(t, err)

	assert.Equal(t, first.Header, second.Header)
	assert.Equal(t, first.Sections, second.Sections)
	assert.Equal(t, first.Segments, second.Segments)
	assert.Equal(t, first.Symbols, second.Symbols)
}

func TestSectionByName(t *testing.T) {
	file, err := ParseFile(buildTestELF64())
	require.NoError(t, err)

	assert.NotNil(t, file.SectionByName(".text"))
	assert.Nil(t, file.SectionByName(".does-not-exist"))
}
