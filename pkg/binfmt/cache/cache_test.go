package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/objfile/pkg/binfmt/dwarf"
	"github.com/Manu343726/objfile/pkg/binfmt/elf"
)

func testModel() *elf.File {
	return &elf.File{
		Header: &elf.Header{Class: elf.Class64, Endianness: elf.LittleEndian},
		Sections: []elf.Section{
			{Index: 0, Name: "", Type: elf.SHTNull},
			{Index: 1, Name: ".text", Type: elf.SHTProgBits, Flags: elf.SHFAlloc | elf.SHFExecInstr, Addr: 0x1000, Size: 0x40, Image: make([]byte, 0x40)},
		},
		Segments: []elf.Segment{
			{Index: 0, Type: elf.PTLoad, Flags: elf.PFRead | elf.PFExec, VAddr: 0x1000, FileSize: 0x40, MemSize: 0x40},
		},
		Symbols: []elf.Symbol{
			{Name: "main", Value: 0x1000, Binding: elf.BindGlobal, Type: elf.SymTypeFunc, SectionName: ".text"},
		},
		Notes:   []elf.Note{{SectionName: ".note", Type: 1, Producer: "GNU", Descriptor: []byte{1, 2}}},
		Comment: "GCC: 13.2.0",
	}
}

func TestOpen_FreshPopulateReuse(t *testing.T) {
	input := []byte("not really an elf, but hashable")
	path := filepath.Join(t.TempDir(), "input.bin.prgdb")

	c, err := Open(path, input)
	require.NoError(t, err)
	assert.True(t, c.Fresh())
	require.NoError(t, c.Populate(testModel()))
	require.NoError(t, c.Close())

	// Same input bytes: the store is reused, not rebuilt.
	c, err = Open(path, input)
	require.NoError(t, err)
	assert.False(t, c.Fresh())

	sections, err := c.LoadSections()
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, ".text", sections[1].Name)
	assert.Equal(t, uint64(0x40), sections[1].Size)
	assert.True(t, sections[1].HasImage)
	assert.False(t, sections[0].HasImage)

	comment, err := c.LoadComment()
	require.NoError(t, err)
	assert.Equal(t, "GCC: 13.2.0", comment)

	require.NoError(t, c.Close())
}

func TestOpen_HashMismatchRebuilds(t *testing.T) {
	input := []byte{1, 2, 3, 4}
	path := filepath.Join(t.TempDir(), "input.bin.prgdb")

	c, err := Open(path, input)
	require.NoError(t, err)
	require.NoError(t, c.Populate(testModel()))
	require.NoError(t, c.Close())

	// One changed input byte gates the whole store.
	modified := []byte{1, 2, 3, 5}
	c, err = Open(path, modified)
	require.NoError(t, err)
	assert.True(t, c.Fresh())

	sections, err := c.LoadSections()
	require.NoError(t, err)
	assert.Empty(t, sections, "rebuilt store starts empty")
	require.NoError(t, c.Close())
}

func TestOpen_GarbageFileRebuilds(t *testing.T) {
	input := []byte{1, 2, 3}
	path := filepath.Join(t.TempDir(), "input.bin.prgdb")
	require.NoError(t, os.WriteFile(path, []byte("this is not a database"), 0o644))

	c, err := Open(path, input)
	require.NoError(t, err)
	assert.True(t, c.Fresh())
	require.NoError(t, c.Close())
}

func TestPopulate_NonFreshIsNoOp(t *testing.T) {
	input := []byte{9, 9, 9}
	path := filepath.Join(t.TempDir(), "input.bin.prgdb")

	c, err := Open(path, input)
	require.NoError(t, err)
	require.NoError(t, c.Populate(testModel()))
	require.NoError(t, c.Close())

	c, err = Open(path, input)
	require.NoError(t, err)
	require.NoError(t, c.Populate(&elf.File{Header: &elf.Header{}}))

	sections, err := c.LoadSections()
	require.NoError(t, err)
	assert.Len(t, sections, 2, "reused store keeps its rows")
	require.NoError(t, c.Close())
}

func TestPopulateDIEs(t *testing.T) {
	input := []byte{7, 7, 7}
	path := filepath.Join(t.TempDir(), "input.bin.prgdb")

	c, err := Open(path, input)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Populate(testModel()))

	units := []dwarf.CompileUnit{{
		Offset:      0,
		Version:     4,
		AddressSize: 8,
		DIEs: []dwarf.DIE{
			{Offset: 11, Tag: dwarf.TagCompileUnit, HasChildren: true, Parent: -1, Children: []int{1}},
			{Offset: 14, Tag: dwarf.TagBaseType, Parent: 0, Attributes: []dwarf.Attribute{
				{Attr: dwarf.AttrName, Form: dwarf.FormString, Value: dwarf.AttrValue{Form: dwarf.FormString, Str: "int"}},
			}},
		},
	}}
	require.NoError(t, c.PopulateDIEs(units))

	// Re-running the DWARF pipeline replaces the rows instead of
	// accumulating duplicates.
	require.NoError(t, c.PopulateDIEs(units))
}

func TestPopulateDebugHeaders(t *testing.T) {
	input := []byte{8, 8, 8}
	path := filepath.Join(t.TempDir(), "input.bin.prgdb")

	c, err := Open(path, input)
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Populate(testModel()))

	aranges := []*dwarf.ArangesHeader{{Offset: 0, UnitLength: 44, Version: 2, DebugInfoOff: 0, AddressSize: 8}}
	pubnames := []*dwarf.PubnamesHeader{{Offset: 0, UnitLength: 12, Version: 2, DebugInfoOffset: 0, DebugInfoLength: 0x80}}
	require.NoError(t, c.PopulateDebugHeaders(aranges, pubnames))
	require.NoError(t, c.PopulateDebugHeaders(aranges, pubnames))
}

func TestSiblingPath(t *testing.T) {
	assert.Equal(t, "/tmp/firmware.elf.prgdb", SiblingPath("/tmp/firmware.elf"))
}
