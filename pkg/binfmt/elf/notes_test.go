package elf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseComment_Empty(t *testing.T) {
	assert.Equal(t, "", ParseComment(nil))
	assert.Equal(t, "", ParseComment([]byte{}))
}

func TestParseComment_MultipleProducers(t *testing.T) {
	image := []byte("GCC: (GNU) 13.2.0\x00clang version 17.0.0\x00")
	assert.Equal(t, "GCC: (GNU) 13.2.0\nclang version 17.0.0", ParseComment(image))
}

func buildNoteRecord(name string, typ uint32, desc []byte) []byte {
	var out []byte
	put32 := func(v uint32) {
		out = append(out, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	nameBytes := append([]byte(name), 0)
	put32(uint32(len(nameBytes)))
	put32(uint32(len(desc)))
	put32(typ)
	out = append(out, nameBytes...)
	for len(out)%4 != 0 {
		out = append(out, 0)
	}
	out = append(out, desc...)
	for len(out)%4 != 0 {
		out = append(out, 0)
	}
	return out
}

func TestParseNotes_SingleRecord(t *testing.T) {
	image := buildNoteRecord("GNU", 1, []byte{0xde, 0xad, 0xbe, 0xef})
	r := NewReader(image, LittleEndian)

	notes, err := parseNotes(".note.ABI-tag", image, r)
	assert.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, "GNU", notes[0].Producer)
	assert.Equal(t, uint32(1), notes[0].Type)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, notes[0].Descriptor)
	assert.Equal(t, ".note.ABI-tag", notes[0].SectionName)
}

func TestParseNotes_MultipleRecordsBackToBack(t *testing.T) {
	var image []byte
	image = append(image, buildNoteRecord("GNU", 1, []byte{0x01})...)
	image = append(image, buildNoteRecord("GNU", 2, []byte{0x02, 0x03})...)
	r := NewReader(image, LittleEndian)

	notes, err := parseNotes(".notes", image, r)
	assert.NoError(t, err)
	assert.Len(t, notes, 2)
	assert.Equal(t, uint32(1), notes[0].Type)
	assert.Equal(t, uint32(2), notes[1].Type)
}
