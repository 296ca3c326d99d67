package elf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tbssScenario() (Section, Segment, Segment) {
	s := Section{
		Name:   ".tbss",
		Flags:  SHFAlloc | SHFWrite | SHFTLS,
		Type:   SHTNoBits,
		Addr:   0x2000,
		Size:   0x40,
		Offset: 0x1800,
	}
	p1 := Segment{Type: PTLoad, Offset: 0x1000, VAddr: 0x2000, FileSize: 0x1000, MemSize: 0x1000}
	p2 := Segment{Type: PTTLS, Offset: 0x1800, VAddr: 0x2000, FileSize: 0, MemSize: 0x40}
	return s, p1, p2
}

func TestEffectiveSize_TLSNoBitsAgainstLoad(t *testing.T) {
	s, p1, p2 := tbssScenario()

	assert.Equal(t, uint64(0), EffectiveSize(&s, &p1))
	assert.Equal(t, uint64(0x40), EffectiveSize(&s, &p2))
}

func TestTLSSpecial(t *testing.T) {
	s, p1, p2 := tbssScenario()

	assert.True(t, TLSSpecial(&s, &p1))
	assert.False(t, TLSSpecial(&s, &p2))
}

func TestSectionInSegment_TBSSReportedInBoth(t *testing.T) {
	s, p1, p2 := tbssScenario()

	assert.True(t, SectionInSegment(&s, &p1))
	assert.True(t, SectionInSegment(&s, &p2))
}

func TestSectionToSegmentMapping_TBSSScenario(t *testing.T) {
	s, p1, p2 := tbssScenario()

	mapping := SectionToSegmentMapping([]Section{s}, []Segment{p1, p2}, false)

	assert.Equal(t, []int{0, 1}, mapping[0])
}

func TestSectionInSegment_NonTLSNotInTLSSegment(t *testing.T) {
	s := Section{
		Name:   ".data",
		Flags:  SHFAlloc | SHFWrite,
		Type:   SHTProgBits,
		Addr:   0x3000,
		Size:   0x100,
		Offset: 0x2000,
	}
	p := Segment{Type: PTTLS, Offset: 0x2000, VAddr: 0x3000, FileSize: 0x100, MemSize: 0x100}

	assert.False(t, SectionInSegment(&s, &p))
}

func TestHasContent(t *testing.T) {
	assert.True(t, (&Section{Type: SHTProgBits, Size: 1}).HasContent())
	assert.False(t, (&Section{Type: SHTNoBits, Size: 1}).HasContent())
	assert.False(t, (&Section{Type: SHTProgBits, Size: 0}).HasContent())
	assert.False(t, (&Section{Type: SHTNull, Size: 1}).HasContent())
}
