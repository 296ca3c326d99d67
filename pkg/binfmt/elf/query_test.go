package elf

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleSections() []Section {
	return []Section{
		{Index: 0, Name: ".text", Type: SHTProgBits, Flags: SHFAlloc | SHFExecInstr, Addr: 0x1000},
		{Index: 1, Name: ".data", Type: SHTProgBits, Flags: SHFAlloc | SHFWrite, Addr: 0x2000},
		{Index: 2, Name: ".bss", Type: SHTNoBits, Flags: SHFAlloc | SHFWrite, Addr: 0x3000},
	}
}

func TestQuerySections_ByFlagMaskAll(t *testing.T) {
	out := QuerySections(sampleSections(), SectionQuery{FlagMask: SHFAlloc | SHFWrite})
	assert.Len(t, out, 2)
	assert.Equal(t, ".bss", out[0].Name)
	assert.Equal(t, ".data", out[1].Name)
}

func TestQuerySections_OrderByAddress(t *testing.T) {
	out := QuerySections(sampleSections(), SectionQuery{OrderByAddress: true})
	assert.Equal(t, []string{".text", ".data", ".bss"}, []string{out[0].Name, out[1].Name, out[2].Name})
}

func TestQuerySections_NameRegex(t *testing.T) {
	out := QuerySections(sampleSections(), SectionQuery{NameRe: regexp.MustCompile(`^\.(text|data)$`)})
	assert.Len(t, out, 2)
}

func sampleSymbols() []Symbol {
	return []Symbol{
		{Name: "main", SectionName: ".text", Value: 0x1000, Binding: BindGlobal, Type: SymTypeFunc},
		{Name: "_edata", SectionName: "ABS", Value: 0, Binding: BindGlobal, Type: SymTypeNoType, SectionIndex: SHNAbs},
		{Name: "helper", SectionName: ".text", Value: 0x1100, Binding: BindLocal, Type: SymTypeFunc},
		{Name: "", SectionName: "ABS", SectionIndex: SHNAbs, Type: SymTypeNoType},
	}
}

func TestQuerySymbols_OrderBySectionThenValue(t *testing.T) {
	out := QuerySymbols(sampleSymbols(), SymbolQuery{SectionNames: map[string]struct{}{".text": {}}})
	assert.Len(t, out, 2)
	assert.Equal(t, "main", out[0].Name)
	assert.Equal(t, "helper", out[1].Name)
}

func TestQuerySymbols_Grouped(t *testing.T) {
	g := QuerySymbolsGrouped(sampleSymbols(), SymbolQuery{})
	assert.Equal(t, []string{".text", "ABS"}, g.Order)
	assert.Len(t, g.Groups[".text"], 2)
	assert.Len(t, g.Groups["ABS"], 2)
}

func TestAbsoluteUnderscoreMarkers(t *testing.T) {
	out := AbsoluteUnderscoreMarkers(sampleSymbols())
	assert.Len(t, out, 1)
	assert.Equal(t, "_edata", out[0].Name)
}
