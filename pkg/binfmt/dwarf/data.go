package dwarf

import "github.com/Manu343726/objfile/pkg/binfmt/elf"

// Data bundles the debug-section images pulled out of one ELF file,
// together with the file's byte order, so callers don't have to thread
// five byte slices through every call.
type Data struct {
	Order elf.Endianness

	Info     []byte
	Abbrev   []byte
	Str      []byte
	LineStr  []byte
	Line     []byte
	Aranges  []byte
	Pubnames []byte
	Macinfo  []byte
	Macro    []byte
}

// FromFile extracts the DWARF sections this library consumes from an
// already-parsed ELF file. Absent sections stay nil; callers can check
// HasDebugInfo before running the DIE pipeline.
func FromFile(f *elf.File) *Data {
	d := &Data{Order: f.Header.Endianness}

	sectionImage := func(name string) []byte {
		if s := f.SectionByName(name); s != nil {
			return s.Image
		}
		return nil
	}

	d.Info = sectionImage(".debug_info")
	d.Abbrev = sectionImage(".debug_abbrev")
	d.Str = sectionImage(".debug_str")
	d.LineStr = sectionImage(".debug_line_str")
	d.Line = sectionImage(".debug_line")
	d.Aranges = sectionImage(".debug_aranges")
	d.Pubnames = sectionImage(".debug_pubnames")
	d.Macinfo = sectionImage(".debug_macinfo")
	d.Macro = sectionImage(".debug_macro")

	return d
}

// HasDebugInfo reports whether the file carried the two sections the
// DIE pipeline cannot run without.
func (d *Data) HasDebugInfo() bool {
	return len(d.Info) > 0 && len(d.Abbrev) > 0
}

// CompileUnits decodes every compilation unit in .debug_info.
func (d *Data) CompileUnits() ([]CompileUnit, error) {
	abbrev := NewAbbrevCache(d.Abbrev, d.Order)
	return ParseCompileUnits(d.Info, d.Order, abbrev, d.Str, d.LineStr)
}

// LineProgramHeaders decodes every line-number program header in
// .debug_line.
func (d *Data) LineProgramHeaders() ([]*LineProgramHeader, error) {
	var headers []*LineProgramHeader
	pos := int64(0)
	for pos < int64(len(d.Line)) {
		h, next, err := ParseLineProgramHeader(d.Line, d.Order, pos, d.Str, d.LineStr)
		if err != nil {
			return headers, err
		}
		headers = append(headers, h)
		pos = next
	}
	return headers, nil
}

// ArangesHeaders decodes the header of every .debug_aranges set.
func (d *Data) ArangesHeaders() ([]*ArangesHeader, error) {
	var headers []*ArangesHeader
	pos := int64(0)
	for pos < int64(len(d.Aranges)) {
		h, next, err := ParseArangesHeader(d.Aranges, d.Order, pos)
		if err != nil {
			return headers, err
		}
		headers = append(headers, h)
		pos = next
	}
	return headers, nil
}

// PubnamesHeaders decodes the header of every .debug_pubnames set.
func (d *Data) PubnamesHeaders() ([]*PubnamesHeader, error) {
	var headers []*PubnamesHeader
	pos := int64(0)
	for pos < int64(len(d.Pubnames)) {
		h, next, err := ParsePubnamesHeader(d.Pubnames, d.Order, pos)
		if err != nil {
			return headers, err
		}
		headers = append(headers, h)
		pos = next
	}
	return headers, nil
}
