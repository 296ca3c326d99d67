package elf

// Symbol is the decoded form of an Elf{32,64}_Sym plus the names and
// flags resolved from linked sections.
type Symbol struct {
	Name    string
	Value   uint64
	Size    uint64
	Binding SymBinding
	Type    SymType
	Visibility SymVisibility

	// SectionIndex is st_shndx, possibly one of the special values
	// SHNUndef/SHNAbs/SHNCommon/SHNXindex.
	SectionIndex uint16

	// SectionName is the name of the section at SectionIndex, or the
	// literal name of a special index.
	SectionName string

	// Access caches the owning section's flags, so flag queries don't
	// need to join back to the section table.
	Access SectionFlags

	// OwnerSection is the index, within File.Sections, of the
	// SHT_SYMTAB/SHT_DYNSYM section this symbol was decoded from.
	OwnerSection int

	// nameOffset is st_name, kept only until the linked string table is
	// resolved; callers only ever observe Name.
	nameOffset uint32
}

func specialSectionName(idx uint16) (string, bool) {
	switch idx {
	case SHNUndef:
		return "UNDEF", true
	case SHNAbs:
		return "ABS", true
	case SHNCommon:
		return "COMMON", true
	case SHNXindex:
		return "XINDEX", true
	case SHNAfter:
		return "AFTER", true
	}
	if idx == SHNBefore {
		return "BEFORE", true
	}
	return "", false
}

// parseSymbols decodes every symbol in a SHT_SYMTAB/SHT_DYNSYM section,
// resolving symbol_name from the linked string table (sh_link) and
// section_name from st_shndx. A truncated entry is reported through
// onSkip and skipped; other entries still populate.
func parseSymbols(r *Reader, h *Header, sections []Section, symSection int, onSkip func(index int, err error)) ([]Symbol, error) {
	sec := &sections[symSection]

	entSize := 16
	if h.Class == Class64 {
		entSize = 24
	}
	if sec.EntSize != 0 {
		entSize = int(sec.EntSize)
	}

	var strtab []byte
	if int(sec.Link) < len(sections) {
		strtab = sections[sec.Link].Image
	}
	strReader := &Reader{data: strtab, order: r.order}

	n := 0
	if entSize > 0 {
		n = len(sec.Image) / entSize
	}

	symbols := make([]Symbol, 0, n)

	for i := 0; i < n; i++ {
		off := int64(i * entSize)

		var sym Symbol
		var err error
		if h.Class == Class32 {
			sym, err = decodeSymbol32(r, int64(sec.Offset)+off)
		} else {
			sym, err = decodeSymbol64(r, int64(sec.Offset)+off)
		}
		if err != nil {
			if onSkip != nil {
				onSkip(i, err)
			}
			continue
		}

		if name, _, err := strReader.ReadCStringASCII(int64(sym.nameOffset)); err == nil {
			sym.Name = name
		}

		if special, ok := specialSectionName(sym.SectionIndex); ok {
			sym.SectionName = special
		} else if int(sym.SectionIndex) < len(sections) {
			sym.SectionName = sections[sym.SectionIndex].Name
			sym.Access = sections[sym.SectionIndex].Flags
		}

		sym.OwnerSection = symSection
		symbols = append(symbols, sym)
	}

	return symbols, nil
}

func decodeSymbol32(r *Reader, off int64) (Symbol, error) {
	var s Symbol
	var err error

	if s.nameOffset, err = r.ReadU32(off + 0); err != nil {
		return s, err
	}
	var value, size uint32
	if value, err = r.ReadU32(off + 4); err != nil {
		return s, err
	}
	if size, err = r.ReadU32(off + 8); err != nil {
		return s, err
	}
	info, err := r.ReadU8(off + 12)
	if err != nil {
		return s, err
	}
	other, err := r.ReadU8(off + 13)
	if err != nil {
		return s, err
	}
	shndx, err := r.ReadU16(off + 14)
	if err != nil {
		return s, err
	}

	s.Value = uint64(value)
	s.Size = uint64(size)
	s.Binding = SymBinding(info >> 4)
	s.Type = SymType(info & 0xf)
	s.Visibility = SymVisibility(other & 0x3)
	s.SectionIndex = shndx
	return s, nil
}

func decodeSymbol64(r *Reader, off int64) (Symbol, error) {
	var s Symbol
	var err error

	if s.nameOffset, err = r.ReadU32(off + 0); err != nil {
		return s, err
	}
	info, err := r.ReadU8(off + 4)
	if err != nil {
		return s, err
	}
	other, err := r.ReadU8(off + 5)
	if err != nil {
		return s, err
	}
	shndx, err := r.ReadU16(off + 6)
	if err != nil {
		return s, err
	}
	if s.Value, err = r.ReadU64(off + 8); err != nil {
		return s, err
	}
	if s.Size, err = r.ReadU64(off + 16); err != nil {
		return s, err
	}

	s.Binding = SymBinding(info >> 4)
	s.Type = SymType(info & 0xf)
	s.Visibility = SymVisibility(other & 0x3)
	s.SectionIndex = shndx
	return s, nil
}
