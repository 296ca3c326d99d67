package elf

import "github.com/Manu343726/objfile/pkg/objerr"

// Section is the decoded form of an Elf{32,64}_Shdr plus its resolved
// name and (when present) its raw image bytes.
type Section struct {
	Index     int
	Name      string
	Type      SectionType
	Flags     SectionFlags
	Addr      uint64
	Offset    uint64
	Size      uint64
	Link      uint32
	Info      uint32
	AddrAlign uint64
	EntSize   uint64

	// NameOffset is sh_name, the offset into the section-header string
	// table; kept so name resolution can be redone without re-parsing.
	NameOffset uint32

	// Image holds the section's raw file bytes. Nil when the section
	// has no content: type NULL or NOBITS, or Size == 0.
	Image []byte
}

// HasContent reports whether the section carries file bytes; when it
// does, Image is exactly Size bytes long.
func (s *Section) HasContent() bool {
	return s.Type != SHTNull && s.Type != SHTNoBits && s.Size > 0
}

// Segment is the decoded form of an Elf{32,64}_Phdr.
type Segment struct {
	Index    int
	Type     ProgramType
	Flags    ProgramFlags
	Offset   uint64
	VAddr    uint64
	PAddr    uint64
	FileSize uint64
	MemSize  uint64
	Align    uint64
}

// parseSections reads e_shnum section headers at e_shoff, slices image
// bytes for sections with content, then resolves every section's name
// via the section-name string table at index e_shstrndx.
func parseSections(r *Reader, h *Header) ([]Section, error) {
	sections := make([]Section, 0, h.SectionHdrNum)

	for i := 0; i < int(h.SectionHdrNum); i++ {
		off := int64(h.SectionHdrOff) + int64(i)*int64(h.SectionHdrSize)

		var s Section
		var err error
		if h.Class == Class32 {
			s, err = decodeSectionHeader32(r, off)
		} else {
			s, err = decodeSectionHeader64(r, off)
		}
		if err != nil {
			return nil, objerr.Wrap(err, "section %d header", i)
		}
		s.Index = i

		if s.Type != SHTNull && s.Type != SHTNoBits && s.Size > 0 {
			img, err := r.ReadBlock(int64(s.Offset), int(s.Size))
			if err != nil {
				return nil, objerr.Wrap(err, "section %d (%q) image", i, s.Name)
			}
			s.Image = img
		}

		sections = append(sections, s)
	}

	resolveSectionNames(r, sections, int(h.SHStrNdx))

	return sections, nil
}

// resolveSectionNames reads each section's null-terminated name from the
// string-table section at shstrndx.
func resolveSectionNames(r *Reader, sections []Section, shstrndx int) {
	if shstrndx < 0 || shstrndx >= len(sections) {
		return
	}
	strtab := sections[shstrndx].Image
	sub := &Reader{data: strtab, order: r.order}

	for i := range sections {
		name, _, err := sub.ReadCStringASCII(int64(sections[i].NameOffset))
		if err == nil {
			sections[i].Name = name
		}
	}
}

func decodeSectionHeader32(r *Reader, off int64) (Section, error) {
	var s Section
	var err error

	if s.NameOffset, err = r.ReadU32(off + 0); err != nil {
		return s, err
	}
	var typ uint32
	if typ, err = r.ReadU32(off + 4); err != nil {
		return s, err
	}
	s.Type = SectionType(typ)
	var flags uint32
	if flags, err = r.ReadU32(off + 8); err != nil {
		return s, err
	}
	s.Flags = SectionFlags(flags)
	var addr uint32
	if addr, err = r.ReadU32(off + 12); err != nil {
		return s, err
	}
	s.Addr = uint64(addr)
	var offset uint32
	if offset, err = r.ReadU32(off + 16); err != nil {
		return s, err
	}
	s.Offset = uint64(offset)
	var size uint32
	if size, err = r.ReadU32(off + 20); err != nil {
		return s, err
	}
	s.Size = uint64(size)
	if s.Link, err = r.ReadU32(off + 24); err != nil {
		return s, err
	}
	if s.Info, err = r.ReadU32(off + 28); err != nil {
		return s, err
	}
	var align uint32
	if align, err = r.ReadU32(off + 32); err != nil {
		return s, err
	}
	s.AddrAlign = uint64(align)
	var entsize uint32
	if entsize, err = r.ReadU32(off + 36); err != nil {
		return s, err
	}
	s.EntSize = uint64(entsize)

	return s, nil
}

func decodeSectionHeader64(r *Reader, off int64) (Section, error) {
	var s Section
	var err error

	if s.NameOffset, err = r.ReadU32(off + 0); err != nil {
		return s, err
	}
	var typ uint32
	if typ, err = r.ReadU32(off + 4); err != nil {
		return s, err
	}
	s.Type = SectionType(typ)
	var flags uint64
	if flags, err = r.ReadU64(off + 8); err != nil {
		return s, err
	}
	s.Flags = SectionFlags(flags)
	if s.Addr, err = r.ReadU64(off + 16); err != nil {
		return s, err
	}
	if s.Offset, err = r.ReadU64(off + 24); err != nil {
		return s, err
	}
	if s.Size, err = r.ReadU64(off + 32); err != nil {
		return s, err
	}
	if s.Link, err = r.ReadU32(off + 40); err != nil {
		return s, err
	}
	if s.Info, err = r.ReadU32(off + 44); err != nil {
		return s, err
	}
	if s.AddrAlign, err = r.ReadU64(off + 48); err != nil {
		return s, err
	}
	if s.EntSize, err = r.ReadU64(off + 56); err != nil {
		return s, err
	}

	return s, nil
}

// parseSegments reads e_phnum program headers at e_phoff.
func parseSegments(r *Reader, h *Header) ([]Segment, error) {
	segments := make([]Segment, 0, h.ProgramHdrNum)

	for i := 0; i < int(h.ProgramHdrNum); i++ {
		off := int64(h.ProgramHdrOff) + int64(i)*int64(h.ProgramHdrSize)

		var seg Segment
		var err error
		if h.Class == Class32 {
			seg, err = decodeProgramHeader32(r, off)
		} else {
			seg, err = decodeProgramHeader64(r, off)
		}
		if err != nil {
			return nil, objerr.Wrap(err, "segment %d header", i)
		}
		seg.Index = i
		segments = append(segments, seg)
	}

	return segments, nil
}

// decodeProgramHeader32 follows Elf32_Phdr's field order: type, offset,
// vaddr, paddr, filesz, memsz, flags, align — flags is positioned
// differently than in the 64-bit layout.
func decodeProgramHeader32(r *Reader, off int64) (Segment, error) {
	var seg Segment
	var err error

	var typ uint32
	if typ, err = r.ReadU32(off + 0); err != nil {
		return seg, err
	}
	seg.Type = ProgramType(typ)

	var offset, vaddr, paddr, filesz, memsz, flags, align uint32
	if offset, err = r.ReadU32(off + 4); err != nil {
		return seg, err
	}
	if vaddr, err = r.ReadU32(off + 8); err != nil {
		return seg, err
	}
	if paddr, err = r.ReadU32(off + 12); err != nil {
		return seg, err
	}
	if filesz, err = r.ReadU32(off + 16); err != nil {
		return seg, err
	}
	if memsz, err = r.ReadU32(off + 20); err != nil {
		return seg, err
	}
	if flags, err = r.ReadU32(off + 24); err != nil {
		return seg, err
	}
	if align, err = r.ReadU32(off + 28); err != nil {
		return seg, err
	}

	seg.Offset = uint64(offset)
	seg.VAddr = uint64(vaddr)
	seg.PAddr = uint64(paddr)
	seg.FileSize = uint64(filesz)
	seg.MemSize = uint64(memsz)
	seg.Flags = ProgramFlags(flags)
	seg.Align = uint64(align)

	return seg, nil
}

// decodeProgramHeader64 follows Elf64_Phdr's field order: type, flags,
// offset, vaddr, paddr, filesz, memsz, align.
func decodeProgramHeader64(r *Reader, off int64) (Segment, error) {
	var seg Segment
	var err error

	var typ, flags uint32
	if typ, err = r.ReadU32(off + 0); err != nil {
		return seg, err
	}
	seg.Type = ProgramType(typ)
	if flags, err = r.ReadU32(off + 4); err != nil {
		return seg, err
	}
	seg.Flags = ProgramFlags(flags)

	if seg.Offset, err = r.ReadU64(off + 8); err != nil {
		return seg, err
	}
	if seg.VAddr, err = r.ReadU64(off + 16); err != nil {
		return seg, err
	}
	if seg.PAddr, err = r.ReadU64(off + 24); err != nil {
		return seg, err
	}
	if seg.FileSize, err = r.ReadU64(off + 32); err != nil {
		return seg, err
	}
	if seg.MemSize, err = r.ReadU64(off + 40); err != nil {
		return seg, err
	}
	if seg.Align, err = r.ReadU64(off + 48); err != nil {
		return seg, err
	}

	return seg, nil
}

// EffectiveSize is the size a section contributes when judged against a
// segment: 0 when it has the TLS flag, is NOBITS, and the segment is not
// PT_TLS; otherwise sh_size. This is the rule that keeps TLS BSS from
// inflating a PT_LOAD that happens to cover it.
func EffectiveSize(s *Section, p *Segment) uint64 {
	if s.Flags.Has(SHFTLS) && s.Type == SHTNoBits && p.Type != PTTLS {
		return 0
	}
	return s.Size
}

// TLSSpecial reports whether s is TLS NOBITS content (e.g. .tbss) being
// considered against a non-PT_TLS segment — the case where its natural
// size must not be charged to that segment. Factored out as its own
// predicate so the TLS sizing rule has one unambiguous home.
func TLSSpecial(s *Section, p *Segment) bool {
	return s.Flags.Has(SHFTLS) && s.Type == SHTNoBits && p.Type != PTTLS
}

// typeCompatible: TLS sections only live in PT_TLS/PT_GNU_RELRO/PT_LOAD;
// non-TLS sections never live in PT_TLS or PT_PHDR.
func typeCompatible(s *Section, p *Segment) bool {
	if s.Flags.Has(SHFTLS) {
		return p.Type == PTTLS || p.Type == PTGNURelro || p.Type == PTLoad
	}
	return p.Type != PTTLS && p.Type != PTPHDR
}

// fileOffsetContained: NOBITS sections occupy no file bytes; everything
// else must fit inside the segment's file extent.
func fileOffsetContained(s *Section, p *Segment, strict bool) bool {
	if s.Type == SHTNoBits {
		return true
	}
	size := EffectiveSize(s, p)
	if strict {
		return s.Offset > p.Offset && s.Offset+size < p.Offset+p.FileSize
	}
	return s.Offset >= p.Offset && s.Offset+size <= p.Offset+p.FileSize
}

// vAddrContained checks the segment's memory extent, only for ALLOC
// sections.
func vAddrContained(s *Section, p *Segment, strict bool) bool {
	if !s.Flags.Has(SHFAlloc) {
		return true
	}
	size := EffectiveSize(s, p)
	if strict {
		return s.Addr > p.VAddr && s.Addr+size < p.VAddr+p.MemSize
	}
	return s.Addr >= p.VAddr && s.Addr+size <= p.VAddr+p.MemSize
}

// dynamicWellFormed: an empty section claimed by a non-empty PT_DYNAMIC
// must lie inside it.
func dynamicWellFormed(s *Section, p *Segment, strict bool) bool {
	if p.Type != PTDynamic || s.Size != 0 || p.MemSize == 0 {
		return true
	}
	if strict {
		return s.Offset > p.Offset && s.Offset < p.Offset+p.FileSize
	}
	return s.Offset >= p.Offset && s.Offset <= p.Offset+p.FileSize
}

// SectionInSegment reports whether section s is reported as belonging
// to segment p.
func SectionInSegment(s *Section, p *Segment) bool {
	return sectionInSegment(s, p, false)
}

// SectionInSegmentStrict is the strict variant, using "<" boundaries
// throughout instead of "<=".
func SectionInSegmentStrict(s *Section, p *Segment) bool {
	return sectionInSegment(s, p, true)
}

func sectionInSegment(s *Section, p *Segment, strict bool) bool {
	return typeCompatible(s, p) &&
		fileOffsetContained(s, p, strict) &&
		vAddrContained(s, p, strict) &&
		dynamicWellFormed(s, p, strict)
}

// SectionToSegmentMapping computes, for every section, the ordered list
// of segments it is reported to belong to. The result preserves section
// and segment file order.
func SectionToSegmentMapping(sections []Section, segments []Segment, strict bool) map[int][]int {
	mapping := make(map[int][]int, len(sections))

	for si := range sections {
		for pi := range segments {
			if sectionInSegment(&sections[si], &segments[pi], strict) {
				mapping[si] = append(mapping[si], pi)
			}
		}
	}

	return mapping
}
