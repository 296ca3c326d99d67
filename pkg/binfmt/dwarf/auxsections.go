package dwarf

import "github.com/Manu343726/objfile/pkg/binfmt/elf"

// ArangesHeader is the decoded header of one .debug_aranges set. The
// address-range tuples that follow the header are not interpreted;
// nothing downstream in this library needs the per-range records, only
// their bounds.
type ArangesHeader struct {
	Offset        int64
	UnitLength    uint32
	Version       uint16
	DebugInfoOff  uint32
	AddressSize   uint8
	SegmentSize   uint8
	TuplesStart   int64
	TuplesEnd     int64
}

// ParseArangesHeader decodes one .debug_aranges set header at offset.
func ParseArangesHeader(debugAranges []byte, order elf.Endianness, offset int64) (*ArangesHeader, int64, error) {
	r := elf.NewReader(debugAranges, order)
	pos := offset

	unitLength, err := r.ReadU32(pos)
	if err != nil {
		return nil, 0, err
	}
	pos += 4
	unitEnd := pos + int64(unitLength)

	version, err := r.ReadU16(pos)
	if err != nil {
		return nil, 0, err
	}
	pos += 2

	debugInfoOff, err := r.ReadU32(pos)
	if err != nil {
		return nil, 0, err
	}
	pos += 4

	addrSize, err := r.ReadU8(pos)
	if err != nil {
		return nil, 0, err
	}
	pos++

	segSize, err := r.ReadU8(pos)
	if err != nil {
		return nil, 0, err
	}
	pos++

	// The tuple table is aligned to 2*address_size from the start of the
	// set; header fields so far total 12 bytes (4+2+4+1+1).
	alignTo := int64(2) * int64(addrSize)
	if alignTo > 0 {
		headerLen := pos - offset
		if rem := headerLen % alignTo; rem != 0 {
			pos += alignTo - rem
		}
	}

	return &ArangesHeader{
		Offset:       offset,
		UnitLength:   unitLength,
		Version:      version,
		DebugInfoOff: debugInfoOff,
		AddressSize:  addrSize,
		SegmentSize:  segSize,
		TuplesStart:  pos,
		TuplesEnd:    unitEnd,
	}, unitEnd, nil
}

// PubnamesHeader is the decoded header of one .debug_pubnames set. The
// (offset, name) pairs that follow are opaque to this library, kept
// addressable by offset only.
type PubnamesHeader struct {
	Offset           int64
	UnitLength       uint32
	Version          uint16
	DebugInfoOffset  uint32
	DebugInfoLength  uint32
	PairsStart       int64
	PairsEnd         int64
}

// ParsePubnamesHeader decodes one .debug_pubnames set header at offset.
func ParsePubnamesHeader(debugPubnames []byte, order elf.Endianness, offset int64) (*PubnamesHeader, int64, error) {
	r := elf.NewReader(debugPubnames, order)
	pos := offset

	unitLength, err := r.ReadU32(pos)
	if err != nil {
		return nil, 0, err
	}
	pos += 4
	unitEnd := pos + int64(unitLength)

	version, err := r.ReadU16(pos)
	if err != nil {
		return nil, 0, err
	}
	pos += 2

	debugInfoOffset, err := r.ReadU32(pos)
	if err != nil {
		return nil, 0, err
	}
	pos += 4

	debugInfoLength, err := r.ReadU32(pos)
	if err != nil {
		return nil, 0, err
	}
	pos += 4

	return &PubnamesHeader{
		Offset:          offset,
		UnitLength:      unitLength,
		Version:         version,
		DebugInfoOffset: debugInfoOffset,
		DebugInfoLength: debugInfoLength,
		PairsStart:      pos,
		PairsEnd:        unitEnd,
	}, unitEnd, nil
}

// MacroUnitHeader is the decoded header of one .debug_macinfo/.debug_macro
// unit. Like the aranges/pubnames headers, the macro-opcode body is kept
// opaque.
type MacroUnitHeader struct {
	Offset      int64
	Version     uint16 // 0 for legacy .debug_macinfo, which has no header
	Legacy      bool
	BodyStart   int64
}

// ParseMacroUnitHeader decodes the version/flags prefix of one
// .debug_macro unit. Legacy .debug_macinfo has no unit header at all: the
// macinfo opcode stream starts at offset directly.
func ParseMacroUnitHeader(debugMacro []byte, order elf.Endianness, offset int64, legacy bool) (*MacroUnitHeader, error) {
	if legacy {
		return &MacroUnitHeader{Offset: offset, Legacy: true, BodyStart: offset}, nil
	}

	r := elf.NewReader(debugMacro, order)
	pos := offset

	version, err := r.ReadU16(pos)
	if err != nil {
		return nil, err
	}
	pos += 2

	flags, err := r.ReadU8(pos)
	if err != nil {
		return nil, err
	}
	pos++

	// bit 0: offset_size_flag (4 vs 8 byte debug_line_offset)
	if flags&0x1 != 0 {
		pos += 8
	} else {
		pos += 4
	}
	// bit 1: opcode_operands_table_flag; when set a vendor operand-form
	// table follows. Each entry is an opcode (u8), an operand count
	// (ULEB), then that many ULEB form codes; the table is skipped, not
	// interpreted.
	if flags&0x2 != 0 {
		tblCount, err := r.ReadU8(pos)
		if err != nil {
			return nil, err
		}
		pos++
		for i := 0; i < int(tblCount); i++ {
			if _, err := r.ReadU8(pos); err != nil {
				return nil, err
			}
			pos++
			operands, n, err := r.ReadULEB(pos)
			if err != nil {
				return nil, err
			}
			pos += int64(n)
			for j := uint64(0); j < operands; j++ {
				_, n, err := r.ReadULEB(pos)
				if err != nil {
					return nil, err
				}
				pos += int64(n)
			}
		}
	}

	return &MacroUnitHeader{Offset: offset, Version: version, BodyStart: pos}, nil
}
