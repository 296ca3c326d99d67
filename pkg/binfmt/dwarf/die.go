package dwarf

import (
	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/objerr"
)

// Attribute is one decoded (attribute, form, value) triple, kept with
// its form so reference resolution can apply the CU-relative correction
// at lookup time.
type Attribute struct {
	Attr  Attr
	Form  Form
	Value AttrValue
}

// DIE is one debug information entry. Children and Parent are indices
// into the owning CompileUnit's DIEs slice rather than pointers, so the
// tree never needs back-pointers and can be stored as a flat arena.
type DIE struct {
	Offset      int64
	Tag         Tag
	HasChildren bool
	Attributes  []Attribute
	Parent      int   // -1 for the CU's root DIE
	Children    []int
}

// Attr returns the first attribute of the given kind on d, if present.
func (d *DIE) Attr(a Attr) (AttrValue, bool) {
	for _, attr := range d.Attributes {
		if attr.Attr == a {
			return attr.Value, true
		}
	}
	return AttrValue{}, false
}

// CompileUnit is one parsed .debug_info compilation unit: its header
// fields plus the flat DIE arena rooted at DIEs[0].
type CompileUnit struct {
	Offset       int64
	UnitLength   uint32
	Version      uint16
	UnitType     uint8 // v5 only; 0 for v4 and earlier
	AddressSize  int
	AbbrevOffset int64

	DIEs []DIE
}

// ParseCompileUnits walks .debug_info from the start, decoding every
// compilation unit in turn. order is the owning ELF file's byte order,
// which all DWARF sections share.
func ParseCompileUnits(debugInfo []byte, order elf.Endianness, abbrev *AbbrevCache, debugStr, debugLineStr []byte) ([]CompileUnit, error) {
	r := elf.NewReader(debugInfo, order)

	var units []CompileUnit
	pos := int64(0)

	for pos < int64(len(debugInfo)) {
		cu, next, err := parseCompileUnit(r, pos, abbrev, debugStr, debugLineStr)
		if err != nil {
			return units, objerr.Wrap(err, "compile unit at offset %d", pos)
		}
		units = append(units, cu)
		pos = next
	}

	return units, nil
}

func parseCompileUnit(r *elf.Reader, cuStart int64, abbrev *AbbrevCache, debugStr, debugLineStr []byte) (CompileUnit, int64, error) {
	var cu CompileUnit
	cu.Offset = cuStart
	pos := cuStart

	unitLength, err := r.ReadU32(pos)
	if err != nil {
		return cu, 0, err
	}
	cu.UnitLength = unitLength
	pos += 4

	cuEnd := cuStart + 4 + int64(unitLength)

	version, err := r.ReadU16(pos)
	if err != nil {
		return cu, 0, err
	}
	cu.Version = version
	pos += 2

	var addrSize int
	var abbrevOffset uint32

	if version >= 5 {
		unitType, err := r.ReadU8(pos)
		if err != nil {
			return cu, 0, err
		}
		cu.UnitType = unitType
		pos++

		addrByte, err := r.ReadU8(pos)
		if err != nil {
			return cu, 0, err
		}
		addrSize = int(addrByte)
		pos++

		abbrevOffset, err = r.ReadU32(pos)
		if err != nil {
			return cu, 0, err
		}
		pos += 4
	} else {
		abbrevOffset, err = r.ReadU32(pos)
		if err != nil {
			return cu, 0, err
		}
		pos += 4

		addrByte, err := r.ReadU8(pos)
		if err != nil {
			return cu, 0, err
		}
		addrSize = int(addrByte)
		pos++
	}

	cu.AddressSize = addrSize
	cu.AbbrevOffset = int64(abbrevOffset)

	ctx := formCtx{addrSize: addrSize, cuStart: cuStart, debugStr: debugStr, debugLineStr: debugLineStr}

	// parentStack holds arena indices of currently open parents; root's
	// parent is -1.
	parentStack := []int{-1}

	for pos < cuEnd {
		dieOffset := pos

		code, n, err := r.ReadULEB(pos)
		if err != nil {
			return cu, 0, err
		}
		pos += int64(n)

		if code == 0 {
			if len(parentStack) > 1 {
				parentStack = parentStack[:len(parentStack)-1]
			}
			continue
		}

		decl, err := abbrev.Lookup(cu.AbbrevOffset, code)
		if err != nil {
			return cu, 0, err
		}

		die := DIE{
			Offset:      dieOffset,
			Tag:         decl.Tag,
			HasChildren: decl.HasChildren,
			Parent:      parentStack[len(parentStack)-1],
		}

		for _, spec := range decl.Attrs {
			val, n, err := decodeForm(r, pos, spec.Form, spec.ImplicitConst, ctx)
			if err != nil {
				return cu, 0, objerr.Wrap(err, "attribute %s on DIE at offset %d", spec.Attr, dieOffset)
			}
			pos += n
			die.Attributes = append(die.Attributes, Attribute{Attr: spec.Attr, Form: spec.Form, Value: val})
		}

		idx := len(cu.DIEs)
		cu.DIEs = append(cu.DIEs, die)

		if die.Parent >= 0 {
			cu.DIEs[die.Parent].Children = append(cu.DIEs[die.Parent].Children, idx)
		}

		if decl.HasChildren {
			parentStack = append(parentStack, idx)
		}
	}

	return cu, cuEnd, nil
}

// ByOffset returns the index of the DIE at the given absolute offset, or
// -1 if none matches.
func (cu *CompileUnit) ByOffset(offset int64) int {
	for i := range cu.DIEs {
		if cu.DIEs[i].Offset == offset {
			return i
		}
	}
	return -1
}
