// Package armattr decodes the .ARM.attributes section: the ARM EABI
// build-attribute sub-sections produced by ARM toolchains.
package armattr

import (
	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/objerr"
)

// Kind is the wire representation of an attribute's value.
type Kind int

const (
	KindULEB128 Kind = iota
	KindUint32
	KindNTBS // null-terminated byte string
)

// TagInfo describes one known EABI attribute tag.
type TagInfo struct {
	Name     string
	Kind     Kind
	Describe func(value uint64) string
}

// Attribute is one decoded (tag, value, description) triple. Value is
// set for ULEB128/uint32 tags; Text is set for NTBS tags. Unknown tags
// are preserved with Name == "" and Known == false.
type Attribute struct {
	Tag         uint64
	Name        string
	Known       bool
	Kind        Kind
	Value       uint64
	Text        string
	Description string
}

// Subsection is one vendor-named attribute block.
type Subsection struct {
	Vendor     string
	Attributes []Attribute
}

func describeCPUArch(v uint64) string {
	names := []string{
		"Pre-v4", "v4", "v4T", "v5T", "v5TE", "v5TEJ", "v6", "v6KZ",
		"v6T2", "v6K", "v7", "v6-M", "v6S-M", "v7E-M", "v8",
	}
	if int(v) < len(names) {
		return names[v]
	}
	return ""
}

func enumDescriber(names map[uint64]string) func(uint64) string {
	return func(v uint64) string {
		return names[v]
	}
}

// KnownTags is the table of EABI attribute tags this package
// understands.
var KnownTags = map[uint64]TagInfo{
	1:  {Name: "Tag_File", Kind: KindUint32},
	2:  {Name: "Tag_Section", Kind: KindUint32},
	3:  {Name: "Tag_Symbol", Kind: KindUint32},
	4:  {Name: "Tag_CPU_raw_name", Kind: KindNTBS},
	5:  {Name: "Tag_CPU_name", Kind: KindNTBS},
	6:  {Name: "Tag_CPU_arch", Kind: KindULEB128, Describe: describeCPUArch},
	7:  {Name: "Tag_CPU_arch_profile", Kind: KindULEB128},
	8:  {Name: "Tag_ARM_ISA_use", Kind: KindULEB128, Describe: enumDescriber(map[uint64]string{0: "No", 1: "Yes"})},
	9:  {Name: "Tag_THUMB_ISA_use", Kind: KindULEB128},
	10: {Name: "Tag_FP_arch", Kind: KindULEB128},
	11: {Name: "Tag_WMMX_arch", Kind: KindULEB128},
	12: {Name: "Tag_Advanced_SIMD_arch", Kind: KindULEB128},
	13: {Name: "Tag_PCS_config", Kind: KindULEB128},
	14: {Name: "Tag_ABI_PCS_R9_use", Kind: KindULEB128},
	15: {Name: "Tag_ABI_PCS_RW_data", Kind: KindULEB128},
	16: {Name: "Tag_ABI_PCS_RO_data", Kind: KindULEB128},
	17: {Name: "Tag_ABI_PCS_GOT_use", Kind: KindULEB128},
	18: {Name: "Tag_ABI_PCS_wchar_t", Kind: KindULEB128},
	19: {Name: "Tag_ABI_FP_rounding", Kind: KindULEB128},
	20: {Name: "Tag_ABI_FP_denormal", Kind: KindULEB128},
	21: {Name: "Tag_ABI_FP_exceptions", Kind: KindULEB128},
	22: {Name: "Tag_ABI_FP_user_exceptions", Kind: KindULEB128},
	23: {Name: "Tag_ABI_FP_number_model", Kind: KindULEB128},
	24: {Name: "Tag_ABI_align_needed", Kind: KindULEB128},
	25: {Name: "Tag_ABI_align8_preserved", Kind: KindULEB128},
	26: {Name: "Tag_ABI_enum_size", Kind: KindULEB128},
	27: {Name: "Tag_ABI_HardFP_use", Kind: KindULEB128},
	28: {Name: "Tag_ABI_VFP_args", Kind: KindULEB128},
	29: {Name: "Tag_ABI_WMMX_args", Kind: KindULEB128},
	30: {Name: "Tag_ABI_optimization_goals", Kind: KindULEB128},
	31: {Name: "Tag_ABI_FP_optimization_goals", Kind: KindULEB128},
	32: {Name: "Tag_compatibility", Kind: KindNTBS},
	34: {Name: "Tag_CPU_unaligned_access", Kind: KindULEB128},
	36: {Name: "Tag_FP_HP_extension", Kind: KindULEB128},
	38: {Name: "Tag_ABI_FP_16bit_format", Kind: KindULEB128},
	42: {Name: "Tag_MPextension_use", Kind: KindULEB128},
	44: {Name: "Tag_DIV_use", Kind: KindULEB128},
	64: {Name: "Tag_nodefaults", Kind: KindULEB128},
	65: {Name: "Tag_also_compatible_with", Kind: KindNTBS},
	66: {Name: "Tag_T2EE_use", Kind: KindULEB128},
	67: {Name: "Tag_conformance", Kind: KindNTBS},
}

// FormatVersion is the single required first byte of the section, 'A'.
const FormatVersion = 'A'

// Parse decodes a .ARM.attributes section image: a format version byte
// (must be 'A'), then one or more (size, vendor-name, sub-section-bytes)
// records.
func Parse(image []byte) ([]Subsection, error) {
	if len(image) < 1 {
		return nil, objerr.NewTruncated(0, 1, int64(len(image)))
	}
	if image[0] != FormatVersion {
		return nil, objerr.Wrap(objerr.ErrUnsupported, "ARM attributes format version 0x%x, want 'A'", image[0])
	}

	r := elf.NewReader(image, elf.LittleEndian)

	var subsections []Subsection
	pos := int64(1)

	for pos < int64(len(image)) {
		size, err := r.ReadU32(pos)
		if err != nil {
			return subsections, err
		}
		if size < 4 {
			return subsections, objerr.Wrap(objerr.ErrUnsupported, "ARM attribute record size %d < 4", size)
		}

		vendor, _, err := r.ReadCStringASCII(pos + 4)
		if err != nil {
			return subsections, err
		}

		bodyStart := pos + 4 + int64(len(vendor)) + 1
		bodyEnd := pos + int64(size)
		if bodyEnd > int64(len(image)) {
			return subsections, objerr.NewTruncated(bodyStart, int(bodyEnd-bodyStart), int64(len(image))-bodyStart)
		}

		sub, err := parseSubsection(r, vendor, bodyStart, bodyEnd)
		if err != nil {
			return subsections, err
		}
		subsections = append(subsections, sub)

		pos = bodyEnd
	}

	return subsections, nil
}

// parseSubsection decodes the body of one vendor record: a tag byte,
// then attributes until bodyEnd. Only tag 1 (Tag_File) is common in
// practice; other tag-scoping bytes are preserved but not interpreted
// beyond skipping their scope length.
func parseSubsection(r *elf.Reader, vendor string, pos, end int64) (Subsection, error) {
	sub := Subsection{Vendor: vendor}

	for pos < end {
		scopeTag, err := r.ReadU8(pos)
		if err != nil {
			return sub, err
		}
		pos++

		scopeSize, err := r.ReadU32(pos)
		if err != nil {
			return sub, err
		}
		scopeEnd := pos + int64(scopeSize) - 1
		pos += 4

		_ = scopeTag // 1=Tag_File, 2=Tag_Section, 3=Tag_Symbol; scope itself isn't exposed

		for pos < scopeEnd {
			tag, n, err := r.ReadULEB(pos)
			if err != nil {
				return sub, err
			}
			pos += int64(n)

			attr := Attribute{Tag: tag}
			info, known := KnownTags[tag]
			kind := KindULEB128
			if known {
				attr.Name = info.Name
				attr.Known = true
				kind = info.Kind
			} else if tag%2 == 1 {
				// Odd unknown tags are NTBS by EABI convention; even are ULEB128.
				kind = KindNTBS
			}
			attr.Kind = kind

			switch kind {
			case KindNTBS:
				s, n, err := r.ReadCStringASCII(pos)
				if err != nil {
					return sub, err
				}
				pos += int64(n)
				attr.Text = s
			case KindUint32:
				v, err := r.ReadU32(pos)
				if err != nil {
					return sub, err
				}
				pos += 4
				attr.Value = uint64(v)
			default:
				v, n, err := r.ReadULEB(pos)
				if err != nil {
					return sub, err
				}
				pos += int64(n)
				attr.Value = v
			}

			if known && info.Describe != nil && kind != KindNTBS {
				attr.Description = info.Describe(attr.Value)
			}

			sub.Attributes = append(sub.Attributes, attr)
		}
	}

	return sub, nil
}
