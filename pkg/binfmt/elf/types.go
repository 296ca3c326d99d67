package elf

import "fmt"

// Class is EI_CLASS: whether the file uses 32- or 64-bit field widths.
type Class byte

const (
	ClassNone Class = 0
	Class32   Class = 1
	Class64   Class = 2
)

func (c Class) String() string {
	switch c {
	case Class32:
		return "ELF32"
	case Class64:
		return "ELF64"
	default:
		return fmt.Sprintf("ClassUnknown(%d)", byte(c))
	}
}

// Endianness is EI_DATA.
type Endianness byte

const (
	EndiannessNone Endianness = 0
	LittleEndian   Endianness = 1
	BigEndian      Endianness = 2
)

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "little-endian"
	case BigEndian:
		return "big-endian"
	default:
		return fmt.Sprintf("EndiannessUnknown(%d)", byte(e))
	}
}

// OSABI is EI_OSABI.
type OSABI byte

const (
	OSABISystemV OSABI = 0
	OSABILinux   OSABI = 3
)

// ObjType is e_type: the object file's category.
type ObjType uint16

const (
	TypeNone         ObjType = 0
	TypeRelocatable  ObjType = 1
	TypeExecutable   ObjType = 2
	TypeSharedObject ObjType = 3
	TypeCore         ObjType = 4
)

func (t ObjType) String() string {
	switch t {
	case TypeNone:
		return "NONE"
	case TypeRelocatable:
		return "REL"
	case TypeExecutable:
		return "EXEC"
	case TypeSharedObject:
		return "DYN"
	case TypeCore:
		return "CORE"
	default:
		return fmt.Sprintf("ObjTypeUnknown(%d)", uint16(t))
	}
}

// Machine is e_machine. Only the architectures exercised by the retrieval
// pack and the common toolchain targets are named; others round-trip as
// their numeric value.
type Machine uint16

const (
	MachineNone    Machine = 0
	MachineARM     Machine = 40
	MachineX86_64  Machine = 62
	MachineAArch64 Machine = 183
	MachineRISCV   Machine = 243
)

func (m Machine) String() string {
	switch m {
	case MachineNone:
		return "NONE"
	case MachineARM:
		return "ARM"
	case MachineX86_64:
		return "X86_64"
	case MachineAArch64:
		return "AARCH64"
	case MachineRISCV:
		return "RISCV"
	default:
		return fmt.Sprintf("MachineUnknown(%d)", uint16(m))
	}
}

// SectionType is sh_type.
type SectionType uint32

const (
	SHTNull          SectionType = 0
	SHTProgBits      SectionType = 1
	SHTSymTab        SectionType = 2
	SHTStrTab        SectionType = 3
	SHTRela          SectionType = 4
	SHTHash          SectionType = 5
	SHTDynamic       SectionType = 6
	SHTNote          SectionType = 7
	SHTNoBits        SectionType = 8
	SHTRel           SectionType = 9
	SHTShLib         SectionType = 10
	SHTDynSym        SectionType = 11
	SHTInitArray     SectionType = 14
	SHTFiniArray     SectionType = 15
	SHTPreinitArray  SectionType = 16
	SHTGroup         SectionType = 17
	SHTSymTabShndx   SectionType = 18
	SHTARMAttributes SectionType = 0x70000003
)

func (t SectionType) String() string {
	switch t {
	case SHTNull:
		return "NULL"
	case SHTProgBits:
		return "PROGBITS"
	case SHTSymTab:
		return "SYMTAB"
	case SHTStrTab:
		return "STRTAB"
	case SHTRela:
		return "RELA"
	case SHTHash:
		return "HASH"
	case SHTDynamic:
		return "DYNAMIC"
	case SHTNote:
		return "NOTE"
	case SHTNoBits:
		return "NOBITS"
	case SHTRel:
		return "REL"
	case SHTShLib:
		return "SHLIB"
	case SHTDynSym:
		return "DYNSYM"
	case SHTInitArray:
		return "INIT_ARRAY"
	case SHTFiniArray:
		return "FINI_ARRAY"
	case SHTPreinitArray:
		return "PREINIT_ARRAY"
	case SHTGroup:
		return "GROUP"
	case SHTSymTabShndx:
		return "SYMTAB_SHNDX"
	case SHTARMAttributes:
		return "ARM_ATTRIBUTES"
	default:
		return fmt.Sprintf("SectionTypeUnknown(0x%x)", uint32(t))
	}
}

// SectionFlags is sh_flags.
type SectionFlags uint64

const (
	SHFWrite           SectionFlags = 1 << 0
	SHFAlloc           SectionFlags = 1 << 1
	SHFExecInstr       SectionFlags = 1 << 2
	SHFMerge           SectionFlags = 1 << 4
	SHFStrings         SectionFlags = 1 << 5
	SHFInfoLink        SectionFlags = 1 << 6
	SHFLinkOrder       SectionFlags = 1 << 7
	SHFOSNonconforming SectionFlags = 1 << 8
	SHFGroup           SectionFlags = 1 << 9
	SHFTLS             SectionFlags = 1 << 10
	SHFCompressed      SectionFlags = 1 << 11
	SHFMaskOS          SectionFlags = 0x0ff00000
	SHFMaskProc        SectionFlags = 0xf0000000
)

// Has reports whether all bits of mask are set.
func (f SectionFlags) Has(mask SectionFlags) bool {
	return f&mask == mask
}

// Any reports whether any bit of mask is set.
func (f SectionFlags) Any(mask SectionFlags) bool {
	return f&mask != 0
}

func (f SectionFlags) String() string {
	names := []struct {
		bit  SectionFlags
		name string
	}{
		{SHFWrite, "W"}, {SHFAlloc, "A"}, {SHFExecInstr, "X"},
		{SHFMerge, "M"}, {SHFStrings, "S"}, {SHFInfoLink, "I"},
		{SHFLinkOrder, "L"}, {SHFOSNonconforming, "O"}, {SHFGroup, "G"},
		{SHFTLS, "T"}, {SHFCompressed, "C"},
	}

	out := ""
	for _, n := range names {
		if f.Has(n.bit) {
			out += n.name
		}
	}
	return out
}

// ProgramType is p_type.
type ProgramType uint32

const (
	PTNull       ProgramType = 0
	PTLoad       ProgramType = 1
	PTDynamic    ProgramType = 2
	PTInterp     ProgramType = 3
	PTNote       ProgramType = 4
	PTShLib      ProgramType = 5
	PTPHDR       ProgramType = 6
	PTTLS        ProgramType = 7
	PTGNUEHFrame ProgramType = 0x6474e550
	PTGNURelro   ProgramType = 0x6474e552
	PTGNUStack   ProgramType = 0x6474e551
)

func (t ProgramType) String() string {
	switch t {
	case PTNull:
		return "NULL"
	case PTLoad:
		return "LOAD"
	case PTDynamic:
		return "DYNAMIC"
	case PTInterp:
		return "INTERP"
	case PTNote:
		return "NOTE"
	case PTShLib:
		return "SHLIB"
	case PTPHDR:
		return "PHDR"
	case PTTLS:
		return "TLS"
	case PTGNUEHFrame:
		return "GNU_EH_FRAME"
	case PTGNURelro:
		return "GNU_RELRO"
	case PTGNUStack:
		return "GNU_STACK"
	default:
		return fmt.Sprintf("ProgramTypeUnknown(0x%x)", uint32(t))
	}
}

// ProgramFlags is p_flags.
type ProgramFlags uint32

const (
	PFExec  ProgramFlags = 1 << 0
	PFWrite ProgramFlags = 1 << 1
	PFRead  ProgramFlags = 1 << 2
)

func (f ProgramFlags) String() string {
	r, w, x := "-", "-", "-"
	if f&PFRead != 0 {
		r = "R"
	}
	if f&PFWrite != 0 {
		w = "W"
	}
	if f&PFExec != 0 {
		x = "E"
	}
	return r + w + x
}

// Special section indices a symbol's st_shndx can take instead of
// pointing at a real section.
const (
	SHNUndef     uint16 = 0
	SHNLoreserve uint16 = 0xff00
	SHNBefore    uint16 = 0xff00
	SHNAfter     uint16 = 0xff01
	SHNAbs       uint16 = 0xfff1
	SHNCommon    uint16 = 0xfff2
	SHNXindex    uint16 = 0xffff
	SHNHireserve uint16 = 0xffff
)

// SymBinding is the high nibble of st_info.
type SymBinding byte

const (
	BindLocal     SymBinding = 0
	BindGlobal    SymBinding = 1
	BindWeak      SymBinding = 2
	BindGNUUnique SymBinding = 10
)

func (b SymBinding) String() string {
	switch b {
	case BindLocal:
		return "LOCAL"
	case BindGlobal:
		return "GLOBAL"
	case BindWeak:
		return "WEAK"
	case BindGNUUnique:
		return "GNU_UNIQUE"
	default:
		if b >= 13 {
			return fmt.Sprintf("PROC(%d)", byte(b))
		}
		return fmt.Sprintf("BindUnknown(%d)", byte(b))
	}
}

// SymType is the low nibble of st_info.
type SymType byte

const (
	SymTypeNoType   SymType = 0
	SymTypeObject   SymType = 1
	SymTypeFunc     SymType = 2
	SymTypeSection  SymType = 3
	SymTypeFile     SymType = 4
	SymTypeCommon   SymType = 5
	SymTypeTLS      SymType = 6
	SymTypeGNUIFunc SymType = 10
)

func (t SymType) String() string {
	switch t {
	case SymTypeNoType:
		return "NOTYPE"
	case SymTypeObject:
		return "OBJECT"
	case SymTypeFunc:
		return "FUNC"
	case SymTypeSection:
		return "SECTION"
	case SymTypeFile:
		return "FILE"
	case SymTypeCommon:
		return "COMMON"
	case SymTypeTLS:
		return "TLS"
	case SymTypeGNUIFunc:
		return "GNU_IFUNC"
	default:
		if t >= 13 {
			return fmt.Sprintf("PROC(%d)", byte(t))
		}
		return fmt.Sprintf("SymTypeUnknown(%d)", byte(t))
	}
}

// SymVisibility is st_other & 0x3.
type SymVisibility byte

const (
	VisibilityDefault   SymVisibility = 0
	VisibilityInternal  SymVisibility = 1
	VisibilityHidden    SymVisibility = 2
	VisibilityProtected SymVisibility = 3
)

func (v SymVisibility) String() string {
	switch v {
	case VisibilityDefault:
		return "DEFAULT"
	case VisibilityInternal:
		return "INTERNAL"
	case VisibilityHidden:
		return "HIDDEN"
	case VisibilityProtected:
		return "PROTECTED"
	default:
		return fmt.Sprintf("VisibilityUnknown(%d)", byte(v))
	}
}
