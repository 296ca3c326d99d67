package elf

import "github.com/Manu343726/objfile/pkg/objerr"

// Magic is the required 4-byte ELF identification prefix.
var Magic = [4]byte{0x7f, 'E', 'L', 'F'}

// Header is the decoded ELF identification plus extended header. Field
// widths for everything downstream follow Class and Endianness, fixed
// once here.
type Header struct {
	Class      Class
	Endianness Endianness
	Version    byte
	OSABI      OSABI
	ABIVersion byte

	Type    ObjType
	Machine Machine

	EntryPoint     uint64
	ProgramHdrOff  uint64
	SectionHdrOff  uint64
	Flags          uint32
	HeaderSize     uint16
	ProgramHdrSize uint16
	ProgramHdrNum  uint16
	SectionHdrSize uint16
	SectionHdrNum  uint16
	SHStrNdx       uint16
}

// DecodeHeader reads the 16-byte identification prefix and the extended
// header from data. Failure modes are BadMagic, UnsupportedClass,
// UnsupportedEndianness, and Truncated when data is too short for the
// header; no other validation happens here, and downstream decoders
// check the invariants they depend on.
func DecodeHeader(data []byte) (*Header, error) {
	if len(data) < 16 {
		return nil, objerr.NewTruncated(0, 16, int64(len(data)))
	}

	for i, want := range Magic {
		if data[i] != want {
			return nil, objerr.Wrap(objerr.ErrBadMagic, "got %02x %02x %02x %02x", data[0], data[1], data[2], data[3])
		}
	}

	class := Class(data[4])
	if class != Class32 && class != Class64 {
		return nil, objerr.Wrap(objerr.ErrUnsupportedClass, "EI_CLASS=%d", data[4])
	}

	endianness := Endianness(data[5])
	if endianness != LittleEndian && endianness != BigEndian {
		return nil, objerr.Wrap(objerr.ErrUnsupportedEndianness, "EI_DATA=%d", data[5])
	}

	h := &Header{
		Class:      class,
		Endianness: endianness,
		Version:    data[6],
		OSABI:      OSABI(data[7]),
		ABIVersion: data[8],
	}

	r := NewReader(data, endianness)

	var err error
	switch class {
	case Class32:
		err = h.decode32(r)
	case Class64:
		err = h.decode64(r)
	}
	if err != nil {
		return nil, err
	}

	return h, nil
}

func (h *Header) decode32(r *Reader) error {
	typ, err := r.ReadU16(16)
	if err != nil {
		return err
	}
	machine, err := r.ReadU16(18)
	if err != nil {
		return err
	}
	_, err = r.ReadU32(20) // e_version, redundant with identification byte 6
	if err != nil {
		return err
	}
	entry, err := r.ReadU32(24)
	if err != nil {
		return err
	}
	phoff, err := r.ReadU32(28)
	if err != nil {
		return err
	}
	shoff, err := r.ReadU32(32)
	if err != nil {
		return err
	}
	flags, err := r.ReadU32(36)
	if err != nil {
		return err
	}
	ehsize, err := r.ReadU16(40)
	if err != nil {
		return err
	}
	phentsize, err := r.ReadU16(42)
	if err != nil {
		return err
	}
	phnum, err := r.ReadU16(44)
	if err != nil {
		return err
	}
	shentsize, err := r.ReadU16(46)
	if err != nil {
		return err
	}
	shnum, err := r.ReadU16(48)
	if err != nil {
		return err
	}
	shstrndx, err := r.ReadU16(50)
	if err != nil {
		return err
	}

	h.Type = ObjType(typ)
	h.Machine = Machine(machine)
	h.EntryPoint = uint64(entry)
	h.ProgramHdrOff = uint64(phoff)
	h.SectionHdrOff = uint64(shoff)
	h.Flags = flags
	h.HeaderSize = ehsize
	h.ProgramHdrSize = phentsize
	h.ProgramHdrNum = phnum
	h.SectionHdrSize = shentsize
	h.SectionHdrNum = shnum
	h.SHStrNdx = shstrndx
	return nil
}

func (h *Header) decode64(r *Reader) error {
	typ, err := r.ReadU16(16)
	if err != nil {
		return err
	}
	machine, err := r.ReadU16(18)
	if err != nil {
		return err
	}
	_, err = r.ReadU32(20)
	if err != nil {
		return err
	}
	entry, err := r.ReadU64(24)
	if err != nil {
		return err
	}
	phoff, err := r.ReadU64(32)
	if err != nil {
		return err
	}
	shoff, err := r.ReadU64(40)
	if err != nil {
		return err
	}
	flags, err := r.ReadU32(48)
	if err != nil {
		return err
	}
	ehsize, err := r.ReadU16(52)
	if err != nil {
		return err
	}
	phentsize, err := r.ReadU16(54)
	if err != nil {
		return err
	}
	phnum, err := r.ReadU16(56)
	if err != nil {
		return err
	}
	shentsize, err := r.ReadU16(58)
	if err != nil {
		return err
	}
	shnum, err := r.ReadU16(60)
	if err != nil {
		return err
	}
	shstrndx, err := r.ReadU16(62)
	if err != nil {
		return err
	}

	h.Type = ObjType(typ)
	h.Machine = Machine(machine)
	h.EntryPoint = entry
	h.ProgramHdrOff = phoff
	h.SectionHdrOff = shoff
	h.Flags = flags
	h.HeaderSize = ehsize
	h.ProgramHdrSize = phentsize
	h.ProgramHdrNum = phnum
	h.SectionHdrSize = shentsize
	h.SectionHdrNum = shnum
	h.SHStrNdx = shstrndx
	return nil
}

// AddressSize returns the natural address width in bytes for the
// header's class: 4 for ELF32, 8 for ELF64.
func (h *Header) AddressSize() int {
	if h.Class == Class32 {
		return 4
	}
	return 8
}
