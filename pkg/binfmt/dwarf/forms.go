package dwarf

import (
	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/objerr"
)

// AttrValue is a decoded attribute payload. Only the fields relevant to
// Form are meaningful; callers switch on Form (or use the IsRef/Kind
// helpers) to know which to read.
type AttrValue struct {
	Form Form

	Uint  uint64
	Int   int64
	Str   string
	Block []byte
	Flag  bool

	// IsRef marks a reference-typed form (ref1/2/4/8/ref_udata/ref_addr).
	// RefOffset is always an absolute .debug_info offset: CU-relative
	// forms have already had the CU start address added.
	IsRef     bool
	RefOffset int64
}

// formCtx carries the state form decoding needs beyond the bytes
// themselves: the CU's address size and start offset (for CU-relative
// reference adjustment), and the two string sections strp/line_strp
// forms index into.
type formCtx struct {
	addrSize     int
	cuStart      int64
	debugStr     []byte
	debugLineStr []byte
}

// decodeForm reads one attribute value at pos. Returns the decoded
// value and the number of bytes consumed.
func decodeForm(r *elf.Reader, pos int64, form Form, implicitConst int64, ctx formCtx) (AttrValue, int64, error) {
	switch form {
	case FormString:
		s, n, err := r.ReadCStringUTF8(pos)
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, Str: s}, int64(n), nil

	case FormStrp:
		s, err := r.ReadStrP(pos, ctx.debugStr)
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, Str: s}, 4, nil

	case FormLineStrp:
		s, err := r.ReadStrP(pos, ctx.debugLineStr)
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, Str: s}, 4, nil

	case FormUdata:
		v, n, err := r.ReadULEB(pos)
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, Uint: v}, int64(n), nil

	case FormSdata:
		v, n, err := r.ReadSLEB(pos)
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, Int: v}, int64(n), nil

	case FormData1:
		v, err := r.ReadU8(pos)
		return AttrValue{Form: form, Uint: uint64(v)}, 1, err
	case FormData2:
		v, err := r.ReadU16(pos)
		return AttrValue{Form: form, Uint: uint64(v)}, 2, err
	case FormData4:
		v, err := r.ReadU32(pos)
		return AttrValue{Form: form, Uint: uint64(v)}, 4, err
	case FormData8:
		v, err := r.ReadU64(pos)
		return AttrValue{Form: form, Uint: v}, 8, err
	case FormData16:
		b, err := r.ReadBlock(pos, 16)
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, Block: append([]byte(nil), b...)}, 16, nil

	case FormAddr:
		v, err := r.ReadAddr(pos, ctx.addrSize)
		return AttrValue{Form: form, Uint: v}, int64(ctx.addrSize), err

	case FormBlock:
		length, n, err := r.ReadULEB(pos)
		if err != nil {
			return AttrValue{}, 0, err
		}
		b, err := r.ReadBlock(pos+int64(n), int(length))
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, Block: append([]byte(nil), b...)}, int64(n) + int64(length), nil

	case FormBlock1:
		length, err := r.ReadU8(pos)
		if err != nil {
			return AttrValue{}, 0, err
		}
		b, err := r.ReadBlock(pos+1, int(length))
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, Block: append([]byte(nil), b...)}, 1 + int64(length), nil

	case FormBlock2:
		length, err := r.ReadU16(pos)
		if err != nil {
			return AttrValue{}, 0, err
		}
		b, err := r.ReadBlock(pos+2, int(length))
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, Block: append([]byte(nil), b...)}, 2 + int64(length), nil

	case FormBlock4:
		length, err := r.ReadU32(pos)
		if err != nil {
			return AttrValue{}, 0, err
		}
		b, err := r.ReadBlock(pos+4, int(length))
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, Block: append([]byte(nil), b...)}, 4 + int64(length), nil

	case FormExprloc:
		length, n, err := r.ReadULEB(pos)
		if err != nil {
			return AttrValue{}, 0, err
		}
		b, err := r.ReadBlock(pos+int64(n), int(length))
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, Block: append([]byte(nil), b...)}, int64(n) + int64(length), nil

	case FormFlag:
		v, err := r.ReadU8(pos)
		return AttrValue{Form: form, Flag: v != 0}, 1, err

	case FormFlagPresent:
		return AttrValue{Form: form, Flag: true}, 0, nil

	case FormRef1:
		v, err := r.ReadU8(pos)
		return AttrValue{Form: form, IsRef: true, RefOffset: ctx.cuStart + int64(v)}, 1, err
	case FormRef2:
		v, err := r.ReadU16(pos)
		return AttrValue{Form: form, IsRef: true, RefOffset: ctx.cuStart + int64(v)}, 2, err
	case FormRef4:
		v, err := r.ReadU32(pos)
		return AttrValue{Form: form, IsRef: true, RefOffset: ctx.cuStart + int64(v)}, 4, err
	case FormRef8:
		v, err := r.ReadU64(pos)
		return AttrValue{Form: form, IsRef: true, RefOffset: ctx.cuStart + int64(v)}, 8, err
	case FormRefUdata:
		v, n, err := r.ReadULEB(pos)
		if err != nil {
			return AttrValue{}, 0, err
		}
		return AttrValue{Form: form, IsRef: true, RefOffset: ctx.cuStart + int64(v)}, int64(n), nil

	case FormRefAddr:
		v, err := r.ReadU32(pos)
		return AttrValue{Form: form, IsRef: true, RefOffset: int64(v)}, 4, err

	case FormRefSig8:
		v, err := r.ReadU64(pos)
		return AttrValue{Form: form, Uint: v}, 8, err

	case FormSecOffset:
		v, err := r.ReadU32(pos)
		return AttrValue{Form: form, Uint: uint64(v)}, 4, err

	case FormIndirect:
		innerForm, n, err := r.ReadULEB(pos)
		if err != nil {
			return AttrValue{}, 0, err
		}
		inner, innerN, err := decodeForm(r, pos+int64(n), Form(innerForm), 0, ctx)
		if err != nil {
			return AttrValue{}, 0, err
		}
		return inner, int64(n) + innerN, nil

	case FormImplicitConst:
		return AttrValue{Form: form, Int: implicitConst}, 0, nil

	default:
		return AttrValue{}, 0, &objerr.UnknownFormError{Form: uint64(form)}
	}
}
