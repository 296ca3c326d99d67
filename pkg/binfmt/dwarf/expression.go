package dwarf

import (
	"fmt"
	"strings"

	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/objerr"
)

// LocationKind classifies the result of evaluating a location
// expression.
type LocationKind int

const (
	LocationValue LocationKind = iota
	LocationRegister
	LocationMemory
	LocationImplicit
	LocationComposite
)

// EvalResult is the outcome of evaluating an expression when enough
// context (memory/register providers) is present.
type EvalResult struct {
	Kind     LocationKind
	Value    uint64
	Register int
}

// MemoryReader resolves a deref/deref_size opcode against a target's
// address space; xderef/xderef_size and Describe-mode evaluation never
// call it.
type MemoryReader interface {
	ReadMemory(addr uint64, size int) (uint64, error)
}

// RegisterReader resolves a reg/breg/regx/bregx opcode against a target's
// register file.
type RegisterReader interface {
	ReadRegister(reg int) (uint64, error)
}

// EvalContext carries the optional providers an Evaluate call needs.
// Both may be nil. Without a Register provider, reg0..reg31 and regx push
// nothing and breg/bregx push their offset over a base of 0; without a
// Memory provider, deref/deref_size pop the address and push nothing.
// Either way the opcode still reports its LocationKind so the caller can
// see the intent.
type EvalContext struct {
	AddrSize int
	Order    elf.Endianness
	Memory   MemoryReader
	Register RegisterReader
}

// opStack is the evaluator's 64-bit value stack.
type opStack struct {
	vals []uint64
}

func (s *opStack) push(v uint64) { s.vals = append(s.vals, v) }

func (s *opStack) pop() (uint64, error) {
	if len(s.vals) == 0 {
		return 0, objerr.ErrStackUnderflow
	}
	v := s.vals[len(s.vals)-1]
	s.vals = s.vals[:len(s.vals)-1]
	return v, nil
}

func (s *opStack) top() (uint64, error) {
	if len(s.vals) == 0 {
		return 0, objerr.ErrStackUnderflow
	}
	return s.vals[len(s.vals)-1], nil
}

// Evaluate runs bytecode as a DWARF expression, producing a final
// EvalResult. Typed (v5) opcodes and call2/call4/call_ref are
// Unsupported in evaluate mode; opcodes with no evaluate case
// (push_object_address, form_tls_address and the GNU extensions) fail
// with UnknownOpcode; everything else either computes a value or records
// the intended location kind.
func Evaluate(bytecode []byte, ctx EvalContext) (EvalResult, error) {
	order := ctx.Order
	if order == elf.EndiannessNone {
		order = elf.LittleEndian
	}
	r := elf.NewReader(bytecode, order)
	st := &opStack{}
	pos := int64(0)

	var lastLocation = LocationValue
	var pieces []uint64

	for pos < int64(len(bytecode)) {
		op, err := r.ReadU8(pos)
		if err != nil {
			return EvalResult{}, err
		}
		opcode := Op(op)
		pos++

		consumed, loc, err := evalOne(r, &pos, opcode, st, ctx, &pieces)
		if err != nil {
			return EvalResult{}, objerr.Wrap(err, "opcode 0x%x at byte %d", op, pos-1)
		}
		_ = consumed
		if loc != LocationValue {
			lastLocation = loc
		}
	}

	if lastLocation == LocationComposite {
		v, _ := st.top()
		return EvalResult{Kind: LocationComposite, Value: v}, nil
	}

	v, err := st.top()
	if err != nil {
		// An expression with no arithmetic result (e.g. a bare reg0
		// without a register provider) still reports its location kind.
		return EvalResult{Kind: lastLocation}, nil
	}
	return EvalResult{Kind: lastLocation, Value: v}, nil
}

// evalOne applies one opcode's effect on the stack (when ctx allows) and
// reports the location kind it implies, if any.
func evalOne(r *elf.Reader, pos *int64, opcode Op, st *opStack, ctx EvalContext, pieces *[]uint64) (int64, LocationKind, error) {
	start := *pos

	switch {
	case opcode >= OpLit0 && opcode < OpLit0+32:
		st.push(uint64(opcode - OpLit0))
		return *pos - start, LocationValue, nil

	case opcode >= OpReg0 && opcode < OpReg0+32:
		regNum := int(opcode - OpReg0)
		if ctx.Register != nil {
			if v, err := ctx.Register.ReadRegister(regNum); err == nil {
				st.push(v)
			}
		}
		return *pos - start, LocationRegister, nil

	case opcode >= OpBreg0 && opcode < OpBreg0+32:
		regNum := int(opcode - OpBreg0)
		off, n, err := r.ReadSLEB(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(n)
		base := uint64(0)
		if ctx.Register != nil {
			if v, err := ctx.Register.ReadRegister(regNum); err == nil {
				base = v
			}
		}
		st.push(uint64(int64(base) + off))
		return *pos - start, LocationMemory, nil
	}

	switch opcode {
	case OpAddr:
		v, err := r.ReadAddr(*pos, ctx.AddrSize)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(ctx.AddrSize)
		st.push(v)
		return *pos - start, LocationMemory, nil

	case OpConst1u:
		v, err := r.ReadU8(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos++
		st.push(uint64(v))
	case OpConst1s:
		v, err := r.ReadI8(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos++
		st.push(uint64(int64(v)))
	case OpConst2u:
		v, err := r.ReadU16(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += 2
		st.push(uint64(v))
	case OpConst2s:
		v, err := r.ReadI16(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += 2
		st.push(uint64(int64(v)))
	case OpConst4u:
		v, err := r.ReadU32(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += 4
		st.push(uint64(v))
	case OpConst4s:
		v, err := r.ReadI32(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += 4
		st.push(uint64(int64(v)))
	case OpConst8u:
		v, err := r.ReadU64(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += 8
		st.push(v)
	case OpConst8s:
		v, err := r.ReadI64(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += 8
		st.push(uint64(v))
	case OpConstu:
		v, n, err := r.ReadULEB(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(n)
		st.push(v)
	case OpConsts:
		v, n, err := r.ReadSLEB(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(n)
		st.push(uint64(v))

	case OpDup:
		v, err := st.top()
		if err != nil {
			return 0, 0, err
		}
		st.push(v)
	case OpDrop:
		if _, err := st.pop(); err != nil {
			return 0, 0, err
		}
	case OpOver:
		if len(st.vals) < 2 {
			return 0, 0, objerr.ErrStackUnderflow
		}
		st.push(st.vals[len(st.vals)-2])
	case OpPick:
		idx, err := r.ReadU8(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos++
		if int(idx) >= len(st.vals) {
			return 0, 0, objerr.ErrStackUnderflow
		}
		st.push(st.vals[len(st.vals)-1-int(idx)])
	case OpSwap:
		if len(st.vals) < 2 {
			return 0, 0, objerr.ErrStackUnderflow
		}
		n := len(st.vals)
		st.vals[n-1], st.vals[n-2] = st.vals[n-2], st.vals[n-1]
	case OpRot:
		if len(st.vals) < 3 {
			return 0, 0, objerr.ErrStackUnderflow
		}
		n := len(st.vals)
		st.vals[n-1], st.vals[n-2], st.vals[n-3] = st.vals[n-2], st.vals[n-3], st.vals[n-1]

	case OpAbs:
		v, err := st.pop()
		if err != nil {
			return 0, 0, err
		}
		iv := int64(v)
		if iv < 0 {
			iv = -iv
		}
		st.push(uint64(iv))
	case OpAnd:
		if err := binOp(st, func(a, b uint64) uint64 { return a & b }); err != nil {
			return 0, 0, err
		}
	case OpOr:
		if err := binOp(st, func(a, b uint64) uint64 { return a | b }); err != nil {
			return 0, 0, err
		}
	case OpXor:
		if err := binOp(st, func(a, b uint64) uint64 { return a ^ b }); err != nil {
			return 0, 0, err
		}
	case OpNot:
		v, err := st.pop()
		if err != nil {
			return 0, 0, err
		}
		st.push(^v)
	case OpNeg:
		v, err := st.pop()
		if err != nil {
			return 0, 0, err
		}
		st.push(uint64(-int64(v)))
	case OpPlus:
		if err := binOp(st, func(a, b uint64) uint64 { return a + b }); err != nil {
			return 0, 0, err
		}
	case OpPlusUconst:
		v, n, err := r.ReadULEB(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(n)
		top, err := st.pop()
		if err != nil {
			return 0, 0, err
		}
		st.push(top + v)
	case OpMinus:
		if err := binOp(st, func(a, b uint64) uint64 { return a - b }); err != nil {
			return 0, 0, err
		}
	case OpMul:
		if err := binOp(st, func(a, b uint64) uint64 { return a * b }); err != nil {
			return 0, 0, err
		}
	case OpDiv:
		if err := binOp(st, func(a, b uint64) uint64 {
			if b == 0 {
				return 0
			}
			return uint64(int64(a) / int64(b))
		}); err != nil {
			return 0, 0, err
		}
	case OpMod:
		if err := binOp(st, func(a, b uint64) uint64 {
			if b == 0 {
				return 0
			}
			return a % b
		}); err != nil {
			return 0, 0, err
		}
	case OpShl:
		if err := binOp(st, func(a, b uint64) uint64 { return a << (b & 63) }); err != nil {
			return 0, 0, err
		}
	case OpShr:
		if err := binOp(st, func(a, b uint64) uint64 { return a >> (b & 63) }); err != nil {
			return 0, 0, err
		}
	case OpShra:
		if err := binOp(st, func(a, b uint64) uint64 { return uint64(int64(a) >> (b & 63)) }); err != nil {
			return 0, 0, err
		}

	case OpEq:
		if err := binOp(st, func(a, b uint64) uint64 { return boolU64(a == b) }); err != nil {
			return 0, 0, err
		}
	case OpNe:
		if err := binOp(st, func(a, b uint64) uint64 { return boolU64(a != b) }); err != nil {
			return 0, 0, err
		}
	case OpLt:
		if err := binOp(st, func(a, b uint64) uint64 { return boolU64(int64(a) < int64(b)) }); err != nil {
			return 0, 0, err
		}
	case OpLe:
		if err := binOp(st, func(a, b uint64) uint64 { return boolU64(int64(a) <= int64(b)) }); err != nil {
			return 0, 0, err
		}
	case OpGt:
		if err := binOp(st, func(a, b uint64) uint64 { return boolU64(int64(a) > int64(b)) }); err != nil {
			return 0, 0, err
		}
	case OpGe:
		if err := binOp(st, func(a, b uint64) uint64 { return boolU64(int64(a) >= int64(b)) }); err != nil {
			return 0, 0, err
		}

	case OpSkip:
		v, err := r.ReadI16(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += 2 + int64(v)
	case OpBra:
		v, err := r.ReadI16(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += 2
		top, err := st.pop()
		if err != nil {
			return 0, 0, err
		}
		if top != 0 {
			*pos += int64(v)
		}

	case OpDeref:
		addr, err := st.pop()
		if err != nil {
			return 0, 0, err
		}
		if ctx.Memory != nil {
			if v, err := ctx.Memory.ReadMemory(addr, ctx.AddrSize); err == nil {
				st.push(v)
			}
		}
		return *pos - start, LocationMemory, nil
	case OpDerefSize:
		size, err := r.ReadU8(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos++
		addr, err := st.pop()
		if err != nil {
			return 0, 0, err
		}
		if ctx.Memory != nil {
			if v, err := ctx.Memory.ReadMemory(addr, int(size)); err == nil {
				st.push(v)
			}
		}
		return *pos - start, LocationMemory, nil
	case OpXderef, OpXderefSize:
		if opcode == OpXderefSize {
			if _, err := r.ReadU8(*pos); err != nil {
				return 0, 0, err
			}
			*pos++
		}
		if _, err := st.pop(); err != nil { // address
			return 0, 0, err
		}
		if _, err := st.pop(); err != nil { // address space
			return 0, 0, err
		}
		st.push(0)
		return *pos - start, LocationMemory, nil

	case OpRegx:
		regNum, n, err := r.ReadULEB(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(n)
		if ctx.Register != nil {
			if v, err := ctx.Register.ReadRegister(int(regNum)); err == nil {
				st.push(v)
			}
		}
		return *pos - start, LocationRegister, nil

	case OpFbreg:
		off, n, err := r.ReadSLEB(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(n)
		st.push(uint64(off))
		return *pos - start, LocationMemory, nil

	case OpBregx:
		regNum, n, err := r.ReadULEB(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(n)
		off, n2, err := r.ReadSLEB(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(n2)
		base := uint64(0)
		if ctx.Register != nil {
			if v, err := ctx.Register.ReadRegister(int(regNum)); err == nil {
				base = v
			}
		}
		st.push(uint64(int64(base) + off))
		return *pos - start, LocationMemory, nil

	case OpPiece:
		size, n, err := r.ReadULEB(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(n)
		*pieces = append(*pieces, size)
		return *pos - start, LocationComposite, nil

	case OpBitPiece:
		size, n, err := r.ReadULEB(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(n)
		off, n2, err := r.ReadULEB(*pos)
		if err != nil {
			return 0, 0, err
		}
		*pos += int64(n2)
		*pieces = append(*pieces, size, off)
		return *pos - start, LocationComposite, nil

	case OpStackValue:
		return *pos - start, LocationImplicit, nil

	case OpCallFrameCFA:
		st.push(0)
		return *pos - start, LocationMemory, nil

	case OpNop:
		// no-op

	case OpCall2, OpCall4, OpCallRef:
		return 0, 0, objerr.Wrap(objerr.ErrUnsupported, "call opcode 0x%x needs a DIE evaluation context", uint8(opcode))

	case OpConstTypeV5, OpRegvalType, OpDerefType, OpXderefType, OpConvert,
		OpReinterpret, OpImplicitValue, OpImplicitPointer, OpEntryValue,
		OpAddrx, OpConstx:
		return 0, 0, objerr.Wrap(objerr.ErrUnsupported, "typed opcode 0x%x not supported in evaluate mode", uint8(opcode))

	default:
		return 0, 0, objerr.Wrap(objerr.ErrUnknownOpcode, "0x%x", uint8(opcode))
	}

	return *pos - start, LocationValue, nil
}

func binOp(st *opStack, f func(a, b uint64) uint64) error {
	b, err := st.pop()
	if err != nil {
		return err
	}
	a, err := st.pop()
	if err != nil {
		return err
	}
	st.push(f(a, b))
	return nil
}

func boolU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// Describe renders bytecode as a stable, deterministic textual form,
// one operation per "; "-joined segment. Unknown opcodes never fail a
// describe; they render as <unk> with the raw byte preserved.
func Describe(bytecode []byte, addrSize int, order elf.Endianness) string {
	if order == elf.EndiannessNone {
		order = elf.LittleEndian
	}
	r := elf.NewReader(bytecode, order)
	var parts []string
	pos := int64(0)

	for pos < int64(len(bytecode)) {
		op, err := r.ReadU8(pos)
		if err != nil {
			parts = append(parts, "<truncated>")
			break
		}
		opcode := Op(op)
		pos++

		text, n, ok := describeOne(r, pos, opcode, addrSize)
		if !ok {
			parts = append(parts, fmt.Sprintf("<unk 0x%x>", op))
			continue
		}
		pos += n
		parts = append(parts, text)
	}

	return strings.Join(parts, "; ")
}

// describeOne renders one opcode's textual form and reports how many
// operand bytes it consumed. ok is false when the opcode is unrecognised
// or its operand cannot be read (the raw byte has already been consumed
// by the caller).
func describeOne(r *elf.Reader, pos int64, opcode Op, addrSize int) (string, int64, bool) {
	switch {
	case opcode >= OpLit0 && opcode < OpLit0+32:
		return fmt.Sprintf("lit%d", opcode-OpLit0), 0, true
	case opcode >= OpReg0 && opcode < OpReg0+32:
		return fmt.Sprintf("reg%d", opcode-OpReg0), 0, true
	case opcode >= OpBreg0 && opcode < OpBreg0+32:
		off, n, err := r.ReadSLEB(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("breg%d(0x%x)", opcode-OpBreg0, off), int64(n), true
	}

	switch opcode {
	case OpAddr:
		v, err := r.ReadAddr(pos, addrSize)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("addr(0x%08x)", v), int64(addrSize), true
	case OpConst1u, OpConst1s:
		v, err := r.ReadU8(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("%s(0x%x)", opMnemonic(opcode), v), 1, true
	case OpConst2u, OpConst2s:
		v, err := r.ReadU16(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("%s(0x%x)", opMnemonic(opcode), v), 2, true
	case OpConst4u, OpConst4s:
		v, err := r.ReadU32(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("%s(0x%x)", opMnemonic(opcode), v), 4, true
	case OpConst8u, OpConst8s:
		v, err := r.ReadU64(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("%s(0x%x)", opMnemonic(opcode), v), 8, true
	case OpConstu:
		v, n, err := r.ReadULEB(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("constu(0x%x)", v), int64(n), true
	case OpConsts:
		v, n, err := r.ReadSLEB(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("consts(0x%x)", v), int64(n), true
	case OpPlusUconst:
		v, n, err := r.ReadULEB(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("plus_uconst(0x%x)", v), int64(n), true
	case OpPick:
		v, err := r.ReadU8(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("pick(0x%x)", v), 1, true
	case OpSkip:
		v, err := r.ReadI16(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("skip(0x%x)", v), 2, true
	case OpBra:
		v, err := r.ReadI16(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("bra(0x%x)", v), 2, true
	case OpDerefSize, OpXderefSize:
		v, err := r.ReadU8(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("%s(0x%x)", opMnemonic(opcode), v), 1, true
	case OpRegx:
		v, n, err := r.ReadULEB(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("regx(0x%x)", v), int64(n), true
	case OpFbreg:
		v, n, err := r.ReadSLEB(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("fbreg(0x%x)", v), int64(n), true
	case OpBregx:
		reg, n, err := r.ReadULEB(pos)
		if err != nil {
			return "", 0, false
		}
		off, n2, err := r.ReadSLEB(pos + int64(n))
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("bregx(0x%x, 0x%x)", reg, off), int64(n) + int64(n2), true
	case OpPiece:
		v, n, err := r.ReadULEB(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("piece(0x%x)", v), int64(n), true
	case OpBitPiece:
		size, n, err := r.ReadULEB(pos)
		if err != nil {
			return "", 0, false
		}
		off, n2, err := r.ReadULEB(pos + int64(n))
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("bit_piece(0x%x, 0x%x)", size, off), int64(n) + int64(n2), true
	case OpCall2:
		v, err := r.ReadU16(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("call2(0x%x)", v), 2, true
	case OpCall4:
		v, err := r.ReadU32(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("call4(0x%x)", v), 4, true
	case OpCallRef:
		v, err := r.ReadU32(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("call_ref(0x%x)", v), 4, true
	case OpImplicitValue:
		length, n, err := r.ReadULEB(pos)
		if err != nil {
			return "", 0, false
		}
		if _, err := r.ReadBlock(pos+int64(n), int(length)); err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("implicit_value(%d bytes)", length), int64(n) + int64(length), true
	case OpEntryValue, OpGNUEntryValue:
		length, n, err := r.ReadULEB(pos)
		if err != nil {
			return "", 0, false
		}
		if _, err := r.ReadBlock(pos+int64(n), int(length)); err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("%s(%d bytes)", opMnemonic(opcode), length), int64(n) + int64(length), true
	case OpAddrx, OpConstx:
		v, n, err := r.ReadULEB(pos)
		if err != nil {
			return "", 0, false
		}
		return fmt.Sprintf("%s(0x%x)", opMnemonic(opcode), v), int64(n), true
	case OpDup, OpDrop, OpOver, OpSwap, OpRot, OpAbs, OpAnd, OpDiv, OpMinus,
		OpMod, OpMul, OpNeg, OpNot, OpOr, OpPlus, OpShl, OpShr, OpShra, OpXor,
		OpEq, OpGe, OpGt, OpLe, OpLt, OpNe, OpDeref, OpXderef, OpNop,
		OpPushObjectAddress, OpCallFrameCFA, OpStackValue, OpFormTLSAddress,
		OpGNUPushTLSAddress:
		return opMnemonic(opcode), 0, true
	default:
		return "", 0, false
	}
}

var opMnemonics = map[Op]string{
	OpConst1u: "const1u", OpConst1s: "const1s", OpConst2u: "const2u", OpConst2s: "const2s",
	OpConst4u: "const4u", OpConst4s: "const4s", OpConst8u: "const8u", OpConst8s: "const8s",
	OpDerefSize: "deref_size", OpXderefSize: "xderef_size",
	OpDup: "dup", OpDrop: "drop", OpOver: "over", OpSwap: "swap", OpRot: "rot",
	OpAbs: "abs", OpAnd: "and", OpDiv: "div", OpMinus: "minus", OpMod: "mod",
	OpMul: "mul", OpNeg: "neg", OpNot: "not", OpOr: "or", OpPlus: "plus",
	OpShl: "shl", OpShr: "shr", OpShra: "shra", OpXor: "xor",
	OpEq: "eq", OpGe: "ge", OpGt: "gt", OpLe: "le", OpLt: "lt", OpNe: "ne",
	OpDeref: "deref", OpXderef: "xderef", OpNop: "nop",
	OpPushObjectAddress: "push_object_address", OpCallFrameCFA: "call_frame_cfa",
	OpStackValue: "stack_value", OpFormTLSAddress: "form_tls_address",
	OpAddrx: "addrx", OpConstx: "constx", OpEntryValue: "entry_value",
	OpGNUPushTLSAddress: "GNU_push_tls_address", OpGNUEntryValue: "GNU_entry_value",
}

func opMnemonic(op Op) string {
	if name, ok := opMnemonics[op]; ok {
		return name
	}
	return fmt.Sprintf("op_0x%x", uint8(op))
}
