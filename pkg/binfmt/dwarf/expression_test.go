package dwarf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/objerr"
)

func TestDescribe_WorkedExamples(t *testing.T) {
	cases := []struct {
		name     string
		bytes    []byte
		addrSize int
		want     string
	}{
		{"plus_uconst", []byte{0x23, 0x10}, 8, "plus_uconst(0x10)"},
		{"breg5", []byte{0x75, 0x10}, 8, "breg5(0x10)"},
		{"addr32", []byte{0x03, 0x00, 0x10, 0x00, 0x00}, 4, "addr(0x00001000)"},
		{"lit-plus", []byte{0x35, 0x33, 0x22}, 8, "lit5; lit3; plus"},
		{"fbreg", []byte{0x91, 0x7c}, 8, "fbreg(0x-4)"},
		{"call_frame_cfa", []byte{0x9c}, 8, "call_frame_cfa"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Describe(c.bytes, c.addrSize, elf.LittleEndian))
		})
	}
}

func TestDescribe_Deterministic(t *testing.T) {
	bytes := []byte{0x35, 0x33, 0x22, 0x23, 0x10}
	first := Describe(bytes, 8, elf.LittleEndian)
	second := Describe(bytes, 8, elf.LittleEndian)
	assert.Equal(t, first, second)
}

func TestDescribe_UnknownOpcodePreserved(t *testing.T) {
	out := Describe([]byte{0x35, 0xff, 0x33}, 8, elf.LittleEndian)
	assert.Equal(t, "lit5; <unk 0xff>; lit3", out)
}

func TestDescribe_GNUExtensions(t *testing.T) {
	assert.Equal(t, "GNU_push_tls_address", Describe([]byte{0xe0}, 8, elf.LittleEndian))
	assert.Equal(t, "GNU_entry_value(1 bytes)", Describe([]byte{0xf3, 0x01, 0x55}, 8, elf.LittleEndian))
}

func TestEvaluate_LitPlus(t *testing.T) {
	res, err := Evaluate([]byte{0x35, 0x33, 0x22}, EvalContext{AddrSize: 8})
	require.NoError(t, err)
	assert.Equal(t, LocationValue, res.Kind)
	assert.Equal(t, uint64(8), res.Value)
}

func TestEvaluate_Arithmetic(t *testing.T) {
	cases := []struct {
		name  string
		bytes []byte
		want  uint64
	}{
		{"minus", []byte{0x3a, 0x33, 0x1c}, 7},           // lit10 lit3 minus
		{"mul", []byte{0x34, 0x35, 0x1e}, 20},            // lit4 lit5 mul
		{"shl", []byte{0x31, 0x34, 0x24}, 16},            // lit1 lit4 shl
		{"and", []byte{0x36, 0x33, 0x1a}, 2},             // lit6 lit3 and
		{"eq-true", []byte{0x35, 0x35, 0x29}, 1},         // lit5 lit5 eq
		{"lt-false", []byte{0x35, 0x33, 0x2d}, 0},        // lit5 lit3 lt
		{"neg-abs", []byte{0x35, 0x1f, 0x19}, 5},         // lit5 neg abs
		{"plus_uconst", []byte{0x32, 0x23, 0x10}, 0x12},  // lit2 plus_uconst(0x10)
		{"const2u", []byte{0x0a, 0x34, 0x12}, 0x1234},    // const2u
		{"dup-plus", []byte{0x33, 0x12, 0x22}, 6},        // lit3 dup plus
		{"swap-minus", []byte{0x33, 0x3a, 0x16, 0x1c}, 7}, // lit3 lit10 swap minus
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := Evaluate(c.bytes, EvalContext{AddrSize: 8})
			require.NoError(t, err)
			assert.Equal(t, c.want, res.Value)
		})
	}
}

func TestEvaluate_Branching(t *testing.T) {
	// lit1 bra(+1): skips the lit0 that follows, leaving lit7 as result.
	bytes := []byte{0x31, 0x28, 0x01, 0x00, 0x30, 0x37}
	res, err := Evaluate(bytes, EvalContext{AddrSize: 8})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), res.Value)
}

func TestEvaluate_Skip(t *testing.T) {
	// skip(+1) jumps over the lit0, so only lit9 lands on the stack.
	bytes := []byte{0x2f, 0x01, 0x00, 0x30, 0x39}
	res, err := Evaluate(bytes, EvalContext{AddrSize: 8})
	require.NoError(t, err)
	assert.Equal(t, uint64(9), res.Value)
}

func TestEvaluate_LocationKinds(t *testing.T) {
	res, err := Evaluate([]byte{0x50}, EvalContext{AddrSize: 8}) // reg0
	require.NoError(t, err)
	assert.Equal(t, LocationRegister, res.Kind)

	res, err = Evaluate([]byte{0x03, 0, 0x10, 0, 0}, EvalContext{AddrSize: 4}) // addr
	require.NoError(t, err)
	assert.Equal(t, LocationMemory, res.Kind)
	assert.Equal(t, uint64(0x1000), res.Value)

	res, err = Evaluate([]byte{0x35, 0x9f}, EvalContext{AddrSize: 8}) // lit5 stack_value
	require.NoError(t, err)
	assert.Equal(t, LocationImplicit, res.Kind)
	assert.Equal(t, uint64(5), res.Value)
}

type fakeRegisters map[int]uint64

func (f fakeRegisters) ReadRegister(reg int) (uint64, error) { return f[reg], nil }

type fakeMemory map[uint64]uint64

func (f fakeMemory) ReadMemory(addr uint64, size int) (uint64, error) { return f[addr], nil }

func TestEvaluate_WithProviders(t *testing.T) {
	ctx := EvalContext{
		AddrSize: 8,
		Register: fakeRegisters{5: 0x2000},
		Memory:   fakeMemory{0x2010: 0xdead},
	}

	// breg5(0x10) deref: reads memory at r5 + 0x10.
	res, err := Evaluate([]byte{0x75, 0x10, 0x06}, ctx)
	require.NoError(t, err)
	assert.Equal(t, LocationMemory, res.Kind)
	assert.Equal(t, uint64(0xdead), res.Value)
}

func TestEvaluate_StackUnderflow(t *testing.T) {
	_, err := Evaluate([]byte{0x22}, EvalContext{AddrSize: 8}) // plus on empty stack
	assert.ErrorIs(t, err, objerr.ErrStackUnderflow)
}

func TestEvaluate_UnknownOpcode(t *testing.T) {
	_, err := Evaluate([]byte{0xff}, EvalContext{AddrSize: 8})
	assert.ErrorIs(t, err, objerr.ErrUnknownOpcode)
}

func TestEvaluate_TypedOpsUnsupported(t *testing.T) {
	_, err := Evaluate([]byte{0xa8}, EvalContext{AddrSize: 8}) // convert
	assert.ErrorIs(t, err, objerr.ErrUnsupported)
}

func TestEvaluate_PieceComposite(t *testing.T) {
	// reg0 piece(4) reg1 piece(4)
	res, err := Evaluate([]byte{0x50, 0x93, 0x04, 0x51, 0x93, 0x04}, EvalContext{AddrSize: 8})
	require.NoError(t, err)
	assert.Equal(t, LocationComposite, res.Kind)
}
