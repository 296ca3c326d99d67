package dwarf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manu343726/objfile/pkg/binfmt/elf"
)

// typeTestAbbrevs:
//
//	1 compile_unit   (children)
//	2 structure_type (children)  name:string byte_size:data1
//	3 member                     name:string type:ref4 data_member_location:data1
//	4 pointer_type               type:ref4
//	5 base_type                  name:string encoding:data1
//	6 variable                   name:string type:ref4 decl_file:data1
func typeTestAbbrevs() []byte {
	var out []byte

	decl := func(code uint64, tag Tag, children byte, attrs ...uint64) {
		out = uleb(out, code)
		out = uleb(out, uint64(tag))
		out = append(out, children)
		for i := 0; i < len(attrs); i += 2 {
			out = uleb(out, attrs[i])
			out = uleb(out, attrs[i+1])
		}
		out = uleb(out, 0)
		out = uleb(out, 0)
	}

	decl(1, TagCompileUnit, 1)
	decl(2, TagStructureType, 1, uint64(AttrName), uint64(FormString), uint64(AttrByteSize), uint64(FormData1))
	decl(3, TagMember, 0, uint64(AttrName), uint64(FormString), uint64(AttrType), uint64(FormRef4), uint64(AttrDataMemberLoc), uint64(FormData1))
	decl(4, TagPointerType, 0, uint64(AttrType), uint64(FormRef4))
	decl(5, TagBaseType, 0, uint64(AttrName), uint64(FormString), uint64(AttrEncoding), uint64(FormData1))
	decl(6, TagVariable, 0, uint64(AttrName), uint64(FormString), uint64(AttrType), uint64(FormRef4), uint64(AttrDeclFile), uint64(FormData1))

	out = uleb(out, 0)
	return out
}

// selfReferentialCU builds `struct node { struct node *next; }` plus a
// base type and a variable, with the member -> pointer -> struct cycle
// patched in after layout is known.
func selfReferentialCU(t *testing.T) (units []CompileUnit, structOff, baseOff, varOff int64) {
	t.Helper()

	const headerLen = 11
	var body []byte
	off := func() int64 { return int64(headerLen + len(body)) }

	body = append(body, 1) // compile_unit

	structOff = off()
	body = append(body, 2)
	body = append(body, "node\x00"...)
	body = append(body, 8)

	body = append(body, 3) // member
	body = append(body, "next\x00"...)
	memberRefPatch := len(body)
	body = append(body, 0, 0, 0, 0)
	body = append(body, 0) // data_member_location

	body = append(body, 0) // close structure_type

	pointerOff := off()
	body = append(body, 4)
	body = append(body, 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(body[len(body)-4:], uint32(structOff))

	binary.LittleEndian.PutUint32(body[memberRefPatch:], uint32(pointerOff))

	baseOff = off()
	body = append(body, 5)
	body = append(body, "int\x00"...)
	body = append(body, 0x05) // DW_ATE_signed

	varOff = off()
	body = append(body, 6)
	body = append(body, "v\x00"...)
	body = append(body, byte(baseOff), 0, 0, 0)
	body = append(body, 1) // decl_file

	body = append(body, 0) // close compile_unit

	header := make([]byte, headerLen)
	binary.LittleEndian.PutUint32(header[0:], uint32(len(body)+7))
	binary.LittleEndian.PutUint16(header[4:], 4)
	binary.LittleEndian.PutUint32(header[6:], 0)
	header[10] = 8

	abbrev := NewAbbrevCache(typeTestAbbrevs(), elf.LittleEndian)
	units, err := ParseCompileUnits(append(header, body...), elf.LittleEndian, abbrev, nil, nil)
	require.NoError(t, err)
	require.Len(t, units, 1)
	return units, structOff, baseOff, varOff
}

func findAttr(t *testing.T, rec *TypeRecord, a Attr) *ResolvedAttr {
	t.Helper()
	for i := range rec.Attributes {
		if rec.Attributes[i].Attr == a {
			return &rec.Attributes[i]
		}
	}
	t.Fatalf("attribute %s not present on %s", a, rec.Tag)
	return nil
}

func TestResolveType_CycleReturnsCircularMarker(t *testing.T) {
	units, structOff, _, _ := selfReferentialCU(t)
	resolver := NewTypeResolver(NewInfo(units))

	rec := resolver.ResolveType(structOff)
	require.False(t, rec.IsCircular)
	assert.Equal(t, TagStructureType, rec.Tag)
	require.Len(t, rec.Children, 1)

	member := &rec.Children[0]
	assert.Equal(t, TagMember, member.Tag)

	pointer := findAttr(t, member, AttrType).Type
	require.NotNil(t, pointer)
	assert.Equal(t, TagPointerType, pointer.Tag)

	back := findAttr(t, pointer, AttrType).Type
	require.NotNil(t, back)
	assert.True(t, back.IsCircular)
	assert.Equal(t, TagStructureType, back.Tag)
	assert.Equal(t, "node", back.Name)
}

func TestResolveType_Idempotent(t *testing.T) {
	units, structOff, _, _ := selfReferentialCU(t)
	resolver := NewTypeResolver(NewInfo(units))

	first := resolver.ResolveType(structOff)
	second := resolver.ResolveType(structOff)
	assert.Equal(t, first, second)
	assert.Same(t, first, second, "second resolve is served from the memo")
}

func TestResolveType_MissingOffset(t *testing.T) {
	units, _, _, _ := selfReferentialCU(t)
	resolver := NewTypeResolver(NewInfo(units))

	rec := resolver.ResolveType(0x7fff)
	assert.Equal(t, TagUnknownMissing, rec.Tag)
}

func TestResolveType_EnumeratedDisplay(t *testing.T) {
	units, _, baseOff, _ := selfReferentialCU(t)
	resolver := NewTypeResolver(NewInfo(units))

	rec := resolver.ResolveType(baseOff)
	encoding := findAttr(t, rec, AttrEncoding)
	assert.Equal(t, "signed", encoding.Display)
}

func TestResolveType_StructuralAttributesSkipped(t *testing.T) {
	units, _, baseOff, varOff := selfReferentialCU(t)
	resolver := NewTypeResolver(NewInfo(units))

	rec := resolver.ResolveType(varOff)
	assert.Equal(t, TagVariable, rec.Tag)
	for _, attr := range rec.Attributes {
		assert.NotEqual(t, AttrDeclFile, attr.Attr, "decl_file is structural and must be dropped")
	}

	nested := findAttr(t, rec, AttrType).Type
	require.NotNil(t, nested)
	assert.Equal(t, TagBaseType, nested.Tag)
	assert.Equal(t, nested.Offset, baseOff)
}
