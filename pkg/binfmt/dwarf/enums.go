// Package dwarf decodes DWARF v4/v5 debug information: abbreviation
// tables, DIE trees, attribute forms, the expression stack machine, type
// resolution, and the line-number program header.
package dwarf

import "fmt"

// Tag is a DW_TAG_* value. Numbers outside this table are preserved and
// rendered as their integer value rather than rejected.
type Tag uint64

const (
	TagArrayType           Tag = 0x01
	TagClassType           Tag = 0x02
	TagEntryPoint          Tag = 0x03
	TagEnumerationType     Tag = 0x04
	TagFormalParameter     Tag = 0x05
	TagImportedDeclaration Tag = 0x08
	TagLabel               Tag = 0x0a
	TagLexicalBlock        Tag = 0x0b
	TagMember              Tag = 0x0d
	TagPointerType         Tag = 0x0f
	TagReferenceType       Tag = 0x10
	TagCompileUnit         Tag = 0x11
	TagStringType          Tag = 0x12
	TagStructureType       Tag = 0x13
	TagSubroutineType      Tag = 0x15
	TagTypedef             Tag = 0x16
	TagUnionType           Tag = 0x17
	TagUnspecifiedParams   Tag = 0x18
	TagVariant             Tag = 0x19
	TagCommonBlock         Tag = 0x1a
	TagCommonInclusion     Tag = 0x1b
	TagInheritance         Tag = 0x1c
	TagInlinedSubroutine   Tag = 0x1d
	TagModule              Tag = 0x1e
	TagPtrToMemberType     Tag = 0x1f
	TagSetType             Tag = 0x20
	TagSubrangeType        Tag = 0x21
	TagWithStmt            Tag = 0x22
	TagAccessDeclaration   Tag = 0x23
	TagBaseType            Tag = 0x24
	TagCatchBlock          Tag = 0x25
	TagConstType           Tag = 0x26
	TagConstant            Tag = 0x27
	TagEnumerator          Tag = 0x28
	TagFileType            Tag = 0x29
	TagFriend              Tag = 0x2a
	TagNamelist            Tag = 0x2b
	TagNamelistItem        Tag = 0x2c
	TagPackedType          Tag = 0x2d
	TagSubprogram          Tag = 0x2e
	TagTemplateTypeParam   Tag = 0x2f
	TagTemplateValueParam  Tag = 0x30
	TagThrownType          Tag = 0x31
	TagTryBlock            Tag = 0x32
	TagVariantPart         Tag = 0x33
	TagVariable            Tag = 0x34
	TagVolatileType        Tag = 0x35
	TagDwarfProcedure      Tag = 0x36
	TagRestrictType        Tag = 0x37
	TagInterfaceType       Tag = 0x38
	TagNamespace           Tag = 0x39
	TagImportedModule      Tag = 0x3a
	TagUnspecifiedType     Tag = 0x3b
	TagPartialUnit         Tag = 0x3c
	TagImportedUnit        Tag = 0x3d
	TagCondition           Tag = 0x3f
	TagSharedType          Tag = 0x40
	TagTypeUnit            Tag = 0x41
	TagRvalueReferenceType Tag = 0x42
	TagTemplateAlias       Tag = 0x43
	// v5 additions not present in the older reference table, still
	// widely emitted by modern toolchains.
	TagCoarrayType       Tag = 0x44
	TagGenericSubrange   Tag = 0x45
	TagDynamicType       Tag = 0x46
	TagAtomicType        Tag = 0x47
	TagCallSite          Tag = 0x48
	TagCallSiteParameter Tag = 0x49
	TagSkeletonUnit      Tag = 0x4a
	TagImmutableType     Tag = 0x4b
)

var tagNames = map[Tag]string{
	TagArrayType: "array_type", TagClassType: "class_type", TagEntryPoint: "entry_point",
	TagEnumerationType: "enumeration_type", TagFormalParameter: "formal_parameter",
	TagImportedDeclaration: "imported_declaration", TagLabel: "label",
	TagLexicalBlock: "lexical_block", TagMember: "member", TagPointerType: "pointer_type",
	TagReferenceType: "reference_type", TagCompileUnit: "compile_unit", TagStringType: "string_type",
	TagStructureType: "structure_type", TagSubroutineType: "subroutine_type", TagTypedef: "typedef",
	TagUnionType: "union_type", TagUnspecifiedParams: "unspecified_parameters", TagVariant: "variant",
	TagCommonBlock: "common_block", TagCommonInclusion: "common_inclusion", TagInheritance: "inheritance",
	TagInlinedSubroutine: "inlined_subroutine", TagModule: "module", TagPtrToMemberType: "ptr_to_member_type",
	TagSetType: "set_type", TagSubrangeType: "subrange_type", TagWithStmt: "with_stmt",
	TagAccessDeclaration: "access_declaration", TagBaseType: "base_type", TagCatchBlock: "catch_block",
	TagConstType: "const_type", TagConstant: "constant", TagEnumerator: "enumerator", TagFileType: "file_type",
	TagFriend: "friend", TagNamelist: "namelist", TagNamelistItem: "namelist_item", TagPackedType: "packed_type",
	TagSubprogram: "subprogram", TagTemplateTypeParam: "template_type_parameter",
	TagTemplateValueParam: "template_value_parameter", TagThrownType: "thrown_type", TagTryBlock: "try_block",
	TagVariantPart: "variant_part", TagVariable: "variable", TagVolatileType: "volatile_type",
	TagDwarfProcedure: "dwarf_procedure", TagRestrictType: "restrict_type", TagInterfaceType: "interface_type",
	TagNamespace: "namespace", TagImportedModule: "imported_module", TagUnspecifiedType: "unspecified_type",
	TagPartialUnit: "partial_unit", TagImportedUnit: "imported_unit", TagCondition: "condition",
	TagSharedType: "shared_type", TagTypeUnit: "type_unit", TagRvalueReferenceType: "rvalue_reference_type",
	TagTemplateAlias: "template_alias", TagCoarrayType: "coarray_type", TagGenericSubrange: "generic_subrange",
	TagDynamicType: "dynamic_type", TagAtomicType: "atomic_type", TagCallSite: "call_site",
	TagCallSiteParameter: "call_site_parameter", TagSkeletonUnit: "skeleton_unit", TagImmutableType: "immutable_type",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return "DW_TAG_" + name
	}
	return fmt.Sprintf("DW_TAG_unknown(0x%x)", uint64(t))
}

// Attr is a DW_AT_* value.
type Attr uint64

const (
	AttrSibling           Attr = 0x01
	AttrLocation          Attr = 0x02
	AttrName              Attr = 0x03
	AttrOrdering          Attr = 0x09
	AttrByteSize          Attr = 0x0b
	AttrBitOffset         Attr = 0x0c
	AttrBitSize           Attr = 0x0d
	AttrStmtList          Attr = 0x10
	AttrLowPC             Attr = 0x11
	AttrHighPC            Attr = 0x12
	AttrLanguage          Attr = 0x13
	AttrDiscr             Attr = 0x15
	AttrDiscrValue        Attr = 0x16
	AttrVisibility        Attr = 0x17
	AttrImport            Attr = 0x18
	AttrStringLength      Attr = 0x19
	AttrCommonReference   Attr = 0x1a
	AttrCompDir           Attr = 0x1b
	AttrConstValue        Attr = 0x1c
	AttrContainingType    Attr = 0x1d
	AttrDefaultValue      Attr = 0x1e
	AttrInline            Attr = 0x20
	AttrIsOptional        Attr = 0x21
	AttrLowerBound        Attr = 0x22
	AttrProducer          Attr = 0x25
	AttrPrototyped        Attr = 0x27
	AttrReturnAddr        Attr = 0x2a
	AttrStartScope        Attr = 0x2c
	AttrBitStride         Attr = 0x2e
	AttrUpperBound        Attr = 0x2f
	AttrAbstractOrigin    Attr = 0x31
	AttrAccessibility     Attr = 0x32
	AttrAddressClass      Attr = 0x33
	AttrArtificial        Attr = 0x34
	AttrBaseTypes         Attr = 0x35
	AttrCallingConvention Attr = 0x36
	AttrCount             Attr = 0x37
	AttrDataMemberLoc     Attr = 0x38
	AttrDeclColumn        Attr = 0x39
	AttrDeclFile          Attr = 0x3a
	AttrDeclLine          Attr = 0x3b
	AttrDeclaration       Attr = 0x3c
	AttrDiscrList         Attr = 0x3d
	AttrEncoding          Attr = 0x3e
	AttrExternal          Attr = 0x3f
	AttrFrameBase         Attr = 0x40
	AttrFriend            Attr = 0x41
	AttrIdentifierCase    Attr = 0x42
	AttrMacroInfo         Attr = 0x43
	AttrNamelistItem      Attr = 0x44
	AttrPriority          Attr = 0x45
	AttrSegment           Attr = 0x46
	AttrSpecification     Attr = 0x47
	AttrStaticLink        Attr = 0x48
	AttrType              Attr = 0x49
	AttrUseLocation       Attr = 0x4a
	AttrVariableParam     Attr = 0x4b
	AttrVirtuality        Attr = 0x4c
	AttrVtableElemLoc     Attr = 0x4d
	AttrAllocated         Attr = 0x4e
	AttrAssociated        Attr = 0x4f
	AttrDataLocation      Attr = 0x50
	AttrByteStride        Attr = 0x51
	AttrEntryPC           Attr = 0x52
	AttrUseUTF8           Attr = 0x53
	AttrExtension         Attr = 0x54
	AttrRanges            Attr = 0x55
	AttrTrampoline        Attr = 0x56
	AttrCallColumn        Attr = 0x57
	AttrCallFile          Attr = 0x58
	AttrCallLine          Attr = 0x59
	AttrDescription       Attr = 0x5a
	AttrBinaryScale       Attr = 0x5b
	AttrDecimalScale      Attr = 0x5c
	AttrSmall             Attr = 0x5d
	AttrDecimalSign       Attr = 0x5e
	AttrDigitCount        Attr = 0x5f
	AttrPictureString     Attr = 0x60
	AttrMutable           Attr = 0x61
	AttrThreadsScaled     Attr = 0x62
	AttrExplicit          Attr = 0x63
	AttrObjectPointer     Attr = 0x64
	AttrEndianity         Attr = 0x65
	AttrElemental         Attr = 0x66
	AttrPure              Attr = 0x67
	AttrRecursive         Attr = 0x68
	AttrSignature         Attr = 0x69
	AttrMainSubprogram    Attr = 0x6a
	AttrDataBitOffset     Attr = 0x6b
	AttrConstExpr         Attr = 0x6c
	AttrEnumClass         Attr = 0x6d
	AttrLinkageName       Attr = 0x6e
	// v5 additions.
	AttrStrOffsetsBase      Attr = 0x72
	AttrAddrBase            Attr = 0x73
	AttrRnglistsBase        Attr = 0x74
	AttrDwoName             Attr = 0x76
	AttrReference           Attr = 0x77
	AttrRvalueReference     Attr = 0x78
	AttrMacros              Attr = 0x79
	AttrCallAllCalls        Attr = 0x7a
	AttrCallAllSourceCalls  Attr = 0x7b
	AttrCallAllTailCalls    Attr = 0x7c
	AttrCallReturnPC        Attr = 0x7d
	AttrCallValue           Attr = 0x7e
	AttrCallOrigin          Attr = 0x7f
	AttrCallParameter       Attr = 0x80
	AttrCallPC              Attr = 0x81
	AttrCallTailCall        Attr = 0x82
	AttrCallTarget          Attr = 0x83
	AttrCallTargetClobbered Attr = 0x84
	AttrCallDataLocation    Attr = 0x85
	AttrCallDataValue       Attr = 0x86
	AttrNoreturn            Attr = 0x87
	AttrAlignment           Attr = 0x88
	AttrExportSymbols       Attr = 0x89
	AttrDeleted             Attr = 0x8a
	AttrDefaulted           Attr = 0x8b
	AttrLoclistsBase        Attr = 0x8c
)

var attrNames = map[Attr]string{
	AttrSibling: "sibling", AttrLocation: "location", AttrName: "name",
	AttrOrdering: "ordering", AttrByteSize: "byte_size", AttrBitOffset: "bit_offset",
	AttrBitSize: "bit_size", AttrStmtList: "stmt_list", AttrLowPC: "low_pc",
	AttrHighPC: "high_pc", AttrLanguage: "language", AttrDiscr: "discr",
	AttrDiscrValue: "discr_value", AttrVisibility: "visibility", AttrImport: "import",
	AttrStringLength: "string_length", AttrCommonReference: "common_reference",
	AttrCompDir: "comp_dir", AttrConstValue: "const_value", AttrContainingType: "containing_type",
	AttrDefaultValue: "default_value", AttrInline: "inline", AttrIsOptional: "is_optional",
	AttrLowerBound: "lower_bound", AttrProducer: "producer", AttrPrototyped: "prototyped",
	AttrReturnAddr: "return_addr", AttrStartScope: "start_scope", AttrBitStride: "bit_stride",
	AttrUpperBound: "upper_bound", AttrAbstractOrigin: "abstract_origin",
	AttrAccessibility: "accessibility", AttrAddressClass: "address_class",
	AttrArtificial: "artificial", AttrBaseTypes: "base_types",
	AttrCallingConvention: "calling_convention", AttrCount: "count",
	AttrDataMemberLoc: "data_member_location", AttrDeclColumn: "decl_column",
	AttrDeclFile: "decl_file", AttrDeclLine: "decl_line", AttrDeclaration: "declaration",
	AttrDiscrList: "discr_list", AttrEncoding: "encoding", AttrExternal: "external",
	AttrFrameBase: "frame_base", AttrFriend: "friend", AttrIdentifierCase: "identifier_case",
	AttrMacroInfo: "macro_info", AttrNamelistItem: "namelist_item", AttrPriority: "priority",
	AttrSegment: "segment", AttrSpecification: "specification", AttrStaticLink: "static_link",
	AttrType: "type", AttrUseLocation: "use_location", AttrVariableParam: "variable_parameter",
	AttrVirtuality: "virtuality", AttrVtableElemLoc: "vtable_elem_location",
	AttrAllocated: "allocated", AttrAssociated: "associated", AttrDataLocation: "data_location",
	AttrByteStride: "byte_stride", AttrEntryPC: "entry_pc", AttrUseUTF8: "use_UTF8",
	AttrExtension: "extension", AttrRanges: "ranges", AttrTrampoline: "trampoline",
	AttrCallColumn: "call_column", AttrCallFile: "call_file", AttrCallLine: "call_line",
	AttrDescription: "description", AttrBinaryScale: "binary_scale",
	AttrDecimalScale: "decimal_scale", AttrSmall: "small", AttrDecimalSign: "decimal_sign",
	AttrDigitCount: "digit_count", AttrPictureString: "picture_string",
	AttrMutable: "mutable", AttrThreadsScaled: "threads_scaled", AttrExplicit: "explicit",
	AttrObjectPointer: "object_pointer", AttrEndianity: "endianity",
	AttrElemental: "elemental", AttrPure: "pure", AttrRecursive: "recursive",
	AttrSignature: "signature", AttrMainSubprogram: "main_subprogram",
	AttrDataBitOffset: "data_bit_offset", AttrConstExpr: "const_expr",
	AttrEnumClass: "enum_class", AttrLinkageName: "linkage_name",
	AttrStrOffsetsBase: "str_offsets_base", AttrAddrBase: "addr_base",
	AttrRnglistsBase: "rnglists_base", AttrDwoName: "dwo_name",
	AttrReference: "reference", AttrRvalueReference: "rvalue_reference",
	AttrMacros: "macros", AttrCallAllCalls: "call_all_calls",
	AttrCallAllSourceCalls: "call_all_source_calls", AttrCallAllTailCalls: "call_all_tail_calls",
	AttrCallReturnPC: "call_return_pc", AttrCallValue: "call_value",
	AttrCallOrigin: "call_origin", AttrCallParameter: "call_parameter",
	AttrCallPC: "call_pc", AttrCallTailCall: "call_tail_call",
	AttrCallTarget: "call_target", AttrCallTargetClobbered: "call_target_clobbered",
	AttrCallDataLocation: "call_data_location", AttrCallDataValue: "call_data_value",
	AttrNoreturn: "noreturn", AttrAlignment: "alignment",
	AttrExportSymbols: "export_symbols", AttrDeleted: "deleted",
	AttrDefaulted: "defaulted", AttrLoclistsBase: "loclists_base",
}

// String renders DW_AT_<name> for known attributes; unknown numbers
// render with their hex value preserved.
func (a Attr) String() string {
	if name, ok := attrNames[a]; ok {
		return "DW_AT_" + name
	}
	return fmt.Sprintf("DW_AT_unknown(0x%x)", uint64(a))
}

// Form is a DW_FORM_* value.
type Form uint64

const (
	FormAddr        Form = 0x01
	FormBlock2      Form = 0x03
	FormBlock4      Form = 0x04
	FormData2       Form = 0x05
	FormData4       Form = 0x06
	FormData8       Form = 0x07
	FormString      Form = 0x08
	FormBlock       Form = 0x09
	FormBlock1      Form = 0x0a
	FormData1       Form = 0x0b
	FormFlag        Form = 0x0c
	FormSdata       Form = 0x0d
	FormStrp        Form = 0x0e
	FormUdata       Form = 0x0f
	FormRefAddr     Form = 0x10
	FormRef1        Form = 0x11
	FormRef2        Form = 0x12
	FormRef4        Form = 0x13
	FormRef8        Form = 0x14
	FormRefUdata    Form = 0x15
	FormIndirect    Form = 0x16
	FormSecOffset   Form = 0x17
	FormExprloc     Form = 0x18
	FormFlagPresent Form = 0x19
	// v5 forms.
	FormStrx          Form = 0x1a
	FormAddrx         Form = 0x1b
	FormRefSup4       Form = 0x1c
	FormStrpSup       Form = 0x1d
	FormData16        Form = 0x1e
	FormLineStrp      Form = 0x1f
	FormRefSig8       Form = 0x20
	FormImplicitConst Form = 0x21
	FormLoclistx      Form = 0x22
	FormRnglistx      Form = 0x23
	FormRefSup8       Form = 0x24
	FormStrx1         Form = 0x25
	FormStrx2         Form = 0x26
	FormStrx3         Form = 0x27
	FormStrx4         Form = 0x28
	FormAddrx1        Form = 0x29
	FormAddrx2        Form = 0x2a
	FormAddrx3        Form = 0x2b
	FormAddrx4        Form = 0x2c
)

var formNames = map[Form]string{
	FormAddr: "addr", FormBlock2: "block2", FormBlock4: "block4", FormData2: "data2",
	FormData4: "data4", FormData8: "data8", FormString: "string", FormBlock: "block",
	FormBlock1: "block1", FormData1: "data1", FormFlag: "flag", FormSdata: "sdata",
	FormStrp: "strp", FormUdata: "udata", FormRefAddr: "ref_addr", FormRef1: "ref1",
	FormRef2: "ref2", FormRef4: "ref4", FormRef8: "ref8", FormRefUdata: "ref_udata",
	FormIndirect: "indirect", FormSecOffset: "sec_offset", FormExprloc: "exprloc",
	FormFlagPresent: "flag_present", FormStrx: "strx", FormAddrx: "addrx",
	FormRefSup4: "ref_sup4", FormStrpSup: "strp_sup", FormData16: "data16",
	FormLineStrp: "line_strp", FormRefSig8: "ref_sig8", FormImplicitConst: "implicit_const",
	FormLoclistx: "loclistx", FormRnglistx: "rnglistx", FormRefSup8: "ref_sup8",
	FormStrx1: "strx1", FormStrx2: "strx2", FormStrx3: "strx3", FormStrx4: "strx4",
	FormAddrx1: "addrx1", FormAddrx2: "addrx2", FormAddrx3: "addrx3", FormAddrx4: "addrx4",
}

func (f Form) String() string {
	if name, ok := formNames[f]; ok {
		return "DW_FORM_" + name
	}
	return fmt.Sprintf("DW_FORM_unknown(0x%x)", uint64(f))
}

// Op is a DW_OP_* expression opcode.
type Op uint8

const (
	OpAddr              Op = 0x03
	OpDeref             Op = 0x06
	OpConst1u           Op = 0x08
	OpConst1s           Op = 0x09
	OpConst2u           Op = 0x0a
	OpConst2s           Op = 0x0b
	OpConst4u           Op = 0x0c
	OpConst4s           Op = 0x0d
	OpConst8u           Op = 0x0e
	OpConst8s           Op = 0x0f
	OpConstu            Op = 0x10
	OpConsts            Op = 0x11
	OpDup               Op = 0x12
	OpDrop              Op = 0x13
	OpOver              Op = 0x14
	OpPick              Op = 0x15
	OpSwap              Op = 0x16
	OpRot               Op = 0x17
	OpXderef            Op = 0x18
	OpAbs               Op = 0x19
	OpAnd               Op = 0x1a
	OpDiv               Op = 0x1b
	OpMinus             Op = 0x1c
	OpMod               Op = 0x1d
	OpMul               Op = 0x1e
	OpNeg               Op = 0x1f
	OpNot               Op = 0x20
	OpOr                Op = 0x21
	OpPlus              Op = 0x22
	OpPlusUconst        Op = 0x23
	OpShl               Op = 0x24
	OpShr               Op = 0x25
	OpShra              Op = 0x26
	OpXor               Op = 0x27
	OpBra               Op = 0x28
	OpEq                Op = 0x29
	OpGe                Op = 0x2a
	OpGt                Op = 0x2b
	OpLe                Op = 0x2c
	OpLt                Op = 0x2d
	OpNe                Op = 0x2e
	OpSkip              Op = 0x2f
	OpLit0              Op = 0x30 // OpLitN = OpLit0 + N for N in [0, 31]
	OpReg0              Op = 0x50 // OpRegN = OpReg0 + N for N in [0, 31]
	OpBreg0             Op = 0x70 // OpBregN = OpBreg0 + N for N in [0, 31]
	OpRegx              Op = 0x90
	OpFbreg             Op = 0x91
	OpBregx             Op = 0x92
	OpPiece             Op = 0x93
	OpDerefSize         Op = 0x94
	OpXderefSize        Op = 0x95
	OpNop               Op = 0x96
	OpPushObjectAddress Op = 0x97
	OpCall2             Op = 0x98
	OpCall4             Op = 0x99
	OpCallRef           Op = 0x9a
	OpFormTLSAddress    Op = 0x9b
	OpCallFrameCFA      Op = 0x9c
	OpBitPiece          Op = 0x9d
	OpImplicitValue     Op = 0x9e
	OpStackValue        Op = 0x9f
	// v5 / GNU extensions.
	OpImplicitPointer   Op = 0xa0
	OpAddrx             Op = 0xa1
	OpConstx            Op = 0xa2
	OpEntryValue        Op = 0xa3
	OpConstTypeV5       Op = 0xa4
	OpRegvalType        Op = 0xa5
	OpDerefType         Op = 0xa6
	OpXderefType        Op = 0xa7
	OpConvert           Op = 0xa8
	OpReinterpret       Op = 0xa9
	OpGNUPushTLSAddress Op = 0xe0
	OpGNUEntryValue     Op = 0xf3
)

// LanguageNames maps DW_LANG_* DW_AT_language values to their names.
var LanguageNames = map[uint64]string{
	0x0001: "C89", 0x0002: "C", 0x0003: "Ada83", 0x0004: "C_plus_plus",
	0x0005: "Cobol74", 0x0006: "Cobol85", 0x0007: "Fortran77", 0x0008: "Fortran90",
	0x0009: "Pascal83", 0x000a: "Modula2", 0x000b: "Java", 0x000c: "C99",
	0x000d: "Ada95", 0x000e: "Fortran95", 0x000f: "PLI", 0x0010: "ObjC",
	0x0011: "ObjC_plus_plus", 0x0012: "UPC", 0x0013: "D", 0x0014: "Python",
	0x0015: "OpenCL", 0x0016: "Go", 0x0017: "Modula3", 0x0018: "Haskell",
	0x0019: "C_plus_plus_03", 0x001a: "C_plus_plus_11", 0x001b: "OCaml",
	0x001c: "Rust", 0x001d: "C11", 0x001e: "Swift", 0x001f: "Julia",
	0x0021: "C_plus_plus_14", 0x0022: "Fortran03", 0x0023: "Fortran08",
}

// EncodingNames maps DW_ATE_* base-type encoding values to their names.
var EncodingNames = map[uint64]string{
	0x01: "address", 0x02: "boolean", 0x03: "complex_float", 0x04: "float",
	0x05: "signed", 0x06: "signed_char", 0x07: "unsigned", 0x08: "unsigned_char",
	0x09: "imaginary_float", 0x0a: "packed_decimal", 0x0b: "numeric_string",
	0x0c: "edited", 0x0d: "signed_fixed", 0x0e: "unsigned_fixed", 0x0f: "decimal_float",
	0x10: "UTF", 0x11: "UCS", 0x12: "ASCII",
}

// DecimalSignNames is DW_DS_*.
var DecimalSignNames = map[uint64]string{
	0x01: "unsigned", 0x02: "leading_overpunch", 0x03: "trailing_overpunch",
	0x04: "leading_separate", 0x05: "trailing_separate",
}

// EndianityNames is DW_END_*.
var EndianityNames = map[uint64]string{
	0x00: "default", 0x01: "big", 0x02: "little",
}

// AccessibilityNames is DW_ACCESS_*.
var AccessibilityNames = map[uint64]string{
	0x01: "public", 0x02: "protected", 0x03: "private",
}

// VisibilityNames is DW_VIS_*.
var VisibilityNames = map[uint64]string{
	0x01: "local", 0x02: "exported", 0x03: "qualified",
}

// VirtualityNames is DW_VIRTUALITY_*.
var VirtualityNames = map[uint64]string{
	0x00: "none", 0x01: "virtual", 0x02: "pure_virtual",
}

// IdentifierCaseNames is DW_ID_*.
var IdentifierCaseNames = map[uint64]string{
	0x00: "case_sensitive", 0x01: "up_case", 0x02: "down_case", 0x03: "case_insensitive",
}

// CallingConventionNames is DW_CC_*.
var CallingConventionNames = map[uint64]string{
	0x01: "normal", 0x02: "program", 0x03: "nocall",
}

// InlineNames is DW_INL_*.
var InlineNames = map[uint64]string{
	0x00: "not_inlined", 0x01: "inlined", 0x02: "declared_not_inlined", 0x03: "declared_inlined",
}

// OrderingNames is DW_ORD_*.
var OrderingNames = map[uint64]string{
	0x00: "row_major", 0x01: "col_major",
}

// DiscriminantNames is DW_DSC_*.
var DiscriminantNames = map[uint64]string{
	0x00: "label", 0x01: "range",
}

// DefaultedNames is DW_DEFAULTED_* (v5).
var DefaultedNames = map[uint64]string{
	0x00: "no", 0x01: "in_class", 0x02: "out_of_class",
}
