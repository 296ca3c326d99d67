package dwarf

import (
	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/objerr"
)

// AttrSpec is one (attribute, form) pair from an abbreviation
// declaration. ImplicitConst holds the extra SLEB value that follows a
// DW_FORM_implicit_const pair.
type AttrSpec struct {
	Attr          Attr
	Form          Form
	ImplicitConst int64
}

// AbbrevDecl is one decoded abbreviation table entry: a code, the tag and
// children flag it expands to, and its attribute specification list.
type AbbrevDecl struct {
	Code        uint64
	Tag         Tag
	HasChildren bool
	Attrs       []AttrSpec
}

type abbrevKey struct {
	offset int64
	code   uint64
}

// AbbrevCache lazily parses .debug_abbrev, caching declarations by
// (table offset, code) so repeated DIE decoding within the same CU never
// re-parses bytes already seen.
type AbbrevCache struct {
	r       *elf.Reader
	entries map[abbrevKey]*AbbrevDecl
	cursor  map[int64]int64 // table offset -> next unparsed byte position
}

// NewAbbrevCache builds a cache over a .debug_abbrev section image. The
// byte order is the owning ELF file's; abbreviation tables are all-LEB
// so it only matters for error positions, but keeping it uniform with
// the other section readers costs nothing.
func NewAbbrevCache(debugAbbrev []byte, order elf.Endianness) *AbbrevCache {
	return &AbbrevCache{
		r:       elf.NewReader(debugAbbrev, order),
		entries: make(map[abbrevKey]*AbbrevDecl),
		cursor:  make(map[int64]int64),
	}
}

// Lookup returns the abbreviation declaration for code within the table
// starting at offset, parsing further entries on demand until code is
// found or the table's terminating (0 code) entry is reached.
func (c *AbbrevCache) Lookup(offset int64, code uint64) (*AbbrevDecl, error) {
	key := abbrevKey{offset, code}
	if decl, ok := c.entries[key]; ok {
		return decl, nil
	}

	pos, ok := c.cursor[offset]
	if !ok {
		pos = offset
	}

	for {
		declCode, n, err := c.r.ReadULEB(pos)
		if err != nil {
			return nil, objerr.Wrap(err, "abbrev code at offset %d", pos)
		}
		pos += int64(n)

		if declCode == 0 {
			c.cursor[offset] = pos
			return nil, objerr.Wrap(objerr.ErrUnknownAbbrev, "code %d not present in table at offset %d", code, offset)
		}

		tagNum, n, err := c.r.ReadULEB(pos)
		if err != nil {
			return nil, objerr.Wrap(err, "abbrev tag for code %d", declCode)
		}
		pos += int64(n)

		hasChildren, err := c.r.ReadU8(pos)
		if err != nil {
			return nil, objerr.Wrap(err, "abbrev children flag for code %d", declCode)
		}
		pos++

		decl := &AbbrevDecl{Code: declCode, Tag: Tag(tagNum), HasChildren: hasChildren != 0}

		for {
			attrNum, n, err := c.r.ReadULEB(pos)
			if err != nil {
				return nil, objerr.Wrap(err, "abbrev attribute for code %d", declCode)
			}
			pos += int64(n)

			formNum, n, err := c.r.ReadULEB(pos)
			if err != nil {
				return nil, objerr.Wrap(err, "abbrev form for code %d", declCode)
			}
			pos += int64(n)

			if attrNum == 0 && formNum == 0 {
				break
			}

			spec := AttrSpec{Attr: Attr(attrNum), Form: Form(formNum)}
			if Form(formNum) == FormImplicitConst {
				v, n, err := c.r.ReadSLEB(pos)
				if err != nil {
					return nil, objerr.Wrap(err, "implicit_const value for code %d", declCode)
				}
				pos += int64(n)
				spec.ImplicitConst = v
			}
			decl.Attrs = append(decl.Attrs, spec)
		}

		declKey := abbrevKey{offset, declCode}
		c.entries[declKey] = decl

		if declKey == key {
			c.cursor[offset] = pos
			return decl, nil
		}
	}
}
