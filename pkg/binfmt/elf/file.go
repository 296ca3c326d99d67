package elf

import "github.com/Manu343726/objfile/pkg/objerr"

// File is the fully decoded object file: header plus sections, segments,
// symbols and notes, and the section-to-segment mapping computed from
// them.
type File struct {
	Header   *Header
	Sections []Section
	Segments []Segment
	Symbols  []Symbol
	Notes    []Note

	// Comment holds the decoded .comment section, "" when absent.
	Comment string

	// SectionToSegment is SectionToSegmentMapping under the non-strict
	// predicate, computed eagerly since most callers want it.
	SectionToSegment map[int][]int

	// SkippedSymbols records symbol-table entries that failed to decode
	// and were skipped rather than aborting the whole parse.
	SkippedSymbols []SkippedSymbol
}

// SkippedSymbol names one symbol-table entry that could not be decoded.
type SkippedSymbol struct {
	Section int
	Index   int
	Err     error
}

// ParseFile decodes a complete ELF file from raw bytes: the header, then
// every section and segment, symbols from every SHT_SYMTAB/SHT_DYNSYM
// section, notes from every SHT_NOTE section, and .comment if present.
func ParseFile(data []byte) (*File, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, objerr.Wrap(err, "header")
	}

	r := NewReader(data, h.Endianness)

	sections, err := parseSections(r, h)
	if err != nil {
		return nil, objerr.Wrap(err, "sections")
	}

	segments, err := parseSegments(r, h)
	if err != nil {
		return nil, objerr.Wrap(err, "segments")
	}

	f := &File{
		Header:   h,
		Sections: sections,
		Segments: segments,
	}

	for i := range sections {
		if sections[i].Type != SHTSymTab && sections[i].Type != SHTDynSym {
			continue
		}
		syms, err := parseSymbols(r, h, sections, i, func(index int, err error) {
			f.SkippedSymbols = append(f.SkippedSymbols, SkippedSymbol{Section: i, Index: index, Err: err})
		})
		if err != nil {
			return nil, objerr.Wrap(err, "symbols in section %d (%q)", i, sections[i].Name)
		}
		f.Symbols = append(f.Symbols, syms...)
	}

	for i := range sections {
		if sections[i].Type != SHTNote || sections[i].Image == nil {
			continue
		}
		notes, err := parseNotes(sections[i].Name, sections[i].Image, r)
		if err != nil {
			return nil, objerr.Wrap(err, "notes in section %d (%q)", i, sections[i].Name)
		}
		f.Notes = append(f.Notes, notes...)
	}

	if sec := f.sectionByName(".comment"); sec != nil {
		f.Comment = ParseComment(sec.Image)
	}

	f.SectionToSegment = SectionToSegmentMapping(sections, segments, false)

	return f, nil
}

func (f *File) sectionByName(name string) *Section {
	for i := range f.Sections {
		if f.Sections[i].Name == name {
			return &f.Sections[i]
		}
	}
	return nil
}

// SectionByName returns the named section, or nil if none matches.
func (f *File) SectionByName(name string) *Section {
	return f.sectionByName(name)
}
