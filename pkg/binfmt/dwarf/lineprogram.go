package dwarf

import (
	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/objerr"
)

// FileEntry is one file-name record from a line-number program header.
type FileEntry struct {
	Name    string
	DirIdx  uint64
	ModTime uint64
	Length  uint64
}

// LineProgramHeader is the decoded header of one .debug_line program.
// The opcode stream that follows is exposed as-is: this core never runs
// the line-number state machine.
type LineProgramHeader struct {
	Offset                int64
	UnitLength            uint32
	Version               uint16
	HeaderLength          uint64
	MinInstructionLength  uint8
	MaxOpsPerInstruction  int // 1 when absent (pre-v4)
	DefaultIsStmt         bool
	LineBase              int8
	LineRange             uint8
	OpcodeBase            uint8
	StandardOpcodeLengths []uint8
	IncludeDirectories    []string
	FileNames             []FileEntry

	// ProgramStart/ProgramEnd bound the opaque opcode stream, relative to
	// the bytes passed to ParseLineProgramHeader.
	ProgramStart int64
	ProgramEnd   int64
}

// ParseLineProgramHeader decodes one line-number program header from
// .debug_line starting at offset. order is the owning ELF file's byte
// order. debugStr/debugLineStr back the strp/line_strp content forms a
// v5 file table may use; both may be nil for v2-v4 programs.
func ParseLineProgramHeader(debugLine []byte, order elf.Endianness, offset int64, debugStr, debugLineStr []byte) (*LineProgramHeader, int64, error) {
	r := elf.NewReader(debugLine, order)
	pos := offset

	h := &LineProgramHeader{Offset: offset}

	unitLength, err := r.ReadU32(pos)
	if err != nil {
		return nil, 0, err
	}
	h.UnitLength = unitLength
	pos += 4
	unitEnd := pos + int64(unitLength)

	version, err := r.ReadU16(pos)
	if err != nil {
		return nil, 0, err
	}
	h.Version = version
	pos += 2

	if h.Version >= 5 {
		// v5 adds address_size and segment_selector_size before
		// header_length; neither is interpreted further here, they only
		// need to be skipped to keep the stream aligned.
		pos += 2
	}

	var headerLength uint64
	if h.Version >= 3 {
		v, err := r.ReadU32(pos)
		if err != nil {
			return nil, 0, err
		}
		headerLength = uint64(v)
		pos += 4
	} else {
		v, err := r.ReadU16(pos)
		if err != nil {
			return nil, 0, err
		}
		headerLength = uint64(v)
		pos += 2
	}
	h.HeaderLength = headerLength
	programStart := pos + int64(headerLength)

	minInstrLen, err := r.ReadU8(pos)
	if err != nil {
		return nil, 0, err
	}
	h.MinInstructionLength = minInstrLen
	pos++

	h.MaxOpsPerInstruction = 1
	if h.Version >= 4 {
		maxOps, err := r.ReadU8(pos)
		if err != nil {
			return nil, 0, err
		}
		h.MaxOpsPerInstruction = int(maxOps)
		pos++
	}

	defaultIsStmt, err := r.ReadU8(pos)
	if err != nil {
		return nil, 0, err
	}
	h.DefaultIsStmt = defaultIsStmt != 0
	pos++

	lineBase, err := r.ReadI8(pos)
	if err != nil {
		return nil, 0, err
	}
	h.LineBase = lineBase
	pos++

	lineRange, err := r.ReadU8(pos)
	if err != nil {
		return nil, 0, err
	}
	h.LineRange = lineRange
	pos++

	opcodeBase, err := r.ReadU8(pos)
	if err != nil {
		return nil, 0, err
	}
	h.OpcodeBase = opcodeBase
	pos++

	if opcodeBase > 0 {
		lengths, err := r.ReadBlock(pos, int(opcodeBase)-1)
		if err != nil {
			return nil, 0, err
		}
		h.StandardOpcodeLengths = append([]uint8(nil), lengths...)
		pos += int64(opcodeBase) - 1
	}

	if h.Version >= 5 {
		pos, err = parseLineProgramV5Tables(r, pos, h, debugStr, debugLineStr)
		if err != nil {
			return nil, 0, err
		}
	} else {
		pos, err = parseLineProgramLegacyTables(r, pos, h)
		if err != nil {
			return nil, 0, err
		}
	}

	h.ProgramStart = programStart
	h.ProgramEnd = unitEnd
	return h, unitEnd, nil
}

// parseLineProgramLegacyTables decodes the v2-v4 include_directories and
// file_names tables: sequences of NUL-terminated strings / records, each
// terminated by an empty entry.
func parseLineProgramLegacyTables(r *elf.Reader, pos int64, h *LineProgramHeader) (int64, error) {
	for {
		s, n, err := r.ReadCStringASCII(pos)
		if err != nil {
			return 0, err
		}
		pos += int64(n)
		if s == "" {
			break
		}
		h.IncludeDirectories = append(h.IncludeDirectories, s)
	}

	for {
		name, n, err := r.ReadCStringASCII(pos)
		if err != nil {
			return 0, err
		}
		pos += int64(n)
		if name == "" {
			break
		}

		dirIdx, n, err := r.ReadULEB(pos)
		if err != nil {
			return 0, err
		}
		pos += int64(n)

		modTime, n, err := r.ReadULEB(pos)
		if err != nil {
			return 0, err
		}
		pos += int64(n)

		length, n, err := r.ReadULEB(pos)
		if err != nil {
			return 0, err
		}
		pos += int64(n)

		h.FileNames = append(h.FileNames, FileEntry{Name: name, DirIdx: dirIdx, ModTime: modTime, Length: length})
	}

	return pos, nil
}

// parseLineProgramV5Tables decodes the v5 directory_entry_format-driven
// tables. Only the content forms this library already decodes elsewhere
// (string-like, integer, data16 and block forms) are supported; an unrecognised entry
// format surfaces objerr.ErrUnknownForm rather than guessing layout.
func parseLineProgramV5Tables(r *elf.Reader, pos int64, h *LineProgramHeader, debugStr, debugLineStr []byte) (int64, error) {
	dirNames, next, err := readV5EntryTable(r, pos, debugStr, debugLineStr)
	if err != nil {
		return 0, err
	}
	h.IncludeDirectories = dirNames
	pos = next

	fileEntries, next, err := readV5FileTable(r, pos, debugStr, debugLineStr)
	if err != nil {
		return 0, err
	}
	h.FileNames = fileEntries
	pos = next

	return pos, nil
}

// entryFormatField is one (content-type, form) pair from a v5
// directory_entry_format / file_name_entry_format table.
type entryFormatField struct {
	ContentType uint64
	Form        Form
}

// v5 DW_LNCT_* content type codes for directory/file tables.
const (
	lnctPath           = 0x1
	lnctDirectoryIndex = 0x2
	lnctTimestamp      = 0x3
	lnctSize           = 0x4
	lnctMD5            = 0x5
)

func readEntryFormat(r *elf.Reader, pos int64) ([]entryFormatField, int64, error) {
	count, err := r.ReadU8(pos)
	if err != nil {
		return nil, 0, err
	}
	pos++

	fields := make([]entryFormatField, 0, count)
	for i := 0; i < int(count); i++ {
		contentType, n, err := r.ReadULEB(pos)
		if err != nil {
			return nil, 0, err
		}
		pos += int64(n)

		form, n, err := r.ReadULEB(pos)
		if err != nil {
			return nil, 0, err
		}
		pos += int64(n)

		fields = append(fields, entryFormatField{ContentType: contentType, Form: Form(form)})
	}
	return fields, pos, nil
}

func readV5EntryTable(r *elf.Reader, pos int64, debugStr, debugLineStr []byte) ([]string, int64, error) {
	fields, pos, err := readEntryFormat(r, pos)
	if err != nil {
		return nil, 0, err
	}

	count, n, err := r.ReadULEB(pos)
	if err != nil {
		return nil, 0, err
	}
	pos += int64(n)

	names := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		var name string
		for _, f := range fields {
			val, n, err := decodeLineTableField(r, pos, f.Form, debugStr, debugLineStr)
			if err != nil {
				return nil, 0, err
			}
			pos += n
			if f.ContentType == lnctPath {
				name = val.Str
			}
		}
		names = append(names, name)
	}
	return names, pos, nil
}

func readV5FileTable(r *elf.Reader, pos int64, debugStr, debugLineStr []byte) ([]FileEntry, int64, error) {
	fields, pos, err := readEntryFormat(r, pos)
	if err != nil {
		return nil, 0, err
	}

	count, n, err := r.ReadULEB(pos)
	if err != nil {
		return nil, 0, err
	}
	pos += int64(n)

	entries := make([]FileEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		var entry FileEntry
		for _, f := range fields {
			val, n, err := decodeLineTableField(r, pos, f.Form, debugStr, debugLineStr)
			if err != nil {
				return nil, 0, err
			}
			pos += n

			switch f.ContentType {
			case lnctPath:
				entry.Name = val.Str
			case lnctDirectoryIndex:
				entry.DirIdx = val.Uint
			case lnctTimestamp:
				entry.ModTime = val.Uint
			case lnctSize:
				entry.Length = val.Uint
			case lnctMD5:
				// MD5 digests (DW_FORM_data16) are not part of FileEntry;
				// read and discard to keep the stream aligned.
			}
		}
		entries = append(entries, entry)
	}
	return entries, pos, nil
}

// decodeLineTableField reads one v5 directory/file-table field. Only the
// forms DWARF producers actually emit in these tables are handled:
// string/strp/line_strp, the data forms data1 through data16, udata
// and block.
func decodeLineTableField(r *elf.Reader, pos int64, form Form, debugStr, debugLineStr []byte) (AttrValue, int64, error) {
	switch form {
	case FormString:
		s, n, err := r.ReadCStringUTF8(pos)
		return AttrValue{Str: s}, int64(n), err
	case FormStrp:
		s, err := r.ReadStrP(pos, debugStr)
		return AttrValue{Str: s}, 4, err
	case FormLineStrp:
		s, err := r.ReadStrP(pos, debugLineStr)
		return AttrValue{Str: s}, 4, err
	case FormUdata:
		v, n, err := r.ReadULEB(pos)
		return AttrValue{Uint: v}, int64(n), err
	case FormData1:
		v, err := r.ReadU8(pos)
		return AttrValue{Uint: uint64(v)}, 1, err
	case FormData2:
		v, err := r.ReadU16(pos)
		return AttrValue{Uint: uint64(v)}, 2, err
	case FormData4:
		v, err := r.ReadU32(pos)
		return AttrValue{Uint: uint64(v)}, 4, err
	case FormData8:
		v, err := r.ReadU64(pos)
		return AttrValue{Uint: v}, 8, err
	case FormData16:
		b, err := r.ReadBlock(pos, 16)
		return AttrValue{Block: b}, 16, err
	case FormBlock:
		length, n, err := r.ReadULEB(pos)
		if err != nil {
			return AttrValue{}, 0, err
		}
		b, err := r.ReadBlock(pos+int64(n), int(length))
		return AttrValue{Block: b}, int64(n) + int64(length), err
	default:
		return AttrValue{}, 0, objerr.Wrap(objerr.ErrUnknownForm, "line table form 0x%x", uint64(form))
	}
}
