package elf

import (
	"encoding/binary"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/Manu343726/objfile/pkg/objerr"
)

// Reader is the endian-aware primitive reader every decoder in this
// module is built on. It views a fixed byte slice; endianness is
// selected once per file (from EI_DATA) and never changes mid-stream.
type Reader struct {
	data  []byte
	order binary.ByteOrder
}

// NewReader builds a Reader over data using the given endianness.
func NewReader(data []byte, endianness Endianness) *Reader {
	order := binary.ByteOrder(binary.LittleEndian)
	if endianness == BigEndian {
		order = binary.BigEndian
	}
	return &Reader{data: data, order: order}
}

// Len returns the number of bytes backing the reader.
func (r *Reader) Len() int64 {
	return int64(len(r.data))
}

// Bytes returns the full backing slice. Callers must not mutate it.
func (r *Reader) Bytes() []byte {
	return r.data
}

func (r *Reader) require(pos int64, n int) error {
	if pos < 0 || pos+int64(n) > int64(len(r.data)) {
		return objerr.NewTruncated(pos, n, int64(len(r.data))-pos)
	}
	return nil
}

// ReadU8 reads an unsigned byte at pos.
func (r *Reader) ReadU8(pos int64) (uint8, error) {
	if err := r.require(pos, 1); err != nil {
		return 0, err
	}
	return r.data[pos], nil
}

// ReadI8 reads a signed byte at pos.
func (r *Reader) ReadI8(pos int64) (int8, error) {
	v, err := r.ReadU8(pos)
	return int8(v), err
}

// ReadU16 reads an unsigned 16-bit value at pos.
func (r *Reader) ReadU16(pos int64) (uint16, error) {
	if err := r.require(pos, 2); err != nil {
		return 0, err
	}
	return r.order.Uint16(r.data[pos:]), nil
}

// ReadI16 reads a signed 16-bit value at pos.
func (r *Reader) ReadI16(pos int64) (int16, error) {
	v, err := r.ReadU16(pos)
	return int16(v), err
}

// ReadU32 reads an unsigned 32-bit value at pos.
func (r *Reader) ReadU32(pos int64) (uint32, error) {
	if err := r.require(pos, 4); err != nil {
		return 0, err
	}
	return r.order.Uint32(r.data[pos:]), nil
}

// ReadI32 reads a signed 32-bit value at pos.
func (r *Reader) ReadI32(pos int64) (int32, error) {
	v, err := r.ReadU32(pos)
	return int32(v), err
}

// ReadU64 reads an unsigned 64-bit value at pos.
func (r *Reader) ReadU64(pos int64) (uint64, error) {
	if err := r.require(pos, 8); err != nil {
		return 0, err
	}
	return r.order.Uint64(r.data[pos:]), nil
}

// ReadI64 reads a signed 64-bit value at pos.
func (r *Reader) ReadI64(pos int64) (int64, error) {
	v, err := r.ReadU64(pos)
	return int64(v), err
}

// ReadAddr reads an address-sized integer: 4 bytes under ELF32/a CU with
// 4-byte addresses, 8 bytes otherwise. Used for e_entry-like fields and
// for DW_FORM_addr, whose width follows the current CU.
func (r *Reader) ReadAddr(pos int64, addrSize int) (uint64, error) {
	switch addrSize {
	case 4:
		v, err := r.ReadU32(pos)
		return uint64(v), err
	case 8:
		return r.ReadU64(pos)
	default:
		return 0, objerr.Wrap(objerr.ErrUnsupported, "unsupported address size %d", addrSize)
	}
}

// ReadBlock returns a length-byte slice at pos. The slice aliases the
// reader's backing array; callers that persist it must copy.
func (r *Reader) ReadBlock(pos int64, length int) ([]byte, error) {
	if length < 0 {
		return nil, objerr.Wrap(objerr.ErrTruncated, "negative block length %d", length)
	}
	if err := r.require(pos, length); err != nil {
		return nil, err
	}
	return r.data[pos : pos+int64(length)], nil
}

// ReadCStringASCII reads until a NUL byte and returns the decoded string
// plus the number of bytes consumed, including the terminating NUL.
func (r *Reader) ReadCStringASCII(pos int64) (string, int, error) {
	end := pos
	for {
		if end >= int64(len(r.data)) {
			return "", 0, objerr.NewTruncated(pos, 1, int64(len(r.data))-pos)
		}
		if r.data[end] == 0 {
			break
		}
		end++
	}
	return string(r.data[pos:end]), int(end-pos) + 1, nil
}

// ReadCStringUTF8 reads until a NUL byte and validates the bytes as
// UTF-8. Producer strings (note names, .comment text) sometimes
// carry raw Latin-1 bytes from older toolchains; rather than silently
// mangling those, a failed UTF-8 validation is retried through
// charmap.ISO8859_1, which can decode every byte value and so never
// itself fails. Encoding is raised only when even that decode produces
// invalid UTF-8 (a case charmap.ISO8859_1 does not hit in practice,
// since its target is always valid UTF-8, but kept as a structural
// safeguard against a future decoder swap that might not guarantee it).
func (r *Reader) ReadCStringUTF8(pos int64) (string, int, error) {
	s, n, err := r.ReadCStringASCII(pos)
	if err != nil {
		return "", 0, err
	}
	if utf8.ValidString(s) {
		return s, n, nil
	}

	decoded, decErr := charmap.ISO8859_1.NewDecoder().String(s)
	if decErr != nil || !utf8.ValidString(decoded) {
		return "", 0, objerr.Wrap(objerr.ErrEncoding, "invalid UTF-8 at offset %d", pos)
	}
	return decoded, n, nil
}

// ReadStrP reads a 4-byte (DWARF32) offset at pos into sectionBytes and returns the null-terminated string found there.
// Used for DW_FORM_strp / DW_FORM_line_strp.
func (r *Reader) ReadStrP(pos int64, sectionBytes []byte) (string, error) {
	off, err := r.ReadU32(pos)
	if err != nil {
		return "", err
	}
	sub := &Reader{data: sectionBytes, order: r.order}
	s, _, err := sub.ReadCStringUTF8(int64(off))
	return s, err
}
