package elf

import "github.com/Manu343726/objfile/pkg/objerr"

// ReadULEB decodes an unsigned LEB128 integer starting at pos. It
// terminates when the high bit of a byte is 0, accumulating 7 bits per
// byte. Returns the value and the number of bytes consumed.
//
//	[0xE5, 0x8E, 0x26] -> 624485, consumed 3
//	[0x00]             -> 0, consumed 1
//	[0x7F]             -> 127, consumed 1
//	[0x80, 0x01]       -> 128, consumed 2
func (r *Reader) ReadULEB(pos int64) (uint64, int, error) {
	var result uint64
	var shift uint
	var n int

	for {
		b, err := r.ReadU8(pos + int64(n))
		if err != nil {
			return 0, 0, err
		}
		n++

		if shift >= 64 {
			return 0, 0, objerr.ErrLebOverflow
		}

		result |= uint64(b&0x7f) << shift

		if b&0x80 == 0 {
			return result, n, nil
		}
		shift += 7
	}
}

// ReadSLEB decodes a signed LEB128 integer starting at pos. The result
// is sign-extended when the last byte's bit 6 is set and fewer than 64
// bits have been accumulated.
//
//	[0xC0, 0xBB, 0x78] -> -123456, consumed 3
//	[0x7E]             -> -2, consumed 1
//	[0xFF, 0x00]       -> 127, consumed 2
func (r *Reader) ReadSLEB(pos int64) (int64, int, error) {
	var result int64
	var shift uint
	var n int
	var b byte

	for {
		var err error
		b, err = r.ReadU8(pos + int64(n))
		if err != nil {
			return 0, 0, err
		}
		n++

		if shift >= 64 {
			return 0, 0, objerr.ErrLebOverflow
		}

		result |= int64(b&0x7f) << shift
		shift += 7

		if b&0x80 == 0 {
			break
		}
	}

	if shift < 64 && b&0x40 != 0 {
		result |= -1 << shift
	}

	return result, n, nil
}
