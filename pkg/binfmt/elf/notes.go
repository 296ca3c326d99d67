package elf

import (
	"strings"

	"github.com/Manu343726/objfile/pkg/objerr"
)

// Note is a decoded SHT_NOTE record.
type Note struct {
	SectionName string
	Type        uint32
	Producer    string
	Descriptor  []byte
}

// align4 rounds n up to the next multiple of 4.
func align4(n int64) int64 {
	return (n + 3) &^ 3
}

// parseNotes decodes every (namesz, descsz, type, name, desc) record in
// a SHT_NOTE section's image. name is null-terminated, padded to 4
// bytes; desc is raw bytes, also padded to 4.
func parseNotes(sectionName string, image []byte, order *Reader) ([]Note, error) {
	r := &Reader{data: image, order: order.order}

	var notes []Note
	var pos int64

	for pos < int64(len(image)) {
		namesz, err := r.ReadU32(pos)
		if err != nil {
			return notes, objerr.Wrap(err, "note header namesz in %q", sectionName)
		}
		descsz, err := r.ReadU32(pos + 4)
		if err != nil {
			return notes, objerr.Wrap(err, "note header descsz in %q", sectionName)
		}
		typ, err := r.ReadU32(pos + 8)
		if err != nil {
			return notes, objerr.Wrap(err, "note header type in %q", sectionName)
		}
		pos += 12

		name, _, err := r.ReadCStringASCII(pos)
		if err != nil {
			return notes, objerr.Wrap(err, "note name in %q", sectionName)
		}
		pos = align4(pos + int64(namesz))

		desc, err := r.ReadBlock(pos, int(descsz))
		if err != nil {
			return notes, objerr.Wrap(err, "note descriptor in %q", sectionName)
		}
		pos = align4(pos + int64(descsz))

		notes = append(notes, Note{
			SectionName: sectionName,
			Type:        typ,
			Producer:    name,
			Descriptor:  append([]byte(nil), desc...),
		})
	}

	return notes, nil
}

// ParseComment splits a .comment section's image on NUL bytes and joins
// the non-empty parts with newlines. An empty section yields an empty
// string, never a missing value.
func ParseComment(image []byte) string {
	parts := strings.Split(string(image), "\x00")

	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	return strings.Join(nonEmpty, "\n")
}
