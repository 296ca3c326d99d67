package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/Manu343726/objfile/internal/hashkey"
	"github.com/Manu343726/objfile/pkg/binfmt/dwarf"
	"github.com/Manu343726/objfile/pkg/binfmt/elf"
	"github.com/Manu343726/objfile/pkg/objerr"
)

// SiblingPath returns the conventional cache path for an input file:
// the same path with a `.prgdb` extension appended.
func SiblingPath(inputPath string) string {
	return inputPath + ".prgdb"
}

// Cache is a hash-gated, SQLite-backed store of one parsed ELF model.
// One Cache wraps one open database connection; like the in-memory
// memoisation caches, it is instance-scoped and never shared across
// parsers.
type Cache struct {
	db    *sql.DB
	path  string
	hash  string
	fresh bool // true if this Open() rebuilt the store
}

// Open hashes the input, compares against any stored meta row, rebuilds
// on mismatch (hash, schema version, or table layout), and otherwise
// leaves the existing store in place for lazy reads.
func Open(path string, inputBytes []byte) (*Cache, error) {
	hash := hashkey.OfBytes(inputBytes)

	exists := true
	if _, err := os.Stat(path); os.IsNotExist(err) {
		exists = false
	}

	if exists {
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, err
		}

		if err := validateSchema(db); err != nil {
			db.Close()
			return rebuild(path, hash)
		}

		storedHash, storedVersion, ok, err := readMeta(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		if !ok || storedVersion != hashkey.SchemaVersion || storedHash != hash {
			db.Close()
			return rebuild(path, hash)
		}

		return &Cache{db: db, path: path, hash: hash, fresh: false}, nil
	}

	return rebuild(path, hash)
}

// rebuild deletes any stale store at path and creates an empty one ready
// for Populate.
func rebuild(path, hash string) (*Cache, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db, path: path, hash: hash, fresh: true}, nil
}

// Fresh reports whether this Open() rebuilt the store (true) or reused
// an existing, matching one (false).
func (c *Cache) Fresh() bool { return c.fresh }

// Close releases the underlying database connection.
func (c *Cache) Close() error { return c.db.Close() }

// Populate writes a freshly parsed ELF model into the cache in one
// transaction. Populating a non-fresh cache is a no-op: the reused
// store already holds the same model.
func (c *Cache) Populate(file *elf.File) error {
	if !c.fresh {
		return nil
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := writeMeta(tx, c.hash); err != nil {
		return err
	}

	for _, s := range file.Sections {
		hasImage := 0
		if s.HasContent() {
			hasImage = 1
		}
		if _, err := tx.Exec(
			`INSERT INTO sections (idx, name, type, flags, addr, offset, size, link, info, addralign, entsize, has_image)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.Index, s.Name, uint64(s.Type), uint64(s.Flags), s.Addr, s.Offset, s.Size, s.Link, s.Info, s.AddrAlign, s.EntSize, hasImage,
		); err != nil {
			return objerr.Wrap(err, "writing section %d", s.Index)
		}
	}

	for _, p := range file.Segments {
		if _, err := tx.Exec(
			`INSERT INTO segments (idx, type, flags, offset, vaddr, paddr, filesz, memsz, align)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Index, uint64(p.Type), uint64(p.Flags), p.Offset, p.VAddr, p.PAddr, p.FileSize, p.MemSize, p.Align,
		); err != nil {
			return objerr.Wrap(err, "writing segment %d", p.Index)
		}
	}

	for _, sym := range file.Symbols {
		if _, err := tx.Exec(
			`INSERT INTO symbols (name, value, size, binding, type, visibility, section_name, section_index, access)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sym.Name, sym.Value, sym.Size, uint64(sym.Binding), uint64(sym.Type), uint64(sym.Visibility), sym.SectionName, sym.SectionIndex, uint64(sym.Access),
		); err != nil {
			return objerr.Wrap(err, "writing symbol %q", sym.Name)
		}
	}

	for _, n := range file.Notes {
		if _, err := tx.Exec(
			`INSERT INTO notes (section_name, type, producer, descriptor) VALUES (?, ?, ?, ?)`,
			n.SectionName, n.Type, n.Producer, n.Descriptor,
		); err != nil {
			return objerr.Wrap(err, "writing note in %q", n.SectionName)
		}
	}

	if _, err := tx.Exec(`DELETE FROM comment`); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO comment (text) VALUES (?)`, file.Comment); err != nil {
		return err
	}

	return tx.Commit()
}

// PopulateDIEs writes a decoded DWARF DIE arena into the cache, one row
// per DIE with its flat attribute list, keeping the per-CU structure by
// storing each DIE's owning CU offset alongside it.
func (c *Cache) PopulateDIEs(units []dwarf.CompileUnit) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM dies`); err != nil {
		return err
	}

	for _, cu := range units {
		for _, die := range cu.DIEs {
			attrs, err := json.Marshal(die.Attributes)
			if err != nil {
				return objerr.Wrap(err, "encoding attributes for DIE at offset %d", die.Offset)
			}

			hasChildren := 0
			if die.HasChildren {
				hasChildren = 1
			}

			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO dies (offset, cu_offset, tag, parent, has_children, attributes)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				die.Offset, cu.Offset, uint64(die.Tag), die.Parent, hasChildren, attrs,
			); err != nil {
				return objerr.Wrap(err, "writing DIE at offset %d", die.Offset)
			}
		}
	}

	return tx.Commit()
}

// PopulateDebugHeaders records the header-level rows for the opaque
// debug sections: one row per .debug_aranges set and one per
// .debug_pubnames set. Their bodies stay addressable by offset but are
// never interpreted.
func (c *Cache) PopulateDebugHeaders(aranges []*dwarf.ArangesHeader, pubnames []*dwarf.PubnamesHeader) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM aranges`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM pubnames`); err != nil {
		return err
	}

	for _, h := range aranges {
		if _, err := tx.Exec(
			`INSERT INTO aranges (offset, unit_length, version, info_offset, address_size, segment_size)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			h.Offset, h.UnitLength, h.Version, h.DebugInfoOff, h.AddressSize, h.SegmentSize,
		); err != nil {
			return objerr.Wrap(err, "writing aranges header at offset %d", h.Offset)
		}
	}

	for _, h := range pubnames {
		if _, err := tx.Exec(
			`INSERT INTO pubnames (offset, unit_length, version, info_offset, info_length)
			 VALUES (?, ?, ?, ?, ?)`,
			h.Offset, h.UnitLength, h.Version, h.DebugInfoOffset, h.DebugInfoLength,
		); err != nil {
			return objerr.Wrap(err, "writing pubnames header at offset %d", h.Offset)
		}
	}

	return tx.Commit()
}

// CachedSection mirrors the row layout of the sections table, for
// callers that want to read cache contents without re-parsing.
type CachedSection struct {
	Index                                                         int
	Name                                                          string
	Type, Flags, Addr, Offset, Size, Link, Info, AddrAlign, EntSize uint64
	HasImage                                                      bool
}

// LoadSections reads back the sections table. Section image bytes are
// not stored in the cache; callers re-slice them from the original
// input bytes on demand.
func (c *Cache) LoadSections() ([]CachedSection, error) {
	rows, err := c.db.Query(
		`SELECT idx, name, type, flags, addr, offset, size, link, info, addralign, entsize, has_image
		 FROM sections ORDER BY idx`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CachedSection
	for rows.Next() {
		var s CachedSection
		var hasImage int
		if err := rows.Scan(&s.Index, &s.Name, &s.Type, &s.Flags, &s.Addr, &s.Offset, &s.Size, &s.Link, &s.Info, &s.AddrAlign, &s.EntSize, &hasImage); err != nil {
			return nil, err
		}
		s.HasImage = hasImage != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// LoadComment reads back the single `.comment` text row, or "" if the
// cache was populated from a file with no `.comment` section.
func (c *Cache) LoadComment() (string, error) {
	var text string
	err := c.db.QueryRow(`SELECT text FROM comment LIMIT 1`).Scan(&text)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return text, err
}

// String renders the cache's identity for log lines.
func (c *Cache) String() string {
	return fmt.Sprintf("cache(%s hash=%s fresh=%v)", c.path, c.hash[:16], c.fresh)
}
