// Package cache implements the persistent, hash-gated store backing
// repeat parses: a conventional sibling `.prgdb` SQLite file holding the
// decoded ELF model (and, once the DWARF pipeline has run, the DIE
// tree), keyed by a SHA-512 hash of the input bytes.
package cache

import (
	"database/sql"

	"github.com/Manu343726/objfile/internal/hashkey"
	"github.com/Manu343726/objfile/pkg/objerr"
)

// schemaDDL creates every table this cache ever writes. Run once against
// a fresh (or truncated) database on rebuild.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS meta (
	id             INTEGER PRIMARY KEY CHECK (id = 0),
	hash           TEXT NOT NULL,
	schema_version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sections (
	idx        INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	type       INTEGER NOT NULL,
	flags      INTEGER NOT NULL,
	addr       INTEGER NOT NULL,
	offset     INTEGER NOT NULL,
	size       INTEGER NOT NULL,
	link       INTEGER NOT NULL,
	info       INTEGER NOT NULL,
	addralign  INTEGER NOT NULL,
	entsize    INTEGER NOT NULL,
	has_image  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS segments (
	idx      INTEGER PRIMARY KEY,
	type     INTEGER NOT NULL,
	flags    INTEGER NOT NULL,
	offset   INTEGER NOT NULL,
	vaddr    INTEGER NOT NULL,
	paddr    INTEGER NOT NULL,
	filesz   INTEGER NOT NULL,
	memsz    INTEGER NOT NULL,
	align    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS symbols (
	idx           INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	value         INTEGER NOT NULL,
	size          INTEGER NOT NULL,
	binding       INTEGER NOT NULL,
	type          INTEGER NOT NULL,
	visibility    INTEGER NOT NULL,
	section_name  TEXT NOT NULL,
	section_index INTEGER NOT NULL,
	access        INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	idx          INTEGER PRIMARY KEY AUTOINCREMENT,
	section_name TEXT NOT NULL,
	type         INTEGER NOT NULL,
	producer     TEXT NOT NULL,
	descriptor   BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS comment (
	text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS dies (
	offset       INTEGER PRIMARY KEY,
	cu_offset    INTEGER NOT NULL,
	tag          INTEGER NOT NULL,
	parent       INTEGER NOT NULL,
	has_children INTEGER NOT NULL,
	attributes   BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS aranges (
	offset       INTEGER PRIMARY KEY,
	unit_length  INTEGER NOT NULL,
	version      INTEGER NOT NULL,
	info_offset  INTEGER NOT NULL,
	address_size INTEGER NOT NULL,
	segment_size INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS pubnames (
	offset      INTEGER PRIMARY KEY,
	unit_length INTEGER NOT NULL,
	version     INTEGER NOT NULL,
	info_offset INTEGER NOT NULL,
	info_length INTEGER NOT NULL
);
`

// expectedTables lists the tables schemaDDL creates. A stored database
// missing any of these (e.g. an older layout) is a schema mismatch, not
// merely a missing row, and triggers a rebuild just like a hash mismatch.
var expectedTables = []string{
	"meta", "sections", "segments", "symbols", "notes", "comment", "dies",
	"aranges", "pubnames",
}

// validateSchema checks that every table schemaDDL declares actually
// exists in db. It does not check column-level shape beyond table
// presence: SQLite's dynamic typing makes a full column audit
// unnecessary for this cache's purposes, and the schema_version row is
// the authoritative signal for finer-grained layout changes.
func validateSchema(db *sql.DB) error {
	for _, table := range expectedTables {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err == sql.ErrNoRows {
			return objerr.Wrap(objerr.ErrCacheSchemaMismatch, "missing table %q", table)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// readMeta returns the stored (hash, schema_version), or ("", 0, false)
// if the meta row does not exist yet (a brand-new database).
func readMeta(db *sql.DB) (string, int, bool, error) {
	var hash string
	var version int
	err := db.QueryRow(`SELECT hash, schema_version FROM meta WHERE id = 0`).Scan(&hash, &version)
	if err == sql.ErrNoRows {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, err
	}
	return hash, version, true, nil
}

// writeMeta upserts the single meta row.
func writeMeta(tx *sql.Tx, hash string) error {
	_, err := tx.Exec(
		`INSERT INTO meta (id, hash, schema_version) VALUES (0, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET hash = excluded.hash, schema_version = excluded.schema_version`,
		hash, hashkey.SchemaVersion,
	)
	return err
}
