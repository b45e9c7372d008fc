// ABOUTME: SQLite schema for the persistent vector index
// ABOUTME: One records table keyed by (collection, id), vectors as BLOBs
package sqlite

// Schema contains all SQL statements for database initialization.
// seq preserves insertion order for deterministic tie-breaking in
// similarity search.
const Schema = `
CREATE TABLE IF NOT EXISTS records (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    text TEXT NOT NULL,
    vector BLOB NOT NULL,
    metadata TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(collection, id)
);

CREATE INDEX IF NOT EXISTS idx_records_collection ON records(collection);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
