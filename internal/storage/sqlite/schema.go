// ABOUTME: SQLite database schema for the chambers ledger
// ABOUTME: Creates the five insert-oriented tables and their indexes
package sqlite

// Schema contains all SQL statements for database initialization.
// Tables are only ever extended with new columns; nothing cascades because
// accounts and chambers are never deleted.
const Schema = `
-- Account registry
CREATE TABLE IF NOT EXISTS accounts (
    key TEXT PRIMARY KEY,
    display_name TEXT NOT NULL DEFAULT '',
    secret_hash TEXT NOT NULL,
    tier TEXT NOT NULL DEFAULT 'Senior Counsel',
    status TEXT NOT NULL DEFAULT 'active',
    query_count INTEGER NOT NULL DEFAULT 0,
    login_count INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL,
    last_active_at DATETIME NOT NULL
);

-- Chambers (conversation threads)
CREATE TABLE IF NOT EXISTS chambers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_key TEXT NOT NULL REFERENCES accounts(key),
    label TEXT NOT NULL,
    kind TEXT NOT NULL DEFAULT 'General Litigation',
    archived INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);

-- Append-only transcript
CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chamber_id INTEGER NOT NULL REFERENCES chambers(id),
    role TEXT NOT NULL CHECK (role IN ('user', 'assistant')),
    body TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

-- Library assets
CREATE TABLE IF NOT EXISTS assets (
    filename TEXT PRIMARY KEY,
    size_kb REAL NOT NULL DEFAULT 0,
    pages INTEGER NOT NULL DEFAULT 0,
    indexed_at DATETIME NOT NULL,
    status TEXT NOT NULL DEFAULT 'verified'
);

-- Audit trail
CREATE TABLE IF NOT EXISTS audit_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_key TEXT,
    kind TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chambers_account ON chambers(account_key, archived);
CREATE INDEX IF NOT EXISTS idx_chambers_label ON chambers(account_key, label);
CREATE INDEX IF NOT EXISTS idx_messages_chamber ON messages(chamber_id, id);
CREATE INDEX IF NOT EXISTS idx_audit_account ON audit_events(account_key);
`

// SchemaVersion is the current schema version
const SchemaVersion = 1
