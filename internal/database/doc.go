// Package database persists the autodelete settings in SQLite.
//
// Settings are stored as string key/value pairs in a single table; the
// settings package owns their encoding and defaults. The database uses WAL
// mode with a busy timeout and initializes its schema on open.
package database
