// Package history persists a record of served searches in SQLite.
//
// One row is written per /logs request: what was asked, how many lines were
// returned, how the search ended, and how long it took. The table is an
// operational audit trail, not an index of log content; nothing in it is
// consulted while answering a search.
package history
