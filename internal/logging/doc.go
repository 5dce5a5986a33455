// Package logging builds the slog loggers used across logtap.
//
// Two output formats are supported: a human-oriented console format that
// colors levels when it writes directly to a terminal, and line-delimited
// JSON for log shippers. Attr helpers keep field names consistent between
// the HTTP server and the daemon.
package logging
