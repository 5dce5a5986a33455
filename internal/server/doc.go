// Package server exposes the log search engine over HTTP.
//
// GET /logs streams matched lines back as application/octet-stream, newest
// first, flushing per line so slow consumers throttle the underlying file
// scan. Requests that cannot be served at all are rejected up front with
// 422; a search that fails after the status line has been sent ends with a
// literal "Premature end of stream" trailer, the only signal an in-band
// byte stream can carry.
package server
