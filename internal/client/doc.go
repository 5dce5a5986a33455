// Package client is the HTTP client for a running logtap server, used by
// the tail CLI command and by integration tests.
package client
