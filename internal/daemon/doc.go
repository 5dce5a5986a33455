// Package daemon ties the long-running pieces of logtap together: the
// single-instance lock, the history store, and the HTTP server. It owns
// startup and shutdown ordering so the serve command stays a thin shell.
package daemon
