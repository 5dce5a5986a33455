// Command logtap serves the tail of large log files over HTTP and queries a
// running server from the terminal.
package main
