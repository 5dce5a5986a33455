package tailer

import "errors"

// Sentinel markers for classifying failures with errors.Is. Construction
// problems are always ErrInvalidSearch; ErrLineTooLong and ErrRead are the
// only errors a running scan can end with.
var (
	ErrInvalidSearch = errors.New("invalid search")
	ErrLineTooLong   = errors.New("line exceeds maximum length")
	ErrRead          = errors.New("read failure")
)
