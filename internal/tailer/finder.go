package tailer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Process-wide tuning defaults. Pages much larger than lines amortize
// syscalls; the line cap bounds worst-case memory per search.
const (
	DefaultPageLength    = 1 << 20
	DefaultMaxLineLength = 1 << 16
)

// Search describes one reverse scan over a single log file.
type Search struct {
	// File is the log file name, relative to Root. Paths that resolve
	// outside Root are rejected.
	File string
	// Total is the number of matching lines to produce. Zero yields an
	// empty, clean scan.
	Total int64
	// Keywords are required substrings; a line matches when it contains
	// every one of them. Empty means match everything.
	Keywords [][]byte
	// Root is the directory log files live under.
	Root string
	// PageLength and MaxLineLength fall back to the package defaults
	// when zero.
	PageLength    int
	MaxLineLength int
}

// Finder scans one file from its end toward its start, producing matching
// lines newest first. Use it like bufio.Scanner: loop on Next, read Bytes,
// then check Err. Close releases the file handle and is safe to call at any
// point; an abandoned scan leaks nothing as long as Close runs.
type Finder struct {
	file      *os.File
	predicate Predicate
	maxLine   int
	total     int64

	page      []byte
	pending   [][]byte
	remainder []byte
	position  int64

	current []byte
	matches int64
	done    bool
	err     error
}

// NewFinder validates the search, resolves and opens the target file, and
// snapshots its length. Every validation or open failure is classified as
// ErrInvalidSearch so callers can distinguish a bad request from a scan that
// failed mid-flight.
func NewFinder(search Search) (*Finder, error) {
	pageLen := search.PageLength
	if pageLen == 0 {
		pageLen = DefaultPageLength
	}
	maxLine := search.MaxLineLength
	if maxLine == 0 {
		maxLine = DefaultMaxLineLength
	}
	switch {
	case search.Total < 0:
		return nil, fmt.Errorf("%w: total must be non-negative", ErrInvalidSearch)
	case pageLen <= 0:
		return nil, fmt.Errorf("%w: page length must be positive", ErrInvalidSearch)
	case maxLine <= 0:
		return nil, fmt.Errorf("%w: max line length must be positive", ErrInvalidSearch)
	}

	path, err := resolveWithinRoot(search.Root, search.File)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrInvalidSearch, search.File, err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: stat %s: %w", ErrInvalidSearch, search.File, err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidSearch, search.File)
	}

	f := &Finder{
		file:      file,
		predicate: MatchAll(search.Keywords),
		maxLine:   maxLine,
		total:     search.Total,
		page:      make([]byte, pageLen),
		position:  info.Size(),
	}
	if search.Total == 0 {
		f.finish()
	}
	return f, nil
}

// resolveWithinRoot joins name onto root and requires the result to stay
// inside root at a path-component boundary. Textual prefix checks alone are
// not enough: "/var/log" must not admit "/var/logs".
func resolveWithinRoot(root, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: file name is empty", ErrInvalidSearch)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: resolve root: %w", ErrInvalidSearch, err)
	}
	joined, err := filepath.Abs(filepath.Join(absRoot, name))
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %w", ErrInvalidSearch, name, err)
	}
	if joined != absRoot && !strings.HasPrefix(joined, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s escapes the log directory", ErrInvalidSearch, name)
	}
	return joined, nil
}

// Next advances to the next matching line. It returns false when the quota
// is met, the start of the file is reached, the file ends early, or an
// error occurs; Err distinguishes the failure cases.
func (f *Finder) Next() bool {
	if f.done {
		return false
	}
	for {
		for len(f.pending) > 0 {
			line := f.pending[0]
			f.pending = f.pending[1:]
			if !f.predicate(line) {
				continue
			}
			f.yield(line)
			return true
		}

		if f.position <= 0 {
			// Whatever is still carried is the first line of the
			// file; it has no preceding newline to terminate it.
			carry := f.remainder
			f.finish()
			if len(carry) > 0 && f.predicate(carry) {
				f.current = carry
				return true
			}
			return false
		}

		if !f.fill() {
			return false
		}
	}
}

// fill reads the next page toward the file start and runs extraction.
// It returns false when the scan is over, cleanly or not.
func (f *Finder) fill() bool {
	position := f.position - int64(len(f.page))
	if position < 0 {
		position = 0
	}
	view := f.page[:f.position-position]

	ok, err := readFull(f.file, view, position)
	if err != nil {
		f.fail(fmt.Errorf("%w: page at offset %d: %w", ErrRead, position, err))
		return false
	}
	if !ok {
		// The file is shorter than its snapshot said. End cleanly with
		// what was already produced.
		f.finish()
		return false
	}

	ext := extract(f.maxLine, view, f.remainder)
	if ext.overflow {
		f.fail(ErrLineTooLong)
		return false
	}

	f.pending = ext.lines
	// The prefix may alias the page buffer, which the next fill
	// overwrites, so the carry gets its own storage.
	f.remainder = append([]byte(nil), ext.prefix...)
	f.position = position
	return true
}

// yield copies line out of the page buffer and counts it against the quota.
func (f *Finder) yield(line []byte) {
	f.current = append([]byte(nil), line...)
	f.matches++
	if f.matches >= f.total {
		f.finish()
	}
}

// Bytes returns the current matched line, including its trailing newline
// except possibly for the file's first line. The slice is owned by the
// caller and survives further scanning.
func (f *Finder) Bytes() []byte {
	return f.current
}

// Err reports the terminal error of the scan, nil after a clean end. The
// possible failures are ErrLineTooLong and ErrRead wrappings.
func (f *Finder) Err() error {
	return f.err
}

// Close releases the file handle. It is idempotent and must be called on
// every exit path, including abandoning the scan early.
func (f *Finder) Close() error {
	f.done = true
	if f.file == nil {
		return nil
	}
	file := f.file
	f.file = nil
	return file.Close()
}

func (f *Finder) finish() {
	f.done = true
	if f.file != nil {
		_ = f.file.Close()
		f.file = nil
	}
	f.pending = nil
	f.remainder = nil
}

func (f *Finder) fail(err error) {
	f.err = err
	f.finish()
}
