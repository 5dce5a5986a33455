package tailer

import (
	"bytes"
	"slices"
)

// extraction is the result of scanning one page during a reverse walk.
//
// lines holds the terminated lines confirmed by this page, newest first,
// each including its trailing newline. The slices may alias page or suffix;
// they are only valid until the page buffer is reused. prefix holds the
// bytes at the low end of the page that may continue into an earlier page.
// overflow reports that a line, or the still-unterminated accumulation,
// crossed maxLine.
type extraction struct {
	lines    [][]byte
	prefix   []byte
	overflow bool
}

// extract scans page for newline-terminated lines, stitching the page's tail
// onto suffix, the carry-over from the previously processed (higher-offset)
// page. maxLine bounds how much unterminated data may accumulate.
func extract(maxLine int, page, suffix []byte) extraction {
	first := bytes.IndexByte(page, '\n')
	if first < 0 {
		// The whole page continues a line whose start we have not seen.
		if len(page)+len(suffix) >= maxLine {
			return extraction{overflow: true}
		}
		joined := make([]byte, 0, len(page)+len(suffix))
		joined = append(joined, page...)
		joined = append(joined, suffix...)
		return extraction{prefix: joined}
	}

	var lines [][]byte
	start := 0
	for i := first; ; {
		lines = append(lines, page[start:i+1])
		start = i + 1
		next := bytes.IndexByte(page[start:], '\n')
		if next < 0 {
			break
		}
		i = start + next
	}

	// tail is whatever follows the last newline in the page. It can only
	// form a line together with a suffix that is itself terminated;
	// otherwise both belong to an unterminated trailing line and are
	// dropped.
	tail := page[start:]
	if len(suffix) > 0 && suffix[len(suffix)-1] == '\n' {
		if len(tail) == 0 {
			lines = append(lines, suffix)
		} else {
			joined := make([]byte, 0, len(tail)+len(suffix))
			joined = append(joined, tail...)
			joined = append(joined, suffix...)
			lines = append(lines, joined)
		}
	}

	slices.Reverse(lines)

	// The lowest-offset line found here may actually start in an earlier
	// page, so it is handed back as the new carry instead of being
	// confirmed.
	prefix := lines[len(lines)-1]
	lines = lines[:len(lines)-1]

	overflow := false
	for _, line := range lines {
		if len(line) > maxLine {
			overflow = true
			break
		}
	}
	return extraction{lines: lines, prefix: prefix, overflow: overflow}
}
