package tailer

import "bytes"

// Predicate decides whether a line belongs in the result stream.
type Predicate func(line []byte) bool

// MatchAll returns the conjunction of substring tests over keywords. An
// empty or nil keyword list matches every line.
func MatchAll(keywords [][]byte) Predicate {
	if len(keywords) == 0 {
		return func([]byte) bool { return true }
	}
	owned := make([][]byte, 0, len(keywords))
	for _, kw := range keywords {
		if len(kw) == 0 {
			continue
		}
		owned = append(owned, append([]byte(nil), kw...))
	}
	return func(line []byte) bool {
		for _, kw := range owned {
			if !bytes.Contains(line, kw) {
				return false
			}
		}
		return true
	}
}

// MatchAllStrings adapts string keywords, the form HTTP queries arrive in.
func MatchAllStrings(keywords []string) Predicate {
	converted := make([][]byte, 0, len(keywords))
	for _, kw := range keywords {
		converted = append(converted, []byte(kw))
	}
	return MatchAll(converted)
}
