package chunk

import (
	"iter"
	"unicode/utf8"
)

// DefaultMaxLength is the chunk size used when a non-positive maximum is given.
const DefaultMaxLength = 1000

// Chunks returns a lazy sequence of consecutive chunks of doc, each holding
// exactly maxLen characters except possibly the last one. The sequence can
// be ranged over any number of times.
//
// An empty document yields a single empty chunk.
func Chunks(doc string, maxLen int) iter.Seq[string] {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	return func(yield func(string) bool) {
		if doc == "" {
			yield("")
			return
		}

		start, count := 0, 0
		for i := range doc {
			if count == maxLen {
				if !yield(doc[start:i]) {
					return
				}
				start, count = i, 0
			}
			count++
		}
		yield(doc[start:])
	}
}

// Split collects all chunks of doc into a slice.
func Split(doc string, maxLen int) []string {
	chunks := make([]string, 0, Count(doc, maxLen))
	for c := range Chunks(doc, maxLen) {
		chunks = append(chunks, c)
	}
	return chunks
}

// Count returns the number of chunks Chunks would yield for doc.
func Count(doc string, maxLen int) int {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	n := utf8.RuneCountInString(doc)
	if n == 0 {
		return 1
	}
	return (n + maxLen - 1) / maxLen
}
