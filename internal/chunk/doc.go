// Package chunk splits a document into bounded-length, contiguous segments
// that fit the input window of a summarization model.
//
// Lengths are measured in characters (Unicode code points), so a chunk never
// splits a multi-byte UTF-8 sequence. Chunks never overlap and concatenating
// them in order reproduces the original document exactly.
package chunk
