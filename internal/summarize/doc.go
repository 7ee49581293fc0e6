// Package summarize composes per-chunk model calls into a single document
// summary. Each chunk is summarized exactly once and the results are joined
// with a single space in chunk order, whether the chunks were processed one
// at a time or fanned out over several workers.
package summarize
