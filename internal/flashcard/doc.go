// Package flashcard turns a summary into study flashcards: one card for the
// main idea, answered by the whole summary, followed by up to three
// key-point cards built from the summary's first sentences.
package flashcard
