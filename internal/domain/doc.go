// Package domain contains the core entities of the notes pipeline: the
// source Document, the Flashcards derived from it, and the Deck that groups
// the result of one processing request. It is independent of any model
// provider or delivery mechanism.
package domain
