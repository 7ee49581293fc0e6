package flashcard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/phrazzld/flashnotes/internal/domain"
)

// MainIdeaQuestion is the question of the first flashcard of every deck.
const MainIdeaQuestion = "What is the main idea of the notes?"

// MaxKeyPoints is the number of sentences turned into key-point cards.
const MaxKeyPoints = 3

// sentenceEnd matches sentence-terminal punctuation followed by whitespace.
// The punctuation stays with the preceding sentence.
var sentenceEnd = regexp.MustCompile(`[.!?][\s\v\x1c-\x1f\x{0085}\p{Z}]+`)

// KeyPointQuestion returns the question for key point i (1-indexed).
func KeyPointQuestion(i int) string {
	return fmt.Sprintf("What is key point %d from the notes?", i)
}

// SplitSentences splits text on whitespace that immediately follows '.',
// '!' or '?'. Sentences are trimmed and empty ones are dropped.
func SplitSentences(text string) []string {
	var sentences []string

	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		// loc[0] is the punctuation mark, which belongs to the sentence
		sentences = appendTrimmed(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	sentences = appendTrimmed(sentences, text[start:])

	return sentences
}

func appendTrimmed(dst []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		dst = append(dst, s)
	}
	return dst
}

// Extract builds the flashcards for a summary. The first card always asks
// for the main idea and carries the summary verbatim; it is followed by one
// card for each of the first MaxKeyPoints sentences.
func Extract(summary string) []domain.Flashcard {
	sentences := SplitSentences(summary)
	if len(sentences) > MaxKeyPoints {
		sentences = sentences[:MaxKeyPoints]
	}

	cards := make([]domain.Flashcard, 0, 1+len(sentences))
	cards = append(cards, domain.Flashcard{
		Question: MainIdeaQuestion,
		Answer:   summary,
	})

	for i, sentence := range sentences {
		cards = append(cards, domain.Flashcard{
			Question: KeyPointQuestion(i + 1),
			Answer:   sentence,
		})
	}

	return cards
}

// Columns lays cards out in two alternating columns: even indexes go to the
// left column and odd indexes to the right.
func Columns(cards []domain.Flashcard) (left, right []domain.Flashcard) {
	for i, card := range cards {
		if i%2 == 0 {
			left = append(left, card)
		} else {
			right = append(right, card)
		}
	}
	return left, right
}
