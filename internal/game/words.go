package game

import (
	"math/rand"
	"sort"
)

// DefaultWords is the built-in word list.
var DefaultWords = []string{
	"house", "cat", "dog", "car", "tree", "book", "phone", "computer",
	"pizza", "guitar", "bicycle", "flower", "butterfly", "rainbow",
	"mountain", "ocean", "airplane", "chair", "umbrella", "elephant",
}

// WordSource supplies the secret word for each turn. Next must never return an empty string.
type WordSource interface {
	Next() string
}

// FixedList picks uniformly from a fixed set of words.
type FixedList struct {
	words []string
	intn  func(n int) int
}

// NewFixedList - empty input falls back to DefaultWords.
func NewFixedList(words []string) *FixedList {
	words = cleanWords(words)
	if len(words) == 0 {
		words = DefaultWords
	}

	return &FixedList{
		words: words,
		intn:  rand.Intn, //nolint: gosec // word choice does not need crypto randomness
	}
}

func (that *FixedList) Next() string {
	return that.words[that.intn(len(that.words))]
}

func (that *FixedList) Len() int {
	return len(that.words)
}

// MaxWordWeight caps the weight of a single word so the running total cannot overflow.
const MaxWordWeight = 1_000_000

// WeightedList picks a word with probability proportional to its weight.
type WeightedList struct {
	words      []string
	cumulative []int
	total      int
	intn       func(n int) int
}

// NewWeightedList - words are normalized like guesses, spellings that collapse
// into one word share its weight, and weights are capped at MaxWordWeight.
// Words with a non-positive weight are skipped. When nothing usable is left the
// list behaves like DefaultWords with equal weights.
func NewWeightedList(weights map[string]int) *WeightedList {
	merged := make(map[string]int, len(weights))
	for word, weight := range weights {
		word = normalizeGuess(word)
		if weight <= 0 || word == "" {
			continue
		}

		merged[word] = min(merged[word]+min(weight, MaxWordWeight), MaxWordWeight)
	}

	words := make([]string, 0, len(merged))
	for word := range merged {
		words = append(words, word)
	}

	// map order is random, keep the distribution reproducible
	sort.Strings(words)

	list := &WeightedList{
		intn: rand.Intn, //nolint: gosec // word choice does not need crypto randomness
	}

	if len(words) == 0 {
		for _, word := range DefaultWords {
			list.add(word, 1)
		}
		return list
	}

	for _, word := range words {
		list.add(word, merged[word])
	}

	return list
}

func (that *WeightedList) add(word string, weight int) {
	that.total += weight
	that.words = append(that.words, word)
	that.cumulative = append(that.cumulative, that.total)
}

func (that *WeightedList) Next() string {
	pick := that.intn(that.total)
	idx := sort.SearchInts(that.cumulative, pick+1)

	return that.words[idx]
}

func cleanWords(words []string) []string {
	cleaned := make([]string, 0, len(words))
	for _, word := range words {
		if word = normalizeGuess(word); word != "" {
			cleaned = append(cleaned, word)
		}
	}

	return cleaned
}
