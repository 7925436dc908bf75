package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedList(t *testing.T) {
	t.Run("Picks the word at the drawn index", func(t *testing.T) {
		// Given: a list whose random draw always returns 1
		list := NewFixedList([]string{"apple", "banana", "cherry"})
		list.intn = func(int) int { return 1 }

		// When: a word is drawn
		word := list.Next()

		// Then: the second word comes back
		assert.Equal(t, "banana", word)
	})

	t.Run("Cleans the configured words", func(t *testing.T) {
		// Given: words with odd casing, padding and blanks
		list := NewFixedList([]string{"  Apple ", "", "   ", "KIWI"})

		// Then: only usable words are kept, normalized
		require.Equal(t, 2, list.Len())
		assert.Equal(t, []string{"apple", "kiwi"}, list.words)
	})

	t.Run("Falls back to the built-in words", func(t *testing.T) {
		// Given: nothing usable
		list := NewFixedList(nil)

		// Then: the default words are used and never an empty string
		assert.Equal(t, len(DefaultWords), list.Len())
		for range 50 {
			assert.NotEmpty(t, list.Next())
		}
	})
}

func TestWeightedList(t *testing.T) {
	t.Run("Maps each draw to the word owning that slice of the weight", func(t *testing.T) {
		// Given: apple weighs 1, banana 3 and cherry 2
		list := NewWeightedList(map[string]int{"banana": 3, "apple": 1, "cherry": 2})

		tests := []struct {
			pick int
			want string
		}{
			{pick: 0, want: "apple"},
			{pick: 1, want: "banana"},
			{pick: 3, want: "banana"},
			{pick: 4, want: "cherry"},
			{pick: 5, want: "cherry"},
		}

		for _, tt := range tests {
			// When: the random draw is fixed
			list.intn = func(n int) int {
				require.Equal(t, 6, n)
				return tt.pick
			}

			// Then: the word covering that draw is returned
			assert.Equal(t, tt.want, list.Next(), "pick %d", tt.pick)
		}
	})

	t.Run("Skips words without a positive weight", func(t *testing.T) {
		// Given: weights with zero, negative and blank entries
		list := NewWeightedList(map[string]int{"apple": 0, "banana": -2, "": 5, "cherry": 4})

		// Then: only cherry can be drawn
		assert.Equal(t, []string{"cherry"}, list.words)
		assert.Equal(t, 4, list.total)
		assert.Equal(t, "cherry", list.Next())
	})

	t.Run("Normalizes words and merges spellings of the same word", func(t *testing.T) {
		// Given: the same word written three ways
		list := NewWeightedList(map[string]int{" Cat ": 2, "cat": 1, "CAT": 1, "dog": 1})

		// Then: the drawer sees the clean word and it keeps the combined weight
		assert.Equal(t, []string{"cat", "dog"}, list.words)
		assert.Equal(t, []int{4, 5}, list.cumulative)
	})

	t.Run("Caps oversized weights", func(t *testing.T) {
		// Given: weights far beyond the cap
		list := NewWeightedList(map[string]int{"cat": int(^uint(0) >> 1), "Cat": MaxWordWeight, "dog": 1})

		// When: the last slot is drawn
		list.intn = func(n int) int {
			require.Equal(t, MaxWordWeight+1, n)
			return n - 1
		}

		// Then: the total stays bounded and every word remains reachable
		assert.Equal(t, MaxWordWeight+1, list.total)
		assert.Equal(t, "dog", list.Next())
	})

	t.Run("Falls back to the built-in words with equal weights", func(t *testing.T) {
		// Given: no weights at all
		list := NewWeightedList(nil)

		// Then: every default word weighs one
		assert.Equal(t, DefaultWords, list.words)
		assert.Equal(t, len(DefaultWords), list.total)

		list.intn = func(int) int { return len(DefaultWords) - 1 }
		assert.Equal(t, DefaultWords[len(DefaultWords)-1], list.Next())
	})
}
