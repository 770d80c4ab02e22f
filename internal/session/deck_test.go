package session

import (
	"testing"

	"tango/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeck_Navigation(t *testing.T) {
	d := NewDeck(testWords(), newTestRand())

	index, total := d.Position()
	assert.Equal(t, 0, index)
	assert.Equal(t, 3, total)
	assert.False(t, d.Flipped())

	d.Prev()
	index, _ = d.Position()
	assert.Equal(t, 0, index, "prev on first card stays put")

	d.Flip()
	assert.True(t, d.Flipped())
	d.Next()
	assert.False(t, d.Flipped(), "moving resets the flip")
	index, _ = d.Position()
	assert.Equal(t, 1, index)

	d.Prev()
	index, _ = d.Position()
	assert.Equal(t, 0, index)

	d.Next()
	d.Next()
	assert.False(t, d.Completed())
	d.Next()
	assert.True(t, d.Completed())
}

func TestDeck_CoversEveryWord(t *testing.T) {
	d := NewDeck(testWords(), newTestRand())

	var seen []string
	for !d.Completed() {
		card, ok := d.Current()
		require.True(t, ok)
		seen = append(seen, card.ID)
		d.Next()
	}

	assert.ElementsMatch(t, []string{"w1", "w2", "w3"}, seen)
}

func TestDeck_MarkAndRestartUnremembered(t *testing.T) {
	d := NewDeck(testWords(), newTestRand())

	first, _ := d.Current()
	marked, err := d.Mark(true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, marked.ID)
	assert.True(t, marked.IsRemembered())

	second, _ := d.Current()
	marked, err = d.Mark(false)
	require.NoError(t, err)
	assert.Equal(t, second.ID, marked.ID)
	require.NotNil(t, marked.Remembered)
	assert.False(t, *marked.Remembered)

	_, err = d.Mark(true)
	require.NoError(t, err)
	assert.True(t, d.Completed())
	assert.Equal(t, domain.WordStats{Total: 3, Remembered: 2, NotRemembered: 1}, d.Stats())

	restarted := d.RestartUnremembered()
	assert.True(t, restarted)
	assert.False(t, d.Completed())
	_, total := d.Position()
	assert.Equal(t, 1, total)
	card, _ := d.Current()
	assert.Equal(t, second.ID, card.ID)

	d.Restart()
	_, total = d.Position()
	assert.Equal(t, 3, total, "restart deals every word again")
	assert.Equal(t, 2, d.Stats().Remembered, "marks survive a restart")
}

func TestDeck_RestartUnrememberedFallsBack(t *testing.T) {
	d := NewDeck(testWords(), newTestRand())
	for !d.Completed() {
		_, err := d.Mark(true)
		require.NoError(t, err)
	}

	restarted := d.RestartUnremembered()

	assert.False(t, restarted)
	_, total := d.Position()
	assert.Equal(t, 3, total)
	assert.False(t, d.Completed())
}

func TestDeck_Empty(t *testing.T) {
	d := NewDeck(nil, newTestRand())

	assert.True(t, d.Empty())
	_, ok := d.Current()
	assert.False(t, ok)
	_, err := d.Mark(true)
	assert.ErrorIs(t, err, ErrDeckEmpty)
	d.Next()
	assert.False(t, d.Completed())
}

func TestDeck_DoesNotModifyInput(t *testing.T) {
	words := testWords()
	d := NewDeck(words, newTestRand())

	_, err := d.Mark(true)
	require.NoError(t, err)

	for _, w := range words {
		assert.Nil(t, w.Remembered)
	}
}
