package session

import (
	"errors"

	"tango/internal/domain"

	"github.com/samber/lo"
)

// ErrDeckEmpty is returned when marking a card in a deck without cards
var ErrDeckEmpty = errors.New("deck has no cards")

// Deck is a flashcard session: english on the front, japanese on the back.
// Marks are applied to the deck's own copy of the words; callers persist them.
// A Deck is not safe for concurrent use.
type Deck struct {
	words     []domain.Word
	order     []int
	index     int
	flipped   bool
	completed bool
	rng       Rand
}

// NewDeck shuffles every word into a new deck
func NewDeck(words []domain.Word, rng Rand) *Deck {
	if rng == nil {
		rng = DefaultRand
	}
	d := &Deck{
		words: append([]domain.Word(nil), words...),
		rng:   rng,
	}
	d.Restart()
	return d
}

func (d *Deck) deal(indices []int) {
	d.order = Shuffle(indices, d.rng)
	d.index = 0
	d.flipped = false
	d.completed = false
}

// Empty reports whether the current round has no cards
func (d *Deck) Empty() bool {
	return len(d.order) == 0
}

// Current returns the card on the table
func (d *Deck) Current() (domain.Word, bool) {
	if d.Empty() {
		return domain.Word{}, false
	}
	return d.words[d.order[d.index]], true
}

// Position returns the zero-based card index and the round size
func (d *Deck) Position() (int, int) {
	return d.index, len(d.order)
}

// Flipped reports whether the back of the current card is shown
func (d *Deck) Flipped() bool {
	return d.flipped
}

// Completed reports whether the round went past its last card
func (d *Deck) Completed() bool {
	return d.completed
}

// Flip turns the current card over
func (d *Deck) Flip() {
	d.flipped = !d.flipped
}

// Next moves to the following card, completing the round after the last one
func (d *Deck) Next() {
	if d.Empty() {
		return
	}
	if d.index < len(d.order)-1 {
		d.index++
		d.flipped = false
		return
	}
	d.completed = true
}

// Prev moves back one card
func (d *Deck) Prev() {
	if d.index > 0 {
		d.index--
		d.flipped = false
	}
}

// Mark records whether the current card is remembered, then advances.
// The updated word is returned so the caller can persist it.
func (d *Deck) Mark(remembered bool) (domain.Word, error) {
	if d.Empty() {
		return domain.Word{}, ErrDeckEmpty
	}
	i := d.order[d.index]
	d.words[i] = d.words[i].WithRemembered(remembered)
	marked := d.words[i]
	d.Next()
	return marked, nil
}

// Stats counts progress over the cards of the current round
func (d *Deck) Stats() domain.WordStats {
	return domain.CountStats(lo.Map(d.order, func(i int, _ int) domain.Word { return d.words[i] }))
}

// Restart reshuffles every word of the deck
func (d *Deck) Restart() {
	d.deal(lo.Range(len(d.words)))
}

// RestartUnremembered deals only the cards not marked as remembered.
// When every card is remembered it falls back to a full restart and returns false.
func (d *Deck) RestartUnremembered() bool {
	pending := lo.Filter(lo.Range(len(d.words)), func(i int, _ int) bool {
		return !d.words[i].IsRemembered()
	})
	if len(pending) == 0 {
		d.Restart()
		return false
	}
	d.deal(pending)
	return true
}
