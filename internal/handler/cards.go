package handler

import (
	"errors"

	"tango/internal/domain"
	"tango/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleCardsStart deals every stored word into a flashcard deck
func (h *Handler) handleCardsStart(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := h.requestContext()
	defer cancel()

	deck, err := h.studyService.StartFlashcards(ctx)
	if errors.Is(err, domain.ErrNoWords) {
		return alert(c, msgNoWords)
	}
	if err != nil {
		h.logger.Error("Failed to start flashcards", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, msgInternalError)
	}

	h.SetState(userID, &ChatState{State: domain.StateFlashcards, Deck: deck})
	return h.showCard(c, deck)
}

func (h *Handler) showCard(c tele.Context, deck *session.Deck) error {
	if deck.Completed() {
		return h.show(c, renderDeckSummary(deck.Stats()), deckSummaryMarkup())
	}
	return h.show(c, renderCard(deck), cardMarkup(deck))
}

// deckFor returns the running deck of the user, answering the callback when there is none
func (h *Handler) deckFor(c tele.Context) (*session.Deck, bool) {
	state := h.GetState(c.Sender().ID)
	if state.State != domain.StateFlashcards || state.Deck == nil {
		_ = alert(c, msgSessionGone)
		return nil, false
	}
	return state.Deck, true
}

func (h *Handler) handleCardFlip(c tele.Context) error {
	deck, ok := h.deckFor(c)
	if !ok {
		return nil
	}
	deck.Flip()
	return h.showCard(c, deck)
}

func (h *Handler) handleCardPrev(c tele.Context) error {
	deck, ok := h.deckFor(c)
	if !ok {
		return nil
	}
	deck.Prev()
	return h.showCard(c, deck)
}

func (h *Handler) handleCardNext(c tele.Context) error {
	deck, ok := h.deckFor(c)
	if !ok {
		return nil
	}
	deck.Next()
	return h.showCard(c, deck)
}

func (h *Handler) handleCardKnown(c tele.Context) error {
	return h.markCard(c, true)
}

func (h *Handler) handleCardUnknown(c tele.Context) error {
	return h.markCard(c, false)
}

// markCard records the flag on the current card, persists it and advances
func (h *Handler) markCard(c tele.Context, remembered bool) error {
	deck, ok := h.deckFor(c)
	if !ok {
		return nil
	}
	if !deck.Flipped() {
		return alert(c, "カードをめくってから選んでください")
	}

	word, err := deck.Mark(remembered)
	if err != nil {
		return alert(c, msgSessionGone)
	}

	ctx, cancel := h.requestContext()
	defer cancel()

	if err := h.studyService.MarkRemembered(ctx, word.ID, remembered); err != nil {
		// The list may have been replaced by an import since the deck was dealt
		h.logger.Warn("Failed to persist flashcard mark",
			zap.Error(err),
			zap.Int64("user_id", c.Sender().ID),
			zap.String("word_id", word.ID),
		)
	}

	return h.showCard(c, deck)
}

func (h *Handler) handleCardsRestart(c tele.Context) error {
	deck, ok := h.deckFor(c)
	if !ok {
		return nil
	}
	deck.Restart()
	return h.showCard(c, deck)
}

// handleCardsRestartUnknown deals only the cards not marked as remembered
func (h *Handler) handleCardsRestartUnknown(c tele.Context) error {
	deck, ok := h.deckFor(c)
	if !ok {
		return nil
	}
	if !deck.RestartUnremembered() {
		return h.show(c, msgAllRemembered+"\n\n"+renderCard(deck), cardMarkup(deck))
	}
	return h.showCard(c, deck)
}
