package service

import (
	"context"
	"fmt"

	"tango/internal/domain"
	"tango/internal/session"

	"go.uber.org/zap"
)

// StudyService starts study sessions over the stored list and persists their marks
type StudyService struct {
	store  *WordStore
	rng    session.Rand
	logger *zap.Logger
}

// NewStudyService creates a new study service. A nil rng uses the default source.
func NewStudyService(store *WordStore, rng session.Rand, logger *zap.Logger) *StudyService {
	if rng == nil {
		rng = session.DefaultRand
	}
	return &StudyService{
		store:  store,
		rng:    rng,
		logger: logger,
	}
}

// Words returns the stored list
func (s *StudyService) Words(ctx context.Context) []domain.Word {
	return s.store.Load(ctx)
}

// StartQuiz starts a quiz over every stored word
func (s *StudyService) StartQuiz(ctx context.Context) (*session.Quiz, error) {
	words := s.store.Load(ctx)
	if len(words) == 0 {
		return nil, domain.ErrNoWords
	}
	s.logger.Debug("Quiz started", zap.Int("words", len(words)))
	return session.NewQuiz(words, s.rng), nil
}

// StartFlashcards deals every stored word into a new deck
func (s *StudyService) StartFlashcards(ctx context.Context) (*session.Deck, error) {
	words := s.store.Load(ctx)
	if len(words) == 0 {
		return nil, domain.ErrNoWords
	}
	s.logger.Debug("Flashcards started", zap.Int("words", len(words)))
	return session.NewDeck(words, s.rng), nil
}

// MarkRemembered sets the remembered flag of one word and rewrites the whole list
func (s *StudyService) MarkRemembered(ctx context.Context, wordID string, remembered bool) error {
	err := s.store.Update(ctx, func(words []domain.Word) ([]domain.Word, error) {
		for i := range words {
			if words[i].ID == wordID {
				words[i] = words[i].WithRemembered(remembered)
				return words, nil
			}
		}
		return nil, domain.ErrWordNotFound
	})
	if err != nil {
		return fmt.Errorf("failed to mark word %s: %w", wordID, err)
	}

	s.logger.Debug("Word marked",
		zap.String("word_id", wordID),
		zap.Bool("remembered", remembered),
	)
	return nil
}
