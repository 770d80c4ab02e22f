package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"tango/internal/domain"
	"tango/internal/repository"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultStoreKey is the key the word list is persisted under
const DefaultStoreKey = "tanGo_words"

// WordStore persists the whole word list as one JSON document under a single key.
// Writes are serialized so concurrent updates never overwrite each other.
type WordStore struct {
	mu     sync.Mutex
	kv     repository.KVRepository
	key    string
	logger *zap.Logger
}

// NewWordStore creates a word store writing to key
func NewWordStore(kv repository.KVRepository, key string, logger *zap.Logger) *WordStore {
	if key == "" {
		key = DefaultStoreKey
	}
	return &WordStore{
		kv:     kv,
		key:    key,
		logger: logger,
	}
}

// Save replaces the stored list with words
func (s *WordStore) Save(ctx context.Context, words []domain.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, words)
}

func (s *WordStore) save(ctx context.Context, words []domain.Word) error {
	if words == nil {
		words = []domain.Word{}
	}
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("failed to encode word list: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save word list: %w", err)
	}
	return nil
}

// Load returns the stored list. Missing, unreadable or malformed data yields an
// empty list; the failure is only logged.
func (s *WordStore) Load(ctx context.Context) []domain.Word {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Word{}
	}
	if err != nil {
		s.logger.Warn("Failed to read word list, treating as empty",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return []domain.Word{}
	}

	var words []domain.Word
	if err := json.Unmarshal(data, &words); err != nil {
		s.logger.Warn("Stored word list is corrupted, treating as empty",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return []domain.Word{}
	}

	if _, ok := lo.Find(words, func(w domain.Word) bool { return !w.Valid() }); ok {
		s.logger.Warn("Stored word list has an unexpected shape, treating as empty",
			zap.String("key", s.key),
		)
		return []domain.Word{}
	}
	if words == nil {
		return []domain.Word{}
	}

	return words
}

// Update loads the list, applies fn and saves the result while holding the
// write lock for the whole cycle
func (s *WordStore) Update(ctx context.Context, fn func([]domain.Word) ([]domain.Word, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	words, err := fn(s.Load(ctx))
	if err != nil {
		return err
	}
	return s.save(ctx, words)
}
