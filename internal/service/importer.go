package service

import (
	"context"
	"fmt"
	"io"

	"tango/internal/domain"
	"tango/internal/tabular"

	"go.uber.org/zap"
)

// ImportService replaces the stored word list with the content of a delimited file
type ImportService struct {
	store     *WordStore
	converter *WordConverter
	logger    *zap.Logger
}

// NewImportService creates a new import service
func NewImportService(store *WordStore, converter *WordConverter, logger *zap.Logger) *ImportService {
	return &ImportService{
		store:     store,
		converter: converter,
		logger:    logger,
	}
}

// ReadGrid parses r into a grid. A file without any row is rejected with
// domain.ErrEmptyFile so callers can tell it apart from a file without valid words.
func (s *ImportService) ReadGrid(r io.Reader, delimiter rune) (domain.Grid, error) {
	grid, err := tabular.Parse(r, delimiter)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, domain.ErrEmptyFile
	}
	return grid, nil
}

// Import converts the grid and replaces the stored list with the result.
// Nothing is written when no row qualifies.
func (s *ImportService) Import(ctx context.Context, grid domain.Grid, cols domain.Columns) (domain.ImportResult, error) {
	if len(grid) == 0 {
		return domain.ImportResult{}, domain.ErrEmptyFile
	}

	conv, err := s.converter.Convert(grid, cols)
	if err != nil {
		return domain.ImportResult{}, err
	}

	result := domain.ImportResult{
		Saved:      len(conv.Words),
		Skipped:    conv.Skipped,
		Duplicates: conv.Duplicates,
	}
	if len(conv.Words) == 0 {
		return result, domain.ErrNoValidWords
	}

	if err := s.store.Save(ctx, conv.Words); err != nil {
		return domain.ImportResult{}, fmt.Errorf("failed to save imported words: %w", err)
	}

	s.logger.Info("Word list imported",
		zap.Int("saved", result.Saved),
		zap.Int("skipped", result.Skipped),
		zap.Int("duplicates", result.Duplicates),
	)

	return result, nil
}
