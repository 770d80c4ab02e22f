package service

import (
	"context"
	"testing"

	"tango/internal/domain"
	"tango/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Summary(t *testing.T) {
	tests := []struct {
		name     string
		words    []domain.Word
		expected domain.WordStats
	}{
		{
			name:     "empty store",
			words:    nil,
			expected: domain.WordStats{},
		},
		{
			name: "mixed progress",
			words: []domain.Word{
				testutil.NewTestWord("w1", "cat", "ねこ").WithRemembered(true),
				testutil.NewTestWord("w2", "dog", "いぬ").WithRemembered(false),
				testutil.NewTestWord("w3", "bird", "とり"),
				testutil.NewTestWord("w4", "fish", "さかな").WithRemembered(true),
			},
			expected: domain.WordStats{Total: 4, Remembered: 2, NotRemembered: 1, Unstudied: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			logger := testutil.NewTestLogger()
			store := NewWordStore(testutil.NewMemoryKV(), "", logger)
			if tt.words != nil {
				require.NoError(t, store.Save(ctx, tt.words))
			}

			service := NewStatsService(store, logger)

			assert.Equal(t, tt.expected, service.Summary(ctx))
		})
	}
}
