package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid_Width(t *testing.T) {
	grid := Grid{{"a"}, {"a", "b", "c"}, {}}
	assert.Equal(t, 3, grid.Width())
	assert.Equal(t, 0, Grid{}.Width())
}

func TestGrid_Preview(t *testing.T) {
	grid := Grid{{"1"}, {"2"}, {"3"}}

	assert.Equal(t, Grid{{"1"}, {"2"}}, grid.Preview(2))
	assert.Equal(t, grid, grid.Preview(5))
	assert.Empty(t, grid.Preview(-1))
}

func TestGrid_ColumnLabels(t *testing.T) {
	fallback := func(i int) string { return fmt.Sprintf("column %d", i+1) }

	tests := []struct {
		name     string
		grid     Grid
		expected []string
	}{
		{
			name:     "header cells used as labels",
			grid:     Grid{{"en", "ja"}, {"cat", "ねこ"}},
			expected: []string{"en", "ja"},
		},
		{
			name:     "blank header cell falls back",
			grid:     Grid{{"en", ""}, {"cat", "ねこ"}},
			expected: []string{"en", "column 2"},
		},
		{
			name:     "rows wider than header",
			grid:     Grid{{"en"}, {"cat", "ねこ", "note"}},
			expected: []string{"en", "column 2", "column 3"},
		},
		{
			name:     "empty grid",
			grid:     Grid{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.grid.ColumnLabels(fallback))
		})
	}
}

func TestColumns_Validate(t *testing.T) {
	assert.NoError(t, Columns{English: 0, Japanese: 1}.Validate())
	assert.NoError(t, Columns{English: 2, Japanese: 2}.Validate())

	err := Columns{English: -1, Japanese: 1}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidColumn))
}

func TestParseError(t *testing.T) {
	cause := errors.New("boom")

	withLine := &ParseError{Op: "split", Line: 3, Err: cause}
	assert.Equal(t, "parse split (line 3): boom", withLine.Error())
	assert.True(t, errors.Is(withLine, cause))

	withoutLine := &ParseError{Op: "read", Err: cause}
	assert.Equal(t, "parse read: boom", withoutLine.Error())
}

func TestQuizScore_Percent(t *testing.T) {
	tests := []struct {
		name     string
		score    QuizScore
		expected int
	}{
		{name: "all correct", score: QuizScore{Correct: 2, Total: 2}, expected: 100},
		{name: "rounds half up", score: QuizScore{Correct: 1, Total: 8}, expected: 13},
		{name: "rounds down", score: QuizScore{Correct: 1, Total: 3}, expected: 33},
		{name: "no questions", score: QuizScore{}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.score.Percent())
		})
	}
}
