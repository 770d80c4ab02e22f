package handler

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"tango/internal/domain"
	"tango/internal/session"
	"tango/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMenu(t *testing.T) {
	tests := []struct {
		name     string
		stats    domain.WordStats
		contains []string
	}{
		{
			name:     "no words",
			stats:    domain.WordStats{},
			contains: []string{msgNoWords},
		},
		{
			name:     "with progress",
			stats:    domain.WordStats{Total: 10, Remembered: 4, NotRemembered: 1, Unstudied: 5},
			contains: []string{"登録単語数: 10", "覚えた: 4 / 覚えていない: 1 / 未学習: 5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := renderMenu(tt.stats)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
		})
	}
}

func TestColumnLabels(t *testing.T) {
	grid := domain.Grid{{"english", "", "japanese"}, {"cat", "x", "ねこ", "extra"}}

	assert.Equal(t, []string{"english", "列 2", "japanese", "列 4"}, columnLabels(grid, true))
	assert.Equal(t, []string{"列 1", "列 2", "列 3", "列 4"}, columnLabels(grid, false))
}

func TestColumnMarkup(t *testing.T) {
	markup := columnMarkup(btnColJapanese, []string{"en", "ja"})

	require.Len(t, markup.InlineKeyboard, 3)
	assert.Equal(t, "col_ja", markup.InlineKeyboard[1][0].Unique)
	assert.Equal(t, "1", markup.InlineKeyboard[1][0].Data)
	assert.Equal(t, "ja", markup.InlineKeyboard[1][0].Text)
	assert.Equal(t, "cancel", markup.InlineKeyboard[2][0].Unique)
}

func TestRenderPreview(t *testing.T) {
	grid := domain.Grid{{"en", "ja"}}
	for i := 0; i < 8; i++ {
		grid = append(grid, []string{"w", "ご"})
	}

	text := renderPreview(grid)

	assert.Contains(t, text, "9 行を読み込みました（先頭 5 行）")
	assert.Equal(t, 5, strings.Count(text, " | "))
}

func TestRenderPreview_WideFileFitsOneMessage(t *testing.T) {
	row := make([]string, 300)
	for i := range row {
		row[i] = strings.Repeat("長", 500)
	}
	grid := domain.Grid{row, row, row, row, row, row}

	text := renderPreview(grid)

	assert.LessOrEqual(t, len([]rune(text)), 4096)
	assert.Contains(t, text, strings.Repeat("長", previewCellRunes-1)+"…")
	assert.NotContains(t, text, strings.Repeat("長", previewCellRunes+1))
}

func TestColumnMarkup_CapsButtons(t *testing.T) {
	labels := make([]string, 150)
	for i := range labels {
		labels[i] = strings.Repeat("x", 100)
	}

	markup := columnMarkup(btnColEnglish, labels)

	require.Len(t, markup.InlineKeyboard, maxColumnButtons+1)
	assert.Equal(t, strconv.Itoa(maxColumnButtons-1), markup.InlineKeyboard[maxColumnButtons-1][0].Data)
	assert.Len(t, []rune(markup.InlineKeyboard[0][0].Text), buttonLabelRunes)
	assert.Equal(t, "cancel", markup.InlineKeyboard[maxColumnButtons][0].Unique)
}

func TestRenderImportResult(t *testing.T) {
	assert.Equal(t, "✅ 3 語を保存しました（1 行をスキップ）", renderImportResult(domain.ImportResult{Saved: 3, Skipped: 1}))
	assert.Contains(t, renderImportResult(domain.ImportResult{Saved: 3, Duplicates: 2}), "重複 2 件")
}

func TestRenderAnswer(t *testing.T) {
	correct := renderAnswer(domain.QuizQuestion{Prompt: "ねこ", Answer: "cat", UserAnswer: "Cat", Correct: true})
	wrong := renderAnswer(domain.QuizQuestion{Prompt: "ねこ", Answer: "cat", UserAnswer: "dog"})

	assert.Contains(t, correct, "⭕")
	assert.Contains(t, wrong, "正解: cat")
	assert.Contains(t, wrong, "あなたの答え: dog")
}

func TestRenderQuizSummary(t *testing.T) {
	words := []domain.Word{
		testutil.NewTestWord("w1", "cat", "ねこ"),
		testutil.NewTestWord("w2", "dog", "いぬ"),
		testutil.NewTestWord("w3", "bird", "とり"),
	}
	quiz := session.NewQuiz(words, rand.New(rand.NewPCG(1, 2)))
	for quiz.State() != session.QuizFinished {
		q, _ := quiz.Current()
		answer := q.Answer
		if q.ID == "w3" {
			answer = "fish"
		}
		_, err := quiz.Submit(answer)
		require.NoError(t, err)
		_, err = quiz.Advance()
		require.NoError(t, err)
	}

	text := renderQuizSummary(quiz)

	assert.Contains(t, text, "2 / 3 (67%)")
	assert.Contains(t, text, "❌ とり → bird（あなたの答え: fish）")
	assert.Equal(t, 2, strings.Count(text, "⭕"))
	assert.Equal(t, []string{"quiz_restart", "quiz_retry", "main_menu"}, testutil.Uniques(quizSummaryMarkup(true)))
	assert.Equal(t, []string{"quiz_restart", "main_menu"}, testutil.Uniques(quizSummaryMarkup(false)))
}

func TestRenderCard(t *testing.T) {
	deck := session.NewDeck([]domain.Word{testutil.NewTestWord("w1", "cat", "ねこ").WithRemembered(false)}, nil)

	front := renderCard(deck)
	assert.Contains(t, front, "カード 1 / 1（覚えていない）")
	assert.Contains(t, front, "cat")
	assert.NotContains(t, front, "ねこ")

	deck.Flip()
	assert.Contains(t, renderCard(deck), "ねこ")
}

func TestHasHeader(t *testing.T) {
	tests := []struct {
		caption  string
		expected bool
	}{
		{caption: "", expected: true},
		{caption: "my words", expected: true},
		{caption: "NoHeader", expected: false},
		{caption: "ヘッダーなし", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert.Equal(t, tt.expected, hasHeader(tt.caption))
		})
	}
}
