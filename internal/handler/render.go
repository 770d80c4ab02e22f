package handler

import (
	"fmt"
	"strconv"
	"strings"

	"tango/internal/domain"
	"tango/internal/session"

	tele "gopkg.in/telebot.v3"
)

const (
	previewRows = 5
	// previewColumns and previewCellRunes keep the preview under the 4096 character message limit
	previewColumns   = 10
	previewCellRunes = 40
	// maxColumnButtons stays below the 100 button inline keyboard limit
	maxColumnButtons = 20
	buttonLabelRunes = 32

	msgNoWords       = "単語が登録されていません。まずは単語をインポートしてください。"
	msgImportAsk     = "📥 単語リスト（タブ区切りのテキストファイル）を送ってください。\n1行目はヘッダーとして扱われます。ヘッダーがない場合はキャプションに「noheader」と書いてください。"
	msgPickColumn    = "下のボタンで列を選んでください"
	msgSessionGone   = "セッションが終了しました。メニューからやり直してください。"
	msgEmptyFile     = "ファイルが選択されていないか、データが空です。"
	msgUnreadable    = "ファイルを読み込めませんでした。UTF-8 のタブ区切りテキストか確認してください。"
	msgNoValidWords  = "有効な単語が見つかりませんでした。列の選択を確認してください。"
	msgTooLarge      = "ファイルが大きすぎます。"
	msgAnswerPending = "「次へ」を押して次の問題に進んでください"
	msgAllRemembered = "すべて覚えています！最初からやり直します。"
	msgNoWrong       = "間違えた問題はありません。最初からやり直します。"
)

// renderMenu builds the main menu text with progress counters
func renderMenu(stats domain.WordStats) string {
	var b strings.Builder
	b.WriteString("🏠 メインメニュー\n\n")
	if stats.Total == 0 {
		b.WriteString(msgNoWords)
		return b.String()
	}
	fmt.Fprintf(&b, "登録単語数: %d\n", stats.Total)
	fmt.Fprintf(&b, "覚えた: %d / 覚えていない: %d / 未学習: %d\n\n", stats.Remembered, stats.NotRemembered, stats.Unstudied)
	b.WriteString("学習方法を選んでください：")
	return b.String()
}

func columnLabel(index int) string {
	return fmt.Sprintf("列 %d", index+1)
}

// columnLabels names the columns after the header cells, or by position without a header
func columnLabels(grid domain.Grid, header bool) []string {
	if header {
		return grid.ColumnLabels(columnLabel)
	}
	labels := make([]string, grid.Width())
	for i := range labels {
		labels[i] = columnLabel(i)
	}
	return labels
}

// renderPreview shows the leading rows of an uploaded file
func renderPreview(grid domain.Grid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📄 %d 行を読み込みました（先頭 %d 行）：\n\n", len(grid), min(previewRows, len(grid)))
	for _, row := range grid.Preview(previewRows) {
		cells := make([]string, 0, min(len(row), previewColumns)+1)
		for _, cell := range row[:min(len(row), previewColumns)] {
			cells = append(cells, truncate(cell, previewCellRunes))
		}
		if len(row) > previewColumns {
			cells = append(cells, "…")
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString("\n")
	}
	return b.String()
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// columnMarkup offers one button per column, tagged with the column index.
// Only the first maxColumnButtons columns are offered.
func columnMarkup(btn tele.Btn, labels []string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	labels = labels[:min(len(labels), maxColumnButtons)]
	rows := make([]tele.Row, 0, len(labels)+1)
	for i, label := range labels {
		rows = append(rows, markup.Row(markup.Data(truncate(label, buttonLabelRunes), btn.Unique, strconv.Itoa(i))))
	}
	rows = append(rows, markup.Row(btnCancel))
	markup.Inline(rows...)
	return markup
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}

func renderImportResult(result domain.ImportResult) string {
	text := fmt.Sprintf("✅ %d 語を保存しました（%d 行をスキップ）", result.Saved, result.Skipped)
	if result.Duplicates > 0 {
		text += fmt.Sprintf("\n重複 %d 件は除外しました", result.Duplicates)
	}
	return text
}

// renderQuestion shows the current quiz prompt
func renderQuestion(quiz *session.Quiz) string {
	question, ok := quiz.Current()
	if !ok {
		return msgSessionGone
	}
	index, total := quiz.Position()

	var b strings.Builder
	fmt.Fprintf(&b, "📝 問題 %d / %d", index+1, total)
	if quiz.RetryMode() {
		b.WriteString("（復習モード）")
	}
	fmt.Fprintf(&b, "\n\n「%s」\n\n英語で答えを入力してください", question.Prompt)
	return b.String()
}

// renderAnswer shows how an answer was graded
func renderAnswer(question domain.QuizQuestion) string {
	if question.Correct {
		return fmt.Sprintf("⭕ 正解！\n\n「%s」 = %s", question.Prompt, question.Answer)
	}
	return fmt.Sprintf("❌ 不正解\n\n「%s」の正解: %s\nあなたの答え: %s", question.Prompt, question.Answer, question.UserAnswer)
}

// renderQuizSummary lists the score and every question of the finished round
func renderQuizSummary(quiz *session.Quiz) string {
	score := quiz.Score()

	var b strings.Builder
	fmt.Fprintf(&b, "🏁 結果: %d / %d (%d%%)\n\n", score.Correct, score.Total, score.Percent())
	for i, q := range quiz.Questions() {
		if q.Correct {
			fmt.Fprintf(&b, "%d. ⭕ %s → %s\n", i+1, q.Prompt, q.Answer)
			continue
		}
		fmt.Fprintf(&b, "%d. ❌ %s → %s（あなたの答え: %s）\n", i+1, q.Prompt, q.Answer, q.UserAnswer)
	}
	return b.String()
}

func quizAnswerMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnQuizNext),
		markup.Row(btnMainMenu),
	)
	return markup
}

func quizSummaryMarkup(hasWrong bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{markup.Row(btnQuizRestart)}
	if hasWrong {
		rows = append(rows, markup.Row(btnQuizRetry))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}

// renderCard shows the card on the table, with the back when flipped
func renderCard(deck *session.Deck) string {
	word, ok := deck.Current()
	if !ok {
		return msgSessionGone
	}
	index, total := deck.Position()

	var b strings.Builder
	fmt.Fprintf(&b, "🃏 カード %d / %d", index+1, total)
	switch {
	case word.IsRemembered():
		b.WriteString("（覚えた）")
	case word.Studied():
		b.WriteString("（覚えていない）")
	}
	fmt.Fprintf(&b, "\n\n🇬🇧 %s", word.English)
	if deck.Flipped() {
		fmt.Fprintf(&b, "\n🇯🇵 %s", word.Japanese)
	}
	return b.String()
}

func cardMarkup(deck *session.Deck) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{
		markup.Row(btnCardFlip),
		markup.Row(btnCardPrev, btnCardNext),
	}
	if deck.Flipped() {
		rows = append(rows, markup.Row(btnCardKnown, btnCardUnknown))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}

// renderDeckSummary reports the finished flashcard round
func renderDeckSummary(stats domain.WordStats) string {
	return fmt.Sprintf(
		"🎉 おつかれさまでした！\n\n全 %d 枚\n覚えた: %d\n覚えていない: %d\n未学習: %d",
		stats.Total, stats.Remembered, stats.NotRemembered, stats.Unstudied,
	)
}

func deckSummaryMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnCardsRestart),
		markup.Row(btnCardsRestartUnknown),
		markup.Row(btnMainMenu),
	)
	return markup
}
