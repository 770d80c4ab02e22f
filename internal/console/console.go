// Package console is the terminal study surface: word listings, progress and a line-based quiz.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"tango/internal/domain"
	"tango/internal/session"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Cell    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Prompt:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")),
		Success: r.NewStyle().Foreground(lipgloss.Color("#04B575")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Cell:    r.NewStyle().PaddingRight(2),
	}
}

// Console reads answers line by line and writes styled output.
// Colors are dropped automatically when out is not a terminal.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	styles styles
}

// New creates a console over the given streams
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     bufio.NewScanner(in),
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// readLine returns the next input line, false at end of input
func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

// PrintStats writes the progress counters of the word list
func (c *Console) PrintStats(stats domain.WordStats) {
	if stats.Total == 0 {
		c.printf("%s\n", c.styles.Muted.Render("no words registered"))
		return
	}
	c.printf("%s\n", c.styles.Title.Render(fmt.Sprintf("%d words", stats.Total)))
	c.printf("  remembered:     %d\n", stats.Remembered)
	c.printf("  not remembered: %d\n", stats.NotRemembered)
	c.printf("  unstudied:      %d\n", stats.Unstudied)
}

func status(w domain.Word) string {
	switch {
	case w.IsRemembered():
		return "remembered"
	case w.Studied():
		return "not remembered"
	}
	return "unstudied"
}

// PrintWords writes the list as a table aligned on display width
func (c *Console) PrintWords(words []domain.Word) {
	rows := [][]string{{"#", "english", "japanese", "status"}}
	for i, w := range words {
		rows = append(rows, []string{fmt.Sprint(i + 1), w.English, w.Japanese, status(w)})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			// Width includes the right padding
			cells[i] = c.styles.Cell.Width(widths[i] + 2).Render(cell)
		}
		line := strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " ")
		if r == 0 {
			line = c.styles.Title.Render(line)
		}
		c.printf("%s\n", line)
	}
}

// PrintImport reports the outcome of an import
func (c *Console) PrintImport(result domain.ImportResult) {
	c.printf("%s\n", c.styles.Success.Render(fmt.Sprintf("%d words saved, %d rows skipped", result.Saved, result.Skipped)))
	if result.Duplicates > 0 {
		c.printf("%s\n", c.styles.Muted.Render(fmt.Sprintf("%d duplicate rows ignored", result.Duplicates)))
	}
}

// RunQuiz asks every question of the quiz, then offers another round.
// It returns nil when the user quits or input ends.
func (c *Console) RunQuiz(ctx context.Context, quiz *session.Quiz) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch quiz.State() {
		case session.QuizEmpty:
			return domain.ErrNoWords

		case session.QuizNotAnswered:
			question, _ := quiz.Current()
			index, total := quiz.Position()
			label := fmt.Sprintf("[%d/%d]", index+1, total)
			if quiz.RetryMode() {
				label += " retry"
			}
			c.printf("%s %s > ", c.styles.Muted.Render(label), c.styles.Prompt.Render(question.Prompt))

			answer, ok := c.readLine()
			if !ok {
				c.printf("\n")
				return nil
			}
			if strings.TrimSpace(answer) == "" {
				continue
			}
			graded, err := quiz.Submit(answer)
			if err != nil {
				return err
			}
			c.printAnswer(graded)

		case session.QuizAnswered:
			if _, err := quiz.Advance(); err != nil {
				return err
			}

		case session.QuizFinished:
			c.printSummary(quiz)
			if !c.nextRound(quiz) {
				return nil
			}
		}
	}
}

func (c *Console) printAnswer(question domain.QuizQuestion) {
	if question.Correct {
		c.printf("%s\n", c.styles.Success.Render("correct"))
		return
	}
	c.printf("%s %s\n", c.styles.Error.Render("wrong, answer:"), question.Answer)
}

func (c *Console) printSummary(quiz *session.Quiz) {
	score := quiz.Score()
	c.printf("\n%s\n", c.styles.Title.Render(fmt.Sprintf("score: %d / %d (%d%%)", score.Correct, score.Total, score.Percent())))
	for _, q := range quiz.Wrong() {
		c.printf("  %s  %s -> %s (you: %s)\n", c.styles.Error.Render("x"), q.Prompt, q.Answer, q.UserAnswer)
	}
}

// nextRound asks how to continue and prepares the quiz; false means quit
func (c *Console) nextRound(quiz *session.Quiz) bool {
	choices := "[r]estart  [q]uit"
	if quiz.HasWrong() {
		choices = "[r]estart  [w]rong only  [q]uit"
	}

	for {
		c.printf("%s > ", c.styles.Muted.Render(choices))
		line, ok := c.readLine()
		if !ok {
			c.printf("\n")
			return false
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "r", "restart":
			quiz.Restart()
			return true
		case "w", "wrong":
			if _, err := quiz.RetryWrong(); err != nil {
				return false
			}
			return true
		case "q", "quit", "":
			return false
		default:
			c.printf("unknown choice %q\n", line)
		}
	}
}
