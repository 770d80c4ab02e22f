package handler

import (
	"errors"

	"tango/internal/domain"
	"tango/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleQuizStart starts a quiz over the stored word list
func (h *Handler) handleQuizStart(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := h.requestContext()
	defer cancel()

	quiz, err := h.studyService.StartQuiz(ctx)
	if errors.Is(err, domain.ErrNoWords) {
		return alert(c, msgNoWords)
	}
	if err != nil {
		h.logger.Error("Failed to start quiz", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, msgInternalError)
	}

	h.SetState(userID, &ChatState{State: domain.StateQuiz, Quiz: quiz})
	return h.show(c, renderQuestion(quiz), backMarkup())
}

// submitAnswer grades a typed answer
func (h *Handler) submitAnswer(c tele.Context, state *ChatState, answer string) error {
	if state.Quiz == nil {
		h.ResetState(c.Sender().ID)
		return c.Send(msgSessionGone, backMarkup())
	}

	question, err := state.Quiz.Submit(answer)
	if errors.Is(err, session.ErrQuizNotAnswering) {
		if state.Quiz.State() == session.QuizAnswered {
			return c.Send(msgAnswerPending, quizAnswerMarkup())
		}
		return c.Send(renderQuizSummary(state.Quiz), quizSummaryMarkup(state.Quiz.HasWrong()))
	}
	if err != nil {
		return err
	}

	h.logger.Debug("Quiz answer graded",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("word_id", question.ID),
		zap.Bool("correct", question.Correct),
	)

	return c.Send(renderAnswer(question), quizAnswerMarkup())
}

// quizFor returns the running quiz of the user, answering the callback when there is none
func (h *Handler) quizFor(c tele.Context) (*session.Quiz, bool) {
	state := h.GetState(c.Sender().ID)
	if state.State != domain.StateQuiz || state.Quiz == nil {
		_ = alert(c, msgSessionGone)
		return nil, false
	}
	return state.Quiz, true
}

// handleQuizNext moves to the following question or shows the round summary
func (h *Handler) handleQuizNext(c tele.Context) error {
	quiz, ok := h.quizFor(c)
	if !ok {
		return nil
	}

	next, err := quiz.Advance()
	if errors.Is(err, session.ErrQuizNotAnswered) {
		return alert(c, "先に答えを入力してください")
	}
	if err != nil {
		return err
	}

	if next == session.QuizFinished {
		score := quiz.Score()
		h.logger.Info("Quiz finished",
			zap.Int64("user_id", c.Sender().ID),
			zap.Int("correct", score.Correct),
			zap.Int("total", score.Total),
			zap.Bool("retry_mode", quiz.RetryMode()),
		)
		return h.show(c, renderQuizSummary(quiz), quizSummaryMarkup(quiz.HasWrong()))
	}
	return h.show(c, renderQuestion(quiz), backMarkup())
}

// handleQuizRestart re-randomizes every word
func (h *Handler) handleQuizRestart(c tele.Context) error {
	quiz, ok := h.quizFor(c)
	if !ok {
		return nil
	}

	quiz.Restart()
	return h.show(c, renderQuestion(quiz), backMarkup())
}

// handleQuizRetry asks only the questions answered incorrectly
func (h *Handler) handleQuizRetry(c tele.Context) error {
	quiz, ok := h.quizFor(c)
	if !ok {
		return nil
	}

	retried, err := quiz.RetryWrong()
	if errors.Is(err, session.ErrQuizNotFinished) {
		return alert(c, "クイズがまだ終わっていません")
	}
	if err != nil {
		return err
	}

	text := renderQuestion(quiz)
	if !retried {
		text = msgNoWrong + "\n\n" + text
	}
	return h.show(c, text, backMarkup())
}
