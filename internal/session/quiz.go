package session

import (
	"errors"

	"tango/internal/domain"

	"github.com/samber/lo"
)

// QuizState is the position of a quiz in its answer cycle
type QuizState int

const (
	QuizNotAnswered QuizState = iota
	QuizAnswered
	QuizFinished
	// QuizEmpty means the round has no questions at all
	QuizEmpty
)

func (s QuizState) String() string {
	switch s {
	case QuizNotAnswered:
		return "not_answered"
	case QuizAnswered:
		return "answered"
	case QuizFinished:
		return "finished"
	case QuizEmpty:
		return "empty"
	}
	return "unknown"
}

var (
	// ErrQuizNotAnswering is returned when an answer is submitted outside the NotAnswered state
	ErrQuizNotAnswering = errors.New("quiz is not waiting for an answer")
	// ErrQuizNotAnswered is returned when advancing before the current question is answered
	ErrQuizNotAnswered = errors.New("current question has not been answered")
	// ErrQuizNotFinished is returned when retrying wrong answers mid-round
	ErrQuizNotFinished = errors.New("quiz round is not finished")
)

// Quiz asks for the english word of each japanese prompt in random order.
// A Quiz is not safe for concurrent use.
type Quiz struct {
	words      []domain.Word
	questions  []domain.QuizQuestion
	index      int
	state      QuizState
	retryWrong bool
	rng        Rand
}

// NewQuiz starts a round over every word
func NewQuiz(words []domain.Word, rng Rand) *Quiz {
	if rng == nil {
		rng = DefaultRand
	}
	q := &Quiz{
		words: append([]domain.Word(nil), words...),
		rng:   rng,
	}
	q.generate(q.words)
	return q
}

func (q *Quiz) generate(pool []domain.Word) {
	shuffled := Shuffle(pool, q.rng)
	q.questions = lo.Map(shuffled, func(w domain.Word, _ int) domain.QuizQuestion {
		return domain.QuizQuestion{ID: w.ID, Prompt: w.Japanese, Answer: w.English}
	})
	q.index = 0
	q.state = QuizNotAnswered
	if len(q.questions) == 0 {
		q.state = QuizEmpty
	}
}

// State returns the current state
func (q *Quiz) State() QuizState {
	return q.state
}

// Current returns the question being asked, false once the round is over
func (q *Quiz) Current() (domain.QuizQuestion, bool) {
	if q.state == QuizFinished || q.state == QuizEmpty {
		return domain.QuizQuestion{}, false
	}
	return q.questions[q.index], true
}

// Position returns the zero-based index of the current question and the round size
func (q *Quiz) Position() (int, int) {
	return q.index, len(q.questions)
}

// RetryMode reports whether the round only contains previously wrong answers
func (q *Quiz) RetryMode() bool {
	return q.retryWrong
}

// Submit grades the answer for the current question
func (q *Quiz) Submit(answer string) (domain.QuizQuestion, error) {
	if q.state != QuizNotAnswered {
		return domain.QuizQuestion{}, ErrQuizNotAnswering
	}
	question := &q.questions[q.index]
	question.UserAnswer = answer
	question.Answered = true
	question.Correct = Grade(answer, question.Answer)
	q.state = QuizAnswered
	return *question, nil
}

// Advance moves past an answered question and returns the new state
func (q *Quiz) Advance() (QuizState, error) {
	if q.state != QuizAnswered {
		return q.state, ErrQuizNotAnswered
	}
	if q.index < len(q.questions)-1 {
		q.index++
		q.state = QuizNotAnswered
	} else {
		q.state = QuizFinished
	}
	return q.state, nil
}

// Restart re-randomizes the full word set
func (q *Quiz) Restart() {
	q.retryWrong = false
	q.generate(q.words)
}

// RetryWrong starts a round over the questions answered incorrectly in the
// finished round. With no wrong answers it falls back to a full restart and
// returns false.
func (q *Quiz) RetryWrong() (bool, error) {
	if q.state != QuizFinished {
		return false, ErrQuizNotFinished
	}
	wrong := lo.SliceToMap(q.Wrong(), func(question domain.QuizQuestion) (string, struct{}) {
		return question.ID, struct{}{}
	})
	pool := lo.Filter(q.words, func(w domain.Word, _ int) bool {
		_, ok := wrong[w.ID]
		return ok
	})
	if len(pool) == 0 {
		q.Restart()
		return false, nil
	}
	q.retryWrong = true
	q.generate(pool)
	return true, nil
}

// Questions returns a copy of the round's questions in asking order
func (q *Quiz) Questions() []domain.QuizQuestion {
	return append([]domain.QuizQuestion(nil), q.questions...)
}

// Wrong returns the answered questions graded incorrect
func (q *Quiz) Wrong() []domain.QuizQuestion {
	return lo.Filter(q.questions, func(question domain.QuizQuestion, _ int) bool {
		return question.Answered && !question.Correct
	})
}

// HasWrong reports whether the round has at least one incorrect answer
func (q *Quiz) HasWrong() bool {
	return len(q.Wrong()) > 0
}

// Score counts correct answers over the round size
func (q *Quiz) Score() domain.QuizScore {
	return domain.QuizScore{
		Correct: lo.CountBy(q.questions, func(question domain.QuizQuestion) bool { return question.Correct }),
		Total:   len(q.questions),
	}
}
