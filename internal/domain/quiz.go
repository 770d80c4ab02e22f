package domain

import "math"

// QuizQuestion is a single quiz prompt built from a word
type QuizQuestion struct {
	ID         string
	Prompt     string // japanese
	Answer     string // english
	UserAnswer string
	Answered   bool
	Correct    bool
}

// QuizScore holds the result of a finished quiz round
type QuizScore struct {
	Correct int
	Total   int
}

// Percent returns the share of correct answers rounded to the nearest integer
func (s QuizScore) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
}
