package domain

import "github.com/samber/lo"

// Word represents an english-japanese pair with learning progress.
// Remembered is nil until a study session marks the word.
type Word struct {
	ID         string `json:"id"`
	English    string `json:"english"`
	Japanese   string `json:"japanese"`
	Remembered *bool  `json:"remembered,omitempty"`
}

// IsRemembered reports whether the word was marked as known
func (w Word) IsRemembered() bool {
	return w.Remembered != nil && *w.Remembered
}

// Studied reports whether the word was ever marked during a study session
func (w Word) Studied() bool {
	return w.Remembered != nil
}

// WithRemembered returns a copy of the word with the remembered flag set
func (w Word) WithRemembered(remembered bool) Word {
	w.Remembered = &remembered
	return w
}

// Valid reports whether the record carries every field required at creation time
func (w Word) Valid() bool {
	return w.ID != "" && w.English != "" && w.Japanese != ""
}

// WordStats summarizes learning progress over a word list
type WordStats struct {
	Total         int
	Remembered    int
	NotRemembered int
	Unstudied     int
}

// CountStats computes progress counters for the given words
func CountStats(words []Word) WordStats {
	remembered := lo.CountBy(words, func(w Word) bool { return w.IsRemembered() })
	unstudied := lo.CountBy(words, func(w Word) bool { return !w.Studied() })
	return WordStats{
		Total:         len(words),
		Remembered:    remembered,
		NotRemembered: len(words) - remembered - unstudied,
		Unstudied:     unstudied,
	}
}

// ImportResult describes the outcome of converting and saving an imported grid
type ImportResult struct {
	Saved      int
	Skipped    int
	Duplicates int
}
