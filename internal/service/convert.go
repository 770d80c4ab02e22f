package service

import (
	"strings"

	"tango/internal/domain"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// WordConverter turns parsed grid rows into word records
type WordConverter struct {
	newID func() string
}

// NewWordConverter creates a converter assigning random UUIDs
func NewWordConverter() *WordConverter {
	return &WordConverter{newID: uuid.NewString}
}

// NewWordConverterWithIDs creates a converter with a custom id generator
func NewWordConverterWithIDs(newID func() string) *WordConverter {
	return &WordConverter{newID: newID}
}

// Conversion is the outcome of converting a grid
type Conversion struct {
	Words []domain.Word
	// Skipped counts data rows dropped for being too short or having a blank cell
	Skipped int
	// Duplicates counts rows repeating an earlier english-japanese pair
	Duplicates int
}

// Convert keeps every data row wide enough for both columns whose two cells are
// non-blank after trimming. Cells are stored trimmed, each kept row gets a fresh
// id and no remembered flag. Zero qualifying rows is not an error.
func (c *WordConverter) Convert(grid domain.Grid, cols domain.Columns) (Conversion, error) {
	if err := cols.Validate(); err != nil {
		return Conversion{}, err
	}

	rows := grid
	if cols.Header && len(rows) > 0 {
		rows = rows[1:]
	}

	need := max(cols.English, cols.Japanese)
	candidates := make([]domain.Word, 0, len(rows))
	for _, row := range rows {
		if len(row) <= need {
			continue
		}
		english := strings.TrimSpace(row[cols.English])
		japanese := strings.TrimSpace(row[cols.Japanese])
		if english == "" || japanese == "" {
			continue
		}
		candidates = append(candidates, domain.Word{English: english, Japanese: japanese})
	}

	unique := lo.UniqBy(candidates, func(w domain.Word) [2]string {
		return [2]string{w.English, w.Japanese}
	})
	words := lo.Map(unique, func(w domain.Word, _ int) domain.Word {
		w.ID = c.newID()
		return w
	})

	return Conversion{
		Words:      words,
		Skipped:    len(rows) - len(candidates),
		Duplicates: len(candidates) - len(unique),
	}, nil
}
