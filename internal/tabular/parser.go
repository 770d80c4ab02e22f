// Package tabular splits delimited text files into grids of string cells.
// Pure functions: reader in, grid out. No storage dependencies.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"tango/internal/domain"
)

// Tab is the delimiter of TSV word lists
const Tab = '\t'

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads delimited text from r and returns its rows in source order.
// Blank lines are skipped, including a trailing empty line. Rows are not padded or truncated.
func Parse(r io.Reader, delimiter rune) (domain.Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.ParseError{Op: "read", Err: err}
	}
	return ParseBytes(data, delimiter)
}

// ParseBytes is Parse over an in-memory file
func ParseBytes(data []byte, delimiter rune) (domain.Grid, error) {
	if !validDelimiter(delimiter) {
		return nil, &domain.ParseError{Op: "split", Err: fmt.Errorf("%w: %q", domain.ErrInvalidDelimiter, delimiter)}
	}
	if !utf8.Valid(data) {
		return nil, &domain.ParseError{Op: "decode", Err: domain.ErrInvalidEncoding}
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // allow ragged rows
	reader.LazyQuotes = true

	grid := domain.Grid{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &domain.ParseError{Op: "split", Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, &domain.ParseError{Op: "split", Err: err}
		}
		grid = append(grid, record)
	}

	return grid, nil
}

// ParseDelimiter turns a flag value into a delimiter rune.
// Accepts a single character, "tab" or the escape sequence `\t`.
func ParseDelimiter(value string) (rune, error) {
	switch value {
	case "tab", `\t`, "\t":
		return Tab, nil
	case "comma":
		return ',', nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("%w: %q must be a single character", domain.ErrInvalidDelimiter, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	if !validDelimiter(r) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDelimiter, value)
	}
	return r, nil
}

func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}
