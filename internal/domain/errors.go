package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by repositories when a key has no stored value
	ErrNotFound = errors.New("not found")

	// ErrEmptyFile is returned when an imported file contains no rows at all
	ErrEmptyFile = errors.New("file is empty")

	// ErrNoValidWords is returned when conversion keeps zero rows
	ErrNoValidWords = errors.New("no valid words found")

	// ErrNoWords is returned when a study session starts over an empty word list
	ErrNoWords = errors.New("no words registered")

	// ErrInvalidColumn is returned for negative column indices
	ErrInvalidColumn = errors.New("invalid column index")

	// ErrInvalidDelimiter is returned for delimiters the parser cannot split on
	ErrInvalidDelimiter = errors.New("invalid delimiter")

	// ErrInvalidEncoding is returned when input is not valid UTF-8 text
	ErrInvalidEncoding = errors.New("input is not valid UTF-8")

	// ErrWordNotFound is returned when a word id is missing from the stored list
	ErrWordNotFound = errors.New("word not found")
)

// ParseError reports a failure to read or decode an imported file
type ParseError struct {
	Op   string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s (line %d): %v", e.Op, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
