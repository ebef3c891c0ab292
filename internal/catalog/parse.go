package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse matches every *ParseError via errors.Is.
var ErrParse = errors.New("unparseable catalog field")

// ParseError reports a catalog field that could not be turned into a local
// value.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("cannot parse %s %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ParseAuthorName splits a full name on its last space. Everything before
// is the first name, the final token the last name, so "Vincent van Gogh"
// yields ("Vincent van", "Gogh").
func ParseAuthorName(full string) (firstName, lastName string, err error) {
	name := strings.TrimSpace(full)
	i := strings.LastIndex(name, " ")
	if i <= 0 {
		return "", "", &ParseError{Field: "author name", Value: full, Err: errors.New("expected first and last name")}
	}
	return strings.TrimSpace(name[:i]), name[i+1:], nil
}

// ParsePublishYear extracts the year from a catalog publish date such as
// "1951" or "May 10, 1951": the token after the last space, or the whole
// string when it has none.
func ParsePublishYear(date string) (int, error) {
	s := strings.TrimSpace(date)
	if i := strings.LastIndex(s, " "); i >= 0 {
		s = s[i+1:]
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Field: "publish date", Value: date, Err: err}
	}
	return year, nil
}
