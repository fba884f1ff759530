package insights

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports AI output that is not valid JSON. Raw holds the
// sanitized text.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("AI response parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var fence = regexp.MustCompile("```(?:json)?\r?\n?")

// CleanJson removes every markdown code fence (optionally tagged json) and
// trims surrounding whitespace.
func CleanJson(input string) string {
	return strings.TrimSpace(fence.ReplaceAllString(input, ""))
}

// Parse sanitizes raw and decodes it into an Insight. Only JSON syntax is
// checked: fields whose type does not match are left at their zero value.
func Parse(raw string) (*Insight, error) {
	cleaned := CleanJson(raw)

	var insight Insight
	if err := json.Unmarshal([]byte(cleaned), &insight); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, &ParseError{Raw: cleaned, Err: err}
		}
	}
	return &insight, nil
}
