package planner

import (
	"errors"
	"strings"
)

var (
	// ErrNoJSON means the reply contained no brace-delimited object at all.
	ErrNoJSON = errors.New("no JSON object found in model reply")
	// ErrBadJSON means braces were found but the substring did not decode.
	ErrBadJSON = errors.New("malformed JSON in model reply")
)

// ExtractJSON returns the substring between the first '{' and the last '}'
// of a model reply. Models routinely wrap the requested object in prose, so
// this is a best-effort extraction, not a parser; callers decode the result
// and treat decode failure as ErrBadJSON.
func ExtractJSON(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSON
	}
	return content[start : end+1], nil
}
