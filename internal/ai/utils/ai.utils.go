// Package utils holds helpers shared by the generation operations: response
// parsing, upstream error description and buzzword screening.
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"vibedezine_server/internal/ai/prompts"
	"vibedezine_server/internal/types"
)

var (
	openingFence = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	closingFence = regexp.MustCompile("\r?\n?```[ \t]*$")
)

// StripCodeFence removes a leading fence with an optional language tag and a
// trailing fence, then trims surrounding whitespace.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = openingFence.ReplaceAllString(s, "")
	s = closingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ParseError reports model output that did not contain the expected JSON.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// errNoValue reports a reply that is empty or a bare JSON null.
var errNoValue = errors.New("response holds no value")

// ParseJSON strips code fences from raw and decodes it into T. When the text
// carries prose around the object, the span from the first '{' to the last
// '}' is tried as well. An empty reply or a bare null is rejected. Failures
// are EPARSE errors wrapping a *ParseError.
func ParseJSON[T any](raw string) (T, error) {
	var v T
	cleaned := StripCodeFence(raw)
	if cleaned == "" || cleaned == "null" {
		return v, types.WrapError(types.EPARSE, &ParseError{Raw: raw, Err: errNoValue}, "Invalid response format")
	}

	err := json.Unmarshal([]byte(cleaned), &v)
	if err == nil {
		return v, nil
	}

	start := strings.IndexByte(cleaned, '{')
	end := strings.LastIndexByte(cleaned, '}')
	if start >= 0 && end > start && (start > 0 || end < len(cleaned)-1) {
		var inner T
		if innerErr := json.Unmarshal([]byte(cleaned[start:end+1]), &inner); innerErr == nil {
			return inner, nil
		}
	}

	var zero T
	return zero, types.WrapError(types.EPARSE, &ParseError{Raw: raw, Err: err}, "Invalid response format")
}

// DescribeUpstream fills in fallback as the message of an upstream error
// that carries none, so callers always see a readable reason.
func DescribeUpstream(err error, fallback string) error {
	var e *types.Error
	if !errors.As(err, &e) || e.Code != types.EUPSTREAM || e.Message != "" {
		return err
	}
	described := *e
	described.Message = fallback
	return &described
}

// Transient reports whether err looks like a temporary upstream condition
// (rate limiting or a server-side failure). Nothing is retried; this only
// decides how loudly a failure is logged.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if types.ErrorCode(err) == types.ETIMEOUT {
		return true
	}
	status := types.ErrorStatus(err)
	if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "context deadline exceeded")
}

var forbiddenPattern = buildWordPattern(prompts.ForbiddenWords)

func buildWordPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)(?:s|d|ed|es|ing|ly)?\b`)
}

// FindForbiddenWord returns the first buzzword found in any of texts.
// Matching is case-insensitive on whole words, allowing simple inflections.
func FindForbiddenWord(texts ...string) (string, bool) {
	for _, t := range texts {
		if m := forbiddenPattern.FindString(t); m != "" {
			return strings.ToLower(m), true
		}
	}
	return "", false
}
