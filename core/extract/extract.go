// Package extract parses the tagged spans the reasoning protocol expects in
// model responses: <step> descriptions inside a <thinking> block, at most
// one <python> snippet per response, and an <answer> in the final response.
// Parsers return ok=false rather than an error for absent or malformed
// spans; the caller decides whether a miss is retryable.
package extract

import (
	"regexp"
	"strings"
)

var (
	stepRe   = regexp.MustCompile(`(?s)<step>(.*?)</step>`)
	pythonRe = regexp.MustCompile(`(?s)<python>(.*?)</python>`)
	answerRe = regexp.MustCompile(`(?s)<answer>(.*?)</answer>`)
)

// Steps returns every <step> span in response order, trimmed of surrounding
// whitespace. ok is false when the response contains no step span at all.
func Steps(response string) ([]string, bool) {
	matches := stepRe.FindAllStringSubmatch(response, -1)
	if len(matches) == 0 {
		return nil, false
	}

	steps := make([]string, len(matches))
	for i, m := range matches {
		steps[i] = strings.TrimSpace(m[1])
	}
	return steps, true
}

// Code returns the first <python> span, trimmed. ok is false when the span
// is absent or empty after trimming; an empty snippet is treated as no
// snippet, matching how the driver decides whether to execute anything.
func Code(response string) (string, bool) {
	m := pythonRe.FindStringSubmatch(response)
	if m == nil {
		return "", false
	}

	code := strings.TrimSpace(m[1])
	if code == "" {
		return "", false
	}
	return code, true
}

// Answer returns the first <answer> span, trimmed. ok is false when the
// response carries no answer tag.
func Answer(response string) (string, bool) {
	m := answerRe.FindStringSubmatch(response)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
