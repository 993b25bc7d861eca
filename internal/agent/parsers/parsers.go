// Package parsers normalizes and parses untrusted model output. Nothing in
// here calls the model or the database; every function is pure so the
// routing layers only ever operate on already-validated values.
package parsers

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const fence = "```"

// maxContentLen caps the payload size before parsing to avoid pathological inputs.
const maxContentLen = 128 * 1024 // 128KB

// StripFence removes a Markdown code fence wrapper if present and trims the
// remainder. Model output is frequently wrapped in ``` or ```json blocks
// even when the prompt forbids prose.
func StripFence(content string) string {
	if i := strings.Index(content, fence); i >= 0 {
		content = content[i+len(fence):]
		content = strings.TrimPrefix(content, "json")
		if j := strings.Index(content, fence); j >= 0 {
			content = content[:j]
		}
	}
	return strings.TrimSpace(content)
}

// constructorRe matches ISODate("...") / ObjectId("...") wrappers the query
// model emits despite instructions, capturing the quoted literal inside.
var constructorRe = regexp.MustCompile(`(?:ISODate|ObjectId)\(\s*("(?:[^"\\]|\\.)*")\s*\)`)

// NormalizeConstructors rewrites date/identifier constructor wrappers to
// their bare string literals so the payload parses as standard JSON.
func NormalizeConstructors(s string) string {
	return constructorRe.ReplaceAllString(s, "$1")
}

// ParseQuery turns raw model output into a synthesized query value: a JSON
// object (filter) or a JSON array (aggregation pipeline stages). Parse
// failure is an explicit error; there is no safe default query to fall
// back to.
func ParseQuery(raw string) (any, error) {
	if len(raw) > maxContentLen {
		raw = raw[:maxContentLen]
	}
	s := NormalizeConstructors(StripFence(raw))
	if s == "" {
		return nil, fmt.Errorf("empty query payload")
	}

	var q any
	if err := json.Unmarshal([]byte(s), &q); err != nil {
		return nil, fmt.Errorf("invalid query JSON: %w", err)
	}
	return q, nil
}
