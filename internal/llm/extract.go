package llm

import (
	"encoding/json"
	"regexp"
)

// Models frequently wrap the JSON payload in prose and code fences.
// Patterns are tried in order; the first hit is parsed.
var jsonPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?s)```json\\n(.*?)\\n```"),
	regexp.MustCompile("(?s)```\\n(.*?)\\n```"),
	regexp.MustCompile(`(?s)\{.*\}`),
}

// ExtractJSON pulls a JSON object out of a free-text completion,
// tolerating fenced code blocks and surrounding prose. It returns an
// *ExtractionError when no pattern matches or the match is not valid
// JSON.
func ExtractJSON(content string) (json.RawMessage, error) {
	var jsonStr string
	for _, pattern := range jsonPatterns {
		m := pattern.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			jsonStr = m[1]
		} else {
			jsonStr = m[0]
		}
		break
	}

	if jsonStr == "" || !json.Valid([]byte(jsonStr)) {
		return nil, &ExtractionError{Content: content}
	}
	return json.RawMessage(jsonStr), nil
}
