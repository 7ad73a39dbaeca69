package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnparsable = errors.New("analysis: completion is not a JSON object")

// ParseCompletion decodes the JSON object in a chat completion, tolerating
// markdown code fences and surrounding prose.
func ParseCompletion(content string) (map[string]any, error) {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, ErrUnparsable
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(s[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	return out, nil
}
