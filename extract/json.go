// Package extract turns model output into order drafts: it locates a JSON
// object inside possibly prose-wrapped text and decodes it through the
// draft schema.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// ErrNoJSONObject is returned when the text contains no parseable JSON
// object at all.
var ErrNoJSONObject = errors.New("no JSON object found")

// JSONObject extracts one JSON object from raw text. The whole string is
// parsed strictly first; on failure the span between the first '{' and the
// last '}' is retried, which tolerates an object embedded in explanatory
// prose.
func JSONObject(raw string) ([]byte, error) {
	if data := []byte(raw); isJSONObject(data) {
		return data, nil
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, ErrNoJSONObject
	}
	data := []byte(raw[start : end+1])
	if !isJSONObject(data) {
		return nil, fmt.Errorf("%w: narrowed span does not parse", ErrNoJSONObject)
	}
	return data, nil
}

func isJSONObject(data []byte) bool {
	var obj map[string]any
	return sonic.Unmarshal(data, &obj) == nil && obj != nil
}
