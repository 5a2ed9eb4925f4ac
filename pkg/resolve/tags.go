package resolve

import (
	"encoding/json"
	"strings"
)

// ParseTags normalizes the loosely-typed tag field of a form row. The field
// is either a JSON array of strings or a pipe-delimited string; anything
// unparseable degrades to an empty set rather than an error.
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			return cleanTags(arr)
		}
		// Malformed JSON: fall through to the delimited parse so partial
		// data still yields something usable.
	}
	return cleanTags(strings.Split(raw, "|"))
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
