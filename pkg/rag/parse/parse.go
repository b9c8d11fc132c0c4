// Package parse turns raw LLM output into JSON objects. Model output is
// untrusted: it may arrive wrapped in Markdown code fences or not be JSON at
// all, so parsing degrades to a raw value plus a reason instead of failing.
package parse

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Result holds either a validated JSON object or the degraded raw output.
type Result struct {
	Value    map[string]interface{}
	Raw      string
	Degraded bool
	Reason   string
}

var fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// StripFences removes Markdown code-fence wrapping from LLM output.
func StripFences(raw string) string {
	out := strings.TrimSpace(raw)

	if m := fencedJSONRe.FindStringSubmatch(out); m != nil {
		return strings.TrimSpace(m[1])
	}

	if strings.HasPrefix(out, "```") {
		out = strings.Trim(out, "` \n")
		if strings.HasPrefix(out, "json") {
			out = strings.TrimSpace(out[4:])
		}
	}
	return out
}

// Object parses raw LLM output as a JSON object, stripping fences first.
func Object(raw string) Result {
	cleaned := StripFences(raw)

	var value map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return Result{
			Raw:      raw,
			Degraded: true,
			Reason:   err.Error(),
		}
	}
	return Result{Value: value, Raw: raw}
}
