package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	lineCommentRe   = regexp.MustCompile(`(?m)^\s*//.*$`)
	blockCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
)

// stripFences removes a single surrounding markdown code fence.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// unmarshalLoose decodes model output into out. It tries a strict parse
// first, then extracts the substring between the first "{" and the last
// "}" and retries, cleaning JS-style comments and trailing commas. The
// brace slice is greedy: a stray closing brace after the object defeats
// it, which matches how the portal has always behaved.
func unmarshalLoose(raw string, out interface{}) error {
	cleaned := stripFences(raw)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		candidate := cleaned[start : end+1]
		if err := json.Unmarshal([]byte(candidate), out); err == nil {
			return nil
		}
		candidate = cleanJSON(candidate)
		if err := json.Unmarshal([]byte(candidate), out); err == nil {
			return nil
		}
	}
	return fmt.Errorf("ai: invalid JSON in model response")
}

// cleanJSON strips JS-style comments and trailing commas that models
// sometimes emit despite instructions.
func cleanJSON(s string) string {
	s = lineCommentRe.ReplaceAllString(s, "")
	s = blockCommentRe.ReplaceAllString(s, "")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// normalizeText trims the plain-text output of the model.
func normalizeText(raw string) string {
	return strings.TrimSpace(raw)
}
