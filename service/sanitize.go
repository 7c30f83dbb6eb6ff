package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// SanitizeJSON strips the markdown wrapping models put around JSON
// payloads: code fences first, then anything outside the outermost braces.
// If no braces are found the trimmed text is returned as-is so the caller's
// json.Unmarshal produces the real error.
func SanitizeJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	} else {
		// Unterminated fence: drop the opening marker line.
		if strings.HasPrefix(text, "```") {
			if idx := strings.IndexByte(text, '\n'); idx >= 0 {
				text = strings.TrimSpace(text[idx+1:])
			}
		}
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

// ParseOracleJSON sanitizes and decodes an oracle response into a generic
// map for validation.
func ParseOracleJSON(raw string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(SanitizeJSON(raw)), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
