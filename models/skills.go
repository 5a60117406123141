package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SkillInput accepts skills as a JSON array, a JSON-encoded list inside a
// string, or a comma-separated string.
type SkillInput []string

func (s *SkillInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("skills must be a list of strings: %w", err)
		}
		*s = NormalizeSkills(items)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("skills must be a list or a string: %w", err)
	}
	*s = ParseSkills(raw)
	return nil
}

// ParseSkills turns a JSON-encoded list or a comma-separated string into a
// trimmed list without empty entries.
func ParseSkills(raw string) []string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			return NormalizeSkills(items)
		}
	}
	return NormalizeSkills(strings.Split(raw, ","))
}

func NormalizeSkills(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
