package models

import "strings"

// NormalizeTags lowercases and trims tags, drops empty ones and duplicates,
// and keeps first-seen order. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ParseTags splits a comma-separated list and normalises it.
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}
