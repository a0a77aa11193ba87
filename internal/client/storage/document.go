package storage

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
	"github.com/dmitrijs2005/poetrykeeper/internal/timex"
)

// encodePoem builds the stored document for in. Timestamps are added by the
// caller. Tags are []any so the value can travel in a protobuf Struct.
func encodePoem(in models.PoemInput) map[string]any {
	tags := make([]any, len(in.Tags))
	for i, t := range in.Tags {
		tags[i] = t
	}
	return map[string]any{
		"title":       in.Title,
		"author":      in.Author,
		"description": in.Description,
		"category":    in.Category,
		"tags":        tags,
	}
}

// decodePoem turns a loosely typed document into a Poem. Missing tags become
// empty and missing timestamps become now. ok is false when v is not an
// object.
func decodePoem(id string, v any, now time.Time) (models.Poem, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return models.Poem{}, false
	}

	if id == "" {
		id = str(m["id"])
	}

	p := models.Poem{
		ID:          id,
		Title:       str(m["title"]),
		Author:      str(m["author"]),
		Description: str(m["description"]),
		Category:    str(m["category"]),
		Tags:        models.NormalizeTags(strSlice(m["tags"])),
	}

	var has bool
	if p.CreatedAt, has = parseTimestamp(m["createdAt"]); !has {
		p.CreatedAt = now
	}
	if p.UpdatedAt, has = parseTimestamp(m["updatedAt"]); !has {
		p.UpdatedAt = now
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}

	return p, true
}

// parseTimestamp accepts epoch milliseconds or an RFC 3339 string.
func parseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case float64:
		return timex.FromMillis(int64(t)), true
	case int64:
		return timex.FromMillis(t), true
	case int:
		return timex.FromMillis(int64(t)), true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(t))
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strSlice(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	default:
		return nil
	}
}
