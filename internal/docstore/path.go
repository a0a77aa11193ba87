package docstore

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/poetrykeeper/internal/common"
)

const forbiddenKeyChars = ".#$[]"

// Path is a parsed document path.
type Path struct {
	Collection string
	Key        string
}

// IsCollection reports whether p addresses a whole collection.
func (p Path) IsCollection() bool {
	return p.Key == ""
}

func (p Path) String() string {
	if p.IsCollection() {
		return p.Collection
	}
	return p.Collection + "/" + p.Key
}

// Child returns the path of key inside collection p.
func (p Path) Child(key string) Path {
	return Path{Collection: p.Collection, Key: key}
}

// ParsePath validates raw and splits it into collection and key.
// Leading and trailing slashes are ignored.
func ParsePath(raw string) (Path, error) {
	trimmed := strings.Trim(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return Path{}, fmt.Errorf("%w: empty path", common.ErrInvalidPath)
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) > 2 {
		return Path{}, fmt.Errorf("%w: %q is deeper than collection/key", common.ErrInvalidPath, raw)
	}

	for _, seg := range parts {
		if err := ValidateSegment(seg); err != nil {
			return Path{}, err
		}
	}

	p := Path{Collection: parts[0]}
	if len(parts) == 2 {
		p.Key = parts[1]
	}
	return p, nil
}

// ValidateSegment checks a single collection name or key.
func ValidateSegment(seg string) error {
	if seg == "" {
		return fmt.Errorf("%w: empty segment", common.ErrInvalidPath)
	}
	if strings.Contains(seg, "/") {
		return fmt.Errorf("%w: segment %q contains a separator", common.ErrInvalidPath, seg)
	}
	if strings.ContainsAny(seg, forbiddenKeyChars) {
		return fmt.Errorf("%w: segment %q contains one of %q", common.ErrInvalidPath, seg, forbiddenKeyChars)
	}
	return nil
}
