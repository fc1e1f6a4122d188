package fieldpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// segmentRegex matches a single segment, e.g. `name` or `name[1]`.
var segmentRegex = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_-]*)(?:\[(\d+)\])?$`)

// Parse reads a dot-separated path. The empty string is the root.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return Root, nil
	}

	var p Path
	for _, part := range strings.Split(raw, ".") {
		if part == "" {
			return nil, fmt.Errorf("path %q contains an empty segment", raw)
		}

		matches := segmentRegex.FindStringSubmatch(part)
		if matches == nil {
			return nil, fmt.Errorf("invalid path segment %q", part)
		}

		seg := Field(matches[1])
		if matches[2] != "" {
			index, err := strconv.Atoi(matches[2])
			if err != nil {
				return nil, fmt.Errorf("invalid index in segment %q: %w", part, err)
			}
			seg.Index = index
		}
		p = append(p, seg)
	}
	return p, nil
}

// ParseKey reads a flattened key: a path followed by a trailing dot.
func ParseKey(key string) (Path, error) {
	raw, ok := strings.CutSuffix(key, ".")
	if !ok {
		return nil, fmt.Errorf("key %q must end with '.'", key)
	}
	return Parse(raw)
}
