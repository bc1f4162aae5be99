package models

import (
	"bytes"
	"errors"
	"strings"

	"github.com/goccy/go-json"
)

// ParseTags splits a comma-separated tag string, trimming whitespace and
// dropping empty entries.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// TagList decodes either a JSON array of strings or a single comma-separated
// string, so both shapes sent by older clients end up as one sequence. Array
// entries are kept verbatim; only the string form is split and trimmed.
type TagList []string

var errTagShape = errors.New("tags must be a string or an array of strings")

// UnmarshalJSON implements json.Unmarshaler.
func (t *TagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}

	switch {
	case len(data) > 0 && data[0] == '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return errTagShape
		}
		*t = ParseTags(raw)
	case len(data) > 0 && data[0] == '[':
		list := make([]string, 0)
		if err := json.Unmarshal(data, &list); err != nil {
			return errTagShape
		}
		*t = list
	default:
		return errTagShape
	}
	return nil
}
