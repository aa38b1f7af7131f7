package formulaic

import (
	"encoding/json"
	"strconv"
)

type (
	// Resource is an opaque JSON object returned by the API: a model,
	// formula, script, file or completion.
	Resource map[string]any

	// Message is a chat message, typically {"role": ..., "content": ...}.
	Message = Resource
)

// ID returns the resource's "id" field as a string, or an empty string if it
// has none.
func (r Resource) ID() string {
	switch id := r["id"].(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}

// NewMessage constructs a chat message.
func NewMessage(role, content string) Message {
	return Message{"role": role, "content": content}
}
