package formulaic

import (
	"context"
	"maps"
	"reflect"
)

// CreateCompletion runs the formula's script with the given data and returns
// the resulting artifact.
//
// The "models" and "variables" fields of data are sent as arrays: a missing
// or non-array value is sent as an empty array. The script is addressed by
// the formula's ID, resolved with GetFormula and therefore cached.
func (c *Client) CreateCompletion(ctx context.Context, formulaID string, data Resource) (Resource, error) {
	if formulaID == "" {
		return nil, errFormulaIDRequired
	}

	body := make(Resource, len(data)+2)
	maps.Copy(body, data)
	body["models"] = normalizeArray(data["models"])
	body["variables"] = normalizeArray(data["variables"])

	formula, err := c.GetFormula(ctx, formulaID)
	if err != nil {
		return nil, &OperationError{Op: OpCreateCompletion, Err: err}
	}
	scriptID := formula.ID()
	if scriptID == "" {
		return nil, &OperationError{Op: OpCreateCompletion, Err: ErrMissingScriptID}
	}

	c.logger.V(1).Info("creating completion", "formula", formulaID, "script", scriptID)

	return call[Resource](ctx, c, OpCreateCompletion, "POST", body,
		"api", "recipes", formulaID, "scripts", scriptID, "artifacts")
}

// CreateChatCompletion sends a conversation to the formula and returns the
// reply. A nil messages slice is rejected; an empty one is sent as is.
func (c *Client) CreateChatCompletion(ctx context.Context, formulaID string, messages []Message) (Resource, error) {
	if formulaID == "" {
		return nil, errFormulaIDRequired
	}
	if messages == nil {
		return nil, errMessagesNotArray
	}
	return call[Resource](ctx, c, OpCreateChatCompletion, "POST", messages,
		"api", "recipes", formulaID, "chats")
}

// normalizeArray returns v if it is a slice or array, and an empty array
// otherwise.
func normalizeArray(v any) any {
	if v == nil {
		return []any{}
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice:
		if reflect.ValueOf(v).IsNil() {
			return []any{}
		}
		return v
	case reflect.Array:
		return v
	default:
		return []any{}
	}
}
