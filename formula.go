package formulaic

import (
	"context"
	"encoding/json"
)

// GetModels retrieves the models available to the account.
func (c *Client) GetModels(ctx context.Context) ([]Resource, error) {
	return call[[]Resource](ctx, c, OpGetModels, "GET", nil, "api", "models")
}

// GetFormula retrieves a formula. Formulas are served from cache while
// younger than the cache TTL; only successful lookups are cached.
func (c *Client) GetFormula(ctx context.Context, formulaID string) (Resource, error) {
	if formulaID == "" {
		return nil, errFormulaIDRequired
	}
	if raw, ok := c.formulas.Get(formulaID); ok {
		c.logger.V(1).Info("formula cache hit", "formula", formulaID)
		// each hit decodes afresh so callers cannot alter the cached copy
		formula, err := decode[Resource](raw)
		if err != nil {
			return nil, &OperationError{Op: OpGetFormula, Err: err}
		}
		return formula, nil
	}

	raw, err := c.send(ctx, "GET", c.endpoint("api", "recipes", formulaID), nil, nil)
	if err != nil {
		return nil, &OperationError{Op: OpGetFormula, Err: err}
	}
	formula, err := decode[Resource](raw)
	if err != nil {
		return nil, &OperationError{Op: OpGetFormula, Err: err}
	}
	c.formulas.Set(formulaID, append(json.RawMessage(nil), raw...))
	return formula, nil
}

// ForgetFormula evicts a formula from the cache, forcing the next
// GetFormula to fetch it.
func (c *Client) ForgetFormula(formulaID string) {
	c.formulas.Delete(formulaID)
}

// ClearCache evicts every cached formula.
func (c *Client) ClearCache() {
	c.formulas.Clear()
}

// GetScripts retrieves the scripts of a formula. Scripts are not cached.
func (c *Client) GetScripts(ctx context.Context, formulaID string) ([]Resource, error) {
	if formulaID == "" {
		return nil, errFormulaIDRequired
	}
	return call[[]Resource](ctx, c, OpGetScripts, "GET", nil, "api", "recipes", formulaID, "scripts")
}

// CreateFormula creates a formula from data, e.g. its prompts, models and
// variables.
func (c *Client) CreateFormula(ctx context.Context, data Resource) (Resource, error) {
	return call[Resource](ctx, c, OpCreateFormula, "POST", data, "api", "recipes")
}
