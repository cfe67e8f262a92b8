package sim

import (
	"fmt"
	"math"
)

// Float returns the named argument as a float. YAML integers are accepted.
func (a PluginArgs) Float(key string) (float64, bool, error) {
	raw, ok := a[key]
	if !ok {
		return 0, false, nil
	}
	v, err := toFloat(raw)
	if err != nil {
		return 0, true, fmt.Errorf("args.%s: %w", key, err)
	}
	return v, true, nil
}

// Int returns the named argument as an int. Floats must be whole numbers.
func (a PluginArgs) Int(key string) (int, bool, error) {
	raw, ok := a[key]
	if !ok {
		return 0, false, nil
	}
	v, err := toInt(raw)
	if err != nil {
		return 0, true, fmt.Errorf("args.%s: %w", key, err)
	}
	return v, true, nil
}

// IDs returns the named argument as a list of individual ids. A single number
// is accepted as a one-element list.
func (a PluginArgs) IDs(key string) ([]ID, bool, error) {
	raw, ok := a[key]
	if !ok {
		return nil, false, nil
	}
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []int:
		for _, i := range v {
			items = append(items, i)
		}
	default:
		items = []any{v}
	}
	ids := make([]ID, 0, len(items))
	for i, item := range items {
		n, err := toInt(item)
		if err != nil {
			return nil, true, fmt.Errorf("args.%s[%d]: %w", key, i, err)
		}
		if n < 0 {
			return nil, true, fmt.Errorf("args.%s[%d]: id must be non-negative, got %d", key, i, n)
		}
		ids = append(ids, ID(n))
	}
	return ids, true, nil
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("must be a finite number, got %f", v)
		}
		return v, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", raw)
	}
}

func toInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("expected a whole number, got %f", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", raw)
	}
}
