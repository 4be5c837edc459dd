package graph

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fleetops/fleet-api/internal/service"
)

// Argument extraction keeps "absent" distinct from zero values: every
// helper returns a pointer or an Optional, never a defaulted scalar.
// graphql-go has already coerced the values, so the assertions hold.

func stringArg(args map[string]interface{}, key string) *string {
	if raw, ok := args[key]; ok && raw != nil {
		s := raw.(string)
		return &s
	}
	return nil
}

func intArg(args map[string]interface{}, key string) *int {
	if raw, ok := args[key]; ok && raw != nil {
		n := raw.(int)
		return &n
	}
	return nil
}

func floatArg(args map[string]interface{}, key string) *float64 {
	if raw, ok := args[key]; ok && raw != nil {
		f := raw.(float64)
		return &f
	}
	return nil
}

func boolArg(args map[string]interface{}, key string) *bool {
	if raw, ok := args[key]; ok && raw != nil {
		b := raw.(bool)
		return &b
	}
	return nil
}

func timeArg(args map[string]interface{}, key string) *time.Time {
	if raw, ok := args[key]; ok && raw != nil {
		t := raw.(time.Time)
		return &t
	}
	return nil
}

func enumArg[T ~string](args map[string]interface{}, key string) *T {
	if raw, ok := args[key]; ok && raw != nil {
		v := raw.(T)
		return &v
	}
	return nil
}

func uuidArg(args map[string]interface{}, key string) (*uuid.UUID, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %v", key, err)
	}
	return &id, nil
}

func requiredUUIDArg(args map[string]interface{}, key string) (uuid.UUID, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return uuid.Nil, fmt.Errorf("missing %s", key)
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %v", key, err)
	}
	return id, nil
}

func uuidListArg(args map[string]interface{}, key string) ([]uuid.UUID, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items := raw.([]interface{})
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry: %v", key, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func stringListArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil
	}
	items := raw.([]interface{})
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.(string))
	}
	return out
}

// The opt* family reads partial-update input maps: a missing key is
// "leave untouched", an explicit null is "clear".

func optString(input map[string]interface{}, key string) service.Optional[string] {
	raw, present := input[key]
	if !present {
		return service.Optional[string]{}
	}
	if raw == nil {
		return service.Null[string]()
	}
	return service.Value(raw.(string))
}

func optInt(input map[string]interface{}, key string) service.Optional[int] {
	raw, present := input[key]
	if !present {
		return service.Optional[int]{}
	}
	if raw == nil {
		return service.Null[int]()
	}
	return service.Value(raw.(int))
}

func optFloat(input map[string]interface{}, key string) service.Optional[float64] {
	raw, present := input[key]
	if !present {
		return service.Optional[float64]{}
	}
	if raw == nil {
		return service.Null[float64]()
	}
	return service.Value(raw.(float64))
}

func optTime(input map[string]interface{}, key string) service.Optional[time.Time] {
	raw, present := input[key]
	if !present {
		return service.Optional[time.Time]{}
	}
	if raw == nil {
		return service.Null[time.Time]()
	}
	return service.Value(raw.(time.Time))
}

func optEnum[T ~string](input map[string]interface{}, key string) service.Optional[T] {
	raw, present := input[key]
	if !present {
		return service.Optional[T]{}
	}
	if raw == nil {
		return service.Null[T]()
	}
	return service.Value(raw.(T))
}

func optJSON(input map[string]interface{}, key string) service.Optional[interface{}] {
	raw, present := input[key]
	if !present {
		return service.Optional[interface{}]{}
	}
	if raw == nil {
		return service.Null[interface{}]()
	}
	return service.Value(raw)
}

func optDecimal(input map[string]interface{}, key string) service.Optional[decimal.Decimal] {
	raw, present := input[key]
	if !present {
		return service.Optional[decimal.Decimal]{}
	}
	if raw == nil {
		return service.Null[decimal.Decimal]()
	}
	return service.Value(decimal.NewFromFloat(raw.(float64)))
}

func optUUID(input map[string]interface{}, key string) (service.Optional[uuid.UUID], error) {
	raw, present := input[key]
	if !present {
		return service.Optional[uuid.UUID]{}, nil
	}
	if raw == nil {
		return service.Null[uuid.UUID](), nil
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return service.Optional[uuid.UUID]{}, fmt.Errorf("invalid %s: %v", key, err)
	}
	return service.Value(id), nil
}

func optStringList(input map[string]interface{}, key string) service.Optional[[]string] {
	raw, present := input[key]
	if !present {
		return service.Optional[[]string]{}
	}
	if raw == nil {
		return service.Null[[]string]()
	}
	items := raw.([]interface{})
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.(string))
	}
	return service.Value(out)
}
