package graph

import (
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// jsonScalar carries opaque metadata/details fields. Values pass
// through unvalidated and round-trip exactly.
var jsonScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:         "JSON",
	Description:  "Arbitrary JSON value, passed through unvalidated.",
	Serialize:    func(value interface{}) interface{} { return value },
	ParseValue:   func(value interface{}) interface{} { return value },
	ParseLiteral: parseJSONLiteral,
})

func parseJSONLiteral(valueAST ast.Value) interface{} {
	switch v := valueAST.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.IntValue:
		if n, err := strconv.Atoi(v.Value); err == nil {
			return n
		}
		return v.Value
	case *ast.FloatValue:
		if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
			return f
		}
		return v.Value
	case *ast.EnumValue:
		return v.Value
	case *ast.ObjectValue:
		obj := make(map[string]interface{}, len(v.Fields))
		for _, field := range v.Fields {
			obj[field.Name.Value] = parseJSONLiteral(field.Value)
		}
		return obj
	case *ast.ListValue:
		list := make([]interface{}, 0, len(v.Values))
		for _, item := range v.Values {
			list = append(list, parseJSONLiteral(item))
		}
		return list
	default:
		return nil
	}
}
