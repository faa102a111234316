package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// newDecimalScalar serializes amounts as strings with two decimal places.
// Inputs may be strings or numbers.
func newDecimalScalar() *graphql.Scalar {
	return graphql.NewScalar(graphql.ScalarConfig{
		Name:        "Decimal",
		Description: "A fixed point decimal number serialized as a string.",
		Serialize: func(value interface{}) interface{} {
			switch v := value.(type) {
			case decimal.Decimal:
				return v.StringFixed(2)
			case *decimal.Decimal:
				if v == nil {
					return nil
				}
				return v.StringFixed(2)
			}
			return nil
		},
		ParseValue: func(value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				d, err := decimal.NewFromString(v)
				if err != nil {
					return nil
				}
				return d
			case float64:
				return decimal.NewFromFloat(v)
			case float32:
				return decimal.NewFromFloat32(v)
			case int:
				return decimal.NewFromInt(int64(v))
			case int64:
				return decimal.NewFromInt(v)
			}
			return nil
		},
		ParseLiteral: func(valueAST ast.Value) interface{} {
			switch v := valueAST.(type) {
			case *ast.StringValue:
				return parseDecimal(v.Value)
			case *ast.FloatValue:
				return parseDecimal(v.Value)
			case *ast.IntValue:
				return parseDecimal(v.Value)
			}
			return nil
		},
	})
}

func parseDecimal(s string) interface{} {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return d
}

// newDateScalar handles calendar dates in YYYY-MM-DD form, interpreted in UTC.
func newDateScalar() *graphql.Scalar {
	parse := func(s string) interface{} {
		t, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return nil
		}
		return t
	}

	return graphql.NewScalar(graphql.ScalarConfig{
		Name:        "Date",
		Description: "A calendar date in YYYY-MM-DD form.",
		Serialize: func(value interface{}) interface{} {
			if t, ok := value.(time.Time); ok {
				return t.UTC().Format(dateLayout)
			}
			return nil
		},
		ParseValue: func(value interface{}) interface{} {
			if s, ok := value.(string); ok {
				return parse(s)
			}
			return nil
		},
		ParseLiteral: func(valueAST ast.Value) interface{} {
			if v, ok := valueAST.(*ast.StringValue); ok {
				return parse(v.Value)
			}
			return nil
		},
	})
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// newDateTimeScalar handles RFC 3339 timestamps. A timestamp without a zone is read as UTC.
func newDateTimeScalar() *graphql.Scalar {
	parse := func(s string) interface{} {
		for _, layout := range dateTimeLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t.UTC()
			}
		}
		return nil
	}

	return graphql.NewScalar(graphql.ScalarConfig{
		Name:        "DateTime",
		Description: "An RFC 3339 timestamp.",
		Serialize: func(value interface{}) interface{} {
			if t, ok := value.(time.Time); ok {
				return t.UTC().Format(time.RFC3339Nano)
			}
			return nil
		},
		ParseValue: func(value interface{}) interface{} {
			if s, ok := value.(string); ok {
				return parse(s)
			}
			return nil
		},
		ParseLiteral: func(valueAST ast.Value) interface{} {
			if v, ok := valueAST.(*ast.StringValue); ok {
				return parse(v.Value)
			}
			return nil
		},
	})
}
