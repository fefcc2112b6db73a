package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/sant0-9/divimap/internal/geo"
)

// ParseReply turns a raw model reply into an Intent. It returns a *ParseError
// when the cleaned text is not JSON and a *SchemaError when it is JSON of the
// wrong shape.
func ParseReply(raw string) (Intent, error) {
	cleaned := Clean(raw)

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return nil, &ParseError{RawText: raw, CleanedText: cleaned, Err: err}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, schemaErrorf("expected a JSON object, got %s", jsonType(v))
	}

	tipo, ok := obj["tipo"].(string)
	if !ok {
		return nil, schemaErrorf(`missing string field "tipo"`)
	}

	switch Kind(tipo) {
	case KindFilter:
		return parseFilter(obj)
	case KindCoordinate:
		return parseCoordinate(obj)
	default:
		return nil, schemaErrorf("unknown tipo %q", tipo)
	}
}

func parseFilter(obj map[string]any) (Intent, error) {
	rawFilters, ok := obj["filtros"].([]any)
	if !ok {
		return nil, schemaErrorf(`"filtros" must be an array`)
	}

	filters := make([]Filter, 0, len(rawFilters))
	for i, rf := range rawFilters {
		fo, ok := rf.(map[string]any)
		if !ok {
			return nil, schemaErrorf("filtros[%d] must be an object", i)
		}
		campo, ok := fo["campo"].(string)
		if !ok {
			return nil, schemaErrorf(`filtros[%d] is missing string field "campo"`, i)
		}
		if !geo.IsField(campo) {
			return nil, schemaErrorf("filtros[%d] uses unknown field %q", i, campo)
		}
		valor, err := filterValue(fo["valor"])
		if err != nil {
			return nil, schemaErrorf("filtros[%d]: %v", i, err)
		}
		filters = append(filters, Filter{Field: campo, Value: valor})
	}
	return FilterIntent{Filters: filters}, nil
}

// filterValue accepts strings and, for code fields the model sometimes emits
// unquoted, numbers rendered in their shortest decimal form.
func filterValue(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case nil:
		return "", errors.New(`missing field "valor"`)
	default:
		return "", fmt.Errorf(`"valor" must be a string, got %s`, jsonType(v))
	}
}

func parseCoordinate(obj map[string]any) (Intent, error) {
	x, ok := obj["x"].(float64)
	if !ok {
		return nil, schemaErrorf(`"x" must be a number`)
	}
	y, ok := obj["y"].(float64)
	if !ok {
		return nil, schemaErrorf(`"y" must be a number`)
	}
	epsg, ok := obj["epsg"].(float64)
	if !ok {
		return nil, schemaErrorf(`"epsg" must be a number`)
	}
	if epsg != math.Trunc(epsg) || math.Abs(epsg) > math.MaxInt32 {
		return nil, schemaErrorf(`"epsg" must be an integer code, got %v`, epsg)
	}
	return CoordinateIntent{X: x, Y: y, EPSG: int(epsg)}, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return "object"
	}
}
