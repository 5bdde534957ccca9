package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// FromAny converts a Go value into a typed Value.
//
// This exists as an adapter layer for user input and for the output of
// encoding/json when decoding into map[string]any.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int64(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("record: invalid number %q", x.String())
		}
		return Float(f), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(x), nil
	case int8:
		return Int64(int64(x)), nil
	case int16:
		return Int64(int64(x)), nil
	case int32:
		return Int64(int64(x)), nil
	case int64:
		return Int64(x), nil
	case uint:
		return Int64(int64(x)), nil
	case uint8:
		return Int64(int64(x)), nil
	case uint16:
		return Int64(int64(x)), nil
	case uint32:
		return Int64(int64(x)), nil
	case uint64:
		if x > uint64(math.MaxInt64) {
			// Avoid silently wrapping large values.
			return Value{}, fmt.Errorf("record: uint64 out of range: %d", x)
		}
		return Int64(int64(x)), nil
	case Record:
		return Rec(x), nil
	case map[string]any:
		rec, err := FromMap(x)
		if err != nil {
			return Value{}, err
		}
		return Rec(rec), nil
	case []Value:
		return Array(x), nil
	case []any:
		arr := make([]Value, len(x))
		for i := range x {
			vv, err := FromAny(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = vv
		}
		return Array(arr), nil
	case []string:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = String(x[i])
		}
		return Array(arr), nil
	case []int:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Int(x[i])
		}
		return Array(arr), nil
	case []map[string]any:
		arr := make([]Value, len(x))
		for i := range x {
			rec, err := FromMap(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = Rec(rec)
		}
		return Array(arr), nil
	default:
		return Value{}, fmt.Errorf("record: unsupported value type %T", v)
	}
}

// FromMap converts a map[string]any document to a typed Record.
func FromMap(m map[string]any) (Record, error) {
	r := make(Record, len(m))
	for k, v := range m {
		vv, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("record: key %q: %w", k, err)
		}
		r[k] = vv
	}
	return r, nil
}

// Decode parses a JSON object into a Record.
//
// Numbers decode via json.Number so integer payload fields stay exact
// instead of passing through float64.
func Decode(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("record: decode: %w", err)
	}
	return FromMap(m)
}
