package record

import (
	"strconv"
	"strings"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a JSON null.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
	// KindRecord represents a nested record.
	KindRecord
	// KindArray represents an array value.
	KindArray
)

// Value is a small typed value decoded from an API payload.
//
// The representation is designed to make field extraction fast and
// predictable: no reflection and no fmt-based stringification. Integers and
// floats are kept apart so that exact integer payload fields (trophies,
// ranks, counts) never round-trip through float64.
type Value struct {
	kind Kind
	i64  int64
	f64  float64
	s    string
	b    bool
	r    Record
	a    []Value
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is an explicit JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt returns the integer value if Kind is KindInt.
func (v Value) AsInt() (int, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return int(v.i64), true
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f64, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsRecord returns the nested record if Kind is KindRecord.
func (v Value) AsRecord() (Record, bool) {
	if v.kind != KindRecord {
		return nil, false
	}
	return v.r, true
}

// AsArray returns the array value if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.a, true
}

// String returns a human-readable form of the value for logs and errors.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInt:
		return strconv.FormatInt(v.i64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindRecord:
		return "record(" + strconv.Itoa(len(v.r)) + " keys)"
	case KindArray:
		parts := make([]string, len(v.a))
		for i := range v.a {
			parts[i] = v.a[i].String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "invalid"
	}
}

// Null returns a null Value.
func Null() Value { return Value{kind: KindNull} }

// Int returns an integer Value.
func Int(v int) Value { return Value{kind: KindInt, i64: int64(v)} }

// Int64 returns an int64 Value.
func Int64(v int64) Value { return Value{kind: KindInt, i64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{kind: KindFloat, f64: v} }

// String returns a string Value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Rec returns a nested record Value.
func Rec(v Record) Value { return Value{kind: KindRecord, r: v} }

// Array returns an array Value.
func Array(v []Value) Value { return Value{kind: KindArray, a: v} }

// Record is a decoded key-value payload with get-or-absent semantics.
//
// All accessors treat a missing key, an explicit null and a kind mismatch
// identically: the field is absent. They never fail. A nil Record behaves
// like an empty one, so callers may pass the result of a failed sub-record
// extraction straight through.
type Record map[string]Value

// Get returns the raw value for key. ok is false if the key is missing or
// the value is null.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r[key]
	if !ok || v.kind == KindNull || v.kind == KindInvalid {
		return Value{}, false
	}
	return v, true
}

// GetInt returns the integer field for key, or absent.
func (r Record) GetInt(key string) (int, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// GetString returns the string field for key, or absent.
func (r Record) GetString(key string) (string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// GetBool returns the boolean field for key, or absent.
func (r Record) GetBool(key string) (bool, bool) {
	v, ok := r.Get(key)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// GetRecord returns the nested record for key, or nil if absent.
func (r Record) GetRecord(key string) Record {
	v, ok := r.Get(key)
	if !ok {
		return nil
	}
	rec, _ := v.AsRecord()
	return rec
}

// GetArray returns the array field for key, or nil if absent.
func (r Record) GetArray(key string) []Value {
	v, ok := r.Get(key)
	if !ok {
		return nil
	}
	a, _ := v.AsArray()
	return a
}

// Equal reports whether two values are equal.
//
// Integers and floats cross-compare by numeric value, so a filter built with
// Int(50) matches a payload field decoded as Float(50). Records and arrays
// compare element-wise.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		// Numeric cross-comparison.
		if a.kind == KindInt && b.kind == KindFloat {
			return float64(a.i64) == b.f64
		}
		if a.kind == KindFloat && b.kind == KindInt {
			return a.f64 == float64(b.i64)
		}
		return false
	}

	switch a.kind {
	case KindNull:
		return true
	case KindInt:
		return a.i64 == b.i64
	case KindFloat:
		return a.f64 == b.f64
	case KindString:
		return a.s == b.s
	case KindBool:
		return a.b == b.b
	case KindRecord:
		if len(a.r) != len(b.r) {
			return false
		}
		for k, av := range a.r {
			bv, ok := b.r[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.a) != len(b.a) {
			return false
		}
		for i := range a.a {
			if !Equal(a.a[i], b.a[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
