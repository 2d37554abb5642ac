package recipes

import (
	"encoding/json"
	"time"
)

// ValueType identifies one of the six field value types a schema may declare.
type ValueType string

// Closed set of field value types.
const (
	TypeText      ValueType = "text"
	TypeNumber    ValueType = "number"
	TypeBoolean   ValueType = "boolean"
	TypeMoney     ValueType = "money"
	TypeURL       ValueType = "url"
	TypeTimestamp ValueType = "timestamp"
)

// ValueTypes returns the closed set of valid field value types.
func ValueTypes() []ValueType {
	return []ValueType{TypeText, TypeNumber, TypeBoolean, TypeMoney, TypeURL, TypeTimestamp}
}

// ValidValueType reports whether t is a member of the closed type set.
func ValidValueType(t ValueType) bool {
	switch t {
	case TypeText, TypeNumber, TypeBoolean, TypeMoney, TypeURL, TypeTimestamp:
		return true
	}
	return false
}

// Field describes one entry in a Recipe's field schema.
type Field struct {
	// Key is the field name extraction routines populate.
	Key string

	// Label is the human-readable name shown to users.
	Label string

	// Type declares what kind of Value the routine may emit for this field.
	Type ValueType

	// Primary marks the field callers should surface by default.
	Primary bool

	// Noisy marks fields whose value changes on nearly every fetch
	// (view counters and the like), so consumers can damp alerts on them.
	Noisy bool

	// Currency is the ISO 4217 code for money fields.
	Currency string
}

// Value is a tagged union over the six field value types. The zero Value is
// None, the explicit no-value sentinel: a routine stores None to record that
// it looked and found nothing, and Clean strips it before the map is
// returned to the caller.
type Value struct {
	typ ValueType
	str string
	num float64
	b   bool
}

// None is the explicit no-value sentinel.
var None = Value{}

// Text returns a text Value.
func Text(s string) Value { return Value{typ: TypeText, str: s} }

// Number returns a number Value.
func Number(f float64) Value { return Value{typ: TypeNumber, num: f} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{typ: TypeBoolean, b: v} }

// Money returns a money Value. The amount is a plain number in the field's
// declared currency unit, never cents, never a formatted string.
func Money(amount float64) Value { return Value{typ: TypeMoney, num: amount} }

// URL returns a url Value.
func URL(s string) Value { return Value{typ: TypeURL, str: s} }

// Timestamp returns a timestamp Value rendered as RFC 3339 in UTC.
func Timestamp(t time.Time) Value {
	return Value{typ: TypeTimestamp, str: t.UTC().Format(time.RFC3339)}
}

// Type returns the value's type tag. None values return the empty string.
func (v Value) Type() ValueType { return v.typ }

// IsNone reports whether the value is the no-value sentinel.
func (v Value) IsNone() bool { return v.typ == "" }

// String returns the content of text, url and timestamp values.
func (v Value) String() string { return v.str }

// Float returns the content of number and money values.
func (v Value) Float() float64 { return v.num }

// Bool returns the content of boolean values.
func (v Value) Bool() bool { return v.b }

// Interface returns the plain Go value: string for text/url/timestamp,
// float64 for number/money, bool for boolean, nil for None.
func (v Value) Interface() any {
	switch v.typ {
	case TypeText, TypeURL, TypeTimestamp:
		return v.str
	case TypeNumber, TypeMoney:
		return v.num
	case TypeBoolean:
		return v.b
	}
	return nil
}

// MarshalJSON emits the plain typed value, preserving the "money is a
// number, not a string" contract across serialization boundaries.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// FieldMap is the output of an extraction routine: field key to Value.
// A field is either present with a defined value or entirely omitted.
type FieldMap map[string]Value

// Fill sets key to v only if the key is absent, and reports whether it
// wrote. Pipeline stages only ever write through Fill, which is what makes
// the fallback pipeline strictly additive.
func (m FieldMap) Fill(key string, v Value) bool {
	if _, ok := m[key]; ok {
		return false
	}
	m[key] = v
	return true
}

// Has reports whether key carries any value, including None.
func (m FieldMap) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Clean removes every entry holding the None sentinel, so the map never
// leaves the engine with a present-but-empty field.
func (m FieldMap) Clean() {
	for k, v := range m {
		if v.IsNone() {
			delete(m, k)
		}
	}
}
