// Package types defines the tagged value variant that a decoded Wexpr
// document is built from, and that an encoder walks to produce text.
package types

import "bytes"

// Kind discriminates the seven Wexpr value variants.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindBinary
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBinary:
		return "binary"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a Wexpr value: a tagged union of Null, Bool, Number, String,
// Binary, Array, and Map. Callers switch on Kind and read the payload with
// the matching typed accessor; calling the wrong accessor for the current
// Kind panics, the same way a failed type assertion would.
type Value interface {
	Kind() Kind
	V() interface{}
	Bool() bool
	Number() float64
	Str() string
	Binary() []byte
	Array() Array
	Map() Map
	Equal(other Value) bool
}

// Array is an ordered sequence of values, encoded as "#( ... )".
type Array []Value

// KeyKind discriminates the two map key shapes Wexpr allows.
type KeyKind int

const (
	KeyString KeyKind = iota
	KeyNumber
)

// MapKey is a Wexpr map key: either a string or a number. Keeping the two
// distinct (rather than collapsing numeric keys to their decimal string
// form) lets the encoder tell "key 1" from the string "1" apart, and lets
// it run the arrayness test (see Array-shaped Map detection in the encoder)
// without false positives from stringly-typed keys.
type MapKey struct {
	kind KeyKind
	str  string
	num  float64
}

// StringKey builds a string-valued map key.
func StringKey(s string) MapKey { return MapKey{kind: KeyString, str: s} }

// NumberKey builds a number-valued map key.
func NumberKey(n float64) MapKey { return MapKey{kind: KeyNumber, num: n} }

func (k MapKey) Kind() KeyKind { return k.kind }
func (k MapKey) IsNumber() bool { return k.kind == KeyNumber }
func (k MapKey) Str() string    { return k.str }
func (k MapKey) Num() float64   { return k.num }

// Map is a mapping from MapKey to Value, encoded as "@( ... )" unless the
// encoder's arrayness test decides its keys are exactly 1..n.
type Map map[MapKey]Value

type value struct {
	kind Kind
	v    interface{}
}

var _ Value = (*value)(nil)

var nullSingleton Value = &value{kind: KindNull}

// NewNull returns the null value.
func NewNull() Value { return nullSingleton }

// NewBool returns a bool value.
func NewBool(b bool) Value { return &value{kind: KindBool, v: b} }

// NewNumber returns a number value.
func NewNumber(n float64) Value { return &value{kind: KindNumber, v: n} }

// NewString returns a string value.
func NewString(s string) Value { return &value{kind: KindString, v: s} }

// NewBinary returns a binary value. The payload is copied.
func NewBinary(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return &value{kind: KindBinary, v: cp}
}

// NewArray returns an array value wrapping items.
func NewArray(items ...Value) Value {
	arr := make(Array, len(items))
	copy(arr, items)
	return &value{kind: KindArray, v: arr}
}

// NewArrayFrom returns an array value wrapping an existing Array without
// copying it. Used by the parser, which builds Arrays incrementally.
func NewArrayFrom(items Array) Value { return &value{kind: KindArray, v: items} }

// NewMap returns a map value from a set of entries.
func NewMap(entries Map) Value {
	m := make(Map, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return &value{kind: KindMap, v: m}
}

// NewMapFrom returns a map value wrapping an existing Map without copying
// it. Used by the parser, which builds Maps incrementally.
func NewMapFrom(entries Map) Value { return &value{kind: KindMap, v: entries} }

func (v *value) Kind() Kind      { return v.kind }
func (v *value) V() interface{}  { return v.v }
func (v *value) Bool() bool      { return v.v.(bool) }
func (v *value) Number() float64 { return v.v.(float64) }
func (v *value) Str() string     { return v.v.(string) }
func (v *value) Binary() []byte  { return v.v.([]byte) }
func (v *value) Array() Array    { return v.v.(Array) }
func (v *value) Map() Map        { return v.v.(Map) }

// Equal reports structural equality up to map key ordering. It is exported
// under the name go-cmp looks for (Equal(T) bool) so tests can diff whole
// value trees with cmp.Diff instead of reflect.DeepEqual.
func (v *value) Equal(other Value) bool {
	if other == nil {
		return false
	}
	if v.kind != other.Kind() {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.v.(bool) == other.Bool()
	case KindNumber:
		return v.v.(float64) == other.Number()
	case KindString:
		return v.v.(string) == other.Str()
	case KindBinary:
		return bytes.Equal(v.v.([]byte), other.Binary())
	case KindArray:
		a, b := v.v.(Array), other.Array()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindMap:
		a, b := v.v.(Map), other.Map()
		if len(a) != len(b) {
			return false
		}
		for k, av := range a {
			bv, ok := b[k]
			if !ok || !av.Equal(bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
