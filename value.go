package wexpr

import "github.com/wexpr/wexpr/types"

// Value, Kind, MapKey, Array, and Map live in the types subpackage so that
// internal/parser and internal/encoder can depend on them without creating
// an import cycle back through this facade package. wexpr re-exports them
// here so callers never need to import wexpr/types directly, mirroring how
// chaisql-chai's root-adjacent packages lean on its types package.
type (
	Value  = types.Value
	Kind   = types.Kind
	MapKey = types.MapKey
	Array  = types.Array
	Map    = types.Map
)

const (
	KindNull   = types.KindNull
	KindBool   = types.KindBool
	KindNumber = types.KindNumber
	KindString = types.KindString
	KindBinary = types.KindBinary
	KindArray  = types.KindArray
	KindMap    = types.KindMap
)

// NewNull returns the null value.
func NewNull() Value { return types.NewNull() }

// NewBool returns a bool value.
func NewBool(b bool) Value { return types.NewBool(b) }

// NewNumber returns a number value.
func NewNumber(n float64) Value { return types.NewNumber(n) }

// NewString returns a string value.
func NewString(s string) Value { return types.NewString(s) }

// NewBinary returns a binary value, copying b.
func NewBinary(b []byte) Value { return types.NewBinary(b) }

// NewArray returns an array value built from items, following the
// teacher's (alttpo-sexp's) MustList-style variadic constructor.
func NewArray(items ...Value) Value { return types.NewArray(items...) }

// NewMap returns a map value built from entries.
func NewMap(entries Map) Value { return types.NewMap(entries) }

// StringKey builds a string-valued map key.
func StringKey(s string) MapKey { return types.StringKey(s) }

// NumberKey builds a number-valued map key.
func NumberKey(n float64) MapKey { return types.NumberKey(n) }
