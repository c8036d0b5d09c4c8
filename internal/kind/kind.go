// Package kind classifies a Go any value into the codec's closed value-kind
// set via reflect.Kind dispatch, with one exception: extension-type lookup
// must be tried before this classification runs, since a registered type's
// Kind would otherwise be Struct/Ptr/whatever its underlying representation
// is, not Ext.
package kind

import "reflect"

// Kind is one member of the codec's closed value-kind set.
type Kind int

const (
	Invalid Kind = iota
	Null
	Bool
	UInt
	NInt
	Float
	Str
	Bin
	Array
	Map
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case UInt:
		return "UInt"
	case NInt:
		return "NInt"
	case Float:
		return "Float"
	case Str:
		return "Str"
	case Bin:
		return "Bin"
	case Array:
		return "Array"
	case Map:
		return "Map"
	default:
		return "Unsupported"
	}
}

var byteSliceType = reflect.TypeOf([]byte(nil))

// IsByteSlice reports whether rt is exactly []byte. Classify treats every
// slice or array whose element kind is uint8 as Bin, not only this type.
func IsByteSlice(rt reflect.Type) bool {
	return rt == byteSliceType
}

// Classify determines rv's value kind. Callers must first rule out nil,
// and should have already consulted the extensions registry for rv's type —
// Classify never returns an Ext kind itself, since Ext membership is a
// registration fact, not a reflect.Kind.
func Classify(rv reflect.Value) Kind {
	switch rv.Kind() {
	case reflect.Invalid:
		return Null
	case reflect.Bool:
		return Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < 0 {
			return NInt
		}

		return UInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return UInt
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.String:
		return Str
	case reflect.Slice:
		if rv.IsNil() {
			return Null
		}

		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bin
		}

		return Array
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bin
		}

		return Array
	case reflect.Map:
		if rv.IsNil() {
			return Null
		}

		return Map
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null
		}

		return Classify(rv.Elem())
	default:
		return Unsupported
	}
}
