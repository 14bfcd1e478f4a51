package osc

type TypeTag rune

const (
	TypeString  TypeTag = 's'
	TypeInt32   TypeTag = 'i'
	TypeInt64   TypeTag = 'h'
	TypeFloat32 TypeTag = 'f'
	TypeFloat64 TypeTag = 'd'
	TypeBlob    TypeTag = 'b'
	TypeTimeTag TypeTag = 't'
	TypeNil     TypeTag = 'N'
	TypeTrue    TypeTag = 'T'
	TypeFalse   TypeTag = 'F'
	TypeInvalid TypeTag = 0
)

// ToTypeTag returns the OSC TypeTag for the given argument.
// Returns TypeInvalid if the argument type is unsupported.
func ToTypeTag(arg interface{}) TypeTag {
	switch t := arg.(type) {
	case bool:
		if t {
			return TypeTrue
		}
		return TypeFalse
	case nil:
		return TypeNil
	case int32:
		return TypeInt32
	case float32:
		return TypeFloat32
	case string:
		return TypeString
	case []byte:
		return TypeBlob
	case int64:
		return TypeInt64
	case float64:
		return TypeFloat64
	case Timetag:
		return TypeTimeTag
	default:
		return TypeInvalid
	}
}

// argSize returns the fixed wire size of an argument with the given tag, or
// -1 if the size depends on the data (strings and blobs).
func argSize(t TypeTag) int {
	switch t {
	case TypeInt32, TypeFloat32:
		return bit32Size
	case TypeInt64, TypeFloat64, TypeTimeTag:
		return bit64Size
	case TypeNil, TypeTrue, TypeFalse:
		return 0
	default:
		return -1
	}
}
