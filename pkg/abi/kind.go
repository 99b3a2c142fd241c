package abi

// ParameterKind is the raw type name of a parameter as written in the
// interface document. Names are case-sensitive; unrecognized names are kept
// as-is and classify as ClassOther.
type ParameterKind string

// Recognized parameter kinds.
const (
	KindBoolean   ParameterKind = "Boolean"
	KindInteger   ParameterKind = "Integer"
	KindInt       ParameterKind = "Int"
	KindLong      ParameterKind = "Long"
	KindIntArray  ParameterKind = "IntArray"
	KindLongArray ParameterKind = "LongArray"
	KindByteArray ParameterKind = "ByteArray"
	KindString    ParameterKind = "String"
)

// KindClass groups parameter kinds that share a value representation.
type KindClass int

const (
	ClassOther KindClass = iota
	ClassBoolean
	ClassInteger
	ClassIntegerArray
	ClassByteArray
	ClassString
)

// String returns the class name.
func (c KindClass) String() string {
	switch c {
	case ClassBoolean:
		return "boolean"
	case ClassInteger:
		return "integer"
	case ClassIntegerArray:
		return "integer-array"
	case ClassByteArray:
		return "byte-array"
	case ClassString:
		return "string"
	default:
		return "other"
	}
}

// Class returns the value class of k.
func (k ParameterKind) Class() KindClass {
	switch k {
	case KindBoolean:
		return ClassBoolean
	case KindInteger, KindInt, KindLong:
		return ClassInteger
	case KindIntArray, KindLongArray:
		return ClassIntegerArray
	case KindByteArray:
		return ClassByteArray
	case KindString:
		return ClassString
	default:
		return ClassOther
	}
}

// String returns the raw kind name.
func (k ParameterKind) String() string {
	return string(k)
}
