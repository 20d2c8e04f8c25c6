// Package value defines the Value tagged union carried by every
// PropertyValue in a GRC-20 edit, plus the DataType enum that tells the
// wire codec which payload shape a given property's values use.
//
// Value is a closed sum type represented as a flat struct tagged by Type,
// not an interface: the value decoder is a branch-free switch on the tag
// byte, and there is no virtual dispatch overhead per field.
package value

import "fmt"

// DataType identifies the payload shape of a Value. A property's DataType
// is recorded once in the edit's property dictionary (see package dict),
// not repeated per value, so the wire carries no per-value type tag.
type DataType uint8

const (
	Bool DataType = iota + 1
	Int64
	Float64
	Decimal
	Text
	Bytes
	Timestamp
	Date
	Point
	Embedding
)

// String renders the DataType name, matching the wire tag's identity.
func (t DataType) String() string {
	switch t {
	case Bool:
		return "Bool"
	case Int64:
		return "Int64"
	case Float64:
		return "Float64"
	case Decimal:
		return "Decimal"
	case Text:
		return "Text"
	case Bytes:
		return "Bytes"
	case Timestamp:
		return "Timestamp"
	case Date:
		return "Date"
	case Point:
		return "Point"
	case Embedding:
		return "Embedding"
	default:
		return fmt.Sprintf("DataType(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the ten recognized DataType values.
func (t DataType) Valid() bool {
	return t >= Bool && t <= Embedding
}

// DecimalMantissaTag selects how a Decimal value's mantissa is encoded.
type DecimalMantissaTag uint8

const (
	// DecimalMantissaInt64 stores the mantissa as a signed varint.
	DecimalMantissaInt64 DecimalMantissaTag = 0
	// DecimalMantissaBytes stores the mantissa as length-prefixed
	// big-endian bytes (two's complement), for magnitudes beyond int64.
	DecimalMantissaBytes DecimalMantissaTag = 1
)

// EmbeddingSubType selects the element encoding of an Embedding value.
type EmbeddingSubType uint8

const (
	EmbeddingF32    EmbeddingSubType = 0
	EmbeddingI8     EmbeddingSubType = 1
	EmbeddingBinary EmbeddingSubType = 2
)

// Valid reports whether s is one of the three recognized embedding
// sub-types.
func (s EmbeddingSubType) Valid() bool {
	return s == EmbeddingF32 || s == EmbeddingI8 || s == EmbeddingBinary
}

// ElementSize returns the per-dimension byte count for f32/i8 sub-types.
// It is meaningless for EmbeddingBinary, whose payload is bit-packed; use
// BinaryByteLen for that sub-type instead.
func (s EmbeddingSubType) ElementSize() int {
	switch s {
	case EmbeddingF32:
		return 4
	case EmbeddingI8:
		return 1
	default:
		return 0
	}
}

// BinaryByteLen returns ⌈dims/8⌉, the byte length of a bit-packed
// EmbeddingBinary payload for the given dimensionality.
func BinaryByteLen(dims int) int {
	return (dims + 7) / 8
}

// Value is the tagged union of every property value payload GRC-20 can
// carry. Exactly the fields relevant to Type are meaningful; the rest are
// left at their zero value.
type Value struct {
	Type DataType

	// Bool payload.
	Bool bool

	// Int64 and Timestamp payload (Timestamp is microseconds since the
	// Unix epoch).
	Int64 int64

	// Float64 payload, and the two Point axes.
	Float64    float64
	Lat, Lon   float64

	// Decimal payload.
	DecimalExponent    int32
	DecimalMantissaTag DecimalMantissaTag
	DecimalMantissaInt int64
	DecimalMantissa    []byte // used when DecimalMantissaTag == DecimalMantissaBytes

	// Text and Date payload (Date is an opaque ISO-8601 string, format
	// unvalidated by the codec).
	Text string

	// Bytes payload.
	Bytes []byte

	// Embedding payload.
	EmbeddingSubType EmbeddingSubType
	EmbeddingDims    int
	EmbeddingData    []byte
}

// NewBool constructs a Bool value.
func NewBool(b bool) Value { return Value{Type: Bool, Bool: b} }

// NewInt64 constructs an Int64 value.
func NewInt64(v int64) Value { return Value{Type: Int64, Int64: v} }

// NewFloat64 constructs a Float64 value.
func NewFloat64(v float64) Value { return Value{Type: Float64, Float64: v} }

// NewDecimalInt64 constructs a Decimal value whose mantissa fits in an
// int64: value = mantissa * 10^exponent.
func NewDecimalInt64(exponent int32, mantissa int64) Value {
	return Value{
		Type:               Decimal,
		DecimalExponent:    exponent,
		DecimalMantissaTag: DecimalMantissaInt64,
		DecimalMantissaInt: mantissa,
	}
}

// NewDecimalBytes constructs a Decimal value whose mantissa is a big-endian
// two's-complement byte string (for magnitudes beyond int64).
func NewDecimalBytes(exponent int32, mantissa []byte) Value {
	return Value{
		Type:               Decimal,
		DecimalExponent:    exponent,
		DecimalMantissaTag: DecimalMantissaBytes,
		DecimalMantissa:    mantissa,
	}
}

// NewText constructs a Text value.
func NewText(s string) Value { return Value{Type: Text, Text: s} }

// NewBytes constructs a Bytes value.
func NewBytes(b []byte) Value { return Value{Type: Bytes, Bytes: b} }

// NewTimestamp constructs a Timestamp value from microseconds since the
// Unix epoch.
func NewTimestamp(micros int64) Value { return Value{Type: Timestamp, Int64: micros} }

// NewDate constructs a Date value from an opaque ISO-8601 string.
func NewDate(iso8601 string) Value { return Value{Type: Date, Text: iso8601} }

// NewPoint constructs a Point value from latitude/longitude in degrees.
func NewPoint(lat, lon float64) Value { return Value{Type: Point, Lat: lat, Lon: lon} }

// NewEmbedding constructs an Embedding value from its sub-type, declared
// dimensionality, and raw element bytes.
func NewEmbedding(subType EmbeddingSubType, dims int, data []byte) Value {
	return Value{Type: Embedding, EmbeddingSubType: subType, EmbeddingDims: dims, EmbeddingData: data}
}

// Equal reports whether v and other carry the same Type and payload.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}

	switch v.Type {
	case Bool:
		return v.Bool == other.Bool
	case Int64, Timestamp:
		return v.Int64 == other.Int64
	case Float64:
		return v.Float64 == other.Float64
	case Decimal:
		if v.DecimalExponent != other.DecimalExponent || v.DecimalMantissaTag != other.DecimalMantissaTag {
			return false
		}
		if v.DecimalMantissaTag == DecimalMantissaInt64 {
			return v.DecimalMantissaInt == other.DecimalMantissaInt
		}
		return bytesEqual(v.DecimalMantissa, other.DecimalMantissa)
	case Text, Date:
		return v.Text == other.Text
	case Bytes:
		return bytesEqual(v.Bytes, other.Bytes)
	case Point:
		return v.Lat == other.Lat && v.Lon == other.Lon
	case Embedding:
		return v.EmbeddingSubType == other.EmbeddingSubType &&
			v.EmbeddingDims == other.EmbeddingDims &&
			bytesEqual(v.EmbeddingData, other.EmbeddingData)
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
