package wire

import (
	"github.com/Apex-Algorithms/grc-20/errs"
	"github.com/Apex-Algorithms/grc-20/limits"
	"github.com/Apex-Algorithms/grc-20/value"
)

// EncodeValue appends v's payload, dispatched on v.Type. The type tag
// itself is not written here: a property's DataType is recorded once in
// the properties dictionary (see package dict), so no per-value type byte
// is ever carried on the wire.
func EncodeValue(w *Writer, v value.Value) error {
	switch v.Type {
	case value.Bool:
		w.WriteBool(v.Bool)

		return nil

	case value.Int64, value.Timestamp:
		w.WriteVarint(v.Int64)

		return nil

	case value.Float64:
		return w.WriteFloat64("value.float64", v.Float64)

	case value.Decimal:
		w.WriteVarint(int64(v.DecimalExponent))
		w.WriteByte(byte(v.DecimalMantissaTag))

		switch v.DecimalMantissaTag {
		case value.DecimalMantissaInt64:
			w.WriteVarint(v.DecimalMantissaInt)
		default:
			w.WriteBytes(v.DecimalMantissa)
		}

		return nil

	case value.Text, value.Date:
		w.WriteString(v.Text)

		return nil

	case value.Bytes:
		w.WriteBytes(v.Bytes)

		return nil

	case value.Point:
		if v.Lat < -90 || v.Lat > 90 {
			return errs.PointOutOfRange("latitude", v.Lat)
		}
		if v.Lon < -180 || v.Lon > 180 {
			return errs.PointOutOfRange("longitude", v.Lon)
		}
		if err := w.WriteFloat64("value.point.latitude", v.Lat); err != nil {
			return err
		}

		return w.WriteFloat64("value.point.longitude", v.Lon)

	case value.Embedding:
		return encodeEmbedding(w, v)

	default:
		return errs.InvalidDataType(byte(v.Type))
	}
}

func encodeEmbedding(w *Writer, v value.Value) error {
	if !v.EmbeddingSubType.Valid() {
		return errs.InvalidEmbeddingSubType(byte(v.EmbeddingSubType))
	}

	required := embeddingByteLen(v.EmbeddingSubType, v.EmbeddingDims)
	if len(v.EmbeddingData) != required {
		return errs.LengthExceedsLimit("value.embedding.data", len(v.EmbeddingData), required)
	}

	w.WriteByte(byte(v.EmbeddingSubType))
	w.WriteUvarint(uint64(v.EmbeddingDims))
	w.WriteRaw(v.EmbeddingData)

	return nil
}

func embeddingByteLen(subType value.EmbeddingSubType, dims int) int {
	if subType == value.EmbeddingBinary {
		return value.BinaryByteLen(dims)
	}

	return dims * subType.ElementSize()
}

// DecodeValue reads a value payload for dataType. lim bounds the string,
// bytes, and embedding-dimension lengths accepted.
func DecodeValue(r *Reader, dataType value.DataType, lim limits.Limits) (value.Value, error) {
	switch dataType {
	case value.Bool:
		b, err := r.ReadBool("value.bool")
		if err != nil {
			return value.Value{}, err
		}

		return value.NewBool(b), nil

	case value.Int64:
		n, err := r.ReadVarint("value.int64")
		if err != nil {
			return value.Value{}, err
		}

		return value.NewInt64(n), nil

	case value.Timestamp:
		n, err := r.ReadVarint("value.timestamp")
		if err != nil {
			return value.Value{}, err
		}

		return value.NewTimestamp(n), nil

	case value.Float64:
		f, err := r.ReadFloat64("value.float64")
		if err != nil {
			return value.Value{}, err
		}

		return value.NewFloat64(f), nil

	case value.Decimal:
		return decodeDecimal(r, lim)

	case value.Text:
		s, err := r.ReadString("value.text", lim.MaxStringLen)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewText(s), nil

	case value.Date:
		s, err := r.ReadString("value.date", lim.MaxStringLen)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewDate(s), nil

	case value.Bytes:
		b, err := r.ReadBytes("value.bytes", lim.MaxBytesLen)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewBytes(append([]byte(nil), b...)), nil

	case value.Point:
		return decodePoint(r)

	case value.Embedding:
		return decodeEmbedding(r, lim)

	default:
		return value.Value{}, errs.InvalidDataType(byte(dataType))
	}
}

func decodeDecimal(r *Reader, lim limits.Limits) (value.Value, error) {
	exponent, err := r.ReadVarint("value.decimal.exponent")
	if err != nil {
		return value.Value{}, err
	}

	tagByte, err := r.ReadByte("value.decimal.mantissa_tag")
	if err != nil {
		return value.Value{}, err
	}

	switch value.DecimalMantissaTag(tagByte) {
	case value.DecimalMantissaInt64:
		mantissa, err := r.ReadVarint("value.decimal.mantissa")
		if err != nil {
			return value.Value{}, err
		}

		return value.NewDecimalInt64(int32(exponent), mantissa), nil

	case value.DecimalMantissaBytes:
		mantissa, err := r.ReadBytes("value.decimal.mantissa", lim.MaxBytesLen)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewDecimalBytes(int32(exponent), append([]byte(nil), mantissa...)), nil

	default:
		return value.Value{}, errs.InvalidDataType(tagByte)
	}
}

func decodePoint(r *Reader) (value.Value, error) {
	lat, err := r.ReadFloat64("value.point.latitude")
	if err != nil {
		return value.Value{}, err
	}

	lon, err := r.ReadFloat64("value.point.longitude")
	if err != nil {
		return value.Value{}, err
	}

	if lat < -90 || lat > 90 {
		return value.Value{}, errs.PointOutOfRange("latitude", lat)
	}
	if lon < -180 || lon > 180 {
		return value.Value{}, errs.PointOutOfRange("longitude", lon)
	}

	return value.NewPoint(lat, lon), nil
}

func decodeEmbedding(r *Reader, lim limits.Limits) (value.Value, error) {
	subTypeByte, err := r.ReadByte("value.embedding.sub_type")
	if err != nil {
		return value.Value{}, err
	}

	subType := value.EmbeddingSubType(subTypeByte)
	if !subType.Valid() {
		return value.Value{}, errs.InvalidEmbeddingSubType(subTypeByte)
	}

	dims, err := r.ReadUvarint("value.embedding.dims")
	if err != nil {
		return value.Value{}, err
	}

	if dims > uint64(lim.MaxEmbeddingDims) {
		return value.Value{}, errs.LengthExceedsLimit("value.embedding.dims", int(dims), lim.MaxEmbeddingDims)
	}

	required := embeddingByteLen(subType, int(dims))

	data, err := r.ReadRaw("value.embedding.data", required)
	if err != nil {
		return value.Value{}, err
	}

	return value.NewEmbedding(subType, int(dims), append([]byte(nil), data...)), nil
}
