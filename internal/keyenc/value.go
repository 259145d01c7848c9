package keyenc

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/shopspring/decimal"

	"github.com/turtacn/keysort/common/types/enum"
)

// Value is a typed column value ready for ScalarCodec to encode. Kind
// selects which field is populated; for KindNull and KindUnset none of
// the value fields are read.
type Value struct {
	Kind enum.ValueKind

	Bool             bool
	Int64            int64
	Float64          float64
	Str              string
	Bytes            []byte
	Date             int32
	TimestampSeconds int64
	TimestampNanos   int64
	Numeric          decimal.Decimal
	PgNumeric        *apd.Decimal
	Json             string
}

// NullValue returns a Value representing SQL NULL.
func NullValue() Value { return Value{Kind: enum.KindNull} }

// UnsetValue returns a Value representing an omitted key column on a
// Write mutation.
func UnsetValue() Value { return Value{Kind: enum.KindUnset} }

func BoolValue(v bool) Value    { return Value{Kind: enum.KindBool, Bool: v} }
func Int64Value(v int64) Value  { return Value{Kind: enum.KindInt64, Int64: v} }
func Float64Value(v float64) Value { return Value{Kind: enum.KindFloat64, Float64: v} }
func StringValue(v string) Value   { return Value{Kind: enum.KindString, Str: v} }
func BytesValue(v []byte) Value    { return Value{Kind: enum.KindBytes, Bytes: v} }
func DateValue(days int32) Value   { return Value{Kind: enum.KindDate, Date: days} }

func TimestampValue(seconds, nanos int64) Value {
	return Value{Kind: enum.KindTimestamp, TimestampSeconds: seconds, TimestampNanos: nanos}
}

func NumericValue(d decimal.Decimal) Value { return Value{Kind: enum.KindNumeric, Numeric: d} }

func PgNumericValue(d *apd.Decimal) Value { return Value{Kind: enum.KindPgNumeric, PgNumeric: d} }

func JSONValue(text string) Value { return Value{Kind: enum.KindJson, Json: text} }
