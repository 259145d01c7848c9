// Package mutation defines the row-mutation data model a
// MutationKeyEncoder consumes: typed scalar values, the two mutation
// shapes (Write and Delete), and the key-set variants a Delete may
// reference.
package mutation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/keysort/common/types/enum"
	"github.com/turtacn/keysort/internal/keyenc"
)

// Value is re-exported from internal/keyenc so callers outside this
// module never import the internal package directly; keyenc owns the
// single definition because its ScalarCodec is what actually consumes
// it.
type Value = keyenc.Value

var (
	NullValue    = keyenc.NullValue
	UnsetValue   = keyenc.UnsetValue
	BoolValue    = keyenc.BoolValue
	Int64Value   = keyenc.Int64Value
	Float64Value = keyenc.Float64Value
	StringValue  = keyenc.StringValue
	BytesValue   = keyenc.BytesValue
	DateValue    = keyenc.DateValue
	TimestampValue = keyenc.TimestampValue
	NumericValue   = keyenc.NumericValue
	PgNumericValue = keyenc.PgNumericValue
	JSONValue      = keyenc.JSONValue
)

// Mutation is implemented by Write and Delete.
type Mutation interface {
	TableName() string
	// Render produces a stable, canonical textual representation used
	// only as a last-resort tiebreaker in the unknown-table fallback
	// path; it is not a decoding format.
	Render() string
	isMutation()
}

// Write is an insert/update/replace row mutation.
type Write struct {
	Table        string
	Kind         enum.MutationKind
	ColumnValues map[string]Value
}

func (w *Write) TableName() string { return w.Table }
func (*Write) isMutation()         {}

func (w *Write) Render() string {
	names := make([]string, 0, len(w.ColumnValues))
	for name := range w.ColumnValues {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	fmt.Fprintf(&b, "Write{table=%s,kind=%s", w.Table, w.Kind)
	for _, name := range names {
		fmt.Fprintf(&b, ",%s=%s", name, renderValue(w.ColumnValues[name]))
	}
	b.WriteByte('}')
	return b.String()
}

// Delete removes the rows matching a KeySet from a table.
type Delete struct {
	Table  string
	KeySet KeySet
}

func (d *Delete) TableName() string { return d.Table }
func (*Delete) isMutation()         {}

func (d *Delete) Render() string {
	return fmt.Sprintf("Delete{table=%s,keySet=%s}", d.Table, d.KeySet.render())
}

// Key is an ordered tuple of scalar values, one per key part.
type Key []Value

// KeyRange is a contiguous span of keys; Start/End are themselves Keys
// and may be shorter than the full key part count (a prefix range).
type KeyRange struct {
	Start, End Key
}

// KeySetKind distinguishes which KeySet variant is populated.
type KeySetKind = enum.KeySetKind

// KeySet is one of All, Points, or Ranges. Exactly one constructor
// should be used to build a value of this type.
type KeySet struct {
	Kind   KeySetKind
	Keys   []Key
	Ranges []KeyRange
}

// AllKeys returns a KeySet matching every row in the table.
func AllKeys() KeySet { return KeySet{Kind: enum.KeySetAll} }

// PointKeys returns a KeySet of individual row keys.
func PointKeys(keys ...Key) KeySet { return KeySet{Kind: enum.KeySetPoints, Keys: keys} }

// RangeKeys returns a KeySet of key ranges.
func RangeKeys(ranges ...KeyRange) KeySet { return KeySet{Kind: enum.KeySetRanges, Ranges: ranges} }

func (ks KeySet) render() string {
	switch ks.Kind {
	case enum.KeySetAll:
		return "ALL"
	case enum.KeySetPoints:
		return fmt.Sprintf("POINTS(%d)", len(ks.Keys))
	case enum.KeySetRanges:
		return fmt.Sprintf("RANGES(%d)", len(ks.Ranges))
	default:
		return "UNKNOWN"
	}
}

func renderValue(v Value) string {
	switch v.Kind {
	case enum.KindNull:
		return "NULL"
	case enum.KindUnset:
		return "UNSET"
	case enum.KindBool:
		return fmt.Sprintf("%v", v.Bool)
	case enum.KindInt64:
		return fmt.Sprintf("%d", v.Int64)
	case enum.KindFloat64:
		return fmt.Sprintf("%v", v.Float64)
	case enum.KindString:
		return v.Str
	case enum.KindBytes:
		return fmt.Sprintf("%x", v.Bytes)
	case enum.KindDate:
		return fmt.Sprintf("date:%d", v.Date)
	case enum.KindTimestamp:
		return fmt.Sprintf("ts:%d.%09d", v.TimestampSeconds, v.TimestampNanos)
	case enum.KindNumeric:
		return v.Numeric.String()
	case enum.KindPgNumeric:
		return v.PgNumeric.String()
	case enum.KindJson:
		return v.Json
	default:
		return "?"
	}
}
