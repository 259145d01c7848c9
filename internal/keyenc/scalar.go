package keyenc

import (
	"fmt"

	"github.com/turtacn/keysort/common/constants"
	"github.com/turtacn/keysort/common/errors"
	"github.com/turtacn/keysort/common/types/enum"
)

// dialectNullTags returns the (present, null) tag byte pair for a
// dialect. These are fixed regardless of column direction: the
// null/present boundary is a dialect property, not a per-direction
// one. Only the value bytes that follow a present tag carry the
// column's own ascending/descending treatment.
func dialectNullTags(dialect enum.Dialect) (present, null byte) {
	if dialect == enum.PostgreSql {
		return constants.NullTagPostgreSqlPresent, constants.NullTagPostgreSqlNull
	}
	return constants.NullTagGoogleStandardSqlPresent, constants.NullTagGoogleStandardSqlNull
}

// EncodeScalar appends one column's value to w. Unset writes a single
// direction-dependent sentinel byte and nothing else. Otherwise it
// writes a one-byte null/present tag chosen by dialect, followed, for
// present values, by the primitive encoding that typ selects.
func EncodeScalar(w *Writer, typ enum.ColumnType, dialect enum.Dialect, v Value, dir enum.Direction) error {
	if v.Kind == enum.KindUnset {
		if dir == enum.Descending {
			w.WriteFixedBytes([]byte{constants.UnsetTagDescending})
		} else {
			w.WriteFixedBytes([]byte{constants.UnsetTagAscending})
		}
		return nil
	}

	present, null := dialectNullTags(dialect)
	if v.Kind == enum.KindNull {
		w.WriteFixedBytes([]byte{null})
		return nil
	}
	w.WriteFixedBytes([]byte{present})

	switch typ {
	case enum.Bool:
		if v.Kind != enum.KindBool {
			return typeMismatch(typ, v.Kind)
		}
		w.WriteBool(v.Bool, dir)
	case enum.Int64:
		if v.Kind != enum.KindInt64 {
			return typeMismatch(typ, v.Kind)
		}
		w.WriteInt64(v.Int64, dir)
	case enum.Float64:
		if v.Kind != enum.KindFloat64 {
			return typeMismatch(typ, v.Kind)
		}
		w.WriteFloat64(v.Float64, dir)
	case enum.String:
		if v.Kind != enum.KindString {
			return typeMismatch(typ, v.Kind)
		}
		w.WriteString(v.Str, dir)
	case enum.Bytes:
		if v.Kind != enum.KindBytes {
			return typeMismatch(typ, v.Kind)
		}
		w.WriteBytes(v.Bytes, dir)
	case enum.Date:
		if v.Kind != enum.KindDate {
			return typeMismatch(typ, v.Kind)
		}
		w.WriteDate(v.Date, dir)
	case enum.Timestamp:
		if v.Kind != enum.KindTimestamp {
			return typeMismatch(typ, v.Kind)
		}
		w.WriteTimestamp(v.TimestampSeconds, v.TimestampNanos, dir)
	case enum.Numeric:
		if v.Kind != enum.KindNumeric {
			return typeMismatch(typ, v.Kind)
		}
		w.WriteNumeric(v.Numeric, dir)
	case enum.PgNumeric:
		if v.Kind != enum.KindPgNumeric {
			return typeMismatch(typ, v.Kind)
		}
		w.WritePgNumeric(v.PgNumeric, dir)
	case enum.Json:
		if v.Kind != enum.KindJson {
			return typeMismatch(typ, v.Kind)
		}
		w.WriteJSON(v.Json, dir)
	default:
		return errors.New(errors.CategoryEncode, errors.CodeUnknownTypeString,
			fmt.Sprintf("unknown column type %q", typ), nil)
	}
	return nil
}

func typeMismatch(typ enum.ColumnType, kind enum.ValueKind) error {
	return errors.New(errors.CategoryEncode, errors.CodeTypeMismatch,
		fmt.Sprintf("value kind %v does not match column type %v", kind, typ), nil)
}
