package keyenc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/keysort/common/errors"
	"github.com/turtacn/keysort/common/types/enum"
)

func TestEncodeScalarGoogleStandardSqlNullSortsFirst(t *testing.T) {
	wNull := NewWriter()
	require.NoError(t, EncodeScalar(wNull, enum.Int64, enum.GoogleStandardSql, NullValue(), enum.Ascending))

	wPresent := NewWriter()
	require.NoError(t, EncodeScalar(wPresent, enum.Int64, enum.GoogleStandardSql, Int64Value(-9223372036854775808), enum.Ascending))

	require.Negative(t, bytes.Compare(wNull.Bytes(), wPresent.Bytes()))
}

func TestEncodeScalarPostgreSqlNullSortsLast(t *testing.T) {
	wPresent := NewWriter()
	require.NoError(t, EncodeScalar(wPresent, enum.Int64, enum.PostgreSql, Int64Value(9223372036854775807), enum.Ascending))

	wNull := NewWriter()
	require.NoError(t, EncodeScalar(wNull, enum.Int64, enum.PostgreSql, NullValue(), enum.Ascending))

	require.Positive(t, bytes.Compare(wNull.Bytes(), wPresent.Bytes()))
}

func TestEncodeScalarNullPrecedesPresentRegardlessOfDirection(t *testing.T) {
	// The null/present boundary is a dialect property, not a
	// per-direction one: a descending GoogleStandardSql column still
	// sorts NULL before any present value, only the relative order
	// among present values reverses.
	wNull := NewWriter()
	require.NoError(t, EncodeScalar(wNull, enum.Int64, enum.GoogleStandardSql, NullValue(), enum.Descending))

	wPresent := NewWriter()
	require.NoError(t, EncodeScalar(wPresent, enum.Int64, enum.GoogleStandardSql, Int64Value(1), enum.Descending))

	require.Negative(t, bytes.Compare(wNull.Bytes(), wPresent.Bytes()),
		"descending GoogleStandardSql: null must still sort before present")
}

func TestEncodeScalarUnsetSortsLastAscendingFirstDescending(t *testing.T) {
	wUnset := NewWriter()
	require.NoError(t, EncodeScalar(wUnset, enum.String, enum.GoogleStandardSql, UnsetValue(), enum.Ascending))
	wPresent := NewWriter()
	require.NoError(t, EncodeScalar(wPresent, enum.String, enum.GoogleStandardSql, StringValue("zzz"), enum.Ascending))
	require.Positive(t, bytes.Compare(wUnset.Bytes(), wPresent.Bytes()))

	wUnsetDesc := NewWriter()
	require.NoError(t, EncodeScalar(wUnsetDesc, enum.String, enum.GoogleStandardSql, UnsetValue(), enum.Descending))
	wPresentDesc := NewWriter()
	require.NoError(t, EncodeScalar(wPresentDesc, enum.String, enum.GoogleStandardSql, StringValue("a"), enum.Descending))
	require.Negative(t, bytes.Compare(wUnsetDesc.Bytes(), wPresentDesc.Bytes()))
}

func TestEncodeScalarTypeMismatch(t *testing.T) {
	w := NewWriter()
	err := EncodeScalar(w, enum.Date, enum.GoogleStandardSql, StringValue("not a date"), enum.Ascending)
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.CodeTypeMismatch))
}
