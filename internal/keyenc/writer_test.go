package keyenc

import (
	"bytes"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/keysort/common/types/enum"
)

func encodeInt64(v int64, dir enum.Direction) []byte {
	w := NewWriter()
	w.WriteInt64(v, dir)
	return w.Bytes()
}

func TestWriteInt64AscendingOrder(t *testing.T) {
	values := []int64{math.MinInt64, -1000, -1, 0, 1, 1000, math.MaxInt64}
	for i := 0; i+1 < len(values); i++ {
		a := encodeInt64(values[i], enum.Ascending)
		b := encodeInt64(values[i+1], enum.Ascending)
		require.Negative(t, bytes.Compare(a, b), "expected %d < %d", values[i], values[i+1])
	}
}

func TestWriteInt64DescendingReverses(t *testing.T) {
	a := encodeInt64(1, enum.Descending)
	b := encodeInt64(2, enum.Descending)
	require.Positive(t, bytes.Compare(a, b), "descending: encode(1) should sort after encode(2)")
}

func TestWriteFloat64Order(t *testing.T) {
	values := []float64{math.Inf(-1), -1e300, -1.0, -0.0, 0.0, 1.0, 1e300, math.Inf(1), math.NaN()}
	var encoded [][]byte
	for _, v := range values {
		w := NewWriter()
		w.WriteFloat64(v, enum.Ascending)
		encoded = append(encoded, w.Bytes())
	}
	for i := 0; i+1 < len(encoded); i++ {
		require.LessOrEqualf(t, bytes.Compare(encoded[i], encoded[i+1]), 0,
			"index %d (%v) should sort <= index %d (%v)", i, values[i], i+1, values[i+1])
	}
}

func TestWriteFloat64NegativeZeroEqualsPositiveZero(t *testing.T) {
	w1 := NewWriter()
	w1.WriteFloat64(math.Copysign(0, -1), enum.Ascending)
	w2 := NewWriter()
	w2.WriteFloat64(0, enum.Ascending)
	require.Equal(t, w1.Bytes(), w2.Bytes())
}

func TestWriteFloat64NaNIsCanonicalAndGreatestThanInf(t *testing.T) {
	w1 := NewWriter()
	w1.WriteFloat64(math.NaN(), enum.Ascending)
	w2 := NewWriter()
	w2.WriteFloat64(math.Float64frombits(0xfff8000000000123), enum.Ascending) // different NaN payload, also negative sign bit
	require.Equal(t, w1.Bytes(), w2.Bytes(), "all NaN payloads collapse to the same canonical encoding")

	inf := NewWriter()
	inf.WriteFloat64(math.Inf(1), enum.Ascending)
	require.Equal(t, 1, bytes.Compare(w1.Bytes(), inf.Bytes()), "NaN must sort above +Inf")
}

func TestWriteStringEscapingIsPrefixFree(t *testing.T) {
	w1 := NewWriter()
	w1.WriteString("a", enum.Ascending)
	w2 := NewWriter()
	w2.WriteString("a\x00", enum.Ascending)

	b1, b2 := w1.Bytes(), w2.Bytes()
	require.False(t, len(b1) < len(b2) && bytes.Equal(b2[:len(b1)], b1),
		"encoding of \"a\" must not be a proper prefix of encoding of \"a\\x00\"")
}

func TestWriteStringOrderMatchesGoStringOrder(t *testing.T) {
	inputs := []string{"", "a", "aa", "ab", "b", "b\x00c", "ba"}
	shuffled := append([]string(nil), inputs...)
	sort.Sort(sort.Reverse(sort.StringSlice(shuffled)))

	type pair struct {
		s   string
		enc []byte
	}
	pairs := make([]pair, len(shuffled))
	for i, s := range shuffled {
		w := NewWriter()
		w.WriteString(s, enum.Ascending)
		pairs[i] = pair{s: s, enc: w.Bytes()}
	}
	sort.Slice(pairs, func(i, j int) bool { return bytes.Compare(pairs[i].enc, pairs[j].enc) < 0 })

	got := make([]string, len(pairs))
	for i, p := range pairs {
		got[i] = p.s
	}
	require.Equal(t, inputs, got)
}

func TestWriteDescendingComplementsWholeSpan(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true, enum.Descending)
	require.Equal(t, []byte{0xFE}, w.Bytes())
}

func TestWriteTimestampOrdersBySecondsThenNanos(t *testing.T) {
	earlier := NewWriter()
	earlier.WriteTimestamp(100, 500, enum.Ascending)
	later := NewWriter()
	later.WriteTimestamp(100, 600, enum.Ascending)
	require.Negative(t, bytes.Compare(earlier.Bytes(), later.Bytes()))

	muchLater := NewWriter()
	muchLater.WriteTimestamp(101, 0, enum.Ascending)
	require.Negative(t, bytes.Compare(later.Bytes(), muchLater.Bytes()))
}
