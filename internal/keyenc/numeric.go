package keyenc

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"
	"github.com/shopspring/decimal"

	"github.com/turtacn/keysort/common/types/enum"
)

// Numeric/PgNumeric use a sign-magnitude scheme:
//
//  1. A sign byte: 0x01 negative-nonzero, 0x02 zero, 0x03
//     positive-nonzero. Ascending byte order on this one byte already
//     puts negatives before zero before positives.
//  2. For nonzero values, the magnitude is normalized to a decimal
//     digit run with no trailing zeros and a "most significant digit
//     place" integer (the power of ten of the leading digit),
//     appended as an Int64-encoded exponent followed by the digit run
//     terminated the same way WriteString terminates a string.
//  3. For negative values, the exponent+digit-run bytes are
//     complemented as a unit so that, within the negative bucket,
//     larger magnitudes (more negative numbers) produce smaller byte
//     sequences and therefore sort first.
//
// This is computed once to produce the correct ascending-direction
// encoding; WriteNumeric/WritePgNumeric apply the usual whole-value
// descending complement on top when the column direction calls for
// it, exactly like every other primitive in this package.
const (
	numericSignNegative byte = 0x01
	numericSignZero     byte = 0x02
	numericSignPositive byte = 0x03
)

// WriteNumeric appends a GoogleStandardSql NUMERIC value, sourced from
// shopspring/decimal.
func (w *Writer) WriteNumeric(d decimal.Decimal, dir enum.Direction) {
	coeff := d.Coefficient()
	w.writeSignMagnitudeDecimal(coeff.Sign(), new(big.Int).Abs(coeff), d.Exponent(), dir)
}

// WritePgNumeric appends a PostgreSql numeric value, sourced from
// cockroachdb/apd, which implements Postgres-compatible
// arbitrary-precision decimal arithmetic.
func (w *Writer) WritePgNumeric(d *apd.Decimal, dir enum.Direction) {
	coeff := new(big.Int).Set(d.Coeff.MathBigInt())
	sign := 1
	if d.Negative {
		sign = -1
	}
	if coeff.Sign() == 0 {
		sign = 0
	}
	w.writeSignMagnitudeDecimal(sign, coeff, d.Exponent, dir)
}

func (w *Writer) writeSignMagnitudeDecimal(sign int, absCoeff *big.Int, exponent int32, dir enum.Direction) {
	start := w.buf.Len()
	switch {
	case sign == 0:
		w.buf.WriteByte(numericSignZero)
	case sign < 0:
		w.buf.WriteByte(numericSignNegative)
		magStart := w.buf.Len()
		w.writeDecimalMagnitude(absCoeff, exponent)
		w.complementLast(w.buf.Len() - magStart)
	default:
		w.buf.WriteByte(numericSignPositive)
		w.writeDecimalMagnitude(absCoeff, exponent)
	}
	if dir == enum.Descending {
		w.complementLast(w.buf.Len() - start)
	}
}

// writeDecimalMagnitude appends the exponent and digit-run for a
// nonzero magnitude in plain ascending order: larger magnitudes
// produce larger byte sequences, with no sign handling.
func (w *Writer) writeDecimalMagnitude(absCoeff *big.Int, exponent int32) {
	digits := absCoeff.String()
	for len(digits) > 1 && digits[len(digits)-1] == '0' {
		digits = digits[:len(digits)-1]
		exponent++
	}
	msdPlace := int64(exponent) + int64(len(digits)) - 1
	w.WriteInt64(msdPlace, enum.Ascending)
	for i := 0; i < len(digits); i++ {
		w.buf.WriteByte(digits[i])
	}
	w.buf.WriteByte(0x00)
	w.buf.WriteByte(0x01)
}
