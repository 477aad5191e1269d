package common

import (
	"math"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

// Money is stored as NUMERIC(10,2) in Postgres and carried through the
// application as pgtype.Numeric. Conversion to float64 happens only when a
// JSON response is built, so aggregated totals never accumulate binary
// floating-point drift.

// CentsFromFloat rounds a currency amount to whole cents.
func CentsFromFloat(v float64) int64 {
	return int64(math.Round(v * 100))
}

// NumericFromFloat builds a two-decimal pgtype.Numeric from a float amount.
func NumericFromFloat(v float64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(CentsFromFloat(v)), Exp: -2, Valid: true}
}

// NumericToFloat converts a pgtype.Numeric to float64 for serialization.
// Invalid values come out as 0.
func NumericToFloat(n pgtype.Numeric) float64 {
	if !n.Valid {
		return 0
	}
	f, err := n.Float64Value()
	if err != nil {
		return 0
	}
	return f.Float64
}

// NumericCents converts a pgtype.Numeric to whole cents for exact comparison.
func NumericCents(n pgtype.Numeric) int64 {
	return CentsFromFloat(NumericToFloat(n))
}
