// Package format renders estimator figures as display strings.
//
// Rounding works on the exact decimal value of the float64 and breaks ties
// away from zero, so 10.125 becomes "10.13" and 0.25 becomes "0.3". Zero,
// including negative zero, is printed without a sign.
package format

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// Values at or above this magnitude are printed in exponent form.
const exponentThreshold = 1e21

// Dollars returns "$" followed by the amount rounded to two decimals with no
// grouping. A negative amount keeps its sign after the symbol ("$-12.50").
func Dollars(amount float64) string {
	return "$" + Fixed(amount, 2)
}

// Months returns the value rounded to one decimal followed by " months".
func Months(value float64) string {
	return Fixed(value, 1) + " months"
}

// Percent returns the value rounded to one decimal followed by "%".
func Percent(value float64) string {
	return Fixed(value, 1) + "%"
}

// Fixed formats value with exactly places digits after the decimal point.
func Fixed(value float64, places int32) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	case math.Abs(value) >= exponentThreshold:
		return strconv.FormatFloat(value, 'g', -1, 64)
	}
	return exact(value).StringFixed(places)
}

// exact converts v to a decimal without losing any binary digits.
// decimal.NewFromFloat would use the shortest round-trip form instead, which
// turns 1.005 (really 1.00499999...) into a tie.
func exact(v float64) decimal.Decimal {
	if v == 0 {
		return decimal.Zero
	}

	frac, exp := math.Frexp(v)
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53

	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}

	// mant * 2^exp == mant * 5^-exp * 10^exp
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, five), int32(exp))
}
