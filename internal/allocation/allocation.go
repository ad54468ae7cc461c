// Package allocation implements the fixed district/local revenue split
// applied to tithe and offering income.
package allocation

import "github.com/shopspring/decimal"

// DistrictRate is the share of tithe and offering income remitted to the
// district body. The local share is the remainder. Fixed policy, not
// configurable per call.
const DistrictRate = "0.77"

var districtRate = decimal.RequireFromString(DistrictRate)

// Split divides a gross amount into the retained local share and the
// district share, both rounded to 2 decimal places. The district share is
// rounded first and the local share derived by subtraction, so
// local + district always equals the (2dp) gross exactly.
//
// The caller validates gross > 0.
func Split(gross float64) (local, district float64) {
	g := decimal.NewFromFloat(gross).Round(2)
	d := g.Mul(districtRate).Round(2)
	l := g.Sub(d)
	return l.InexactFloat64(), d.InexactFloat64()
}

// Round2 rounds a monetary amount to 2 decimal places. All amounts are
// rounded at the persisted boundary.
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}
