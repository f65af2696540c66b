// Package costing holds the tax rollup shared by the live cost preview and
// the report compositor. Both call sites must use this one implementation;
// duplicating the math would let the preview and the printed ledger drift.
package costing

import "github.com/shopspring/decimal"

// Rollup is the folded result of a cost list under two tax rates.
// Values carry full decimal precision; rounding happens only at display time.
type Rollup struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	ProvincialTax decimal.Decimal `json:"provincial_tax"`
	FederalTax    decimal.Decimal `json:"federal_tax"`
	Total         decimal.Decimal `json:"total"`
}

// Compute folds a subtotal under the two percentage rates:
// each tax = subtotal * rate / 100, total = subtotal + both taxes.
func Compute(subtotal decimal.Decimal, provincialRate, federalRate float64) Rollup {
	hundred := decimal.NewFromInt(100)
	provincial := subtotal.Mul(decimal.NewFromFloat(provincialRate)).Div(hundred)
	federal := subtotal.Mul(decimal.NewFromFloat(federalRate)).Div(hundred)

	return Rollup{
		Subtotal:      subtotal,
		ProvincialTax: provincial,
		FederalTax:    federal,
		Total:         subtotal.Add(provincial).Add(federal),
	}
}

// Sum folds a list of line costs into an exact subtotal.
func Sum(costs []float64) decimal.Decimal {
	subtotal := decimal.Zero
	for _, c := range costs {
		subtotal = subtotal.Add(decimal.NewFromFloat(c))
	}
	return subtotal
}

// Display renders a value with two-decimal rounding (half away from zero),
// the formatting used for every money line in reports and previews.
func Display(v decimal.Decimal) string {
	return v.StringFixed(2)
}
