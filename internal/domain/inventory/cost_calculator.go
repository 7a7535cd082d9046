package inventory

import "github.com/shopspring/decimal"

// AverageCost costo unitario promedio ponderado después de una compra:
// ((unidades previas × costo previo) + (unidades compradas × costo de compra)) / total de unidades.
// Sin unidades el costo es cero.
func AverageCost(prevUnits int, prevCost decimal.Decimal, inUnits int, inCost decimal.Decimal) decimal.Decimal {
	total := prevUnits + inUnits
	if total <= 0 {
		return decimal.Zero
	}
	prev := decimal.NewFromInt(int64(prevUnits)).Mul(prevCost)
	in := decimal.NewFromInt(int64(inUnits)).Mul(inCost)
	return prev.Add(in).Div(decimal.NewFromInt(int64(total))).Round(2)
}
