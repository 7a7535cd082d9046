// Package inventory agrega en el portal los datos ya traídos del backend:
// resumen de stock por producto a partir de órdenes aprobadas y el libro de
// movimientos con saldo acumulado.
package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

// SummaryRow una fila por producto (agrupado por nombre normalizado).
type SummaryRow struct {
	Key            string          `json:"key" csv:"-"`
	ProductID      string          `json:"productId,omitempty" csv:"product_id"`
	ProductName    string          `json:"productName" csv:"product_name"`
	InCatalog      bool            `json:"inCatalog" csv:"in_catalog"`
	Stock          int             `json:"stock" csv:"stock"`
	UnitsSold      int             `json:"unitsSold" csv:"units_sold"`
	UnitsReturned  int             `json:"unitsReturned" csv:"units_returned"`
	UnitsPurchased int             `json:"unitsPurchased" csv:"units_purchased"`
	OrderCount     int             `json:"orderCount" csv:"order_count"`
	Revenue        decimal.Decimal `json:"revenue" csv:"revenue"`
	AvgCost        decimal.Decimal `json:"avgCost" csv:"avg_cost"`
	GrossMargin    decimal.Decimal `json:"grossMargin" csv:"gross_margin"`
	LastSoldAt     *time.Time      `json:"lastSoldAt,omitempty" csv:"-"`
	LowStock       bool            `json:"lowStock" csv:"low_stock"`
}

// Summary resumen completo con totales.
type Summary struct {
	Rows           []SummaryRow    `json:"rows"`
	TotalUnitsSold int             `json:"totalUnitsSold"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalStock     int             `json:"totalStock"`
	LowStockCount  int             `json:"lowStockCount"`
}

// Input datos crudos del backend que alimentan el resumen.
type Input struct {
	Products          []entity.Product
	Orders            []entity.Order
	Returns           []entity.ReturnRecord
	Purchases         []entity.Purchase
	LowStockThreshold int
}

// Summarize agrupa las líneas de las órdenes APROBADAS por nombre de producto.
// Órdenes pendientes o rechazadas no cuentan; las devoluciones aprobadas se
// descuentan de las unidades vendidas sin bajar de cero. Los productos del
// catálogo sin ventas también aparecen, con sus existencias.
func Summarize(in Input) Summary {
	rows := make(map[string]*SummaryRow)
	order := make([]string, 0)

	get := func(name string) *SummaryRow {
		key := NormalizeName(name)
		if key == "" {
			return nil
		}
		r, ok := rows[key]
		if !ok {
			r = &SummaryRow{Key: key, ProductName: name}
			rows[key] = r
			order = append(order, key)
		}
		return r
	}

	for _, p := range in.Products {
		r := get(p.Name)
		if r == nil {
			continue
		}
		// nombres repetidos en catálogo: se suman las existencias
		r.InCatalog = true
		r.Stock += p.Stock
		if r.ProductID == "" {
			r.ProductID = p.ID
			r.ProductName = p.Name
		}
	}

	for _, o := range in.Orders {
		if !o.Approved() {
			continue
		}
		seen := make(map[string]bool, len(o.Items))
		for _, it := range o.Items {
			r := get(it.ProductName)
			if r == nil {
				continue
			}
			r.UnitsSold += it.Quantity
			r.Revenue = r.Revenue.Add(it.Subtotal())
			if !seen[r.Key] {
				seen[r.Key] = true
				r.OrderCount++
			}
			if r.LastSoldAt == nil || o.CreatedAt.After(*r.LastSoldAt) {
				ts := o.CreatedAt
				r.LastSoldAt = &ts
			}
		}
	}

	for _, ret := range in.Returns {
		if ret.Status != entity.StatusApproved {
			continue
		}
		if r := get(ret.ProductName); r != nil {
			r.UnitsReturned += ret.Quantity
		}
	}

	purchases := append([]entity.Purchase(nil), in.Purchases...)
	sort.SliceStable(purchases, func(i, j int) bool {
		return purchases[i].PurchaseDate.Before(purchases[j].PurchaseDate)
	})
	for _, p := range purchases {
		r := get(p.ProductName)
		if r == nil || p.Quantity <= 0 {
			continue
		}
		r.AvgCost = AverageCost(r.UnitsPurchased, r.AvgCost, p.Quantity, p.UnitCost)
		r.UnitsPurchased += p.Quantity
	}

	out := Summary{Rows: make([]SummaryRow, 0, len(rows)), TotalRevenue: decimal.Zero}
	for _, key := range order {
		r := rows[key]
		r.UnitsSold -= r.UnitsReturned
		if r.UnitsSold < 0 {
			r.UnitsSold = 0
		}
		r.AvgCost = r.AvgCost.Round(2)
		r.Revenue = r.Revenue.Round(2)
		r.GrossMargin = r.Revenue.Sub(r.AvgCost.Mul(decimal.NewFromInt(int64(r.UnitsSold)))).Round(2)
		r.LowStock = r.InCatalog && r.Stock <= in.LowStockThreshold

		out.TotalUnitsSold += r.UnitsSold
		out.TotalRevenue = out.TotalRevenue.Add(r.Revenue)
		out.TotalStock += r.Stock
		if r.LowStock {
			out.LowStockCount++
		}
		out.Rows = append(out.Rows, *r)
	}
	sort.SliceStable(out.Rows, func(i, j int) bool { return out.Rows[i].Key < out.Rows[j].Key })
	return out
}

// LowStock filtra las filas marcadas con stock bajo.
func (s Summary) LowStock() []SummaryRow {
	out := make([]SummaryRow, 0, s.LowStockCount)
	for _, r := range s.Rows {
		if r.LowStock {
			out = append(out, r)
		}
	}
	return out
}
