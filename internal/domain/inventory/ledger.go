package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

// Tipos de movimiento del libro.
const (
	MovementPurchase = "purchase"
	MovementSale     = "sale"
	MovementReturn   = "return"
)

// LedgerEntry movimiento con saldo acumulado después de aplicarlo.
type LedgerEntry struct {
	Date      time.Time `json:"date"`
	Kind      string    `json:"kind"`
	Reference string    `json:"reference"`
	Quantity  int       `json:"quantity"` // con signo: salidas negativas
	Balance   int       `json:"balance"`
}

// Ledger libro cronológico de un producto: compras (+), ventas aprobadas (-) y
// devoluciones aprobadas (+), con el saldo acumulado desde cero. A igual fecha
// se aplican primero las entradas.
func Ledger(productName string, orders []entity.Order, returns []entity.ReturnRecord, purchases []entity.Purchase) []LedgerEntry {
	key := NormalizeName(productName)
	if key == "" {
		return []LedgerEntry{}
	}
	entries := make([]LedgerEntry, 0)

	for _, p := range purchases {
		if NormalizeName(p.ProductName) == key {
			entries = append(entries, LedgerEntry{Date: p.PurchaseDate, Kind: MovementPurchase, Reference: p.ID, Quantity: p.Quantity})
		}
	}
	for _, o := range orders {
		if !o.Approved() {
			continue
		}
		qty := 0
		for _, it := range o.Items {
			if NormalizeName(it.ProductName) == key {
				qty += it.Quantity
			}
		}
		if qty > 0 {
			entries = append(entries, LedgerEntry{Date: o.CreatedAt, Kind: MovementSale, Reference: o.ID, Quantity: -qty})
		}
	}
	for _, r := range returns {
		if r.Status == entity.StatusApproved && NormalizeName(r.ProductName) == key {
			entries = append(entries, LedgerEntry{Date: r.CreatedAt, Kind: MovementReturn, Reference: r.ID, Quantity: r.Quantity})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Quantity > entries[j].Quantity
		}
		return entries[i].Date.Before(entries[j].Date)
	})

	balance := 0
	for i := range entries {
		balance += entries[i].Quantity
		entries[i].Balance = balance
	}
	return entries
}

// AnchorBalance desplaza los saldos para que el último coincida con stock. Se
// usa cuando el libro se armó sin las compras: el saldo desde cero quedaría
// negativo y no reflejaría las existencias reales.
func AnchorBalance(entries []LedgerEntry, stock int) {
	if len(entries) == 0 {
		return
	}
	offset := stock - entries[len(entries)-1].Balance
	for i := range entries {
		entries[i].Balance += offset
	}
}
