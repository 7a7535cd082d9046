package dto

import (
	"time"

	"github.com/jhoicas/Farmacia-portal/internal/domain/inventory"
)

// StockSummaryResponse resumen de stock por producto con totales.
type StockSummaryResponse struct {
	inventory.Summary
	Threshold   int       `json:"threshold"`
	GeneratedAt time.Time `json:"generatedAt"`
	CostsHidden bool      `json:"costsHidden"`
	Empty       bool      `json:"empty"`
	Message     string    `json:"message,omitempty"`
}

// LedgerResponse libro de movimientos de un producto. Partial indica que no
// incluye compras; los saldos se anclan a las existencias actuales.
type LedgerResponse struct {
	Product string                  `json:"product"`
	Entries []inventory.LedgerEntry `json:"entries"`
	Balance int                     `json:"balance"`
	Partial bool                    `json:"partial"`
	Empty   bool                    `json:"empty"`
	Message string                  `json:"message,omitempty"`
}
