package ports

import (
	"context"

	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante imprimible de una venta del POS.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, storeName string, order *entity.Order, cashier string) ([]byte, error)
}
