// Package inventory casos de uso del resumen de stock: trae en paralelo los
// recursos del backend y delega la agregación en domain/inventory.
package inventory

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/access"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/inventory"
)

// Backend recursos que alimentan el resumen.
type Backend interface {
	ports.ProductAPI
	ports.OrderAPI
	ports.ReturnAPI
	ports.PurchaseAPI
}

// UseCase resumen, libro por producto y exportación CSV.
type UseCase struct {
	api       Backend
	threshold int
	now       func() time.Time
}

// NewUseCase construye el caso de uso. lowStockThreshold viene de LOW_STOCK_THRESHOLD.
func NewUseCase(api Backend, lowStockThreshold int) *UseCase {
	return &UseCase{api: api, threshold: lowStockThreshold, now: time.Now}
}

// snapshot datos crudos traídos del backend en una sola pasada.
type snapshot struct {
	products  []entity.Product
	orders    []entity.Order
	returns   []entity.ReturnRecord
	purchases []entity.Purchase
	// sin permiso sobre compras no hay costos ni entradas por compra
	costsHidden bool
}

// load trae productos, órdenes aprobadas, devoluciones y compras en paralelo.
// El primer error cancela las demás peticiones. Las compras solo se piden si el
// rol puede verlas (el empleado no tiene acceso a /purchases).
func (uc *UseCase) load(ctx context.Context, sess *entity.Session) (*snapshot, error) {
	tok := sess.BackendToken
	var s snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := uc.api.ListProducts(ctx, tok)
		if err != nil {
			return fmt.Errorf("inventario: productos: %w", err)
		}
		s.products = products
		return nil
	})
	g.Go(func() error {
		orders, err := uc.api.ListOrders(ctx, tok, entity.StatusApproved)
		if err != nil {
			return fmt.Errorf("inventario: órdenes: %w", err)
		}
		s.orders = orders
		return nil
	})
	g.Go(func() error {
		returns, err := uc.api.ListReturns(ctx, tok)
		if err != nil {
			return fmt.Errorf("inventario: devoluciones: %w", err)
		}
		s.returns = returns
		return nil
	})
	s.costsHidden = !access.Can(sess.Role, access.ResourcePurchases, access.ActionRead)
	if !s.costsHidden {
		g.Go(func() error {
			purchases, err := uc.api.ListPurchases(ctx, tok)
			if err != nil {
				return fmt.Errorf("inventario: compras: %w", err)
			}
			s.purchases = purchases
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

// summarize arma el resumen. Sin compras el costo promedio sería cero y el
// margen igual al ingreso, así que ambos se dejan en cero.
func (uc *UseCase) summarize(s *snapshot) inventory.Summary {
	sum := inventory.Summarize(inventory.Input{
		Products:          s.products,
		Orders:            s.orders,
		Returns:           s.returns,
		Purchases:         s.purchases,
		LowStockThreshold: uc.threshold,
	})
	if s.costsHidden {
		for i := range sum.Rows {
			sum.Rows[i].AvgCost = decimal.Zero
			sum.Rows[i].GrossMargin = decimal.Zero
		}
	}
	return sum
}

// stockOf existencias en catálogo de un producto (suma nombres repetidos).
func (s *snapshot) stockOf(product string) int {
	key := inventory.NormalizeName(product)
	total := 0
	for _, p := range s.products {
		if inventory.NormalizeName(p.Name) == key {
			total += p.Stock
		}
	}
	return total
}

// Summary resumen de stock; q.Search filtra filas por nombre.
func (uc *UseCase) Summary(ctx context.Context, sess *entity.Session, q dto.ListQuery) (*dto.StockSummaryResponse, error) {
	s, err := uc.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	sum := uc.summarize(s)
	if strings.TrimSpace(q.Search) != "" {
		sum = filterRows(sum, func(r inventory.SummaryRow) bool { return inventory.Matches(q.Search, r.ProductName) })
	}
	out := &dto.StockSummaryResponse{Summary: sum, Threshold: uc.threshold, GeneratedAt: uc.now(), CostsHidden: s.costsHidden}
	if len(sum.Rows) == 0 {
		out.Empty = true
		out.Message = dto.EmptyListMessage
	}
	return out, nil
}

// LowStock filas con stock en o bajo el umbral.
func (uc *UseCase) LowStock(ctx context.Context, sess *entity.Session, q dto.ListQuery) (dto.ListResponse[inventory.SummaryRow], error) {
	s, err := uc.load(ctx, sess)
	if err != nil {
		return dto.ListResponse[inventory.SummaryRow]{}, err
	}
	return dto.NewListResponse(uc.summarize(s).LowStock(), q), nil
}

// Ledger libro de movimientos de un producto con saldo acumulado.
func (uc *UseCase) Ledger(ctx context.Context, sess *entity.Session, product string) (*dto.LedgerResponse, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"product": "El producto es obligatorio"}}
	}
	s, err := uc.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	entries := inventory.Ledger(product, s.orders, s.returns, s.purchases)
	if s.costsHidden {
		inventory.AnchorBalance(entries, s.stockOf(product))
	}
	out := &dto.LedgerResponse{Product: product, Entries: entries, Partial: s.costsHidden}
	if n := len(entries); n > 0 {
		out.Balance = entries[n-1].Balance
	} else {
		out.Empty = true
		out.Message = dto.EmptyListMessage
	}
	return out, nil
}

// ExportCSV escribe el resumen en CSV (una fila por producto, con cabecera).
func (uc *UseCase) ExportCSV(ctx context.Context, sess *entity.Session, w io.Writer) error {
	s, err := uc.load(ctx, sess)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(uc.summarize(s).Rows, w); err != nil {
		return fmt.Errorf("inventario: exportar csv: %w", err)
	}
	return nil
}

// ExportFilename nombre sugerido del archivo exportado.
func (uc *UseCase) ExportFilename() string {
	return "inventario-" + uc.now().Format("20060102") + ".csv"
}

func filterRows(s inventory.Summary, keep func(inventory.SummaryRow) bool) inventory.Summary {
	out := inventory.Summary{Rows: make([]inventory.SummaryRow, 0, len(s.Rows)), TotalRevenue: decimal.Zero}
	for _, r := range s.Rows {
		if !keep(r) {
			continue
		}
		out.Rows = append(out.Rows, r)
		out.TotalUnitsSold += r.UnitsSold
		out.TotalRevenue = out.TotalRevenue.Add(r.Revenue)
		out.TotalStock += r.Stock
		if r.LowStock {
			out.LowStockCount++
		}
	}
	return out
}
