package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/inventory"
)

type purchasePayload struct {
	SupplierID    string          `json:"supplierId"`
	ProductID     string          `json:"productId,omitempty"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
}

// PurchaseUseCase compras a proveedores.
type PurchaseUseCase struct {
	api ports.PurchaseAPI
	now func() time.Time
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(api ports.PurchaseAPI) *PurchaseUseCase {
	return &PurchaseUseCase{api: api, now: time.Now}
}

// List compras, más recientes primero en el orden que las entregue el backend.
func (uc *PurchaseUseCase) List(ctx context.Context, sess *entity.Session, q dto.ListQuery) (dto.ListResponse[dto.PurchaseView], error) {
	purchases, err := uc.api.ListPurchases(ctx, token(sess))
	if err != nil {
		return dto.ListResponse[dto.PurchaseView]{}, err
	}
	purchases = filter(purchases, func(p entity.Purchase) bool {
		return inventory.Matches(q.Search, p.ProductName, p.SupplierName, p.InvoiceNumber)
	})
	return dto.NewListResponse(mapItems(purchases, toPurchaseView), q), nil
}

// Create registra una compra. Sin fecha se usa la actual.
func (uc *PurchaseUseCase) Create(ctx context.Context, sess *entity.Session, in dto.PurchaseForm) (*dto.MutationResponse[dto.PurchaseView], error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p, err := uc.api.CreatePurchase(ctx, token(sess), uc.payload(in))
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Compra registrada", p)
}

// Update corrige una compra.
func (uc *PurchaseUseCase) Update(ctx context.Context, sess *entity.Session, id string, in dto.PurchaseForm) (*dto.MutationResponse[dto.PurchaseView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p, err := uc.api.UpdatePurchase(ctx, token(sess), id, uc.payload(in))
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Compra actualizada", p)
}

// Delete elimina una compra.
func (uc *PurchaseUseCase) Delete(ctx context.Context, sess *entity.Session, id string) (*dto.MutationResponse[dto.PurchaseView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := uc.api.DeletePurchase(ctx, token(sess), id); err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Compra eliminada", nil)
}

func (uc *PurchaseUseCase) payload(in dto.PurchaseForm) purchasePayload {
	return purchasePayload{
		SupplierID:    in.SupplierID,
		ProductID:     in.ProductID,
		ProductName:   strings.TrimSpace(in.ProductName),
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		InvoiceNumber: in.InvoiceNumber,
		PurchaseDate:  dateOrNow(in.PurchaseDate, uc.now()),
	}
}

func (uc *PurchaseUseCase) refresh(ctx context.Context, sess *entity.Session, msg string, p *entity.Purchase) (*dto.MutationResponse[dto.PurchaseView], error) {
	var item *dto.PurchaseView
	if p != nil {
		v := toPurchaseView(*p)
		item = &v
	}
	list, err := uc.List(ctx, sess, dto.ListQuery{})
	return mutated(msg, item, list, err)
}

func toPurchaseView(p entity.Purchase) dto.PurchaseView {
	return dto.PurchaseView{
		ID:            p.ID,
		SupplierName:  p.SupplierName,
		ProductName:   p.ProductName,
		Quantity:      p.Quantity,
		UnitCost:      p.UnitCost,
		TotalCost:     p.TotalCost(),
		InvoiceNumber: p.InvoiceNumber,
		PurchaseDate:  p.PurchaseDate,
	}
}
