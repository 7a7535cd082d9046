package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/inventory"
)

// ProductUseCase catálogo de productos. El stock lo mantiene el backend; aquí solo
// se valida el formulario y se filtra el listado.
type ProductUseCase struct {
	api      ports.ProductAPI
	lowStock int
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(api ports.ProductAPI, lowStockThreshold int) *ProductUseCase {
	return &ProductUseCase{api: api, lowStock: lowStockThreshold, now: time.Now}
}

// List trae el catálogo y aplica búsqueda (nombre, SKU, lote), categoría y paginación.
func (uc *ProductUseCase) List(ctx context.Context, sess *entity.Session, q dto.ListQuery) (dto.ListResponse[dto.ProductView], error) {
	products, err := uc.api.ListProducts(ctx, token(sess))
	if err != nil {
		return dto.ListResponse[dto.ProductView]{}, err
	}
	products = filter(products, func(p entity.Product) bool {
		if q.Category != "" && inventory.NormalizeName(p.Category) != inventory.NormalizeName(q.Category) {
			return false
		}
		return inventory.Matches(q.Search, p.Name, p.SKU, p.BatchNumber)
	})
	now := uc.now()
	return dto.NewListResponse(mapItems(products, func(p entity.Product) dto.ProductView {
		return uc.toView(p, now)
	}), q), nil
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, sess *entity.Session, id string) (*dto.ProductView, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	p, err := uc.api.GetProduct(ctx, token(sess), id)
	if err != nil {
		return nil, err
	}
	v := uc.toView(*p, uc.now())
	return &v, nil
}

// Create crea un producto. La fecha de vencimiento, si viene, no puede estar en el pasado.
func (uc *ProductUseCase) Create(ctx context.Context, sess *entity.Session, in dto.ProductForm) (*dto.MutationResponse[dto.ProductView], error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.ExpiryDate != nil && in.ExpiryDate.Before(startOfDay(uc.now())) {
		return nil, &domain.ValidationError{Fields: map[string]string{"expiryDate": "La fecha de vencimiento no puede estar en el pasado"}}
	}
	p, err := uc.api.CreateProduct(ctx, token(sess), in)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Producto creado", p)
}

// Update reemplaza los datos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, sess *entity.Session, id string, in dto.ProductForm) (*dto.MutationResponse[dto.ProductView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p, err := uc.api.UpdateProduct(ctx, token(sess), id, in)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Producto actualizado", p)
}

// UpdateStock ajusta las existencias (0–50.000).
func (uc *ProductUseCase) UpdateStock(ctx context.Context, sess *entity.Session, id string, in dto.StockForm) (*dto.MutationResponse[dto.ProductView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p, err := uc.api.UpdateStock(ctx, token(sess), id, in.Stock)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Stock actualizado", p)
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, sess *entity.Session, id string) (*dto.MutationResponse[dto.ProductView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := uc.api.DeleteProduct(ctx, token(sess), id); err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Producto eliminado", nil)
}

func (uc *ProductUseCase) refresh(ctx context.Context, sess *entity.Session, msg string, p *entity.Product) (*dto.MutationResponse[dto.ProductView], error) {
	var item *dto.ProductView
	if p != nil {
		v := uc.toView(*p, uc.now())
		item = &v
	}
	list, err := uc.List(ctx, sess, dto.ListQuery{})
	return mutated(msg, item, list, err)
}

func (uc *ProductUseCase) toView(p entity.Product, now time.Time) dto.ProductView {
	return dto.ProductView{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Category:      p.Category,
		Company:       p.Company,
		UnitType:      p.UnitType,
		BatchNumber:   p.BatchNumber,
		Price:         p.Price,
		PurchasePrice: p.PurchasePrice,
		Stock:         p.Stock,
		ExpiryDate:    p.ExpiryDate,
		Expired:       p.Expired(now),
		LowStock:      p.Stock <= uc.lowStock,
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
