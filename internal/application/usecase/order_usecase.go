package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/access"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/inventory"
)

// OrderPayload cuerpo que se envía a POST /orders.
type OrderPayload struct {
	CustomerName string             `json:"customerName,omitempty"`
	Discount     decimal.Decimal    `json:"discount"`
	Total        decimal.Decimal    `json:"total"`
	Status       string             `json:"status"`
	CreatedBy    string             `json:"createdBy,omitempty"`
	Items        []entity.OrderItem `json:"items"`
}

// NewOrderPayload arma la orden a partir del formulario.
func NewOrderPayload(in dto.OrderForm, status, createdBy string) OrderPayload {
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.OrderItem{
			ProductID:   it.ProductID,
			ProductName: strings.TrimSpace(it.ProductName),
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return OrderPayload{
		CustomerName: strings.TrimSpace(in.CustomerName),
		Discount:     in.Discount,
		Total:        in.Total(),
		Status:       status,
		CreatedBy:    createdBy,
		Items:        items,
	}
}

// OrderUseCase órdenes: listado por estado, alta, aprobación y rechazo.
type OrderUseCase struct {
	api ports.OrderAPI
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(api ports.OrderAPI) *OrderUseCase {
	return &OrderUseCase{api: api}
}

// List lista órdenes filtradas por estado. Un empleado solo ve las suyas.
func (uc *OrderUseCase) List(ctx context.Context, sess *entity.Session, q dto.ListQuery) (dto.ListResponse[dto.OrderView], error) {
	if q.Status != "" {
		if err := validStatus(q.Status, entity.StatusPending, entity.StatusApproved, entity.StatusRejected); err != nil {
			return dto.ListResponse[dto.OrderView]{}, err
		}
	}
	orders, err := uc.api.ListOrders(ctx, token(sess), q.Status)
	if err != nil {
		return dto.ListResponse[dto.OrderView]{}, err
	}
	own := sess != nil && sess.Role == entity.RoleEmployee
	orders = filter(orders, func(o entity.Order) bool {
		if q.Status != "" && o.Status != q.Status {
			return false
		}
		if own && o.CreatedBy != sess.UserID {
			return false
		}
		if q.Search == "" {
			return true
		}
		names := make([]string, 0, len(o.Items)+2)
		names = append(names, o.ID, o.CustomerName)
		for _, it := range o.Items {
			names = append(names, it.ProductName)
		}
		return inventory.Matches(q.Search, names...)
	})
	return dto.NewListResponse(mapItems(orders, toOrderView), q), nil
}

// Get detalle de una orden.
func (uc *OrderUseCase) Get(ctx context.Context, sess *entity.Session, id string) (*entity.Order, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	o, err := uc.api.GetOrder(ctx, token(sess), id)
	if err != nil {
		return nil, err
	}
	// el empleado solo ve sus órdenes; las ajenas se reportan como inexistentes
	if sess.Role == entity.RoleEmployee && o.CreatedBy != sess.UserID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// Create registra una orden pendiente a nombre del usuario de la sesión.
func (uc *OrderUseCase) Create(ctx context.Context, sess *entity.Session, in dto.OrderForm) (*dto.MutationResponse[dto.OrderView], error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	o, err := uc.api.CreateOrder(ctx, token(sess), NewOrderPayload(in, entity.StatusPending, sess.UserID))
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Orden creada", o)
}

// Approve aprueba una orden pendiente.
func (uc *OrderUseCase) Approve(ctx context.Context, sess *entity.Session, id string) (*dto.MutationResponse[dto.OrderView], error) {
	return uc.setStatus(ctx, sess, id, entity.StatusApproved, "Orden aprobada")
}

// Reject rechaza una orden pendiente.
func (uc *OrderUseCase) Reject(ctx context.Context, sess *entity.Session, id string) (*dto.MutationResponse[dto.OrderView], error) {
	return uc.setStatus(ctx, sess, id, entity.StatusRejected, "Orden rechazada")
}

// Delete elimina una orden.
func (uc *OrderUseCase) Delete(ctx context.Context, sess *entity.Session, id string) (*dto.MutationResponse[dto.OrderView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := uc.api.DeleteOrder(ctx, token(sess), id); err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Orden eliminada", nil)
}

func (uc *OrderUseCase) setStatus(ctx context.Context, sess *entity.Session, id, status, msg string) (*dto.MutationResponse[dto.OrderView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	o, err := uc.api.SetOrderStatus(ctx, token(sess), id, status)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, msg, o)
}

func (uc *OrderUseCase) refresh(ctx context.Context, sess *entity.Session, msg string, o *entity.Order) (*dto.MutationResponse[dto.OrderView], error) {
	var item *dto.OrderView
	if o != nil {
		v := toOrderView(*o)
		item = &v
	}
	list, err := uc.List(ctx, sess, dto.ListQuery{})
	return mutated(msg, item, list, err)
}

// CanApprove indica si el rol puede aprobar órdenes creadas en el POS.
func CanApprove(role string) bool {
	return access.Can(role, access.ResourceOrders, access.ActionApprove)
}

func toOrderView(o entity.Order) dto.OrderView {
	units := 0
	for _, it := range o.Items {
		units += it.Quantity
	}
	total := o.EffectiveTotal()
	return dto.OrderView{
		ID:           o.ID,
		Status:       o.Status,
		CustomerName: o.CustomerName,
		CreatedBy:    o.CreatedBy,
		ItemCount:    len(o.Items),
		Units:        units,
		Total:        total,
		CreatedAt:    o.CreatedAt,
	}
}
