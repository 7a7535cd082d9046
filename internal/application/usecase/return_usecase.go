package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/inventory"
)

type returnPayload struct {
	OrderID     string `json:"orderId"`
	ProductID   string `json:"productId,omitempty"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

// ReturnUseCase devoluciones: alta por cualquier rol, aprobación por admin.
type ReturnUseCase struct {
	api ports.ReturnAPI
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(api ports.ReturnAPI) *ReturnUseCase {
	return &ReturnUseCase{api: api}
}

// List devoluciones filtradas por estado y búsqueda.
func (uc *ReturnUseCase) List(ctx context.Context, sess *entity.Session, q dto.ListQuery) (dto.ListResponse[dto.ReturnView], error) {
	returns, err := uc.api.ListReturns(ctx, token(sess))
	if err != nil {
		return dto.ListResponse[dto.ReturnView]{}, err
	}
	returns = filter(returns, func(r entity.ReturnRecord) bool {
		if q.Status != "" && r.Status != q.Status {
			return false
		}
		return inventory.Matches(q.Search, r.ProductName, r.OrderID, r.Reason)
	})
	return dto.NewListResponse(mapItems(returns, toReturnView), q), nil
}

// Create registra una devolución pendiente.
func (uc *ReturnUseCase) Create(ctx context.Context, sess *entity.Session, in dto.ReturnForm) (*dto.MutationResponse[dto.ReturnView], error) {
	in.Reason = strings.TrimSpace(in.Reason)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	r, err := uc.api.CreateReturn(ctx, token(sess), returnPayload{
		OrderID:     in.OrderID,
		ProductID:   in.ProductID,
		ProductName: strings.TrimSpace(in.ProductName),
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Status:      entity.StatusPending,
		CreatedBy:   sess.UserID,
	})
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Devolución registrada", r)
}

// Approve aprueba la devolución; desde ese momento descuenta unidades vendidas en el resumen.
func (uc *ReturnUseCase) Approve(ctx context.Context, sess *entity.Session, id string) (*dto.MutationResponse[dto.ReturnView], error) {
	return uc.setStatus(ctx, sess, id, entity.StatusApproved, "Devolución aprobada")
}

// Reject rechaza la devolución.
func (uc *ReturnUseCase) Reject(ctx context.Context, sess *entity.Session, id string) (*dto.MutationResponse[dto.ReturnView], error) {
	return uc.setStatus(ctx, sess, id, entity.StatusRejected, "Devolución rechazada")
}

func (uc *ReturnUseCase) setStatus(ctx context.Context, sess *entity.Session, id, status, msg string) (*dto.MutationResponse[dto.ReturnView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	r, err := uc.api.SetReturnStatus(ctx, token(sess), id, status)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, msg, r)
}

func (uc *ReturnUseCase) refresh(ctx context.Context, sess *entity.Session, msg string, r *entity.ReturnRecord) (*dto.MutationResponse[dto.ReturnView], error) {
	var item *dto.ReturnView
	if r != nil {
		v := toReturnView(*r)
		item = &v
	}
	list, err := uc.List(ctx, sess, dto.ListQuery{})
	return mutated(msg, item, list, err)
}

func toReturnView(r entity.ReturnRecord) dto.ReturnView {
	return dto.ReturnView{
		ID:          r.ID,
		OrderID:     r.OrderID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		Reason:      r.Reason,
		Status:      r.Status,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	}
}
