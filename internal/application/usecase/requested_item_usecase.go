package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/inventory"
)

type requestedItemPayload struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note,omitempty"`
	Status      string `json:"status"`
	RequestedBy string `json:"requestedBy,omitempty"`
}

// RequestedItemUseCase solicitudes de reposición de los empleados.
type RequestedItemUseCase struct {
	api ports.RequestedItemAPI
}

// NewRequestedItemUseCase construye el caso de uso.
func NewRequestedItemUseCase(api ports.RequestedItemAPI) *RequestedItemUseCase {
	return &RequestedItemUseCase{api: api}
}

func (uc *RequestedItemUseCase) List(ctx context.Context, sess *entity.Session, q dto.ListQuery) (dto.ListResponse[dto.RequestedItemView], error) {
	items, err := uc.api.ListRequestedItems(ctx, token(sess))
	if err != nil {
		return dto.ListResponse[dto.RequestedItemView]{}, err
	}
	items = filter(items, func(r entity.RequestedItem) bool {
		if q.Status != "" && r.Status != q.Status {
			return false
		}
		return inventory.Matches(q.Search, r.ProductName, r.Note, r.RequestedBy)
	})
	return dto.NewListResponse(mapItems(items, toRequestedItemView), q), nil
}

// Create registra la solicitud a nombre de quien la hace.
func (uc *RequestedItemUseCase) Create(ctx context.Context, sess *entity.Session, in dto.RequestedItemForm) (*dto.MutationResponse[dto.RequestedItemView], error) {
	in.ProductName = strings.TrimSpace(in.ProductName)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	r, err := uc.api.CreateRequestedItem(ctx, token(sess), requestedItemPayload{
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		Note:        strings.TrimSpace(in.Note),
		Status:      entity.StatusPending,
		RequestedBy: sess.Name,
	})
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Solicitud registrada", r)
}

// SetStatus pending | approved | rejected | fulfilled.
func (uc *RequestedItemUseCase) SetStatus(ctx context.Context, sess *entity.Session, id string, in dto.StatusForm) (*dto.MutationResponse[dto.RequestedItemView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	r, err := uc.api.SetRequestedItemStatus(ctx, token(sess), id, in.Status)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Solicitud actualizada", r)
}

func (uc *RequestedItemUseCase) Delete(ctx context.Context, sess *entity.Session, id string) (*dto.MutationResponse[dto.RequestedItemView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := uc.api.DeleteRequestedItem(ctx, token(sess), id); err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Solicitud eliminada", nil)
}

func (uc *RequestedItemUseCase) refresh(ctx context.Context, sess *entity.Session, msg string, r *entity.RequestedItem) (*dto.MutationResponse[dto.RequestedItemView], error) {
	var item *dto.RequestedItemView
	if r != nil {
		v := toRequestedItemView(*r)
		item = &v
	}
	list, err := uc.List(ctx, sess, dto.ListQuery{})
	return mutated(msg, item, list, err)
}

func toRequestedItemView(r entity.RequestedItem) dto.RequestedItemView {
	return dto.RequestedItemView{
		ID:          r.ID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		Note:        r.Note,
		Status:      r.Status,
		RequestedBy: r.RequestedBy,
		CreatedAt:   r.CreatedAt,
	}
}
