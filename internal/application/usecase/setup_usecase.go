package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/inventory"
)

// setupMessages mensajes de confirmación por colección: creado, actualizado, eliminado.
var setupMessages = map[string][3]string{
	entity.SetupCategories: {"Categoría creada", "Categoría actualizada", "Categoría eliminada"},
	entity.SetupCompanies:  {"Empresa creada", "Empresa actualizada", "Empresa eliminada"},
	entity.SetupUnitTypes:  {"Tipo de unidad creado", "Tipo de unidad actualizado", "Tipo de unidad eliminado"},
}

// SetupUseCase catálogos simples: categorías, empresas y tipos de unidad.
type SetupUseCase struct {
	api ports.SetupAPI
}

// NewSetupUseCase construye el caso de uso.
func NewSetupUseCase(api ports.SetupAPI) *SetupUseCase {
	return &SetupUseCase{api: api}
}

// List registros de la colección kind.
func (uc *SetupUseCase) List(ctx context.Context, sess *entity.Session, kind string, q dto.ListQuery) (dto.ListResponse[dto.SetupView], error) {
	if !entity.ValidSetupKind(kind) {
		return dto.ListResponse[dto.SetupView]{}, domain.ErrNotFound
	}
	items, err := uc.api.ListSetup(ctx, token(sess), kind)
	if err != nil {
		return dto.ListResponse[dto.SetupView]{}, err
	}
	items = filter(items, func(s entity.SetupItem) bool {
		return inventory.Matches(q.Search, s.Name, s.Description)
	})
	return dto.NewListResponse(mapItems(items, toSetupView), q), nil
}

func (uc *SetupUseCase) Create(ctx context.Context, sess *entity.Session, kind string, in dto.SetupForm) (*dto.MutationResponse[dto.SetupView], error) {
	if !entity.ValidSetupKind(kind) {
		return nil, domain.ErrNotFound
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s, err := uc.api.CreateSetup(ctx, token(sess), kind, in)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, kind, setupMessages[kind][0], s)
}

func (uc *SetupUseCase) Update(ctx context.Context, sess *entity.Session, kind, id string, in dto.SetupForm) (*dto.MutationResponse[dto.SetupView], error) {
	if !entity.ValidSetupKind(kind) {
		return nil, domain.ErrNotFound
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s, err := uc.api.UpdateSetup(ctx, token(sess), kind, id, in)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, kind, setupMessages[kind][1], s)
}

func (uc *SetupUseCase) Delete(ctx context.Context, sess *entity.Session, kind, id string) (*dto.MutationResponse[dto.SetupView], error) {
	if !entity.ValidSetupKind(kind) {
		return nil, domain.ErrNotFound
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := uc.api.DeleteSetup(ctx, token(sess), kind, id); err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, kind, setupMessages[kind][2], nil)
}

func (uc *SetupUseCase) refresh(ctx context.Context, sess *entity.Session, kind, msg string, s *entity.SetupItem) (*dto.MutationResponse[dto.SetupView], error) {
	var item *dto.SetupView
	if s != nil {
		v := toSetupView(*s)
		item = &v
	}
	list, err := uc.List(ctx, sess, kind, dto.ListQuery{})
	return mutated(msg, item, list, err)
}

func toSetupView(s entity.SetupItem) dto.SetupView {
	return dto.SetupView{ID: s.ID, Name: s.Name, Description: s.Description}
}
