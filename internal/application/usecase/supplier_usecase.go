package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-portal/pkg/nit"
)

// SupplierUseCase proveedores.
type SupplierUseCase struct {
	api ports.SupplierAPI
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(api ports.SupplierAPI) *SupplierUseCase {
	return &SupplierUseCase{api: api}
}

func (uc *SupplierUseCase) List(ctx context.Context, sess *entity.Session, q dto.ListQuery) (dto.ListResponse[dto.SupplierView], error) {
	suppliers, err := uc.api.ListSuppliers(ctx, token(sess))
	if err != nil {
		return dto.ListResponse[dto.SupplierView]{}, err
	}
	suppliers = filter(suppliers, func(s entity.Supplier) bool {
		return inventory.Matches(q.Search, s.Name, s.Company, s.Email, s.TaxID)
	})
	return dto.NewListResponse(mapItems(suppliers, toSupplierView), q), nil
}

func (uc *SupplierUseCase) Create(ctx context.Context, sess *entity.Session, in dto.SupplierForm) (*dto.MutationResponse[dto.SupplierView], error) {
	if err := prepareSupplier(&in); err != nil {
		return nil, err
	}
	s, err := uc.api.CreateSupplier(ctx, token(sess), in)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Proveedor creado", s)
}

func (uc *SupplierUseCase) Update(ctx context.Context, sess *entity.Session, id string, in dto.SupplierForm) (*dto.MutationResponse[dto.SupplierView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := prepareSupplier(&in); err != nil {
		return nil, err
	}
	s, err := uc.api.UpdateSupplier(ctx, token(sess), id, in)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Proveedor actualizado", s)
}

func (uc *SupplierUseCase) Delete(ctx context.Context, sess *entity.Session, id string) (*dto.MutationResponse[dto.SupplierView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := uc.api.DeleteSupplier(ctx, token(sess), id); err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Proveedor eliminado", nil)
}

// prepareSupplier recorta el nombre, valida el formulario y deja el NIT en forma canónica.
func prepareSupplier(in *dto.SupplierForm) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(*in); err != nil {
		return err
	}
	if strings.TrimSpace(in.TaxID) == "" {
		in.TaxID = ""
		return nil
	}
	normalized, err := nit.Normalize(in.TaxID)
	if err != nil {
		msg := "El NIT debe tener 9 dígitos y su dígito de verificación"
		if errors.Is(err, nit.ErrDigit) {
			msg = "El dígito de verificación del NIT no es válido"
		}
		return &domain.ValidationError{Fields: map[string]string{"taxId": msg}}
	}
	in.TaxID = normalized
	return nil
}

func (uc *SupplierUseCase) refresh(ctx context.Context, sess *entity.Session, msg string, s *entity.Supplier) (*dto.MutationResponse[dto.SupplierView], error) {
	var item *dto.SupplierView
	if s != nil {
		v := toSupplierView(*s)
		item = &v
	}
	list, err := uc.List(ctx, sess, dto.ListQuery{})
	return mutated(msg, item, list, err)
}

func toSupplierView(s entity.Supplier) dto.SupplierView {
	return dto.SupplierView{
		ID:      s.ID,
		Name:    s.Name,
		Email:   s.Email,
		Phone:   s.Phone,
		Address: s.Address,
		Company: s.Company,
		TaxID:   s.TaxID,
	}
}
