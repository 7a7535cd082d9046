package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Farmacia-portal/internal/application/dto"
	"github.com/jhoicas/Farmacia-portal/internal/application/ports"
	"github.com/jhoicas/Farmacia-portal/internal/domain"
	"github.com/jhoicas/Farmacia-portal/internal/domain/access"
	"github.com/jhoicas/Farmacia-portal/internal/domain/entity"
	"github.com/jhoicas/Farmacia-portal/internal/domain/inventory"
)

// UserUseCase administración de usuarios (solo superadmin, lo exige el middleware).
type UserUseCase struct {
	api ports.AuthAPI
}

// NewUserUseCase construye el caso de uso con el puerto de auth del backend.
func NewUserUseCase(api ports.AuthAPI) *UserUseCase {
	return &UserUseCase{api: api}
}

// List usuarios filtrados por búsqueda y rol (q.Category se interpreta como rol).
func (uc *UserUseCase) List(ctx context.Context, sess *entity.Session, q dto.ListQuery) (dto.ListResponse[dto.UserView], error) {
	users, err := uc.api.ListUsers(ctx, token(sess))
	if err != nil {
		return dto.ListResponse[dto.UserView]{}, err
	}
	role := access.NormalizeRole(q.Category)
	users = filter(users, func(u entity.User) bool {
		if role != "" && access.NormalizeRole(u.Role) != role {
			return false
		}
		return inventory.Matches(q.Search, u.Name, u.Email)
	})
	return dto.NewListResponse(mapItems(users, toUserView), q), nil
}

func (uc *UserUseCase) Create(ctx context.Context, sess *entity.Session, in dto.UserForm) (*dto.MutationResponse[dto.UserView], error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = access.NormalizeRole(in.Role)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	u, err := uc.api.CreateUser(ctx, token(sess), in)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Usuario creado", u)
}

func (uc *UserUseCase) Update(ctx context.Context, sess *entity.Session, id string, in dto.UserUpdateForm) (*dto.MutationResponse[dto.UserView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = access.NormalizeRole(in.Role)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	u, err := uc.api.UpdateUser(ctx, token(sess), id, in)
	if err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Usuario actualizado", u)
}

// Delete elimina un usuario. El superadmin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, sess *entity.Session, id string) (*dto.MutationResponse[dto.UserView], error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if id == sess.UserID {
		return nil, domain.ErrConflict
	}
	if err := uc.api.DeleteUser(ctx, token(sess), id); err != nil {
		return nil, err
	}
	return uc.refresh(ctx, sess, "Usuario eliminado", nil)
}

func (uc *UserUseCase) refresh(ctx context.Context, sess *entity.Session, msg string, u *entity.User) (*dto.MutationResponse[dto.UserView], error) {
	var item *dto.UserView
	if u != nil {
		v := toUserView(*u)
		item = &v
	}
	list, err := uc.List(ctx, sess, dto.ListQuery{})
	return mutated(msg, item, list, err)
}

func toUserView(u entity.User) dto.UserView {
	return dto.UserView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  access.NormalizeRole(u.Role),
		Phone: u.Phone,
	}
}
