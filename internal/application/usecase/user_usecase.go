package usecase

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/multitenant-inventory/internal/application/dto"
	"github.com/jhoicas/multitenant-inventory/internal/application/validation"
	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/authz"
	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
	"github.com/jhoicas/multitenant-inventory/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario hasheando el password. Rol por defecto EXTERNAL; is_staff sigue al rol
// salvo que se indique explícitamente.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.ensureUnique(ctx, in.Username, in.Email, 0); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleExternal
	}
	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		IsStaff:      role == entity.RoleAdmin,
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.IsStaff != nil {
		user.IsStaff = *in.IsStaff
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update reemplaza el usuario (PUT). actor es quien realiza la petición.
func (uc *UserUseCase) Update(ctx context.Context, actor *authz.Principal, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	return uc.apply(ctx, actor, id, in, dto.PatchUserRequest{
		Username: &in.Username,
		Email:    &in.Email,
		Password: in.Password,
		Role:     in.Role,
		IsActive: in.IsActive,
		IsStaff:  in.IsStaff,
	})
}

// Patch actualiza solo los campos presentes. Un no-administrador no puede cambiar
// su propio rol, is_active ni is_staff (ErrForbidden).
func (uc *UserUseCase) Patch(ctx context.Context, actor *authz.Principal, id int64, in dto.PatchUserRequest) (*dto.UserResponse, error) {
	return uc.apply(ctx, actor, id, in, in)
}

// apply valida raw (el DTO recibido) y aplica los cambios expresados en in.
func (uc *UserUseCase) apply(ctx context.Context, actor *authz.Principal, id int64, raw any, in dto.PatchUserRequest) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(raw); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && changesPrivileges(user, in) {
		return nil, domain.ErrForbidden
	}

	username, email := user.Username, user.Email
	if in.Username != nil {
		username = *in.Username
	}
	if in.Email != nil {
		email = *in.Email
	}
	if err := uc.ensureUnique(ctx, username, email, id); err != nil {
		return nil, err
	}
	user.Username, user.Email = username, email

	if in.Password != nil && *in.Password != "" {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.Role != nil && *in.Role != user.Role {
		user.Role = *in.Role
		if in.IsStaff == nil {
			user.IsStaff = user.Role == entity.RoleAdmin
		}
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.IsStaff != nil {
		user.IsStaff = *in.IsStaff
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// BootstrapAdmin crea un ADMIN si todavía no existe ninguno. Devuelve false si ya había uno.
func (uc *UserUseCase) BootstrapAdmin(ctx context.Context, username, email, password string) (bool, error) {
	exists, err := uc.repo.HasAdmin(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	_, err = uc.Create(ctx, dto.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (uc *UserUseCase) load(ctx context.Context, id int64) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (uc *UserUseCase) ensureUnique(ctx context.Context, username, email string, selfID int64) error {
	byName, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if byName != nil && byName.ID != selfID {
		return &domain.DuplicateError{Field: "username"}
	}
	byEmail, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if byEmail != nil && byEmail.ID != selfID {
		return &domain.DuplicateError{Field: "email"}
	}
	return nil
}

func changesPrivileges(u *entity.User, in dto.PatchUserRequest) bool {
	return (in.Role != nil && *in.Role != u.Role) ||
		(in.IsActive != nil && *in.IsActive != u.IsActive) ||
		(in.IsStaff != nil && *in.IsStaff != u.IsStaff)
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.NewValidationError("password", "máximo 72 bytes")
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
		IsStaff:  u.IsStaff,
	}
}
