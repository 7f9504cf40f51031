package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/multitenant-inventory/internal/application/dto"
	"github.com/jhoicas/multitenant-inventory/internal/application/validation"
	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/repository"
	"github.com/jhoicas/multitenant-inventory/pkg/jwt"
)

// TokenBlacklist puerto para revocar refresh tokens por jti (implementado sobre Redis).
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthUseCase casos de uso de autenticación: login, refresh y logout (blacklist).
type AuthUseCase struct {
	userRepo  repository.UserRepository
	issuer    *jwt.Issuer
	blacklist TokenBlacklist
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, issuer *jwt.Issuer, blacklist TokenBlacklist) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, issuer: issuer, blacklist: blacklist, now: time.Now}
}

// Login verifica email/password y emite el par access/refresh.
// Credenciales inválidas → ErrUnauthorized; cuenta inactiva → ErrInactiveAccount.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.TokenRequest) (*dto.TokenResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	pair, err := uc.issuer.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User: dto.TokenUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	}, nil
}

// Refresh emite un nuevo access token. El rol se relee del usuario para reflejar cambios.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.AccessResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	claims, err := uc.issuer.Parse(in.Refresh, jwt.TokenTypeRefresh)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	revoked, err := uc.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	access, err := uc.issuer.Access(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.AccessResponse{Access: access}, nil
}

// Blacklist revoca un refresh token hasta su expiración.
func (uc *AuthUseCase) Blacklist(ctx context.Context, in dto.RefreshRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	claims, err := uc.issuer.Parse(in.Refresh, jwt.TokenTypeRefresh)
	if err != nil {
		return domain.ErrUnauthorized
	}
	ttl := claims.ExpiresAt.Sub(uc.now())
	if ttl <= 0 {
		return domain.ErrUnauthorized
	}
	return uc.blacklist.Revoke(ctx, claims.ID, ttl)
}

// IsAuthError indica si err debe responderse como 401.
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrInactiveAccount) ||
		errors.Is(err, domain.ErrTokenRevoked)
}
