package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/multitenant-inventory/internal/application/dto"
	"github.com/jhoicas/multitenant-inventory/internal/domain/authz"
	"github.com/jhoicas/multitenant-inventory/pkg/jwt"
	"github.com/jhoicas/multitenant-inventory/pkg/logger"
)

// LocalPrincipal clave de c.Locals con el *authz.Principal autenticado.
const LocalPrincipal = "principal"

// AuthMiddleware valida el Bearer Token (solo access) y carga el principal en Locals y en el
// user context. Sin header Authorization la petición sigue anónima y decide la política.
func AuthMiddleware(issuer *jwt.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := issuer.Parse(tokenString, jwt.TokenTypeAccess)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		p := &authz.Principal{UserID: claims.UserID, Role: claims.Role}
		c.Locals(LocalPrincipal, p)
		c.SetUserContext(authz.WithPrincipal(c.UserContext(), p))
		return c.Next()
	}
}

// GetPrincipal devuelve el principal autenticado o nil si la petición es anónima.
func GetPrincipal(c *fiber.Ctx) *authz.Principal {
	p, _ := c.Locals(LocalPrincipal).(*authz.Principal)
	return p
}

// Guard evalúa la política de permisos sobre el principal de la petición.
type Guard struct {
	policy *authz.Policy
	log    *logger.Logger
}

// NewGuard crea un Guard sobre la política indicada.
func NewGuard(policy *authz.Policy, log *logger.Logger) *Guard {
	return &Guard{policy: policy, log: log}
}

// Require aplica la regla (resource, action) a nivel de colección.
// Las reglas de objeto (OwnerOrAdmin) se vuelven a evaluar en el handler con el recurso cargado.
func (g *Guard) Require(resource authz.Resource, action authz.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := g.allow(c, resource, action, nil); !ok {
			return err
		}
		return c.Next()
	}
}

// allow devuelve false junto con la respuesta 401/403 ya escrita cuando la política deniega.
func (g *Guard) allow(c *fiber.Ctx, resource authz.Resource, action authz.Action, target any) (bool, error) {
	p := GetPrincipal(c)
	decision := g.policy.Decide(p, resource, action, target)
	if decision == authz.Allow {
		return true, nil
	}
	ev := g.log.Debug().
		Str("resource", string(resource)).
		Str("action", string(action)).
		Str("decision", decision.String())
	if p != nil {
		ev = ev.Int64("user_id", p.UserID).Str("role", p.Role)
	}
	ev.Msg("acceso denegado")
	if decision == authz.Unauthenticated {
		return false, unauthenticated(c)
	}
	return false, forbidden(c)
}
