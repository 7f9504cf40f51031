// Package authz contiene la política de autorización por rol: funciones puras que,
// dado (principal, acción, objetivo opcional), deciden si la operación se permite.
// No hace I/O; el llamador traduce la decisión a HTTP (401/403).
package authz

import (
	"context"

	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
)

// Principal es el actor autenticado que realiza la petición.
type Principal struct {
	UserID int64
	Role   string
}

// IsAdmin indica si el principal tiene rol ADMIN.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == entity.RoleAdmin
}

// Action operación solicitada sobre un recurso.
type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDelete        Action = "delete"
	// ActionReport cubre download-pdf y send_email: lectura del inventario, sin mutaciones.
	ActionReport Action = "report"
)

// IsRead indica si la acción es de solo lectura.
func (a Action) IsRead() bool {
	switch a {
	case ActionList, ActionRetrieve, ActionReport:
		return true
	}
	return false
}

// Resource recursos protegidos por la política.
type Resource string

const (
	ResourceCompany   Resource = "company"
	ResourceProduct   Resource = "product"
	ResourceInventory Resource = "inventory"
	ResourceUser      Resource = "user"
)

// Decision resultado de evaluar una regla.
type Decision int

const (
	Allow Decision = iota
	Unauthenticated
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "forbidden"
	}
}

// Owned lo implementan los objetivos que pertenecen a un usuario.
type Owned interface {
	OwnerID() int64
}

// UserTarget adapta un usuario como objetivo: el dueño de un perfil es el propio usuario.
type UserTarget struct{ UserID int64 }

func (t UserTarget) OwnerID() int64 { return t.UserID }

// Check es una regla nombrada. target es nil en la verificación a nivel de colección.
type Check interface {
	Name() string
	Evaluate(p *Principal, action Action, target any) Decision
}

type adminOnly struct{}

func (adminOnly) Name() string { return "AdminOnly" }

func (adminOnly) Evaluate(p *Principal, _ Action, _ any) Decision {
	if p == nil {
		return Unauthenticated
	}
	if !p.IsAdmin() {
		return Forbidden
	}
	return Allow
}

type adminOrReadOnly struct{}

func (adminOrReadOnly) Name() string { return "AdminOrReadOnly" }

func (adminOrReadOnly) Evaluate(p *Principal, action Action, _ any) Decision {
	if p == nil {
		return Unauthenticated
	}
	if action.IsRead() || p.IsAdmin() {
		return Allow
	}
	return Forbidden
}

type ownerOrAdmin struct{}

func (ownerOrAdmin) Name() string { return "OwnerOrAdmin" }

// Evaluate sin objetivo solo exige autenticación; la decisión real ocurre
// cuando el handler ya cargó el objeto.
func (ownerOrAdmin) Evaluate(p *Principal, _ Action, target any) Decision {
	if p == nil {
		return Unauthenticated
	}
	if p.IsAdmin() {
		return Allow
	}
	if target == nil {
		return Allow
	}
	owned, ok := target.(Owned)
	if !ok {
		return Forbidden
	}
	if owned.OwnerID() == p.UserID {
		return Allow
	}
	return Forbidden
}

// Reglas exportadas para componer la tabla.
var (
	AdminOnly       Check = adminOnly{}
	AdminOrReadOnly Check = adminOrReadOnly{}
	OwnerOrAdmin    Check = ownerOrAdmin{}
)

type key struct {
	resource Resource
	action   Action
}

// Policy tabla (recurso, acción) → regla.
type Policy struct {
	rules map[key]Check
}

// NewPolicy construye una política vacía; las combinaciones no registradas se niegan.
func NewPolicy() *Policy {
	return &Policy{rules: map[key]Check{}}
}

// Register asocia una regla a varias acciones de un recurso.
func (pol *Policy) Register(resource Resource, check Check, actions ...Action) *Policy {
	for _, a := range actions {
		pol.rules[key{resource, a}] = check
	}
	return pol
}

// Rule devuelve la regla registrada para (recurso, acción).
func (pol *Policy) Rule(resource Resource, action Action) (Check, bool) {
	c, ok := pol.rules[key{resource, action}]
	return c, ok
}

// Decide evalúa la regla de (recurso, acción). Sin regla registrada: Forbidden
// para autenticados, Unauthenticated para anónimos.
func (pol *Policy) Decide(p *Principal, resource Resource, action Action, target any) Decision {
	c, ok := pol.Rule(resource, action)
	if !ok {
		if p == nil {
			return Unauthenticated
		}
		return Forbidden
	}
	return c.Evaluate(p, action, target)
}

var crud = []Action{ActionList, ActionRetrieve, ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDelete}

// DefaultPolicy es la tabla de permisos de la API.
func DefaultPolicy() *Policy {
	return NewPolicy().
		Register(ResourceCompany, AdminOrReadOnly, crud...).
		Register(ResourceProduct, AdminOrReadOnly, crud...).
		Register(ResourceInventory, AdminOrReadOnly, append(crud, ActionReport)...).
		Register(ResourceUser, AdminOnly, ActionList, ActionCreate).
		Register(ResourceUser, OwnerOrAdmin, ActionRetrieve, ActionUpdate, ActionPartialUpdate, ActionDelete)
}

type principalKey struct{}

// WithPrincipal guarda el principal en el contexto de la petición.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom obtiene el principal del contexto (nil si la petición es anónima).
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
