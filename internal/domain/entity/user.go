package entity

// Roles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleExternal = "EXTERNAL"
)

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ADMIN, EXTERNAL
	IsActive     bool
	IsStaff      bool
}

// IsAdmin indica si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ValidRole informa si role es uno de los dos valores admitidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleExternal
}
