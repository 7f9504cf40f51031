package entity

// Company representa una empresa/tenant. Es dueña de productos e inventario (borrado en cascada).
type Company struct {
	ID      int64
	NIT     string // único en todo el sistema
	Name    string
	Address string
	Phone   string
}
