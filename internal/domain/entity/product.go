package entity

import "github.com/shopspring/decimal"

// Prices mapea código de moneda ISO 4217 → monto (ej. {"USD": 10.99, "COP": 45000}).
type Prices map[string]decimal.Decimal

// Product representa un producto de una empresa con precio en varias monedas.
type Product struct {
	ID        int64
	Code      string // único en todo el sistema
	Name      string
	Features  string
	Price     Prices
	CompanyID int64
}
