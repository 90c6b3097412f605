package entity

import "time"

// Company representa una organización/tenant del sistema. Toda la data del
// POS (productos, ventas, notificaciones) vive dentro de una Company.
type Company struct {
	ID             string
	Name           string
	Address        string
	Phone          string
	Email          string
	IsActive       bool
	Plan           string // basic, premium, enterprise
	CurrencySymbol string
	ReceiptHeader  string
	ReceiptFooter  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Branch sucursal física dentro de una Company.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
