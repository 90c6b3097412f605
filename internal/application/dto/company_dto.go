package dto

import "time"

// CreateCompanyRequest alta de empresa (solo super_admin).
type CreateCompanyRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Plan          string `json:"plan,omitempty"`
	ReceiptHeader string `json:"receipt_header,omitempty"`
	ReceiptFooter string `json:"receipt_footer,omitempty"`
}

// CompanyResponse representación pública de una empresa.
type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Plan          string    `json:"plan"`
	IsActive      bool      `json:"is_active"`
	ReceiptHeader string    `json:"receipt_header,omitempty"`
	ReceiptFooter string    `json:"receipt_footer,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateBranchRequest alta de sucursal.
type CreateBranchRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// BranchResponse representación pública de una sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
