package dto

// CompanyRequest entrada para crear o reemplazar (PUT) una empresa.
type CompanyRequest struct {
	NIT     string `json:"nit" validate:"required,max=20"`
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"required,max=255"`
	Phone   string `json:"phone" validate:"required,max=20"`
}

// PatchCompanyRequest actualización parcial: solo se validan los campos presentes.
type PatchCompanyRequest struct {
	NIT     *string `json:"nit" validate:"omitempty,min=1,max=20"`
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Address *string `json:"address" validate:"omitempty,min=1,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,min=1,max=20"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID      int64  `json:"id"`
	NIT     string `json:"nit"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
