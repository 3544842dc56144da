package request

// InvoiceLineRequest is one requested invoice line. Quantity defaults to 1
// when omitted.
type InvoiceLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	UnitType  string `json:"unit_type"`
	Quantity  int64  `json:"quantity"`
}

// InvoiceRequest represents the create/update invoice payload. ClientID
// links a saved client; otherwise the free-form customer fields are used.
type InvoiceRequest struct {
	ClientID        *string              `json:"client_id" binding:"omitempty,uuid"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   *string              `json:"customer_email"`
	CustomerPhone   *string              `json:"customer_phone"`
	CustomerAddress *string              `json:"customer_address"`
	Items           []InvoiceLineRequest `json:"items" binding:"required,dive"`
}

// InvoiceFilterRequest represents invoice listing query parameters
type InvoiceFilterRequest struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Search  string `form:"search"`
	Status  string `form:"status"`
}
