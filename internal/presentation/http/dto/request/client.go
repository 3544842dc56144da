package request

// ClientRequest represents the create/update client payload
type ClientRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   string  `json:"phone" binding:"required"`
	Address string  `json:"address" binding:"required"`
	Email   *string `json:"email" binding:"omitempty,email"`
}
