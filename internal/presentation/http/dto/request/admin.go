package request

// AdminRequest represents the grant-access payload
type AdminRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}
