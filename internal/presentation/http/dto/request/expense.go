package request

// ExpenseForm represents the multipart expense payload. The receipt file
// travels as the "receipt" form file and is handled separately.
type ExpenseForm struct {
	Date        string  `form:"date" binding:"required"`
	Category    string  `form:"category" binding:"required"`
	Amount      float64 `form:"amount" binding:"required"`
	Description string  `form:"description" binding:"required"`
}

// ExpenseFilterRequest represents expense listing query parameters. Month is
// zero-based (0 = January) to match the client calendar widget.
type ExpenseFilterRequest struct {
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
	Year     int    `form:"year"`
	Month    *int   `form:"month"`
	Category string `form:"category"`
	Search   string `form:"search"`
}

// CategoryRequest represents the add-category payload
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
