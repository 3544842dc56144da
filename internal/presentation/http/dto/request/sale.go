package request

// SaleFilterRequest represents sales listing query parameters. Month is
// zero-based (0 = January) to match the client calendar widget.
type SaleFilterRequest struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Search  string `form:"search"`
	Year    int    `form:"year"`
	Month   *int   `form:"month"`
}
