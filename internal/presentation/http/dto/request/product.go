package request

// PackagingRequest mirrors the nested multiplier chain of a product
type PackagingRequest struct {
	UnitsPerBag    int64 `json:"units_per_bag" binding:"required,min=1"`
	BagsPerBox     int64 `json:"bags_per_box" binding:"required,min=1"`
	BoxesPerPallet int64 `json:"boxes_per_pallet" binding:"required,min=1"`
}

// ProductRequest represents the create/update product payload. Stock is a
// count in StockUnitType ("unit" when omitted) and is converted to base
// units server side.
type ProductRequest struct {
	Name          string            `json:"name" binding:"required"`
	Price         float64           `json:"price"`
	Stock         int64             `json:"stock"`
	StockUnitType string            `json:"stock_unit_type"`
	MinStock      int64             `json:"min_stock"`
	Category      *string           `json:"category"`
	Packaging     *PackagingRequest `json:"packaging"`
}

// ProductFilterRequest represents product listing query parameters
type ProductFilterRequest struct {
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
	Search   string `form:"search"`
	Category string `form:"category"`
	LowStock bool   `form:"low_stock"`
}
