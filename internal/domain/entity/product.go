package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PackagingConfig defines the nested multiplier chain for a product:
// 1 bag = UnitsPerBag units, 1 box = BagsPerBox bags, 1 pallet =
// BoxesPerPallet boxes.
type PackagingConfig struct {
	UnitsPerBag    int64 `json:"units_per_bag"`
	BagsPerBox     int64 `json:"bags_per_box"`
	BoxesPerPallet int64 `json:"boxes_per_pallet"`
}

// Factor returns the multiplier from the given unit type to base units.
// A nil config means the product is counted in base units only.
func (p *PackagingConfig) Factor(unitType enum.UnitType) int64 {
	if p == nil {
		return 1
	}
	switch unitType {
	case enum.UnitTypeBag:
		return p.UnitsPerBag
	case enum.UnitTypeBox:
		return p.UnitsPerBag * p.BagsPerBox
	case enum.UnitTypePallet:
		return p.UnitsPerBag * p.BagsPerBox * p.BoxesPerPallet
	}
	return 1
}

// Product represents a product in the inventory. Stock is always persisted
// in base units regardless of the unit type it was counted in.
type Product struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	Price     int64            `gorm:"not null" json:"-"` // Cents per base unit
	Stock     int64            `gorm:"default:0" json:"stock"`
	MinStock  int64            `gorm:"default:0" json:"min_stock"`
	Category  *string          `gorm:"size:255" json:"category,omitempty"`
	Packaging *PackagingConfig `gorm:"serializer:json" json:"packaging,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPriceDecimal returns the price per base unit as a decimal (for display)
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// SetPriceFromDecimal sets the price from a decimal value, rounding to the
// nearest cent. Truncating would store inputs like 2.55 one cent low, and the
// loss then multiplies through packaging conversion factors.
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(math.Round(price * 100))
}

// AllowsUnitType reports whether unitType is selectable for this product.
// A product without a packaging config is counted in base units only.
func (p *Product) AllowsUnitType(unitType enum.UnitType) bool {
	return unitType == enum.UnitTypeUnit || p.Packaging != nil
}

// UnitPrice returns the price in cents for one of the given unit type
func (p *Product) UnitPrice(unitType enum.UnitType) int64 {
	return p.Price * p.Packaging.Factor(unitType)
}

// ToBaseUnits converts a quantity counted in the given unit type to base units
func (p *Product) ToBaseUnits(quantity int64, unitType enum.UnitType) int64 {
	return quantity * p.Packaging.Factor(unitType)
}

// IsLowStock reports whether the product is at or below its minimum stock
// threshold. The boundary is inclusive: exactly at the threshold counts.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// MarshalJSON converts Product to JSON with a decimal price
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: p.GetPriceDecimal(),
	})
}
