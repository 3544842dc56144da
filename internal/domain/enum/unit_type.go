package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/latia/admin-api/pkg/apperror"
)

// UnitType represents the packaging unit an invoice line is counted in
type UnitType int

const (
	UnitTypeUnit   UnitType = 0
	UnitTypeBag    UnitType = 1
	UnitTypeBox    UnitType = 2
	UnitTypePallet UnitType = 3
)

var unitTypeNames = [...]string{"unit", "bag", "box", "pallet"}

func (u UnitType) String() string {
	if u < UnitTypeUnit || u > UnitTypePallet {
		return "unit"
	}
	return unitTypeNames[u]
}

// Valid reports whether u is one of the known unit types
func (u UnitType) Valid() bool {
	return u >= UnitTypeUnit && u <= UnitTypePallet
}

// ParseUnitType converts a wire value into a UnitType. Unknown values fail
// with an invalid-unit-type error; this is the validation point for any
// caller that did not go through JSON binding.
func ParseUnitType(value string) (UnitType, error) {
	for i, name := range unitTypeNames {
		if name == value {
			return UnitType(i), nil
		}
	}
	return UnitTypeUnit, apperror.NewInvalidUnitTypeError(value)
}

func (u UnitType) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *UnitType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !UnitType(i).Valid() {
			return apperror.NewInvalidUnitTypeError(string(data))
		}
		*u = UnitType(i)
		return nil
	}
	parsed, err := ParseUnitType(str)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u UnitType) Value() (driver.Value, error) {
	return int64(u), nil
}

func (u *UnitType) Scan(value interface{}) error {
	if value == nil {
		*u = UnitTypeUnit
		return nil
	}
	switch v := value.(type) {
	case int64:
		*u = UnitType(v)
	case int:
		*u = UnitType(v)
	default:
		return fmt.Errorf("cannot scan %T into UnitType", value)
	}
	return nil
}
