package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus int

const (
	InvoiceStatusPending   InvoiceStatus = 0
	InvoiceStatusPaid      InvoiceStatus = 1
	InvoiceStatusDelivered InvoiceStatus = 2
)

func (s InvoiceStatus) String() string {
	if s < InvoiceStatusPending || s > InvoiceStatusDelivered {
		return "pending"
	}
	return [...]string{"pending", "paid", "delivered"}[s]
}

// CanTransitionTo reports whether next is the legal forward step from s.
// The lifecycle only moves pending -> paid -> delivered, one step at a time.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	return next == s+1 && next <= InvoiceStatusDelivered
}

// ParseInvoiceStatus parses a status name used in list filters
func ParseInvoiceStatus(value string) (InvoiceStatus, bool) {
	switch value {
	case "pending":
		return InvoiceStatusPending, true
	case "paid":
		return InvoiceStatusPaid, true
	case "delivered":
		return InvoiceStatusDelivered, true
	}
	return InvoiceStatusPending, false
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = InvoiceStatusPending
	case "paid":
		*s = InvoiceStatusPaid
	case "delivered":
		*s = InvoiceStatusDelivered
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into InvoiceStatus", value)
	}
	return nil
}
