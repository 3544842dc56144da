package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnitType(t *testing.T) {
	cases := map[string]UnitType{
		"unit":   UnitTypeUnit,
		"bag":    UnitTypeBag,
		"box":    UnitTypeBox,
		"pallet": UnitTypePallet,
	}
	for name, want := range cases {
		got, err := ParseUnitType(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}
}

func TestParseUnitTypeUnknown(t *testing.T) {
	_, err := ParseUnitType("crate")
	require.Error(t, err)

	_, err = ParseUnitType("")
	require.Error(t, err)
}

func TestUnitTypeValid(t *testing.T) {
	assert.True(t, UnitTypeUnit.Valid())
	assert.True(t, UnitTypePallet.Valid())
	assert.False(t, UnitType(-1).Valid())
	assert.False(t, UnitType(4).Valid())
}

func TestUnitTypeJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(UnitTypeBox)
	require.NoError(t, err)
	assert.Equal(t, `"box"`, string(data))

	var u UnitType
	require.NoError(t, json.Unmarshal([]byte(`"pallet"`), &u))
	assert.Equal(t, UnitTypePallet, u)

	// Integer form is accepted too
	require.NoError(t, json.Unmarshal([]byte(`1`), &u))
	assert.Equal(t, UnitTypeBag, u)

	assert.Error(t, json.Unmarshal([]byte(`"crate"`), &u))
	assert.Error(t, json.Unmarshal([]byte(`9`), &u))
}

func TestUnitTypeScan(t *testing.T) {
	var u UnitType
	require.NoError(t, u.Scan(int64(2)))
	assert.Equal(t, UnitTypeBox, u)

	require.NoError(t, u.Scan(nil))
	assert.Equal(t, UnitTypeUnit, u)

	// A driver handing back anything but an integer is a bug worth surfacing
	assert.Error(t, u.Scan([]byte("2")))
	assert.Error(t, u.Scan("box"))
}

func TestInvoiceStatusScan(t *testing.T) {
	var s InvoiceStatus
	require.NoError(t, s.Scan(int64(1)))
	assert.Equal(t, InvoiceStatusPaid, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, InvoiceStatusPending, s)

	assert.Error(t, s.Scan("paid"))
	assert.Error(t, s.Scan([]byte("1")))
}

func TestInvoiceStatusTransitions(t *testing.T) {
	assert.True(t, InvoiceStatusPending.CanTransitionTo(InvoiceStatusPaid))
	assert.True(t, InvoiceStatusPaid.CanTransitionTo(InvoiceStatusDelivered))

	// No skipping, no going back, no re-entering
	assert.False(t, InvoiceStatusPending.CanTransitionTo(InvoiceStatusDelivered))
	assert.False(t, InvoiceStatusPaid.CanTransitionTo(InvoiceStatusPaid))
	assert.False(t, InvoiceStatusPaid.CanTransitionTo(InvoiceStatusPending))
	assert.False(t, InvoiceStatusDelivered.CanTransitionTo(InvoiceStatusPaid))
}

func TestParseInvoiceStatus(t *testing.T) {
	status, ok := ParseInvoiceStatus("paid")
	require.True(t, ok)
	assert.Equal(t, InvoiceStatusPaid, status)

	_, ok = ParseInvoiceStatus("archived")
	assert.False(t, ok)
}
