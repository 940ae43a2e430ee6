package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_UnmarshalJSON(t *testing.T) {
	raw := `{
		"collect_id": "65b0e6293e9f76a9694d84b4aa11",
		"school_id": "school-1",
		"custom_order_id": "",
		"order_amount": 2000,
		"status": "SUCCESS",
		"student_info": {"name": "Asha", "id": "s1", "email": "asha@example.com"},
		"payment_time": "2025-01-02T10:00:00Z"
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))

	assert.Equal(t, StatusSuccess, tx.Status)
	assert.True(t, tx.OrderAmount.Valid)
	assert.True(t, decimal.NewFromInt(2000).Equal(tx.OrderAmountOrZero()))
	assert.False(t, tx.TransactionAmount.Valid)
	assert.True(t, tx.AmountMismatch())
	assert.Equal(t, "84b4aa11", tx.DisplayOrderID())
	require.NotNil(t, tx.PaymentTime)
	assert.Nil(t, tx.CreatedAt)
}

func TestStatus_UnmarshalUnknown(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Status
	}{
		{name: "missing", raw: `{}`, want: ""},
		{name: "null", raw: `{"status": null}`, want: StatusUnknown},
		{name: "unexpected", raw: `{"status": "refunded"}`, want: StatusUnknown},
		{name: "initiated", raw: `{"status": "initiated"}`, want: StatusInitiated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tx Transaction
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &tx))
			assert.Equal(t, tt.want, tx.Status)
		})
	}
}

func TestStatus_Filterable(t *testing.T) {
	for _, s := range FilterableStatuses {
		assert.True(t, s.Filterable(), string(s))
	}
	assert.False(t, StatusUnknown.Filterable())
	assert.False(t, Status("SUCCESS").Filterable())
	assert.False(t, Status("").Filterable())
}

func TestTransaction_OrderAmountOrZero(t *testing.T) {
	var tx Transaction
	assert.True(t, tx.OrderAmountOrZero().IsZero())
	assert.Equal(t, "", tx.DisplayOrderID())
	assert.False(t, tx.AmountMismatch())
}
