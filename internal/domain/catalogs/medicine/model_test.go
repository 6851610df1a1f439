package medicine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/core/id"
	"medstock/internal/core/types"
)

var today = time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

func TestExpiryStatusAt_Boundaries(t *testing.T) {
	tests := []struct {
		name    string
		expDate time.Time
		want    ExpiryStatus
	}{
		{"yesterday", today.AddDate(0, 0, -1), StatusExpired},
		{"today", today, StatusExpiring},
		{"window boundary", today.AddDate(0, 0, ExpiringWindowDays), StatusExpiring},
		{"past window", today.AddDate(0, 0, ExpiringWindowDays+1), StatusOK},
		{"next year", today.AddDate(1, 0, 0), StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Medicine{ExpDate: tt.expDate}
			assert.Equal(t, tt.want, m.ExpiryStatusAt(today))
		})
	}
}

func TestExpiryStatusAt_ComparesByCalendarDay(t *testing.T) {
	// Expiring late today is still "today", not expired.
	m := &Medicine{ExpDate: time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, StatusExpiring, m.ExpiryStatusAt(time.Date(2026, 3, 18, 23, 59, 0, 0, time.UTC)))
	assert.False(t, m.IsExpiredAt(today))
}

func validMedicine() *Medicine {
	m := NewMedicine(id.New(), "Paracetamol 500mg", "MED-00001")
	m.CostPrice = types.MustMoney("1.20")
	m.MRP = types.MustMoney("2.50")
	m.MfgDate = today.AddDate(-1, 0, 0)
	m.ExpDate = today.AddDate(1, 0, 0)
	return m
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, validMedicine().Validate(ctx))

	tests := []struct {
		name   string
		mutate func(m *Medicine)
	}{
		{"empty name", func(m *Medicine) { m.Name = "" }},
		{"empty code", func(m *Medicine) { m.Code = "" }},
		{"negative cost", func(m *Medicine) { m.CostPrice = types.MustMoney("-1") }},
		{"negative mrp", func(m *Medicine) { m.MRP = types.MustMoney("-1") }},
		{"missing mfg date", func(m *Medicine) { m.MfgDate = time.Time{} }},
		{"missing exp date", func(m *Medicine) { m.ExpDate = time.Time{} }},
		{"exp before mfg", func(m *Medicine) { m.ExpDate = m.MfgDate.AddDate(0, 0, -1) }},
		{"negative quantity", func(m *Medicine) { m.QuantityOnHand = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMedicine()
			tt.mutate(m)
			assert.Error(t, m.Validate(ctx))
		})
	}
}
