package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		part  string
		total string
		want  string
	}{
		{"half", "50", "100", "50"},
		{"rounded to two places", "1", "3", "33.33"},
		{"negative margin", "-20", "60", "-33.33"},
		{"over hundred", "150", "100", "150"},
		{"zero total", "10", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percent(MustMoney(tt.part), MustMoney(tt.total))
			assert.True(t, got.Equal(MustMoney(tt.want)), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("12.345")
	require.NoError(t, err)
	assert.Equal(t, "12.345", m.String())

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestMustMoney_PanicsOnGarbage(t *testing.T) {
	assert.Panics(t, func() { MustMoney("abc") })
}
