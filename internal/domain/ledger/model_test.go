package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/core/types"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"BOUGHT", TypeBought, false},
		{"bought", TypeBought, false},
		{"  Sold ", TypeSold, false},
		{"IMPORT", "", true},
		{"EXPORT", "", true},
		{"", "", true},
		{"REFUND", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_LegacyAliases(t *testing.T) {
	tests := []struct {
		raw  string
		want Kind
	}{
		{"BOUGHT", KindBought},
		{"IMPORT", KindBought},
		{"import", KindBought},
		{"SOLD", KindSold},
		{"EXPORT", KindSold},
		{" export ", KindSold},
		{"REFUND", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.raw), "raw=%q", tt.raw)
	}
}

func TestTotalAmount(t *testing.T) {
	txn := &Transaction{
		UnitPrice: types.MustMoney("2.50"),
		Quantity:  3,
	}
	assert.True(t, txn.TotalAmount().Equal(types.MustMoney("7.50")))
}
