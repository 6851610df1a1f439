package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"calendar date", `"2026-03-18"`, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339", `"2026-03-18T10:30:00Z"`, time.Date(2026, 3, 18, 10, 30, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"garbage", `"18th of March"`, time.Time{}, true},
		{"wrong order", `"18-03-2026"`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time), "want %s, got %s", tt.want, d.Time)
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	d := Date{Time: time.Date(2026, 3, 18, 10, 30, 0, 0, time.UTC)}
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-18"`, string(data))

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}
