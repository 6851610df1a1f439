package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/core/id"
	"medstock/internal/domain/filter"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](
		nil,
		"test_table",
		[]string{"id", "owner_id", "name", "quantity"},
		[]string{"name"},
		func() any { return nil },
	)
}

func TestApplyAdvancedFilters_Operators(t *testing.T) {
	repo := newTestRepo()
	ownerID := id.New()

	// squirrel resolves driver.Valuer args, so the owner UUID arrives
	// in the arg list as its string form.
	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "GreaterOrEqual",
			item:     filter.Item{Field: "quantity", Operator: filter.GreaterOrEqual, Value: 10},
			wantSQL:  "SELECT id, owner_id, name, quantity FROM test_table WHERE owner_id = $1 AND quantity >= $2",
			wantArgs: []any{ownerID.String(), 10},
		},
		{
			name:     "LessOrEqual",
			item:     filter.Item{Field: "quantity", Operator: filter.LessOrEqual, Value: 5},
			wantSQL:  "SELECT id, owner_id, name, quantity FROM test_table WHERE owner_id = $1 AND quantity <= $2",
			wantArgs: []any{ownerID.String(), 5},
		},
		{
			name:     "Contains",
			item:     filter.Item{Field: "name", Operator: filter.Contains, Value: "para"},
			wantSQL:  "SELECT id, owner_id, name, quantity FROM test_table WHERE owner_id = $1 AND name ILIKE $2",
			wantArgs: []any{ownerID.String(), "%para%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := repo.applyAdvancedFilters(repo.baseSelect(ownerID), []filter.Item{tt.item})
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)

			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestApplyAdvancedFilters_RejectsUnknownColumn(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.applyAdvancedFilters(
		repo.baseSelect(id.New()),
		[]filter.Item{{Field: "password_hash", Operator: filter.Equal, Value: "x"}},
	)
	assert.Error(t, err)
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		orderBy string
		want    string
		wantErr bool
	}{
		{"", "name ASC", false},
		{"name", "name ASC", false},
		{"-name", "name DESC", false},
		{"+quantity", "quantity ASC", false},
		{"-created_at", "created_at DESC", false},
		{"no_such_column", "", true},
		{"-", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.orderBy, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
