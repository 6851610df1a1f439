package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medstock/internal/core/entity"
	"medstock/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Code     string `db:"code" json:"code"`
	Internal string `db:"-" json:"-"`
	NoTag    string
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "owner_id", "created_at", "updated_at", "name", "version", "code",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}

	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expectedCols))
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	now := time.Now().UTC()
	cat := mockCatalog{
		Catalog: entity.Catalog{
			Owned: entity.Owned{
				ID:        id.New(),
				OwnerID:   id.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:    "Test Name",
			Version: 5,
		},
		Code:     "TEST",
		Internal: "hidden",
		NoTag:    "hidden",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, cat.OwnerID, m["owner_id"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "Test Name", m["name"])
	assert.Equal(t, "TEST", m["code"])

	_, hasDash := m["-"]
	assert.False(t, hasDash)
	assert.Len(t, m, 7)
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{Code: "PTR"}

	m := StructToMap(cat)
	assert.Equal(t, "PTR", m["code"])
}
