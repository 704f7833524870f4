package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
)

type MockCatalog struct {
	entity.Catalog
	HSNCode string  `db:"hsn_code" json:"hsnCode"`
	TaxRate float64 `db:"tax_rate" json:"taxRate"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "attributes",
		"code", "name", "parent_id", "is_folder",
		"hsn_code", "tax_rate",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap(t *testing.T) {
	cat := MockCatalog{
		Catalog: entity.Catalog{
			BaseCatalog: entity.BaseCatalog{
				BaseEntity: entity.BaseEntity{
					ID:           id.New(),
					DeletionMark: true,
					Version:      5,
				},
			},
			Code: "ITEM-001",
			Name: "Steel Pipe 2in",
		},
		HSNCode: "7306",
		TaxRate: 18,
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "ITEM-001", m["code"])
	assert.Equal(t, "Steel Pipe 2in", m["name"])
	assert.Equal(t, "7306", m["hsn_code"])
	assert.Equal(t, float64(18), m["tax_rate"])
}
