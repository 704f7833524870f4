package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenbill/internal/domain/documents/salesorder"
)

func fieldByName(fields []FieldDef, name string) (FieldDef, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

func TestInspectSalesOrder(t *testing.T) {
	def := Inspect(salesorder.SalesOrder{}, "sales_order", TypeDocument)

	assert.Equal(t, "sales_order", def.Name)
	assert.Equal(t, TypeDocument, def.Type)

	// Embedded document header flattens into the parent
	number, ok := fieldByName(def.Fields, "number")
	require.True(t, ok)
	assert.Equal(t, TypeString, number.Type)
	assert.True(t, number.ReadOnly)

	customerID, ok := fieldByName(def.Fields, "customerId")
	require.True(t, ok)
	assert.Equal(t, TypeReference, customerID.Type)
	assert.Equal(t, "customer", customerID.ReferenceType)

	// Lines become a table part
	require.NotEmpty(t, def.TableParts)
	var lines *TablePartDef
	for i := range def.TableParts {
		if def.TableParts[i].Name == "lines" {
			lines = &def.TableParts[i]
		}
	}
	require.NotNil(t, lines)

	qty, ok := fieldByName(lines.Columns, "quantity")
	require.True(t, ok)
	assert.Equal(t, TypeNumber, qty.Type)
	assert.Equal(t, 3, qty.Scale)

	taxable, ok := fieldByName(lines.Columns, "taxableAmount")
	require.True(t, ok)
	assert.Equal(t, TypeMoney, taxable.Type)
}

func TestDefaultRegistryListsAllEntities(t *testing.T) {
	r := DefaultRegistry()

	list := r.List()
	assert.Len(t, list, 11)

	_, ok := r.Get("quote")
	assert.True(t, ok)
	_, ok = r.Get("eway_bill")
	assert.True(t, ok)
	_, ok = r.Get("warehouse")
	assert.False(t, ok)
}

func TestSplitCamel(t *testing.T) {
	assert.Equal(t, "Grand Total", splitCamel("GrandTotal"))
	assert.Equal(t, "HSN Code", splitCamel("HSNCode"))
	assert.Equal(t, "GSTIN", splitCamel("GSTIN"))
	assert.Equal(t, "Customer", splitCamel("Customer"))
}
