package metadata

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"zenbill/internal/core/id"
)

var (
	idType      = reflect.TypeOf(id.ID{})
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

// Inspect analyzes a struct and returns its EntityDef. Embedded structs
// flatten into the parent; slice-of-struct fields become table parts.
func Inspect(entity any, name string, entityType EntityType) EntityDef {
	t := reflect.TypeOf(entity)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if name == "" {
		name = t.Name()
	}

	def := EntityDef{
		Name:       name,
		Label:      splitCamel(t.Name()),
		Type:       entityType,
		Fields:     make([]FieldDef, 0),
		TableParts: make([]TablePartDef, 0),
	}

	inspectStruct(t, &def)

	return def
}

func inspectStruct(t reflect.Type, def *EntityDef) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.PkgPath != "" { // unexported
			continue
		}

		if field.Anonymous {
			if field.Type.Kind() == reflect.Struct && field.Type != decimalType {
				inspectStruct(field.Type, def)
				continue
			}
		}

		// Slice of structs is a table part (lines, allocations)
		if field.Type.Kind() == reflect.Slice {
			elemType := field.Type.Elem()
			if elemType.Kind() == reflect.Struct && elemType != decimalType {
				def.TableParts = append(def.TableParts, TablePartDef{
					Name:    jsonName(field),
					Label:   splitCamel(field.Name),
					Columns: inspectColumns(elemType),
				})
				continue
			}
		}

		fDef := FieldDef{
			Name:     jsonName(field),
			Label:    splitCamel(field.Name),
			Required: isRequired(field),
			ReadOnly: isReadOnly(field),
		}

		mapFieldType(&fDef, field)

		if fDef.Name == "-" {
			continue
		}

		def.Fields = append(def.Fields, fDef)
	}
}

func inspectColumns(t reflect.Type) []FieldDef {
	cols := make([]FieldDef, 0)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct && field.Type != decimalType {
			cols = append(cols, inspectColumns(field.Type)...)
			continue
		}

		fDef := FieldDef{
			Name:     jsonName(field),
			Label:    splitCamel(field.Name),
			Required: isRequired(field),
		}
		mapFieldType(&fDef, field)
		if fDef.Name == "-" {
			continue
		}
		cols = append(cols, fDef)
	}
	return cols
}

func mapFieldType(def *FieldDef, field reflect.StructField) {
	t := field.Type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t {
	case idType:
		def.Type = TypeReference
		// "CustomerID" references the customer catalog
		if base, ok := strings.CutSuffix(field.Name, "ID"); ok && base != "" {
			def.ReferenceType = strings.ToLower(base)
		}
		return
	case timeType:
		def.Type = TypeDate
		return
	case decimalType:
		def.Type = TypeMoney
		def.Scale = 2
		return
	}

	switch t.Kind() {
	case reflect.String:
		def.Type = TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		def.Type = TypeInteger
	case reflect.Float32, reflect.Float64:
		def.Type = TypeNumber
		def.Scale = 2
		if strings.Contains(field.Name, "Quantity") {
			def.Scale = 3
		}
	case reflect.Bool:
		def.Type = TypeBoolean
	default:
		def.Type = TypeString
	}
}

func jsonName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("json"); ok {
		parts := strings.Split(tag, ",")
		if parts[0] != "" {
			return parts[0]
		}
	}
	runes := []rune(field.Name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func isRequired(field reflect.StructField) bool {
	if tag, ok := field.Tag.Lookup("binding"); ok {
		return strings.Contains(tag, "required")
	}
	return false
}

func isReadOnly(field reflect.StructField) bool {
	switch field.Name {
	case "ID", "Number", "Version", "CreatedAt", "UpdatedAt", "CreatedBy", "UpdatedBy", "Totals":
		return true
	}
	return false
}

// splitCamel turns "GrandTotal" into "Grand Total". Consecutive upper
// case runs stay together ("GSTIN", "HSNCode" -> "HSN Code").
func splitCamel(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
