// Package fields maps database columns to UI widgets and typed properties.
package fields

import (
	"strings"

	"github.com/hurou927/marygen/internal/schema"
)

// Widget is the MaryUI component a column is edited with.
type Widget string

const (
	WidgetInput      Widget = "input"
	WidgetTextarea   Widget = "textarea"
	WidgetNumber     Widget = "number"
	WidgetCheckbox   Widget = "checkbox"
	WidgetDatepicker Widget = "datepicker"
)

// Scalar is the PHP property type a column is bound to.
type Scalar string

const (
	ScalarInt    Scalar = "int"
	ScalarBool   Scalar = "bool"
	ScalarString Scalar = "string"
)

var widgetsByType = map[string]Widget{
	"varchar":   WidgetInput,
	"text":      WidgetTextarea,
	"integer":   WidgetNumber,
	"bigint":    WidgetNumber,
	"smallint":  WidgetNumber,
	"bool":      WidgetCheckbox,
	"boolean":   WidgetCheckbox,
	"time":      WidgetDatepicker,
	"timestamp": WidgetDatepicker,
	"date":      WidgetDatepicker,
	"datetime":  WidgetDatepicker,
}

var scalarsByType = map[string]Scalar{
	"integer":  ScalarInt,
	"bigint":   ScalarInt,
	"smallint": ScalarInt,
	"bool":     ScalarBool,
	"boolean":  ScalarBool,
}

// icons is ordered: the first keyword contained in a column name wins.
var icons = []struct {
	keyword string
	icon    string
}{
	{"mail", "o-envelope"},
	{"password", "o-lock-closed"},
	{"username", "o-user"},
	{"avatar", "o-user-circle"},
	{"phone", "o-phone"},
	{"time", "o-clock"},
	{"status", "o-check-circle"},
}

// Mapping is the UI view of one column.
type Mapping struct {
	Name     string
	Widget   Widget
	Scalar   Scalar
	Required bool
	Icon     string // empty when no keyword matched
}

// WidgetFor returns the widget for a storage type, defaulting to input.
func WidgetFor(storageType string) Widget {
	if w, ok := widgetsByType[storageType]; ok {
		return w
	}
	return WidgetInput
}

// ScalarFor returns the property type for a storage type, defaulting to string.
func ScalarFor(storageType string) Scalar {
	if s, ok := scalarsByType[storageType]; ok {
		return s
	}
	return ScalarString
}

// IconFor returns the heroicon name hinted by a column name.
func IconFor(column string) string {
	for _, i := range icons {
		if strings.Contains(column, i.keyword) {
			return i.icon
		}
	}
	return ""
}

// MapColumn derives the Mapping of a single column.
func MapColumn(col schema.Column) Mapping {
	return Mapping{
		Name:     col.Name,
		Widget:   WidgetFor(col.DataType),
		Scalar:   ScalarFor(col.DataType),
		Required: !col.Nullable,
		Icon:     IconFor(col.Name),
	}
}

// MapColumns maps every column except the primary key, keeping schema order.
func MapColumns(cols []schema.Column, primaryKey string) []Mapping {
	mapped := make([]Mapping, 0, len(cols))
	for _, c := range cols {
		if c.Name == primaryKey {
			continue
		}
		mapped = append(mapped, MapColumn(c))
	}
	return mapped
}
