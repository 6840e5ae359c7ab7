package core

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	// DataType is a column type from the engine's type namespace.
	DataType struct {
		Key string

		goType reflect.Type
		tag    string
	}

	// Types is the type namespace handed to every definition function.
	Types struct {
		String  DataType
		Text    DataType
		Integer DataType
		BigInt  DataType
		Float   DataType
		Boolean DataType
		Date    DataType
		UUID    DataType
		JSON    DataType
	}
)

var DefaultTypes = Types{
	String:  DataType{Key: "STRING", goType: reflect.TypeOf("")},
	Text:    DataType{Key: "TEXT", goType: reflect.TypeOf(""), tag: "type:text"},
	Integer: DataType{Key: "INTEGER", goType: reflect.TypeOf(int(0))},
	BigInt:  DataType{Key: "BIGINT", goType: reflect.TypeOf(int64(0))},
	Float:   DataType{Key: "FLOAT", goType: reflect.TypeOf(float64(0))},
	Boolean: DataType{Key: "BOOLEAN", goType: reflect.TypeOf(false)},
	Date:    DataType{Key: "DATE", goType: reflect.TypeOf(time.Time{})},
	UUID:    DataType{Key: "UUID", goType: reflect.TypeOf(uuid.UUID{})},
	JSON:    DataType{Key: "JSON", goType: reflect.TypeOf(map[string]any{}), tag: "serializer:json"},
}

// IsZero reports whether the data type was never set.
func (dt DataType) IsZero() bool {
	return dt.Key == "" || dt.goType == nil
}

// GoType returns the struct field type used for a column of this type.
// Nullable scalars are pointers; maps are already nilable.
func (dt DataType) GoType(nullable bool) reflect.Type {
	if dt.goType == nil {
		return nil
	}
	if nullable && dt.goType.Kind() != reflect.Map {
		return reflect.PointerTo(dt.goType)
	}
	return dt.goType
}

// GormTag returns the extra gorm tag settings for the type, if any.
func (dt DataType) GormTag() string {
	return dt.tag
}

func (dt DataType) MarshalText() ([]byte, error) {
	return []byte(dt.Key), nil
}

func (dt DataType) String() string {
	return dt.Key
}

// All returns every data type in the namespace.
func (t Types) All() []DataType {
	return []DataType{t.String, t.Text, t.Integer, t.BigInt, t.Float, t.Boolean, t.Date, t.UUID, t.JSON}
}

// Lookup resolves a type by key, ignoring case.
func (t Types) Lookup(name string) (DataType, bool) {
	for _, dt := range t.All() {
		if strings.EqualFold(dt.Key, name) {
			return dt, true
		}
	}
	return DataType{}, false
}
