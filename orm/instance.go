package orm

import (
	"fmt"
	"reflect"

	"github.com/gsarmaonline/modelloader/core"
)

type (
	// Instance is one row of a model, wrapping a pointer to its struct type.
	Instance struct {
		model *Model
		value reflect.Value
	}
)

func (i *Instance) Model() core.Model {
	return i.model
}

// Interface returns the struct pointer gorm reads and writes.
func (i *Instance) Interface() any {
	return i.value.Interface()
}

func (i *Instance) field(column string) (reflect.Value, bool) {
	goName, ok := i.model.fieldNames[column]
	if !ok {
		return reflect.Value{}, false
	}
	f := i.value.Elem().FieldByName(goName)
	return f, f.IsValid()
}

// Get returns the column value, dereferencing nullable columns.
func (i *Instance) Get(column string) (any, bool) {
	f, ok := i.field(column)
	if !ok {
		return nil, false
	}
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return nil, true
		}
		return f.Elem().Interface(), true
	}
	return f.Interface(), true
}

func (i *Instance) Set(column string, value any) error {
	f, ok := i.field(column)
	if !ok {
		return core.ErrInvalidField{Field: column, Message: "unknown attribute"}
	}

	if value == nil {
		if f.Kind() == reflect.Ptr || f.Kind() == reflect.Map {
			f.Set(reflect.Zero(f.Type()))
			return nil
		}
		return core.ErrInvalidField{Field: column, Message: "does not allow null"}
	}

	target := f.Type()
	if target.Kind() == reflect.Ptr {
		converted, err := convert(column, reflect.ValueOf(value), target.Elem())
		if err != nil {
			return err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(converted)
		f.Set(ptr)
		return nil
	}

	converted, err := convert(column, reflect.ValueOf(value), target)
	if err != nil {
		return err
	}
	f.Set(converted)
	return nil
}

// Values returns every column of the instance.
func (i *Instance) Values() map[string]any {
	values := make(map[string]any, len(i.model.fieldNames))
	for column := range i.model.fieldNames {
		if v, ok := i.Get(column); ok {
			values[column] = v
		}
	}
	return values
}

// Call invokes an instance-level method by name.
func (i *Instance) Call(method string, args ...any) (any, error) {
	fn, ok := i.model.instanceMethods[method]
	if !ok {
		return nil, core.ErrUnknownMethod{Model: i.model.name, Method: method}
	}
	return fn(i, args...)
}

func convert(column string, v reflect.Value, target reflect.Type) (reflect.Value, error) {
	if v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	if v.Type().AssignableTo(target) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(target.Kind()) {
		return v.Convert(target), nil
	}
	if v.Kind() == target.Kind() && v.Type().ConvertibleTo(target) {
		return v.Convert(target), nil
	}
	return reflect.Value{}, core.ErrInvalidField{
		Field:   column,
		Message: fmt.Sprintf("cannot assign %s to %s", v.Type(), target),
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
