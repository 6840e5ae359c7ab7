package orm

import (
	"context"
	"reflect"
	"sort"

	"github.com/gsarmaonline/modelloader/core"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ValidateMethod names the instance method Create runs before inserting.
const ValidateMethod = "validate"

type (
	// Model is a registered model backed by a dynamically built struct type.
	Model struct {
		engine *Engine

		name       string
		table      string
		schemaName string
		attrs      []attribute

		classMethods    map[string]core.ClassMethod
		instanceMethods map[string]core.InstanceMethod
		definition      *core.Definition

		typ        reflect.Type
		fieldNames map[string]string
		parsed     *schema.Schema
	}
)

// compile rebuilds the struct type from the attribute list.
func (m *Model) compile() error {
	fields := make([]reflect.StructField, 0, len(m.attrs))
	fieldNames := make(map[string]string, len(m.attrs))
	owners := make(map[string]string, len(m.attrs))

	for _, attr := range m.attrs {
		goName, err := fieldName(attr.name)
		if err != nil {
			return err
		}
		if other, ok := owners[goName]; ok {
			return core.ErrInvalidField{Field: attr.name, Message: "clashes with column " + other}
		}
		owners[goName] = attr.name
		fieldNames[attr.name] = goName

		fields = append(fields, reflect.StructField{
			Name: goName,
			Type: attr.goType(),
			Tag:  attr.structTag(),
		})
	}

	typ := reflect.StructOf(fields)
	parsed, err := schema.ParseWithSpecialTableName(reflect.New(typ).Interface(), m.engine.cache, m.engine.namer(), m.QualifiedTableName())
	if err != nil {
		return err
	}

	m.typ = typ
	m.fieldNames = fieldNames
	m.parsed = parsed
	return nil
}

func (m *Model) Name() string {
	return m.name
}

func (m *Model) TableName() string {
	return m.table
}

func (m *Model) Schema() string {
	return m.schemaName
}

// QualifiedTableName prefixes the table with its schema when one is set.
func (m *Model) QualifiedTableName() string {
	if m.schemaName == "" {
		return m.table
	}
	return m.schemaName + "." + m.table
}

func (m *Model) Attributes() []string {
	names := make([]string, len(m.attrs))
	for i, attr := range m.attrs {
		names[i] = attr.name
	}
	return names
}

func (m *Model) Attribute(name string) (core.Attribute, bool) {
	for _, attr := range m.attrs {
		if attr.name == name {
			return attr.Attribute, true
		}
	}
	return core.Attribute{}, false
}

func (m *Model) PrimaryKeys() []string {
	var keys []string
	for _, attr := range m.attrs {
		if attr.PrimaryKey {
			keys = append(keys, attr.name)
		}
	}
	return keys
}

// RemoveAttribute drops a column from the model. Removing a column the
// model does not have is a no-op.
func (m *Model) RemoveAttribute(name string) error {
	idx := -1
	for i, attr := range m.attrs {
		if attr.name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	previous := m.attrs
	attrs := make([]attribute, 0, len(m.attrs)-1)
	attrs = append(attrs, m.attrs[:idx]...)
	attrs = append(attrs, m.attrs[idx+1:]...)
	m.attrs = attrs

	if err := m.compile(); err != nil {
		m.attrs = previous
		return err
	}
	return nil
}

func (m *Model) Definition() *core.Definition {
	return m.definition
}

func (m *Model) ClassMethods() []string {
	return sortedKeys(m.classMethods)
}

func (m *Model) InstanceMethods() []string {
	return sortedKeys(m.instanceMethods)
}

// Call invokes a class-level method by name.
func (m *Model) Call(method string, args ...any) (any, error) {
	fn, ok := m.classMethods[method]
	if !ok {
		return nil, core.ErrUnknownMethod{Model: m.name, Method: method}
	}
	return fn(m, args...)
}

func (m *Model) Type() reflect.Type {
	return m.typ
}

func (m *Model) GormSchema() *schema.Schema {
	return m.parsed
}

func (m *Model) New() *Instance {
	return &Instance{model: m, value: reflect.New(m.typ)}
}

// DB returns a gorm session scoped to the model's table.
func (m *Model) DB(ctx context.Context) *gorm.DB {
	return m.engine.db.WithContext(ctx).Table(m.QualifiedTableName())
}

// AutoMigrate creates or updates the model's table.
func (m *Model) AutoMigrate(ctx context.Context) error {
	return m.DB(ctx).AutoMigrate(m.New().Interface())
}

// Create inserts the instance. Models defining a validate instance
// method have it run first; its error aborts the insert.
func (m *Model) Create(ctx context.Context, inst *Instance) error {
	if _, ok := m.instanceMethods[ValidateMethod]; ok {
		if _, err := inst.Call(ValidateMethod, ctx); err != nil {
			return err
		}
	}
	return m.DB(ctx).Create(inst.Interface()).Error
}

// Delete removes the instance by primary key. Paranoid models only get
// deleted_at set.
func (m *Model) Delete(ctx context.Context, inst *Instance) error {
	return m.DB(ctx).Delete(inst.Interface()).Error
}

// FindAll loads every row matching the optional gorm conditions.
func (m *Model) FindAll(ctx context.Context, conds ...any) ([]*Instance, error) {
	rows := reflect.New(reflect.SliceOf(m.typ))
	if err := m.DB(ctx).Find(rows.Interface(), conds...).Error; err != nil {
		return nil, err
	}

	slice := rows.Elem()
	instances := make([]*Instance, slice.Len())
	for i := range instances {
		instances[i] = &Instance{model: m, value: slice.Index(i).Addr()}
	}
	return instances, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
