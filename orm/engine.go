package orm

import (
	"sync"

	"github.com/gsarmaonline/modelloader/core"
	"github.com/gsarmaonline/modelloader/naming"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type (
	// Engine defines models as dynamic gorm structs.
	Engine struct {
		db    *gorm.DB
		types core.Types
		cache *sync.Map
	}
)

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		db:    db,
		types: core.DefaultTypes,
		cache: &sync.Map{},
	}
}

func (e *Engine) Types() core.Types {
	return e.types
}

func (e *Engine) DB() *gorm.DB {
	return e.db
}

func (e *Engine) Define(name string, fields core.Fields, params core.Params, opts ...core.DefineOption) (core.Model, error) {
	return e.DefineModel(name, fields, params, opts...)
}

// DefineModel is Define returning the concrete model.
func (e *Engine) DefineModel(name string, fields core.Fields, params core.Params, opts ...core.DefineOption) (*Model, error) {
	if name == "" {
		return nil, core.ErrInvalidField{Field: "name", Message: "model name is required"}
	}
	if params == nil {
		params = core.Params{}
	}

	attrs, err := buildAttributes(fields, params)
	if err != nil {
		return nil, err
	}

	table := params.TableName()
	if table == "" {
		table = naming.TableName(name)
	}

	cfg := core.NewDefineConfig(opts...)
	m := &Model{
		engine:          e,
		name:            name,
		table:           table,
		schemaName:      params.Schema(),
		attrs:           attrs,
		classMethods:    cfg.ClassMethods,
		instanceMethods: cfg.InstanceMethods,
		definition:      cfg.Definition,
	}
	if err := m.compile(); err != nil {
		return nil, err
	}

	return m, nil
}

func (e *Engine) namer() schema.Namer {
	if e.db != nil && e.db.Config != nil && e.db.NamingStrategy != nil {
		return e.db.NamingStrategy
	}
	return schema.NamingStrategy{}
}
