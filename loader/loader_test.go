package loader

import (
	"errors"
	"testing"

	"github.com/gsarmaonline/modelloader/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type (
	fakeModel struct {
		name   string
		table  string
		attrs  []string
		params core.Params
		cfg    *core.DefineConfig
	}

	fakeEngine struct {
		defined []string
		failOn  string
		err     error
	}
)

func (m *fakeModel) Name() string { return m.name }
func (m *fakeModel) TableName() string { return m.table }
func (m *fakeModel) Attributes() []string { return m.attrs }
func (m *fakeModel) Definition() *core.Definition { return m.cfg.Definition }
func (m *fakeModel) RemoveAttribute(name string) error {
	kept := m.attrs[:0]
	for _, attr := range m.attrs {
		if attr != name {
			kept = append(kept, attr)
		}
	}
	m.attrs = kept
	return nil
}

func (e *fakeEngine) Types() core.Types {
	return core.DefaultTypes
}

func (e *fakeEngine) Define(name string, fields core.Fields, params core.Params, opts ...core.DefineOption) (core.Model, error) {
	if name == e.failOn {
		return nil, e.err
	}
	e.defined = append(e.defined, name)

	attrs := []string{core.ColumnID}
	for field := range fields {
		attrs = append(attrs, field)
	}
	return &fakeModel{
		name:   name,
		table:  params.TableName(),
		attrs:  attrs,
		params: params,
		cfg:    core.NewDefineConfig(opts...),
	}, nil
}

func newTestCatalog(t *testing.T, defs map[string]core.DefineFunc) *Catalog {
	catalog := NewCatalog(".model")
	for name, fn := range defs {
		require.NoError(t, catalog.Register(name, fn))
	}
	return catalog
}

func staticDefinition(def *core.Definition) core.DefineFunc {
	return func(core.Types, core.Registry, any) (*core.Definition, error) {
		return def, nil
	}
}

func TestLoadOrderAndVisibility(t *testing.T) {
	var calls []string
	var seenByB []string

	catalog := newTestCatalog(t, map[string]core.DefineFunc{
		"b.model": func(types core.Types, models core.Registry, ctx any) (*core.Definition, error) {
			calls = append(calls, "b")
			seenByB = models.Names()
			return &core.Definition{Fields: core.Fields{"a_id": {Type: types.Integer}}}, nil
		},
		"a.model": func(types core.Types, models core.Registry, ctx any) (*core.Definition, error) {
			calls = append(calls, "a")
			assert.Empty(t, models)
			return &core.Definition{Fields: core.Fields{"title": {Type: types.String}}}, nil
		},
	})

	engine := &fakeEngine{}
	models, err := Load(catalog, engine, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Equal(t, []string{"a"}, seenByB)
	assert.Equal(t, []string{"a", "b"}, engine.defined)
	assert.ElementsMatch(t, []string{"a", "b"}, models.Names())
}

func TestLoadNameResolution(t *testing.T) {
	catalog := newTestCatalog(t, map[string]core.DefineFunc{
		"user.model":    staticDefinition(&core.Definition{Name: "UserAccount"}),
		"invoice.model": staticDefinition(&core.Definition{}),
	})

	models, err := Load(catalog, &fakeEngine{}, Options{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"UserAccount", "invoice"}, models.Names())
	assert.Equal(t, "users_accounts", models["UserAccount"].TableName())
	assert.Equal(t, "invoices", models["invoice"].TableName())
}

func TestLoadParamDefaults(t *testing.T) {
	tests := []struct {
		name       string
		params     core.Params
		schema     string
		wantTable  string
		wantSchema any
	}{
		{
			name:      "nil params get a fresh table name",
			params:    nil,
			wantTable: "users_accounts",
		},
		{
			name:      "explicit table name is kept",
			params:    core.Params{core.ParamTableName: "custom"},
			wantTable: "custom",
		},
		{
			name:       "global schema fills a missing schema",
			params:     core.Params{},
			schema:     "public",
			wantTable:  "users_accounts",
			wantSchema: "public",
		},
		{
			name:       "global schema never overrides",
			params:     core.Params{core.ParamSchema: "private"},
			schema:     "public",
			wantTable:  "users_accounts",
			wantSchema: "private",
		},
		{
			name:       "null schema receives the global schema",
			params:     core.Params{core.ParamSchema: nil},
			schema:     "public",
			wantTable:  "users_accounts",
			wantSchema: "public",
		},
		{
			name:       "empty schema receives the global schema",
			params:     core.Params{core.ParamSchema: ""},
			schema:     "public",
			wantTable:  "users_accounts",
			wantSchema: "public",
		},
		{
			name:       "nil params still receive the global schema",
			params:     nil,
			schema:     "public",
			wantTable:  "users_accounts",
			wantSchema: "public",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := &core.Definition{Name: "UserAccount", Params: tt.params}
			catalog := newTestCatalog(t, map[string]core.DefineFunc{
				"user.model": staticDefinition(def),
			})

			models, err := Load(catalog, &fakeEngine{}, Options{Schema: tt.schema})
			require.NoError(t, err)

			model := models["UserAccount"].(*fakeModel)
			assert.Equal(t, tt.wantTable, model.table)
			assert.Equal(t, tt.wantSchema, model.params[core.ParamSchema])
			// The definition's params are defaulted in place.
			assert.Equal(t, tt.wantTable, def.Params.TableName())
		})
	}
}

func TestLoadAttachesDefinitionAndMethods(t *testing.T) {
	class := map[string]core.ClassMethod{
		"count": func(core.Model, ...any) (any, error) { return 0, nil },
	}
	instance := map[string]core.InstanceMethod{
		"label": func(core.Record, ...any) (any, error) { return "", nil },
	}
	def := &core.Definition{ClassMethods: class, InstanceMethods: instance}

	catalog := newTestCatalog(t, map[string]core.DefineFunc{"plan.model": staticDefinition(def)})
	models, err := Load(catalog, &fakeEngine{}, Options{})
	require.NoError(t, err)

	model := models["plan"].(*fakeModel)
	assert.Same(t, def, model.Definition())
	assert.Contains(t, model.cfg.ClassMethods, "count")
	assert.Contains(t, model.cfg.InstanceMethods, "label")
}

func TestLoadForwardsContext(t *testing.T) {
	type tenant struct{ ID string }
	want := &tenant{ID: "acme"}

	var got any
	catalog := newTestCatalog(t, map[string]core.DefineFunc{
		"plan.model": func(types core.Types, models core.Registry, ctx any) (*core.Definition, error) {
			got = ctx
			return &core.Definition{}, nil
		},
	})

	_, err := Load(catalog, &fakeEngine{}, Options{Context: want})
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestLoadNoPrimaryKey(t *testing.T) {
	catalog := newTestCatalog(t, map[string]core.DefineFunc{
		"plan_feature.model": staticDefinition(&core.Definition{
			Fields: core.Fields{"plan_id": {Type: core.DefaultTypes.Integer}},
			Params: core.Params{core.ParamNoPrimaryKey: true},
		}),
	})

	models, err := Load(catalog, &fakeEngine{}, Options{})
	require.NoError(t, err)
	assert.NotContains(t, models["plan_feature"].Attributes(), core.ColumnID)
}

func TestLoadMissingDefinition(t *testing.T) {
	var laterCalled bool
	catalog := newTestCatalog(t, map[string]core.DefineFunc{
		"a.model": staticDefinition(&core.Definition{}),
		"b.model": staticDefinition(nil),
		"c.model": func(core.Types, core.Registry, any) (*core.Definition, error) {
			laterCalled = true
			return &core.Definition{}, nil
		},
	})

	models, err := Load(catalog, &fakeEngine{}, Options{})
	assert.Nil(t, models)

	var missing core.ErrMissingDefinition
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "b.model", missing.File)
	assert.Contains(t, err.Error(), "b.model")
	assert.False(t, laterCalled)
}

func TestLoadDuplicateModelName(t *testing.T) {
	catalog := newTestCatalog(t, map[string]core.DefineFunc{
		"account.model": staticDefinition(&core.Definition{Name: "User"}),
		"user.model":    staticDefinition(&core.Definition{Name: "User"}),
	})

	models, err := Load(catalog, &fakeEngine{}, Options{})
	assert.Nil(t, models)

	var dup core.ErrDuplicateModel
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, core.ErrDuplicateModel{Name: "User", File: "user.model", Previous: "account.model"}, dup)
}

func TestLoadPropagatesErrors(t *testing.T) {
	errDefine := errors.New("boom")
	errEngine := errors.New("engine failed")

	t.Run("definition function error", func(t *testing.T) {
		catalog := newTestCatalog(t, map[string]core.DefineFunc{
			"a.model": func(core.Types, core.Registry, any) (*core.Definition, error) {
				return nil, errDefine
			},
		})

		models, err := Load(catalog, &fakeEngine{}, Options{})
		assert.Nil(t, models)
		assert.Equal(t, errDefine, err)
	})

	t.Run("engine error", func(t *testing.T) {
		catalog := newTestCatalog(t, map[string]core.DefineFunc{
			"a.model": staticDefinition(&core.Definition{}),
			"b.model": staticDefinition(&core.Definition{}),
		})

		engine := &fakeEngine{failOn: "b", err: errEngine}
		models, err := Load(catalog, engine, Options{})
		assert.Nil(t, models)
		assert.Equal(t, errEngine, err)
		assert.Equal(t, []string{"a"}, engine.defined)
	})
}

func TestLoadLogsEachModel(t *testing.T) {
	observed, logs := observer.New(zap.InfoLevel)

	catalog := newTestCatalog(t, map[string]core.DefineFunc{
		"a.model": staticDefinition(&core.Definition{Name: "UserAccount"}),
		"b.model": staticDefinition(&core.Definition{Params: core.Params{core.ParamTableName: "bees"}}),
	})

	_, err := Load(catalog, &fakeEngine{}, Options{Logger: zap.New(observed)})
	require.NoError(t, err)

	entries := logs.FilterMessage("model loaded").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "UserAccount", entries[0].ContextMap()["model"])
	assert.Equal(t, "users_accounts", entries[0].ContextMap()["table"])
	assert.Equal(t, "b", entries[1].ContextMap()["model"])
	assert.Equal(t, "bees", entries[1].ContextMap()["table"])
}

func TestCatalogRegister(t *testing.T) {
	catalog := NewCatalog(".model")
	fn := staticDefinition(&core.Definition{})

	require.NoError(t, catalog.Register("plan.model", fn))
	assert.ErrorIs(t, catalog.Register("plan.model", fn), core.ErrDuplicateDefinition)

	var invalid core.ErrInvalidField
	assert.ErrorAs(t, catalog.Register("", fn), &invalid)
	assert.ErrorAs(t, catalog.Register("other.model", nil), &invalid)

	files, err := catalog.Files()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "plan.model", files[0].Name)
	assert.Equal(t, "plan", files[0].Base)
}

type testPlugin map[string]core.DefineFunc

func (p testPlugin) Definitions() map[string]core.DefineFunc {
	return p
}

func TestCatalogInstall(t *testing.T) {
	catalog := NewCatalog("")
	plugin := testPlugin{
		"Feature": staticDefinition(&core.Definition{}),
		"Plan":    staticDefinition(&core.Definition{}),
	}

	require.NoError(t, catalog.Install(plugin))
	assert.ErrorIs(t, catalog.Install(plugin), core.ErrDuplicateDefinition)

	files, err := catalog.Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Feature", files[0].Base)
	assert.Equal(t, "Plan", files[1].Base)
}
