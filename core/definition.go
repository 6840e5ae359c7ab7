package core

const (
	ParamTableName    = "tableName"
	ParamSchema       = "schema"
	ParamNoPrimaryKey = "noPrimaryKey"
	ParamTimestamps   = "timestamps"
	ParamParanoid     = "paranoid"
)

type (
	// Attribute describes a single column of a model.
	Attribute struct {
		Type          DataType `json:"type"`
		AllowNull     *bool    `json:"allow_null,omitempty"`
		PrimaryKey    bool     `json:"primary_key,omitempty"`
		AutoIncrement bool     `json:"auto_increment,omitempty"`
		Unique        bool     `json:"unique,omitempty"`
		Index         bool     `json:"index,omitempty"`
		Size          int      `json:"size,omitempty"`
		Default       any      `json:"default,omitempty"`
		Comment       string   `json:"comment,omitempty"`
	}

	Fields map[string]Attribute

	// Params holds engine options for a model. Unknown keys are kept as is.
	Params map[string]any

	ClassMethod    func(m Model, args ...any) (any, error)
	InstanceMethod func(r Record, args ...any) (any, error)

	// Definition is what a model source produces for one model.
	Definition struct {
		Name            string                    `json:"name,omitempty"`
		Fields          Fields                    `json:"fields"`
		Params          Params                    `json:"params,omitempty"`
		ClassMethods    map[string]ClassMethod    `json:"-"`
		InstanceMethods map[string]InstanceMethod `json:"-"`
	}

	// DefineFunc produces a definition. It receives the engine's type
	// namespace, the registry of models loaded so far and the caller's
	// opaque context value. Returning a nil definition without an error
	// is reported as ErrMissingDefinition.
	DefineFunc func(types Types, models Registry, ctx any) (*Definition, error)

	// Registry maps model names to registered models.
	Registry map[string]Model
)

// Nullable reports whether the column accepts NULL. Columns are nullable
// unless stated otherwise; primary keys never are.
func (a Attribute) Nullable() bool {
	if a.PrimaryKey {
		return false
	}
	return a.AllowNull == nil || *a.AllowNull
}

func (p Params) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

func (p Params) Bool(key string, fallback bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return fallback
}

func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Params) TableName() string {
	return p.String(ParamTableName)
}

func (p Params) Schema() string {
	return p.String(ParamSchema)
}

func (p Params) NoPrimaryKey() bool {
	return p.Bool(ParamNoPrimaryKey, false)
}

// Names returns the registry keys in no particular order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	return names
}
