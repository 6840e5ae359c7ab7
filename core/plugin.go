package core

type (
	// Plugin contributes Go definition functions to a catalog, keyed by
	// the name the model would have had as a file.
	Plugin interface {
		Definitions() map[string]DefineFunc
	}

	// Engine turns definitions into live models.
	Engine interface {
		Types() Types
		Define(name string, fields Fields, params Params, opts ...DefineOption) (Model, error)
	}

	Model interface {
		Name() string
		TableName() string
		Attributes() []string
		RemoveAttribute(name string) error
		Definition() *Definition
	}

	// Record is a single instance of a model, as seen by instance methods.
	Record interface {
		Model() Model
		Get(column string) (any, bool)
		Set(column string, value any) error
	}

	// DefineConfig collects what Define options inject into a model at
	// construction time.
	DefineConfig struct {
		ClassMethods    map[string]ClassMethod
		InstanceMethods map[string]InstanceMethod
		Definition      *Definition
	}

	DefineOption func(*DefineConfig)
)

func WithMethods(class map[string]ClassMethod, instance map[string]InstanceMethod) DefineOption {
	return func(cfg *DefineConfig) {
		cfg.ClassMethods = class
		cfg.InstanceMethods = instance
	}
}

// WithDefinition attaches the source definition to the model for later
// introspection.
func WithDefinition(def *Definition) DefineOption {
	return func(cfg *DefineConfig) {
		cfg.Definition = def
	}
}

func NewDefineConfig(opts ...DefineOption) *DefineConfig {
	cfg := &DefineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
