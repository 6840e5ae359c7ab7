package loader

import (
	"os"

	"github.com/gsarmaonline/modelloader/core"
	"github.com/gsarmaonline/modelloader/naming"
	"go.uber.org/zap"
)

// LoadDir loads every model file of dir. See Load.
func LoadDir(dir string, engine core.Engine, opts Options) (core.Registry, error) {
	return Load(NewDirSource(os.DirFS(dir), opts.suffix()), engine, opts)
}

// Load registers the models of src with engine and returns them by name.
//
// Sources are processed one at a time in file name order. Each definition
// function receives the registry built so far, so a model can refer to any
// model whose file sorts before its own. The first failure aborts the run
// and no registry is returned.
func Load(src Source, engine core.Engine, opts Options) (core.Registry, error) {
	files, err := src.Files()
	if err != nil {
		return nil, err
	}

	types := engine.Types()
	models := make(core.Registry, len(files))
	origins := make(map[string]string, len(files))

	for _, file := range files {
		def, err := file.Define(types, models, opts.Context)
		if err != nil {
			return nil, err
		}
		if def == nil {
			return nil, core.ErrMissingDefinition{File: file.Name}
		}

		name := def.Name
		if name == "" {
			name = file.Base
		}
		if previous, ok := origins[name]; ok {
			return nil, core.ErrDuplicateModel{Name: name, File: file.Name, Previous: previous}
		}

		applyDefaults(def, name, opts)

		model, err := engine.Define(name, def.Fields, def.Params,
			core.WithMethods(def.ClassMethods, def.InstanceMethods),
			core.WithDefinition(def),
		)
		if err != nil {
			return nil, err
		}

		if def.Params.NoPrimaryKey() {
			if err := model.RemoveAttribute(core.ColumnID); err != nil {
				return nil, err
			}
		}

		models[name] = model
		origins[name] = file.Name

		if opts.Logger != nil {
			opts.Logger.Info("model loaded",
				zap.String("model", name),
				zap.String("table", model.TableName()),
				zap.String("file", file.Name),
			)
		}
	}

	return models, nil
}

// applyDefaults fills in the table name and the fallback schema without
// overriding anything the definition set.
func applyDefaults(def *core.Definition, name string, opts Options) {
	defaults := core.Params{core.ParamTableName: naming.TableName(name)}
	if def.Params == nil {
		def.Params = defaults
	} else {
		naming.MergeDefaults(def.Params, defaults)
	}

	// A null or empty schema counts as unset.
	if opts.Schema != "" && def.Params.Schema() == "" {
		def.Params[core.ParamSchema] = opts.Schema
	}
}
