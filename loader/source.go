package loader

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/gsarmaonline/modelloader/core"
	"github.com/gsarmaonline/modelloader/naming"
)

type (
	// File is one model source: its file name, the name a model gets when
	// its definition does not set one, and the function producing the
	// definition.
	File struct {
		Name   string
		Base   string
		Define core.DefineFunc
	}

	Source interface {
		Files() ([]File, error)
	}

	// DirSource reads YAML model files from a directory.
	DirSource struct {
		fsys   fs.FS
		suffix string
	}

	// Catalog is a Source built from Go definition functions registered
	// explicitly or through plugins.
	Catalog struct {
		suffix string
		defs   map[string]core.DefineFunc
	}
)

func NewDirSource(fsys fs.FS, suffix string) *DirSource {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &DirSource{fsys: fsys, suffix: suffix}
}

// Files lists the regular files ending with the suffix in name order.
func (src *DirSource) Files() ([]File, error) {
	entries, err := fs.ReadDir(src.fsys, ".")
	if err != nil {
		return nil, err
	}

	var files []File
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, src.suffix) {
			continue
		}
		files = append(files, File{
			Name:   name,
			Base:   naming.ModelName(name, src.suffix),
			Define: yamlDefinition(src.fsys, name),
		})
	}

	sortFiles(files)
	return files, nil
}

// NewCatalog creates an empty catalog. Names registered with the suffix
// have it stripped to obtain the model's base name.
func NewCatalog(suffix string) *Catalog {
	return &Catalog{
		suffix: suffix,
		defs:   map[string]core.DefineFunc{},
	}
}

func (c *Catalog) Register(name string, fn core.DefineFunc) error {
	if name == "" {
		return core.ErrInvalidField{Field: "name", Message: "definition name is required"}
	}
	if fn == nil {
		return core.ErrInvalidField{Field: name, Message: "definition function is nil"}
	}
	if _, ok := c.defs[name]; ok {
		return fmt.Errorf("%w: %s", core.ErrDuplicateDefinition, name)
	}
	c.defs[name] = fn
	return nil
}

// Install registers every definition a plugin provides.
func (c *Catalog) Install(plugin core.Plugin) error {
	for name, fn := range plugin.Definitions() {
		if err := c.Register(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) Files() ([]File, error) {
	files := make([]File, 0, len(c.defs))
	for name, fn := range c.defs {
		base := name
		if c.suffix != "" {
			base = naming.ModelName(name, c.suffix)
		}
		files = append(files, File{Name: name, Base: base, Define: fn})
	}

	sortFiles(files)
	return files, nil
}

func sortFiles(files []File) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
}
