package loader

import (
	"bytes"
	"fmt"
	"io/fs"
	"text/template"

	"github.com/gsarmaonline/modelloader/core"
	"gopkg.in/yaml.v3"
)

type (
	yamlAttribute struct {
		Type          string `yaml:"type"`
		AllowNull     *bool  `yaml:"allowNull"`
		PrimaryKey    bool   `yaml:"primaryKey"`
		AutoIncrement bool   `yaml:"autoIncrement"`
		Unique        bool   `yaml:"unique"`
		Index         bool   `yaml:"index"`
		Size          int    `yaml:"size"`
		Default       any    `yaml:"default"`
		Comment       string `yaml:"comment"`
	}

	yamlDocument struct {
		Name   string               `yaml:"name"`
		Fields map[string]yaml.Node `yaml:"fields"`
		Params map[string]any       `yaml:"params"`
	}

	// templateData is what a model file sees while it is rendered.
	templateData struct {
		Models  core.Registry
		Context any
	}
)

// yamlDefinition turns a model file into a definition function. The file
// is read on every call, rendered as a text/template and decoded as YAML.
func yamlDefinition(fsys fs.FS, name string) core.DefineFunc {
	return func(types core.Types, models core.Registry, ctx any) (*core.Definition, error) {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}

		rendered, err := render(name, raw, models, ctx)
		if err != nil {
			return nil, err
		}

		return decodeDefinition(name, rendered, types)
	}
}

func render(name string, raw []byte, models core.Registry, ctx any) ([]byte, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(template.FuncMap{
			"table": func(model string) (string, error) {
				m, ok := models[model]
				if !ok {
					return "", fmt.Errorf("model %s is not loaded", model)
				}
				return m.TableName(), nil
			},
		}).
		Parse(string(raw))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Models: models, Context: ctx}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeDefinition returns a nil definition for an empty or null document.
func decodeDefinition(name string, data []byte, types core.Types) (*core.Definition, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(root.Content) == 0 || root.Content[0].Tag == "!!null" {
		return nil, nil
	}

	var doc yamlDocument
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	fields := make(core.Fields, len(doc.Fields))
	for field, node := range doc.Fields {
		var attr yamlAttribute
		if node.Kind == yaml.ScalarNode {
			attr.Type = node.Value
		} else if err := node.Decode(&attr); err != nil {
			return nil, fmt.Errorf("%s: field %s: %w", name, field, err)
		}

		dt, ok := types.Lookup(attr.Type)
		if !ok {
			return nil, core.ErrUnknownType{File: name, Field: field, Type: attr.Type}
		}

		fields[field] = core.Attribute{
			Type:          dt,
			AllowNull:     attr.AllowNull,
			PrimaryKey:    attr.PrimaryKey,
			AutoIncrement: attr.AutoIncrement,
			Unique:        attr.Unique,
			Index:         attr.Index,
			Size:          attr.Size,
			Default:       attr.Default,
			Comment:       attr.Comment,
		}
	}

	def := &core.Definition{
		Name:   doc.Name,
		Fields: fields,
	}
	if doc.Params != nil {
		def.Params = doc.Params
	}
	return def, nil
}
