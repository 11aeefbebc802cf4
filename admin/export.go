package admin

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type descriptorDoc struct {
	Title       string          `yaml:"title"`
	Options     optionsDoc      `yaml:"options,omitempty"`
	Connectors  []string        `yaml:"connectors,omitempty"`
	Collections []collectionDoc `yaml:"collections"`
}

type optionsDoc struct {
	Debug    bool   `yaml:"debug,omitempty"`
	BasePath string `yaml:"basePath,omitempty"`
	BaseURL  string `yaml:"baseURL,omitempty"`
}

type collectionDoc struct {
	Name  string    `yaml:"name"`
	Views []viewDoc `yaml:"views"`
}

type viewDoc struct {
	Kind    string     `yaml:"kind"`
	Path    string     `yaml:"path"`
	Title   string     `yaml:"title,omitempty"`
	Actions []string   `yaml:"actions,flow"`
	Fields  []fieldDoc `yaml:"fields,omitempty"`
	Filters []fieldDoc `yaml:"filters,omitempty"`
}

type fieldDoc struct {
	Name         string   `yaml:"name"`
	Label        string   `yaml:"label,omitempty"`
	Kind         string   `yaml:"field,omitempty"`
	Main         bool     `yaml:"main,omitempty"`
	HelpText     string   `yaml:"helpText,omitempty"`
	InitialValue any      `yaml:"initialValue,omitempty"`
	Behaviors    []string `yaml:"behaviors,flow,omitempty"`
}

// Export renders the static part of d as YAML: collections, views, their
// fields and the names of their actions and behaviors.
func Export(d Descriptor) ([]byte, error) {
	doc := descriptorDoc{
		Title:      d.Title,
		Options:    optionsDoc(d.Options),
		Connectors: d.Connectors.Names(),
	}
	for _, c := range d.Collections {
		cd := collectionDoc{Name: c.Name}
		for _, nv := range c.Views() {
			vd := viewDoc{
				Kind:    nv.Kind,
				Path:    nv.View.Path,
				Title:   nv.View.Title,
				Actions: nv.View.Actions.Names(),
				Fields:  fieldDocs(nv.View.Fields),
			}
			if nv.View.Filters != nil {
				vd.Filters = fieldDocs(nv.View.Filters.Fields)
			}
			cd.Views = append(cd.Views, vd)
		}
		doc.Collections = append(doc.Collections, cd)
	}
	b, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("exporting descriptor: %w", err)
	}
	return b, nil
}

func fieldDocs(fields []Field) []fieldDoc {
	docs := make([]fieldDoc, 0, len(fields))
	for _, f := range fields {
		fd := fieldDoc{
			Name:         f.Name,
			Label:        f.Label,
			Kind:         f.Kind,
			Main:         f.Main,
			HelpText:     f.HelpText,
			InitialValue: f.InitialValue,
		}
		for _, b := range f.Behaviors {
			fd.Behaviors = append(fd.Behaviors, b.Behavior())
		}
		docs = append(docs, fd)
	}
	return docs
}
