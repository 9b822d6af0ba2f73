package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/domain/types"
	"github.com/secmon-lab/filterschema/pkg/i18n"
)

// ViewFile is a TOML file adding views to the built-in registry
//
//	[[view]]
//	key = "flakyCases"
//	name = "Flaky Cases"
//
//	  [[view.field]]
//	  catalog = "priority"
//
//	  [[view.field]]
//	  label = "Component"
//	  name = "componentId"
//	  type = "select"
//	  resource = "/components?fields=id,name&filter=projectId eq '{projectId}'"
type ViewFile struct {
	Views []ViewConfig `toml:"view"`
}

// ViewConfig is one [[view]] table
type ViewConfig struct {
	Key    string        `toml:"key"`
	Name   string        `toml:"name"`
	Fields []FieldConfig `toml:"field"`
}

// FieldConfig is one [[view.field]] table. With catalog set the field is
// the catalog entry with every other member overriding it; without it the
// field is defined inline and needs name and type.
type FieldConfig struct {
	Catalog         string   `toml:"catalog"`
	Label           *string  `toml:"label"`
	LabelKey        string   `toml:"label_key"`
	Name            *string  `toml:"name"`
	Type            *string  `toml:"type"`
	Operator        *string  `toml:"operator"`
	Options         []string `toml:"options"`
	Resource        *string  `toml:"resource"`
	Disabled        *bool    `toml:"disabled"`
	RemoveQuoteMark *bool    `toml:"remove_quote_mark"`
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// TemplateResource turns a path with {key} placeholders into a resource.
// A path without placeholders is a literal. Substituted values have single
// quotes doubled and are query escaped so they stay inside their filter
// literal and their parameter.
func TemplateResource(tmpl string) (filter.Resource, error) {
	if strings.TrimSpace(tmpl) == "" {
		return nil, goerr.Wrap(ErrInvalidResource, "empty resource", goerr.V(ResourceKey, tmpl))
	}

	var keys []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
		if !slices.Contains(keys, m[1]) {
			keys = append(keys, m[1])
		}
	}
	if len(keys) == 0 {
		if strings.ContainsAny(tmpl, "{}") {
			return nil, goerr.Wrap(ErrInvalidResource, "unbalanced placeholder", goerr.V(ResourceKey, tmpl))
		}
		return filter.Literal(tmpl), nil
	}

	return filter.Dynamic(func(rc filter.ResourceContext) string {
		return placeholderPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
			key := m[1 : len(m)-1]
			return filter.QueryValue(rc[key])
		})
	}, keys...), nil
}

func (f *FieldConfig) label(tr i18n.Translator) *string {
	if f.LabelKey != "" {
		label := tr.Translate(f.LabelKey)
		return &label
	}
	return f.Label
}

func (f *FieldConfig) patch(tr i18n.Translator) (filter.Patch, error) {
	p := filter.Patch{
		Label:           f.label(tr),
		Name:            f.Name,
		Disabled:        f.Disabled,
		RemoveQuoteMark: f.RemoveQuoteMark,
	}

	if f.Type != nil {
		ft, err := types.ParseFieldType(*f.Type)
		if err != nil {
			return p, goerr.Wrap(ErrInvalidFieldType, err.Error(), goerr.V(FieldTypeKey, *f.Type))
		}
		p.Type = &ft
	}
	if f.Operator != nil {
		op, err := types.ParseOperator(*f.Operator)
		if err != nil {
			return p, goerr.Wrap(ErrInvalidOperator, err.Error(), goerr.V(OperatorKey, *f.Operator))
		}
		p.Operator = &op
	}
	if f.Options != nil {
		p.Options = filter.Values(f.Options...)
	}
	if f.Resource != nil {
		r, err := TemplateResource(*f.Resource)
		if err != nil {
			return p, err
		}
		p.Resource = r
	}

	return p, nil
}

func (f *FieldConfig) source(tr i18n.Translator) (filter.FieldSource, error) {
	p, err := f.patch(tr)
	if err != nil {
		return nil, err
	}

	if f.Catalog != "" {
		return filter.Override(types.CatalogKey(f.Catalog), p), nil
	}

	if p.Name == nil || *p.Name == "" {
		return nil, goerr.Wrap(ErrMissingName, "inline field needs a name")
	}
	if p.Type == nil {
		return nil, goerr.Wrap(ErrInvalidFieldType, "inline field needs a type", goerr.V("name", *p.Name))
	}
	return filter.Inline(filter.WithOverrides(filter.Field{}, p)), nil
}

// ToViewDefs converts the file into view definitions
func (v *ViewFile) ToViewDefs(tr i18n.Translator) ([]filter.ViewDef, error) {
	defs := make([]filter.ViewDef, 0, len(v.Views))

	for _, view := range v.Views {
		if view.Key == "" {
			return nil, goerr.Wrap(ErrMissingKey, "view has no key", goerr.V("name", view.Name))
		}

		sources := make([]filter.FieldSource, 0, len(view.Fields))
		for i, f := range view.Fields {
			src, err := f.source(tr)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid field",
					goerr.V(ViewKeyKey, view.Key), goerr.V(FieldIndexKey, i))
			}
			sources = append(sources, src)
		}

		def := filter.View(types.ViewKey(view.Key), sources...)
		if view.Name != "" {
			def = def.Named(view.Name)
		}
		defs = append(defs, def)
	}

	return defs, nil
}

// LoadViewFile reads a TOML view file
func LoadViewFile(path string) (*ViewFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "view file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read view file", goerr.V(ConfigPathKey, path))
	}

	var file ViewFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(ConfigPathKey, path))
	}

	return &file, nil
}
