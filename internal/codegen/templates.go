package codegen

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/hengadev/jsonmap/internal/member"
)

// DefaultImportPath is the import path of the jsonmap package used by
// generated code.
const DefaultImportPath = "github.com/hengadev/jsonmap"

const propertiesTemplate = `// Code generated by jsonmap-gen{{with .GeneratorVersion}} {{.}}{{end}}. DO NOT EDIT.
// Source: {{.SourceFile}}

package {{.PackageName}}

import jsonmap "{{.ImportPath}}"
{{range .Types}}
// JSONProperties lists the accessors of {{.Name}} written by jsonmap.
func ({{.Receiver}}) JSONProperties() []jsonmap.Property {
	return []jsonmap.Property{
{{- range .Properties}}
		jsonmap.Accessor({{printf "%q" .Method}}{{range .Directives}}, {{.}}{{end}}),
{{- end}}
	}
}
{{end}}`

// GenerationConfig holds the settings of the generated code
type GenerationConfig struct {
	// ImportPath of the jsonmap package. Default: DefaultImportPath.
	ImportPath string

	// PointerReceiver declares JSONProperties on *T instead of T.
	PointerReceiver bool

	GeneratorVersion string
}

// TemplateData is the input of the generated file template
type TemplateData struct {
	PackageName      string
	SourceFile       string
	ImportPath       string
	GeneratorVersion string
	Types            []TemplateType
}

// TemplateType is a type receiving a JSONProperties method
type TemplateType struct {
	Name       string
	Receiver   string
	Properties []TemplateProperty
}

// TemplateProperty is one accessor entry; Directives are Go expressions.
type TemplateProperty struct {
	Method     string
	Directives []string
}

// TemplateEngine renders generated files
type TemplateEngine struct {
	tmpl *template.Template
}

// NewTemplateEngine creates a new template engine
func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("properties").Parse(propertiesTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &TemplateEngine{tmpl: tmpl}, nil
}

// GenerateCode renders data and formats the result.
func (te *TemplateEngine) GenerateCode(data TemplateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := te.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	code, err := imports.Process(data.SourceFile, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w\n%s", err, buf.String())
	}
	return code, nil
}

// BuildTemplateData builds the template input for types declared in the
// same source file. Types without annotated methods are left out. Types
// must have passed validation.
func BuildTemplateData(types []TypeInfo, config GenerationConfig) (TemplateData, error) {
	data := TemplateData{
		ImportPath:       config.ImportPath,
		GeneratorVersion: config.GeneratorVersion,
	}
	if data.ImportPath == "" {
		data.ImportPath = DefaultImportPath
	}

	for _, info := range types {
		if len(info.Properties) == 0 {
			continue
		}
		data.PackageName = info.PackageName
		data.SourceFile = info.SourceFile

		receiver := info.TypeName
		if config.PointerReceiver {
			receiver = "*" + receiver
		}
		tt := TemplateType{Name: info.TypeName, Receiver: receiver}

		for _, p := range info.Properties {
			directives, err := member.ParseTag(p.Method, p.Directives)
			if err != nil {
				return TemplateData{}, err
			}
			tt.Properties = append(tt.Properties, TemplateProperty{
				Method:     p.Method,
				Directives: directiveExprs(directives),
			})
		}
		data.Types = append(data.Types, tt)
	}

	return data, nil
}

// directiveExprs renders directives as jsonmap constructor calls. The
// property marker is added by jsonmap.Accessor and is dropped here.
func directiveExprs(directives []member.Directive) []string {
	var exprs []string
	for _, d := range directives {
		switch d.Kind {
		case member.DirectiveIgnore:
			exprs = append(exprs, "jsonmap.Ignore()")
		case member.DirectiveRename:
			exprs = append(exprs, "jsonmap.Rename("+strconv.Quote(d.Value)+")")
		}
	}
	return exprs
}
