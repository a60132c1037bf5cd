package templates

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"
)

// Template names
const (
	GlueHeaderTemplate    = "glue-header"
	GeneratedBodyTemplate = "generated-body"
	ExportBlockTemplate   = "export-block"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerGlueTemplates()

	return registry
}

// Names returns the registered template names in sorted order
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute renders the named template. Every registered template is parsed
// into one set so templates can include each other.
func (tr *TemplateRegistry) Execute(name string, data interface{}) (string, error) {
	if _, exists := tr.templates[name]; !exists {
		return "", fmt.Errorf("template not found: %s", name)
	}

	set := template.New(name)
	for _, templateName := range tr.Names() {
		if _, err := set.New(templateName).Parse(tr.templates[templateName]); err != nil {
			return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
		}
	}

	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}

// registerGlueTemplates registers the templates of the generated glue header
func (tr *TemplateRegistry) registerGlueTemplates() {
	tr.templates[GlueHeaderTemplate] = `// Code generated by headertool. DO NOT EDIT.
// Source: {{.SourcePath}}

#pragma once

#include <set>

{{range .Classes}}{{template "generated-body" .}}
{{end}}{{template "export-block" .}}`

	// Root classes start the name chain from an empty set
	tr.templates[GeneratedBodyTemplate] = `#define {{.MacroName}}\
	public:\
		virtual void* Clone() {\
			return new {{.ClassName}}(*this);\
		}\
		\
		virtual const char* Internal_GetClassName() const {return "{{.ClassName}}";}\
		virtual std::set<const char*> Internal_GetClassNames() const\
		{\
{{- if .IsRoot}}
			std::set<const char*> list;\
{{- else}}
			std::set<const char*> list = Super::Internal_GetClassNames();\
{{- end}}
			list.insert({{.ClassName}}::Internal_GetClassName());\
			return list;\
		}\
	private:\
		typedef {{.BaseClassName}} Super;
`

	tr.templates[ExportBlockTemplate] = `#undef END_FILE
#define END_FILE()\
{{- range .Classes}}{{$class := .ClassName}}
\
	EXPORT_FUNC void* {{.Factory}}() {return new {{$class}}();}\
{{- range .Properties}}
	EXPORT_FUNC void* {{.Getter}}({{$class}}* object) {return &object->{{.Name}};}\
	EXPORT_FUNC void {{.Setter}}({{$class}}* object, void* value){ object->{{.Name}} = *reinterpret_cast<decltype(object->{{.Name}})*>(value);}\
{{- end}}
{{- range .Methods}}
	EXPORT_FUNC void {{.Invoker}}({{$class}}* object) { object->{{.Name}}();}\
{{- end}}
{{- end}}

#undef CURRENT_FILE_ID
#define CURRENT_FILE_ID {{.FileID}}
`
}

// DefaultTemplateRegistry is the global template registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
