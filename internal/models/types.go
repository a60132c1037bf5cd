package models

// PropertyRecord represents one PROPERTY-annotated field of a class
type PropertyRecord struct {
	Type       string   `json:"type" yaml:"type"`             // declared type text, may carry namespace and template syntax
	Name       string   `json:"name" yaml:"name"`             // field identifier
	Attributes []string `json:"attributes" yaml:"attributes"` // attribute tokens in annotation order, uninterpreted
}

// MethodRecord represents one FUNCTION-annotated method. Only zero-argument
// void methods are recognised.
type MethodRecord struct {
	Name string `json:"name" yaml:"name"`
}

// ClassRecord represents everything extracted from one annotated class block
type ClassRecord struct {
	ClassName      string           `json:"class_name" yaml:"class_name"`
	BaseClassName  string           `json:"base_class_name" yaml:"base_class_name"` // equals ClassName for a hierarchy root
	DefinitionLine int              `json:"definition_line" yaml:"definition_line"` // line of GENERATED_BODY(), 0 when absent
	StartLine      int              `json:"start_line" yaml:"start_line"`           // line of the CLASS() marker
	Properties     []PropertyRecord `json:"properties" yaml:"properties"`
	Methods        []MethodRecord   `json:"methods" yaml:"methods"`
}

// IsRoot reports whether the class has no reflected base
func (c ClassRecord) IsRoot() bool {
	return c.BaseClassName == "" || c.BaseClassName == c.ClassName
}

// HasBody reports whether a body-injection marker was seen inside the class
func (c ClassRecord) HasBody() bool {
	return c.DefinitionLine > 0
}

// FileRecord represents all annotated classes declared in one header
type FileRecord struct {
	SourcePath   string        `json:"source_path" yaml:"source_path"`
	RelativePath string        `json:"relative_path" yaml:"relative_path"` // path relative to the scanned root, slash separated
	Classes      []ClassRecord `json:"classes" yaml:"classes"`
	EnumCount    int           `json:"enum_count" yaml:"enum_count"` // ENUM() markers seen; never emitted
}

// PropertyCount returns the number of properties over every class in the file
func (f *FileRecord) PropertyCount() int {
	total := 0
	for _, class := range f.Classes {
		total += len(class.Properties)
	}
	return total
}

// MethodCount returns the number of methods over every class in the file
func (f *FileRecord) MethodCount() int {
	total := 0
	for _, class := range f.Classes {
		total += len(class.Methods)
	}
	return total
}
