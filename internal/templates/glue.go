package templates

// GlueHeaderData holds everything rendered into one X.generated.h
type GlueHeaderData struct {
	SourcePath string
	FileID     string
	Classes    []ClassData
}

// ClassData is one annotated class as seen by the glue templates
type ClassData struct {
	ClassName     string
	BaseClassName string
	IsRoot        bool
	MacroName     string
	Factory       string
	Properties    []PropertyData
	Methods       []MethodData
}

// PropertyData names the exported accessor pair of one property
type PropertyData struct {
	Name   string
	Getter string
	Setter string
}

// MethodData names the exported invoker of one method
type MethodData struct {
	Name    string
	Invoker string
}
