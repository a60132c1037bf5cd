package generator

import (
	stderrors "errors"
	"fmt"

	"github.com/toyz/headertool/internal/errors"
	"github.com/toyz/headertool/internal/models"
	"github.com/toyz/headertool/internal/utils"
)

// SymbolKey identifies the owner of a generated symbol. Member is empty for
// class-level symbols.
type SymbolKey struct {
	File   string
	Class  string
	Member string
}

// String returns a readable owner description
func (k SymbolKey) String() string {
	if k.Member == "" {
		return fmt.Sprintf("%s (%s)", k.Class, k.File)
	}
	return fmt.Sprintf("%s.%s (%s)", k.Class, k.Member, k.File)
}

// SymbolRegistry tracks the flat names emitted over a whole run. Names stay
// flat at the output boundary; the registry only reports when two owners
// would end up sharing one.
type SymbolRegistry struct {
	exported *utils.Registry[string, SymbolKey]
	outputs  *utils.Registry[string, string]
}

// NewSymbolRegistry creates an empty symbol registry
func NewSymbolRegistry() *SymbolRegistry {
	return &SymbolRegistry{
		exported: utils.NewRegistry[string, SymbolKey](),
		outputs:  utils.NewRegistry[string, string](),
	}
}

// RegisterFile records every exported function name of record and returns a
// collision error for each name already owned by another symbol
func (r *SymbolRegistry) RegisterFile(record *models.FileRecord) []*errors.BaseError {
	var collisions []*errors.BaseError

	register := func(name string, key SymbolKey) {
		if err := r.exported.RegisterUnique(name, key); err != nil {
			var dup *utils.DuplicateKeyError[string, SymbolKey]
			if stderrors.As(err, &dup) && dup.Existing != key {
				collisions = append(collisions,
					errors.CollisionError("exported function", name, dup.Existing.String(), key.String()))
			}
		}
	}

	for _, class := range record.Classes {
		classKey := SymbolKey{File: record.RelativePath, Class: class.ClassName}
		register(FactoryName(class.ClassName), classKey)

		for _, property := range class.Properties {
			key := SymbolKey{File: record.RelativePath, Class: class.ClassName, Member: property.Name}
			register(GetterName(class.ClassName, property.Name), key)
			register(SetterName(class.ClassName, property.Name), key)
		}
		for _, method := range class.Methods {
			key := SymbolKey{File: record.RelativePath, Class: class.ClassName, Member: method.Name}
			register(InvokerName(class.ClassName, method.Name), key)
		}
	}

	return collisions
}

// RegisterOutput records that source writes outputPath. Two headers sharing
// a file stem map to the same output and the later one overwrites the first.
func (r *SymbolRegistry) RegisterOutput(outputPath, source string) *errors.BaseError {
	err := r.outputs.RegisterUnique(outputPath, source)
	if err == nil {
		return nil
	}

	var dup *utils.DuplicateKeyError[string, string]
	if stderrors.As(err, &dup) && dup.Existing != source {
		return errors.CollisionError("output file", outputPath, dup.Existing, source).
			WithSuggestions("Rename one of the headers; generated files are named after the file stem only")
	}
	return nil
}

// OutputOwner returns the header that first claimed outputPath
func (r *SymbolRegistry) OutputOwner(outputPath string) (string, bool) {
	return r.outputs.Get(outputPath)
}

// Reset forgets every registered symbol. Watch mode calls it before each run.
func (r *SymbolRegistry) Reset() {
	r.exported.Clear()
	r.outputs.Clear()
}

// checkMacros reports two classes of one file that resolve to the same
// body-injection macro
func checkMacros(record *models.FileRecord, fileID string) error {
	macros := utils.NewRegistry[string, string]()
	collisions := &errors.MultipleErrors{}

	for _, class := range record.Classes {
		name := MacroName(fileID, class.DefinitionLine)
		err := macros.RegisterUnique(name, class.ClassName)
		if err == nil {
			continue
		}

		var dup *utils.DuplicateKeyError[string, string]
		if stderrors.As(err, &dup) {
			collision := errors.CollisionError("body macro", name, dup.Existing, class.ClassName).
				WithLocation(errors.SourceLocation{File: record.SourcePath, Line: class.StartLine}).
				WithSuggestions("Give every annotated class its own GENERATED_BODY() line")
			collisions.Add(collision)
		}
	}

	return collisions.ErrorOrNil()
}
