package errors

import "fmt"

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(item string, cause error) *BaseError {
	return Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate %s", item), cause).
		WithContext("target", item)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// FatalParseError creates the run-aborting error raised when an annotated
// class block has no parseable class name
func FatalParseError(file string, line int, message string) *BaseError {
	return New(FatalParseErrorCode, message).
		WithLocation(SourceLocation{File: file, Line: line}).
		WithSuggestions(
			"Declare the class as 'class Name {' or 'class Name : public Base {' after CLASS()",
			"Multiple inheritance and 'final' specifiers are not recognised",
		)
}

// CollisionError creates an error for two generated symbols sharing one name
func CollisionError(kind, name, first, second string) *BaseError {
	return Newf(CollisionErrorCode, "%s '%s' generated for both %s and %s", kind, name, first, second).
		WithContext("kind", kind).
		WithContext("name", name)
}

// ConfigurationError creates a configuration error
func ConfigurationError(configType, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", configType, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_type", configType)
}
