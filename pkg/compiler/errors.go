package compiler

import "fmt"

// Compile-time errors are fatal: any of these aborts the whole compilation
// with no partial output.

// DuplicateNameError reports two different schema references mapping to the
// same identifier. Silently merging unrelated types would be worse than
// failing, so this is fatal.
type DuplicateNameError struct {
	Name string
	Ref  string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate name detected: %q already names a different schema (while resolving %s)", e.Name, e.Ref)
}

// DuplicateOperationNameError reports two operations in the same tag
// resolving to the same method name.
type DuplicateOperationNameError struct {
	Tag  string
	Name string
}

func (e *DuplicateOperationNameError) Error() string {
	return fmt.Sprintf("duplicate operation name %q in tag %q", e.Name, e.Tag)
}

// EmptyAllOfError reports an allOf with no member schemas.
type EmptyAllOfError struct{}

func (e *EmptyAllOfError) Error() string {
	return "allOf must contain at least one schema"
}

// EmptyEnumError reports an enum with no usable values.
type EmptyEnumError struct{}

func (e *EmptyEnumError) Error() string {
	return "enum must contain at least one value"
}

// MissingTagsError reports an operation without tags. Tags are the sole
// grouping and filtering mechanism, so untagged operations cannot be placed.
type MissingTagsError struct {
	Method string
	Path   string
}

func (e *MissingTagsError) Error() string {
	return fmt.Sprintf("operation %s %s declares no tags", e.Method, e.Path)
}
