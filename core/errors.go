package core

import (
	"errors"
	"fmt"
)

// ErrDuplicateDefinition is returned when a catalog already holds a name
var ErrDuplicateDefinition = errors.New("definition already registered")

// ErrInvalidField represents a validation error for a specific field
type ErrInvalidField struct {
	Field   string
	Message string
}

func (e ErrInvalidField) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrMissingDefinition is returned when a model source produced nothing
type ErrMissingDefinition struct {
	File string
}

func (e ErrMissingDefinition) Error() string {
	return fmt.Sprintf("model file %s did not return a definition", e.File)
}

// ErrDuplicateModel is returned when two sources resolve to the same model name
type ErrDuplicateModel struct {
	Name     string
	File     string
	Previous string
}

func (e ErrDuplicateModel) Error() string {
	return fmt.Sprintf("model %s from %s is already registered by %s", e.Name, e.File, e.Previous)
}

// ErrUnknownType is returned when a model file names a type missing from the namespace
type ErrUnknownType struct {
	File  string
	Field string
	Type  string
}

func (e ErrUnknownType) Error() string {
	return fmt.Sprintf("%s: field %s has unknown type %q", e.File, e.Field, e.Type)
}

type ErrUnknownMethod struct {
	Model  string
	Method string
}

func (e ErrUnknownMethod) Error() string {
	return fmt.Sprintf("model %s has no method %s", e.Model, e.Method)
}
