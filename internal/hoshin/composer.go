// Package hoshin turns the five planning fields into model prompts and the
// model responses into tables, suggestions and an optional workbook.
package hoshin

import (
	"errors"
	"fmt"
	"strings"

	"hoshin-matrix/internal/models"
)

// ErrMissingFields is wrapped by MissingFieldsError.
var ErrMissingFields = errors.New("missing required fields")

// MissingFieldsError lists the empty fields that blocked generation.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingFields
}

// Validate refuses inputs with any empty field.
func Validate(in models.Inputs) error {
	if missing := in.Missing(); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// ComposeMatrixPrompt asks for the four relation tables.
func ComposeMatrixPrompt(in models.Inputs) string {
	return fmt.Sprintf(models.MatrixPromptTemplate,
		in.Strategic, in.Annual, in.Priorities, in.KPIs, in.Responsibilities)
}

// ComposeSuggestionsPrompt asks for numbered improvement suggestions on the
// annual objectives, improvement priorities and KPIs.
func ComposeSuggestionsPrompt(in models.Inputs) string {
	return fmt.Sprintf(models.SuggestionsPromptTemplate,
		in.Strategic, in.Annual, in.Priorities, in.KPIs)
}
