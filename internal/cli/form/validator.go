// Package form validates operator input before it is sent to the backend.
package form

import "Linkshelf/internal/validation"

// ValidationErrors maps a field's json name to a human-readable message.
type ValidationErrors = validation.Errors

// Validator checks the input types of the resource clients.
type Validator = validation.Validator

func New() *Validator { return validation.New() }
