package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnsupportedFormat indicates a batch upload in a format the ingestion
// pipeline cannot parse.
var ErrUnsupportedFormat = errors.New("unsupported batch file format")

// ErrIllegalTransition indicates a workflow transition that is not permitted
// from the entry's current status.
var ErrIllegalTransition = errors.New("illegal workflow transition")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
