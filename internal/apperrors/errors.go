package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConfiguration indicates that the approval rule configuration is malformed.
// Surfaced at rule set construction, before any evaluation runs.
var ErrConfiguration = errors.New("configuration error")

// ErrStorage indicates that the audit log could not be read or written.
var ErrStorage = errors.New("storage error")
