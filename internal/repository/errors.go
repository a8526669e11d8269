// Package repository contains data access logic separated from HTTP handlers.
// Sentinel errors let handlers distinguish failure scenarios without parsing
// driver errors.
package repository

import "errors"

// ErrNotFound is returned when the requested entity does not exist. Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate it into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyExists is returned when a singleton resource (the about profile)
// is created twice. Handlers translate it into an HTTP 400 response.
var ErrAlreadyExists = errors.New("already exists")
