package domain

import "errors"

// ErrNodeNotFound is returned when a node ID does not exist in the diagram.
var ErrNodeNotFound = errors.New("node not found")

// ErrUnknownRole is returned when a role name is not movement, binding or unbinding.
var ErrUnknownRole = errors.New("unknown role")

// ErrDiagramNotFound is returned when a diagram ID cannot be found in the store.
var ErrDiagramNotFound = errors.New("diagram not found")

// ErrInvalidEnvironment is returned when environment data fails structural validation.
var ErrInvalidEnvironment = errors.New("invalid environment file format")

// ErrLockAcquire is returned when a diagram lock cannot be acquired before the context ends.
var ErrLockAcquire = errors.New("failed to acquire diagram lock")
