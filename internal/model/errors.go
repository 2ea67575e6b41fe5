package model

import "errors"

// Common errors used across the application
var (
	// Principal errors
	ErrAdminNotFound = errors.New("admin not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailExists   = errors.New("email already registered")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Content errors
	ErrCategoryNotFound = errors.New("category not found")
)
