// Package storage содержит общие для всех реализаций хранилища ошибки.
package storage

import "errors"

// Ошибки хранилища, общие для PostgreSQL и памяти.
var (
	ErrNotFound     = errors.New("entry not found")
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)
