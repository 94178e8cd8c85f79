// Package apperrors defines the sentinel errors the request boundary
// maps to client-facing statuses. Every core operation reports failures
// through these so handlers can use errors.Is without inspecting text.
package apperrors

import "errors"

var (
	// ErrNotFound covers any entity lookup miss (user, article, comment, tag).
	ErrNotFound = errors.New("resource not found")

	// ErrNotAuthor is returned when a mutation requires ownership the actor lacks.
	ErrNotAuthor = errors.New("actor is not the author")

	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrRetentionPolicy blocks an owner-initiated delete for policy reasons.
	// Distinct from ErrNotAuthor so the boundary can report it separately.
	ErrRetentionPolicy = errors.New("delete blocked by retention policy")

	// ErrDuplicateUser signals a unique-constraint hit on username or email.
	ErrDuplicateUser = errors.New("username or email already taken")

	// ErrInvalidCredentials is returned on login failure. It deliberately
	// does not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
