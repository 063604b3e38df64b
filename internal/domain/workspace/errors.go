package workspace

import "errors"

var (
	// ErrWorkspaceNotFound indicates the workspace doesn't exist.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrWorkspaceExists indicates a workspace with the requested ID exists.
	ErrWorkspaceExists = errors.New("workspace already exists")
	// ErrInvalidInput indicates invalid workspace input.
	ErrInvalidInput = errors.New("invalid workspace input")
)
