package progress

import "errors"

// ErrWorkspaceNotFound indicates the workspace doesn't exist.
var ErrWorkspaceNotFound = errors.New("workspace not found")
