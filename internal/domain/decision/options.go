package decision

// ListOptions provides filtering options for listing decisions.
// A zero Limit returns every match.
type ListOptions struct {
	WorkspaceID string
	Statuses    []Status
	Limit       int
	Offset      int
}
