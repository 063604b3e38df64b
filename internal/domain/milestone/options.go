package milestone

// ListOptions filters milestone listings. Exactly one of DecisionID and
// WorkspaceID is required. A zero Limit returns every match.
type ListOptions struct {
	DecisionID  string
	WorkspaceID string
	Limit       int
	Offset      int
}
