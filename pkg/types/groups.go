package types

// GroupResult is the per-user security-group lookup result. Names are
// sorted ascending.
type GroupResult struct {
	Names []string
	Count int
}
