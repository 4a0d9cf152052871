package employee

// Wire values of the active-status filter. Empty means "no constraint".
const (
	ActiveAny = ""
	ActiveYes = "1"
	ActiveNo  = "0"
)

// FindParams is the flat filter+page parameter set of the list operation.
// Absent/empty Role and Active mean "no constraint"; Search is always sent,
// even when empty.
type FindParams struct {
	Page    int
	PerPage int
	Search  string
	Role    string
	Active  string
}

// IsFiltered reports whether any of the three criteria is constrained.
func (p *FindParams) IsFiltered() bool {
	return p.Search != "" || p.Role != "" || p.Active != ""
}
