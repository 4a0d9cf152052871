package types

// NavigationItem is one sidebar entry of the console shell. AdminOnly entries
// are hidden from non-admin sessions rather than erroring.
type NavigationItem struct {
	Name      string
	Href      string
	Children  []NavigationItem
	AdminOnly bool
}

func (n NavigationItem) VisibleTo(isAdmin bool) bool {
	return !n.AdminOnly || isAdmin
}
