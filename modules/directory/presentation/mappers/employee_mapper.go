package mappers

import (
	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/modules/directory/presentation/viewmodels"
	"github.com/iota-uz/people-console/modules/directory/services"
	"github.com/iota-uz/people-console/pkg/composables"
)

const displayDateLayout = "02.01.2006"

// dash stands in for absent optional fields so rows render uniformly.
const dash = "-"

func orDash(v string) string {
	if v == "" {
		return dash
	}
	return v
}

func RoleBadge(r employee.Role) viewmodels.Badge {
	switch r {
	case employee.RoleAdmin:
		return viewmodels.Badge{Label: "Admin", Class: "badge-red"}
	case employee.RoleManager:
		return viewmodels.Badge{Label: "Manager", Class: "badge-yellow"}
	default:
		return viewmodels.Badge{Label: "Employee", Class: "badge-gray"}
	}
}

// StatusBadge renders the account state. A record without a set password is
// shown as pending regardless of its active flag.
func StatusBadge(e employee.Employee) viewmodels.Badge {
	if !e.HasPassword() {
		return viewmodels.Badge{Label: "Pending password", Class: "badge-yellow"}
	}
	if e.IsActive() {
		return viewmodels.Badge{Label: "Active", Class: "badge-green"}
	}
	return viewmodels.Badge{Label: "Inactive", Class: "badge-gray"}
}

func EmployeeToRow(e employee.Employee, sess *composables.Session) viewmodels.EmployeeRow {
	hireDate := dash
	if !e.HireDate().IsZero() {
		hireDate = e.HireDate().Format(displayDateLayout)
	}
	return viewmodels.EmployeeRow{
		ID:         e.ID(),
		FullName:   e.FullName(),
		Login:      "@" + e.Login(),
		Email:      orDash(e.Email()),
		Phone:      orDash(e.Phone()),
		Position:   orDash(e.Position()),
		Department: orDash(e.Department()),
		HireDate:   hireDate,
		RoleBadge:  RoleBadge(e.Role()),
		Status:     StatusBadge(e),
		Actions: viewmodels.ActionSet{
			CanEdit:   true,
			CanDelete: sess != nil && sess.IsAdmin(),
		},
	}
}

func PageToView(snap services.Snapshot, sess *composables.Session) viewmodels.EmployeesPage {
	rows := make([]viewmodels.EmployeeRow, 0, len(snap.Employees))
	for _, e := range snap.Employees {
		rows = append(rows, EmployeeToRow(e, sess))
	}
	filters := &employee.FindParams{
		Search: snap.Filters.Search,
		Role:   snap.Filters.Role,
		Active: snap.Filters.Active,
	}
	return viewmodels.EmployeesPage{
		Rows: rows,
		Pagination: viewmodels.Pagination{
			CurrentPage: snap.Cursor.CurrentPage,
			PerPage:     snap.Cursor.PerPage,
			Total:       snap.Cursor.Total,
			LastPage:    snap.Cursor.LastPage,
		},
		State:    string(snap.State),
		Loading:  snap.Loading,
		Filtered: filters.IsFiltered(),
	}
}

func EditorToView(editor *services.Editor, sess *composables.Session) viewmodels.EditorView {
	if !editor.IsOpen() {
		return viewmodels.EditorView{Open: false}
	}

	draft := editor.Draft()
	hireDate := ""
	if !draft.HireDate.IsZero() {
		hireDate = draft.HireDate.Format("2006-01-02")
	}

	selected := editor.Suggestions().Selected()
	candidates := editor.Suggestions().Suggestions()
	suggestions := make([]viewmodels.SuggestionView, 0, len(candidates))
	for _, s := range candidates {
		suggestions = append(suggestions, viewmodels.SuggestionView{
			Login:     s.Login,
			Available: s.Available,
			Selected:  s.Available && s.Login == selected,
		})
	}

	isAdmin := sess != nil && sess.IsAdmin()
	return viewmodels.EditorView{
		Open:        true,
		Mode:        string(editor.Mode()),
		FirstName:   draft.FirstName,
		LastName:    draft.LastName,
		Email:       draft.Email,
		Phone:       draft.Phone,
		Position:    draft.Position,
		Department:  draft.Department,
		Address:     draft.Address,
		HireDate:    hireDate,
		Role:        string(draft.Role),
		IsActive:    draft.IsActive,
		Login:       draft.SelectedLogin,
		Suggestions: suggestions,
		ShowRole:    isAdmin,
		ShowActive:  isAdmin,
	}
}

func StatisticsToView(s *employee.Statistics) viewmodels.StatisticsView {
	byRole := make(map[string]int, len(s.ByRole))
	for role, count := range s.ByRole {
		byRole[string(role)] = count
	}
	return viewmodels.StatisticsView{
		Total:    s.Total,
		Active:   s.Active,
		Inactive: s.Inactive,
		ByRole:   byRole,
	}
}
