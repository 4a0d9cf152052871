package viewmodels

// Badge is a label/class pair ready for rendering.
type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

// ActionSet lists what the current operator may do with a row.
type ActionSet struct {
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// EmployeeRow is one directory row as displayed. Optional fields are
// dash-defaulted by the mapper so templates never branch on emptiness.
type EmployeeRow struct {
	ID         uint      `json:"id"`
	FullName   string    `json:"full_name"`
	Login      string    `json:"login"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	HireDate   string    `json:"hire_date"`
	RoleBadge  Badge     `json:"role_badge"`
	Status     Badge     `json:"status_badge"`
	Actions    ActionSet `json:"actions"`
}

// Pagination mirrors the server-reported cursor.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// EmployeesPage is the directory list as one renderable unit.
type EmployeesPage struct {
	Rows       []EmployeeRow `json:"rows"`
	Pagination Pagination    `json:"pagination"`
	State      string        `json:"state"`
	Loading    bool          `json:"loading"`
	Filtered   bool          `json:"filtered"`
}

// SuggestionView is one login candidate with its selectability.
type SuggestionView struct {
	Login     string `json:"login"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

// EditorView is the open editor's state for presentation.
type EditorView struct {
	Open        bool             `json:"open"`
	Mode        string           `json:"mode"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Position    string           `json:"position"`
	Department  string           `json:"department"`
	Address     string           `json:"address"`
	HireDate    string           `json:"hire_date"`
	Role        string           `json:"role"`
	IsActive    bool             `json:"is_active"`
	Login       string           `json:"login"`
	Suggestions []SuggestionView `json:"suggestions"`
	ShowRole    bool             `json:"show_role"`
	ShowActive  bool             `json:"show_active"`
}

// StatisticsView is the dashboard overview of the directory.
type StatisticsView struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByRole   map[string]int `json:"by_role"`
}
