package gateway

import (
	"encoding/json"
	"time"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
)

const hireDateLayout = "2006-01-02"

// envelope is the personnel API's uniform response wrapper.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

// userResource is one employee as serialized by the personnel API.
type userResource struct {
	ID          uint   `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Login       string `json:"login"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Position    string `json:"position"`
	Department  string `json:"department"`
	Address     string `json:"address"`
	HireDate    string `json:"hire_date"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	HasPassword bool   `json:"has_password"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// paginator is the Laravel paginator shape returned by the list operation.
// current_page/per_page/total/last_page are authoritative facts, mirrored
// into the cursor without client-side recomputation.
type paginator struct {
	Data        []userResource `json:"data"`
	CurrentPage int            `json:"current_page"`
	PerPage     int            `json:"per_page"`
	Total       int            `json:"total"`
	LastPage    int            `json:"last_page"`
}

type suggestionResource struct {
	Login     string `json:"login"`
	Available bool   `json:"available"`
}

type suggestionsData struct {
	Suggestions []suggestionResource `json:"suggestions"`
}

type statisticsData struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByRole   map[string]int `json:"by_role"`
}

// createPayload is the body of POST /users. Naming follows the API's
// snake_case contract; selected_login has already been mapped onto login.
type createPayload struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Login      string `json:"login"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
	Address    string `json:"address,omitempty"`
	HireDate   string `json:"hire_date,omitempty"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
}

// updatePayload is the body of PUT /users/{id}. Names and login are never
// sent; role/is_active only when the acting session may change them.
type updatePayload struct {
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Position   string  `json:"position,omitempty"`
	Department string  `json:"department,omitempty"`
	Address    string  `json:"address,omitempty"`
	HireDate   string  `json:"hire_date,omitempty"`
	Role       *string `json:"role,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func toCreatePayload(data *employee.CreateData) *createPayload {
	p := &createPayload{
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Login:      data.Login,
		Email:      data.Email,
		Phone:      data.Phone,
		Position:   data.Position,
		Department: data.Department,
		Address:    data.Address,
		Role:       string(data.Role),
		IsActive:   data.IsActive,
	}
	if !data.HireDate.IsZero() {
		p.HireDate = data.HireDate.Format(hireDateLayout)
	}
	return p
}

func toUpdatePayload(data *employee.UpdateData) *updatePayload {
	p := &updatePayload{
		Email:      data.Email,
		Phone:      data.Phone,
		Position:   data.Position,
		Department: data.Department,
		Address:    data.Address,
	}
	if !data.HireDate.IsZero() {
		p.HireDate = data.HireDate.Format(hireDateLayout)
	}
	if data.Role != nil {
		role := string(*data.Role)
		p.Role = &role
	}
	if data.IsActive != nil {
		active := *data.IsActive
		p.IsActive = &active
	}
	return p
}

func toDomain(res *userResource) employee.Employee {
	role, err := employee.NewRole(res.Role)
	if err != nil {
		role = employee.RoleEmployee
	}

	opts := []employee.Option{
		employee.WithID(res.ID),
		employee.WithEmail(res.Email),
		employee.WithPhone(res.Phone),
		employee.WithPosition(res.Position),
		employee.WithDepartment(res.Department),
		employee.WithAddress(res.Address),
		employee.WithRole(role),
		employee.WithActive(res.IsActive),
		employee.WithHasPassword(res.HasPassword),
	}
	if d, err := time.Parse(hireDateLayout, res.HireDate); err == nil {
		opts = append(opts, employee.WithHireDate(d))
	}
	if t, err := time.Parse(time.RFC3339, res.CreatedAt); err == nil {
		opts = append(opts, employee.WithCreatedAt(t))
	}
	if t, err := time.Parse(time.RFC3339, res.UpdatedAt); err == nil {
		opts = append(opts, employee.WithUpdatedAt(t))
	}

	return employee.New(res.FirstName, res.LastName, res.Login, opts...)
}

func toDomainPage(p *paginator) *employee.PageResult {
	employees := make([]employee.Employee, 0, len(p.Data))
	for i := range p.Data {
		employees = append(employees, toDomain(&p.Data[i]))
	}
	return &employee.PageResult{
		Employees:   employees,
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
		Total:       p.Total,
		LastPage:    p.LastPage,
	}
}

func toDomainSuggestions(d *suggestionsData) []employee.Suggestion {
	suggestions := make([]employee.Suggestion, 0, len(d.Suggestions))
	for _, s := range d.Suggestions {
		suggestions = append(suggestions, employee.Suggestion{
			Login:     s.Login,
			Available: s.Available,
		})
	}
	return suggestions
}

func toDomainStatistics(d *statisticsData) *employee.Statistics {
	byRole := make(map[employee.Role]int, len(d.ByRole))
	for r, count := range d.ByRole {
		byRole[employee.Role(r)] = count
	}
	return &employee.Statistics{
		Total:    d.Total,
		Active:   d.Active,
		Inactive: d.Inactive,
		ByRole:   byRole,
	}
}
