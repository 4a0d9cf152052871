package employee

import (
	"context"
	"time"
)

// PageResult is one page of the directory as reported by the personnel API.
// All four cursor fields are authoritative: the console mirrors them and never
// recomputes totals on its own.
type PageResult struct {
	Employees   []Employee
	CurrentPage int
	PerPage     int
	Total       int
	LastPage    int
}

// CreateData carries every field of a create submission, including the login
// picked from the generated candidates.
type CreateData struct {
	FirstName  string
	LastName   string
	Login      string
	Email      string
	Phone      string
	Position   string
	Department string
	Address    string
	HireDate   time.Time
	Role       Role
	IsActive   bool
}

// UpdateData is a partial update. Role and IsActive are nil unless the acting
// session is an admin; names and login are never part of an update.
type UpdateData struct {
	Email      string
	Phone      string
	Position   string
	Department string
	Address    string
	HireDate   time.Time
	Role       *Role
	IsActive   *bool
}

// Statistics are the aggregate counts consumed by the dashboard.
type Statistics struct {
	Total    int
	Active   int
	Inactive int
	ByRole   map[Role]int
}

// Gateway is the typed boundary to the personnel API. Implementations live in
// infrastructure; everything above it works in domain terms.
type Gateway interface {
	List(ctx context.Context, params *FindParams) (*PageResult, error)
	GetByID(ctx context.Context, id uint) (Employee, error)
	GenerateLogins(ctx context.Context, firstName, lastName string) ([]Suggestion, error)
	Create(ctx context.Context, data *CreateData) (Employee, error)
	Update(ctx context.Context, id uint, data *UpdateData) (Employee, error)
	Delete(ctx context.Context, id uint) error
	Statistics(ctx context.Context) (*Statistics, error)
}
