package employee

import (
	"time"
)

// Employee is one person's profile in the directory. First name, last name and
// login are assigned at creation and have no setters: the personnel API treats
// them as immutable, so the aggregate does too.
type Employee interface {
	ID() uint
	FirstName() string
	LastName() string
	FullName() string
	Login() string
	Email() string
	Phone() string
	Position() string
	Department() string
	Address() string
	HireDate() time.Time
	Role() Role
	IsActive() bool
	// HasPassword reports whether the person has set their own password.
	// Derived server-side; read-only here.
	HasPassword() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time

	SetEmail(email string) Employee
	SetPhone(phone string) Employee
	SetPosition(position string) Employee
	SetDepartment(department string) Employee
	SetAddress(address string) Employee
	SetHireDate(d time.Time) Employee
	SetRole(r Role) Employee
	SetActive(active bool) Employee
}

type Option func(e *emp)

func WithID(id uint) Option {
	return func(e *emp) {
		e.id = id
	}
}

func WithEmail(email string) Option {
	return func(e *emp) {
		e.email = email
	}
}

func WithPhone(phone string) Option {
	return func(e *emp) {
		e.phone = phone
	}
}

func WithPosition(position string) Option {
	return func(e *emp) {
		e.position = position
	}
}

func WithDepartment(department string) Option {
	return func(e *emp) {
		e.department = department
	}
}

func WithAddress(address string) Option {
	return func(e *emp) {
		e.address = address
	}
}

func WithHireDate(d time.Time) Option {
	return func(e *emp) {
		e.hireDate = d
	}
}

func WithRole(r Role) Option {
	return func(e *emp) {
		e.role = r
	}
}

func WithActive(active bool) Option {
	return func(e *emp) {
		e.isActive = active
	}
}

func WithHasPassword(hasPassword bool) Option {
	return func(e *emp) {
		e.hasPassword = hasPassword
	}
}

func WithCreatedAt(t time.Time) Option {
	return func(e *emp) {
		e.createdAt = t
	}
}

func WithUpdatedAt(t time.Time) Option {
	return func(e *emp) {
		e.updatedAt = t
	}
}

func New(firstName, lastName, login string, opts ...Option) Employee {
	e := &emp{
		firstName: firstName,
		lastName:  lastName,
		login:     login,
		role:      RoleEmployee,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type emp struct {
	id          uint
	firstName   string
	lastName    string
	login       string
	email       string
	phone       string
	position    string
	department  string
	address     string
	hireDate    time.Time
	role        Role
	isActive    bool
	hasPassword bool
	createdAt   time.Time
	updatedAt   time.Time
}

func (e *emp) ID() uint {
	return e.id
}

func (e *emp) FirstName() string {
	return e.firstName
}

func (e *emp) LastName() string {
	return e.lastName
}

func (e *emp) FullName() string {
	return e.firstName + " " + e.lastName
}

func (e *emp) Login() string {
	return e.login
}

func (e *emp) Email() string {
	return e.email
}

func (e *emp) Phone() string {
	return e.phone
}

func (e *emp) Position() string {
	return e.position
}

func (e *emp) Department() string {
	return e.department
}

func (e *emp) Address() string {
	return e.address
}

func (e *emp) HireDate() time.Time {
	return e.hireDate
}

func (e *emp) Role() Role {
	return e.role
}

func (e *emp) IsActive() bool {
	return e.isActive
}

func (e *emp) HasPassword() bool {
	return e.hasPassword
}

func (e *emp) CreatedAt() time.Time {
	return e.createdAt
}

func (e *emp) UpdatedAt() time.Time {
	return e.updatedAt
}

func (e *emp) setter(fn func(*emp)) Employee {
	copied := *e
	fn(&copied)
	copied.updatedAt = time.Now()
	return &copied
}

func (e *emp) SetEmail(email string) Employee {
	return e.setter(func(c *emp) {
		c.email = email
	})
}

func (e *emp) SetPhone(phone string) Employee {
	return e.setter(func(c *emp) {
		c.phone = phone
	})
}

func (e *emp) SetPosition(position string) Employee {
	return e.setter(func(c *emp) {
		c.position = position
	})
}

func (e *emp) SetDepartment(department string) Employee {
	return e.setter(func(c *emp) {
		c.department = department
	})
}

func (e *emp) SetAddress(address string) Employee {
	return e.setter(func(c *emp) {
		c.address = address
	})
}

func (e *emp) SetHireDate(d time.Time) Employee {
	return e.setter(func(c *emp) {
		c.hireDate = d
	})
}

func (e *emp) SetRole(r Role) Employee {
	return e.setter(func(c *emp) {
		c.role = r
	})
}

func (e *emp) SetActive(active bool) Employee {
	return e.setter(func(c *emp) {
		c.isActive = active
	})
}
