package dtos

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/people-console/pkg/constants"
)

// FiltersDTO sets or resets the directory filter criteria. Reset wins over
// the individual fields.
type FiltersDTO struct {
	Search *string `json:"search" validate:"omitempty"`
	Role   *string `json:"role" validate:"omitempty,oneof=employee manager admin"`
	Active *string `json:"active" validate:"omitempty,oneof=1 0"`
	Reset  bool    `json:"reset"`
}

// PageDTO moves the pagination cursor.
type PageDTO struct {
	Action string `json:"action" validate:"required,oneof=next prev goto"`
	Page   int    `json:"page" validate:"omitempty,gte=1"`
}

// OpenEditorDTO opens the editor; a nil ID starts a create flow.
type OpenEditorDTO struct {
	ID *uint `json:"id" validate:"omitempty,gt=0"`
}

// DraftDTO mutates the open draft. Only the fields present in the request are
// applied, so typing into one input never clobbers another.
type DraftDTO struct {
	FirstName  *string `json:"first_name" validate:"omitempty,max=255"`
	LastName   *string `json:"last_name" validate:"omitempty,max=255"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,max=64"`
	Position   *string `json:"position" validate:"omitempty,max=255"`
	Department *string `json:"department" validate:"omitempty,max=255"`
	Address    *string `json:"address" validate:"omitempty,max=512"`
	HireDate   *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	Role       *string `json:"role" validate:"omitempty,oneof=employee manager admin"`
	IsActive   *bool   `json:"is_active"`
	Login      *string `json:"login" validate:"omitempty,max=64"`
}

func (dto *FiltersDTO) Ok() (map[string]string, bool)    { return validate(dto) }
func (dto *PageDTO) Ok() (map[string]string, bool)       { return validate(dto) }
func (dto *OpenEditorDTO) Ok() (map[string]string, bool) { return validate(dto) }
func (dto *DraftDTO) Ok() (map[string]string, bool)      { return validate(dto) }

// ParsedHireDate converts the wire date once validation has passed.
func (dto *DraftDTO) ParsedHireDate() (time.Time, bool) {
	if dto.HireDate == nil || *dto.HireDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", *dto.HireDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func validate(dto any) (map[string]string, bool) {
	errorMessages := map[string]string{}
	errs := constants.Validate.Struct(dto)
	if errs == nil {
		return errorMessages, true
	}
	for _, err := range errs.(validator.ValidationErrors) {
		errorMessages[err.Field()] = fmt.Sprintf("%s failed on the %s rule", err.Field(), err.Tag())
	}
	return errorMessages, false
}
