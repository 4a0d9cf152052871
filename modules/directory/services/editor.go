package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/modules/directory/infrastructure/gateway"
	"github.com/iota-uz/people-console/pkg/composables"
	"github.com/iota-uz/people-console/pkg/eventbus"
)

type EditorMode string

const (
	ModeCreate EditorMode = "create"
	ModeEdit   EditorMode = "edit"
)

var (
	ErrEditorClosed     = errors.New("editor is not open")
	ErrEditorOpen       = errors.New("an editor is already open")
	ErrNamesRequired    = errors.New("first name and last name are required")
	ErrLoginNotChosen   = errors.New("an available login must be selected")
	ErrSubmitRejected   = errors.New("submission rejected by the personnel API")
	ErrFieldImmutable   = errors.New("field is immutable in edit mode")
	ErrRoleNotPermitted = errors.New("only admins may change role or active status")
)

// Draft is the editor's working copy. It lives only while the editor is open
// and is discarded on close; nothing is persisted unless Submit succeeds.
type Draft struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Position      string
	Department    string
	Address       string
	HireDate      time.Time
	Role          employee.Role
	IsActive      bool
	SelectedLogin string
}

// Editor is the create/edit form bound to at most one record at a time. In
// create mode it drives the suggestion service as names are typed; in edit
// mode names and login are frozen.
type Editor struct {
	gw          employee.Gateway
	publisher   eventbus.EventBus
	notifier    Notifier
	suggestions *SuggestionService

	mu       sync.Mutex
	open     bool
	mode     EditorMode
	recordID uint
	draft    Draft
}

func NewEditor(gw employee.Gateway, publisher eventbus.EventBus, notifier Notifier) *Editor {
	return &Editor{
		gw:          gw,
		publisher:   publisher,
		notifier:    notifier,
		suggestions: NewSuggestionService(gw, notifier),
	}
}

// Open starts a create flow (record == nil) or an edit flow for the given
// record. Only one editor may be open at a time.
func (e *Editor) Open(record employee.Employee) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.open {
		return ErrEditorOpen
	}

	e.suggestions.Reset()
	e.open = true

	if record == nil {
		e.mode = ModeCreate
		e.recordID = 0
		e.draft = Draft{Role: employee.RoleEmployee}
		return nil
	}

	e.mode = ModeEdit
	e.recordID = record.ID()
	e.draft = Draft{
		FirstName:     record.FirstName(),
		LastName:      record.LastName(),
		Email:         record.Email(),
		Phone:         record.Phone(),
		Position:      record.Position(),
		Department:    record.Department(),
		Address:       record.Address(),
		HireDate:      record.HireDate(),
		Role:          record.Role(),
		IsActive:      record.IsActive(),
		SelectedLogin: record.Login(),
	}
	return nil
}

func (e *Editor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

func (e *Editor) Mode() EditorMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Draft returns a copy of the working state. In create mode the selected
// login reflects the suggestion service.
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	draft := e.draft
	mode := e.mode
	e.mu.Unlock()

	if mode == ModeCreate {
		draft.SelectedLogin = e.suggestions.Selected()
	}
	return draft
}

func (e *Editor) Suggestions() *SuggestionService {
	return e.suggestions
}

// SetFirstName updates the draft and, in create mode, regenerates login
// candidates once both names are long enough. Immutable in edit mode.
func (e *Editor) SetFirstName(ctx context.Context, v string) error {
	return e.setName(ctx, func(d *Draft) { d.FirstName = v })
}

// SetLastName behaves like SetFirstName for the family name.
func (e *Editor) SetLastName(ctx context.Context, v string) error {
	return e.setName(ctx, func(d *Draft) { d.LastName = v })
}

func (e *Editor) setName(ctx context.Context, apply func(*Draft)) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return ErrEditorClosed
	}
	if e.mode == ModeEdit {
		e.mu.Unlock()
		return ErrFieldImmutable
	}
	apply(&e.draft)
	first, last := e.draft.FirstName, e.draft.LastName
	e.mu.Unlock()

	// The generation threshold lives in the suggestion service; short names
	// make this a no-op.
	e.suggestions.Generate(ctx, first, last)
	return nil
}

func (e *Editor) SetEmail(v string) error      { return e.setField(func(d *Draft) { d.Email = v }) }
func (e *Editor) SetPhone(v string) error      { return e.setField(func(d *Draft) { d.Phone = v }) }
func (e *Editor) SetPosition(v string) error   { return e.setField(func(d *Draft) { d.Position = v }) }
func (e *Editor) SetDepartment(v string) error { return e.setField(func(d *Draft) { d.Department = v }) }
func (e *Editor) SetAddress(v string) error    { return e.setField(func(d *Draft) { d.Address = v }) }
func (e *Editor) SetHireDate(v time.Time) error {
	return e.setField(func(d *Draft) { d.HireDate = v })
}

func (e *Editor) setField(apply func(*Draft)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return ErrEditorClosed
	}
	apply(&e.draft)
	return nil
}

// SetRole is admin-gated; for everyone else the field is hidden, so the call
// is rejected rather than silently applied.
func (e *Editor) SetRole(ctx context.Context, r employee.Role) error {
	sess, err := composables.UseSession(ctx)
	if err != nil || !sess.IsAdmin() {
		return ErrRoleNotPermitted
	}
	return e.setField(func(d *Draft) { d.Role = r })
}

// SetActive is admin-gated like SetRole.
func (e *Editor) SetActive(ctx context.Context, active bool) error {
	sess, err := composables.UseSession(ctx)
	if err != nil || !sess.IsAdmin() {
		return ErrRoleNotPermitted
	}
	return e.setField(func(d *Draft) { d.IsActive = active })
}

// SelectLogin picks one of the generated candidates (create mode only).
func (e *Editor) SelectLogin(login string) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return ErrEditorClosed
	}
	if e.mode == ModeEdit {
		e.mu.Unlock()
		return ErrFieldImmutable
	}
	e.mu.Unlock()
	return e.suggestions.Select(login)
}

// Submit validates the draft and calls the gateway. Validation errors from
// the personnel API are surfaced message by message and keep the editor open
// with the draft intact; on success the editor closes and a refresh is
// signalled over the bus.
func (e *Editor) Submit(ctx context.Context) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return ErrEditorClosed
	}
	mode := e.mode
	recordID := e.recordID
	draft := e.draft
	e.mu.Unlock()

	if strings.TrimSpace(draft.FirstName) == "" || strings.TrimSpace(draft.LastName) == "" {
		e.notifier.Notify(Notification{Level: LevelError, Message: "first name and last name are required"})
		return ErrNamesRequired
	}

	switch mode {
	case ModeCreate:
		return e.submitCreate(ctx, draft)
	default:
		return e.submitUpdate(ctx, recordID, draft)
	}
}

func (e *Editor) submitCreate(ctx context.Context, draft Draft) error {
	login := e.suggestions.Selected()
	if login == "" {
		e.notifier.Notify(Notification{Level: LevelError, Message: "an available login must be selected"})
		return ErrLoginNotChosen
	}

	data := &employee.CreateData{
		FirstName:  draft.FirstName,
		LastName:   draft.LastName,
		Login:      login,
		Email:      draft.Email,
		Phone:      draft.Phone,
		Position:   draft.Position,
		Department: draft.Department,
		Address:    draft.Address,
		HireDate:   draft.HireDate,
		Role:       draft.Role,
		IsActive:   draft.IsActive,
	}
	if sess, err := composables.UseSession(ctx); err != nil || !sess.IsAdmin() {
		// Role and active status are admin-only; everyone else creates plain
		// inactive employees.
		data.Role = employee.RoleEmployee
		data.IsActive = false
	}

	created, err := e.gw.Create(ctx, data)
	if err != nil {
		return e.reject(err)
	}

	e.close()
	e.notifier.Notify(Notification{Level: LevelSuccess, Message: "employee created"})
	e.publisher.Publish(employee.NewCreatedEvent(created))
	e.publisher.Publish(&employee.RefreshRequestedEvent{})
	return nil
}

func (e *Editor) submitUpdate(ctx context.Context, recordID uint, draft Draft) error {
	data := &employee.UpdateData{
		Email:      draft.Email,
		Phone:      draft.Phone,
		Position:   draft.Position,
		Department: draft.Department,
		Address:    draft.Address,
		HireDate:   draft.HireDate,
	}
	if sess, err := composables.UseSession(ctx); err == nil && sess.IsAdmin() {
		role := draft.Role
		active := draft.IsActive
		data.Role = &role
		data.IsActive = &active
	}

	updated, err := e.gw.Update(ctx, recordID, data)
	if err != nil {
		return e.reject(err)
	}

	e.close()
	e.notifier.Notify(Notification{Level: LevelSuccess, Message: "employee updated"})
	e.publisher.Publish(employee.NewUpdatedEvent(updated))
	e.publisher.Publish(&employee.RefreshRequestedEvent{})
	return nil
}

// reject surfaces a failed submission without losing the draft.
func (e *Editor) reject(err error) error {
	if ve, ok := gateway.AsValidationError(err); ok {
		for _, message := range ve.Messages() {
			e.notifier.Notify(Notification{Level: LevelError, Message: message})
		}
		return ErrSubmitRejected
	}
	e.notifier.Notify(Notification{Level: LevelError, Message: "the operation failed, please try again"})
	return err
}

// Close discards the draft. Cancel, overlay click and successful submit all
// end up here.
func (e *Editor) Close() {
	e.close()
}

func (e *Editor) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = false
	e.mode = ""
	e.recordID = 0
	e.draft = Draft{}
	e.suggestions.Reset()
}
