package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/modules/directory/infrastructure/gateway"
	"github.com/iota-uz/people-console/modules/directory/presentation/controllers/dtos"
	"github.com/iota-uz/people-console/modules/directory/presentation/mappers"
	"github.com/iota-uz/people-console/modules/directory/presentation/viewmodels"
	"github.com/iota-uz/people-console/modules/directory/services"
	"github.com/iota-uz/people-console/pkg/application"
	"github.com/iota-uz/people-console/pkg/composables"
	"github.com/iota-uz/people-console/pkg/httpapi"
)

// consoleResponse is the uniform reply of the console API: the directory
// snapshot, the editor state and whatever notifications accumulated since the
// last reply.
type consoleResponse struct {
	Directory     viewmodels.EmployeesPage `json:"directory"`
	Editor        viewmodels.EditorView    `json:"editor"`
	Notifications []services.Notification  `json:"notifications"`
}

// EmployeesController exposes the user directory console as a JSON API. All
// routes are session-scoped; each session owns an isolated console instance.
type EmployeesController struct {
	app      application.Application
	basePath string
	store    *consoleStore
}

func NewEmployeesController(app application.Application, gw employee.Gateway, perPage int) application.Controller {
	return &EmployeesController{
		app:      app,
		basePath: "/directory",
		store:    newConsoleStore(app, gw, perPage),
	}
}

func (c *EmployeesController) Key() string {
	return c.basePath
}

func (c *EmployeesController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()

	router.HandleFunc("", c.snapshot).Methods(http.MethodGet)
	router.HandleFunc("/refresh", c.refresh).Methods(http.MethodGet)
	router.HandleFunc("/filters", c.setFilters).Methods(http.MethodPost)
	router.HandleFunc("/page", c.movePage).Methods(http.MethodPost)
	router.HandleFunc("/editor", c.openEditor).Methods(http.MethodPost)
	router.HandleFunc("/editor", c.updateDraft).Methods(http.MethodPut)
	router.HandleFunc("/editor/submit", c.submitEditor).Methods(http.MethodPost)
	router.HandleFunc("/editor", c.closeEditor).Methods(http.MethodDelete)
	router.HandleFunc("/session", c.endSession).Methods(http.MethodDelete)
	router.HandleFunc("/statistics", c.statistics).Methods(http.MethodGet)
	router.HandleFunc("/{id:[0-9]+}", c.deleteEmployee).Methods(http.MethodDelete)
}

func (c *EmployeesController) console(w http.ResponseWriter, r *http.Request) (*console, *composables.Session, bool) {
	sess, err := composables.UseSession(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "session required", nil)
		return nil, nil, false
	}
	return c.store.For(sess), sess, true
}

func (c *EmployeesController) reply(w http.ResponseWriter, con *console, sess *composables.Session) {
	resp := &consoleResponse{
		Directory:     mappers.PageToView(con.query.Snapshot(), sess),
		Editor:        mappers.EditorToView(con.editor, sess),
		Notifications: con.notifier.Drain(),
	}
	if resp.Notifications == nil {
		resp.Notifications = []services.Notification{}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dto any) bool {
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "malformed JSON body", nil)
		return false
	}
	return true
}

func writeDTOErrors(w http.ResponseWriter, fields map[string]string) {
	out := make(map[string][]string, len(fields))
	for field, message := range fields {
		out[field] = []string{message}
	}
	_ = httpapi.WriteValidationErrors(w, out)
}

// deepLinkQuery lets GET /directory restore a bookmarked filter+page
// combination in one request.
type deepLinkQuery struct {
	Search string `form:"search"`
	Role   string `form:"role"`
	Active string `form:"active"`
	Page   int    `form:"page"`
}

func (c *EmployeesController) snapshot(w http.ResponseWriter, r *http.Request) {
	con, sess, ok := c.console(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	if len(r.URL.Query()) > 0 {
		params, err := composables.UseQuery(&deepLinkQuery{}, r)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_QUERY", "malformed query parameters", nil)
			return
		}
		if params.Search != "" {
			con.query.SetSearch(ctx, params.Search)
		}
		if params.Role != "" {
			con.query.SetRole(ctx, params.Role)
		}
		if params.Active != "" {
			con.query.SetActive(ctx, params.Active)
		}
		if params.Page > 0 {
			con.query.GoToPage(ctx, params.Page)
		}
	}

	// First touch of an idle console loads page one.
	if con.query.Snapshot().State == services.StateIdle {
		con.query.Refresh(ctx)
	}
	c.reply(w, con, sess)
}

func (c *EmployeesController) refresh(w http.ResponseWriter, r *http.Request) {
	con, sess, ok := c.console(w, r)
	if !ok {
		return
	}
	con.query.Refresh(r.Context())
	c.reply(w, con, sess)
}

func (c *EmployeesController) setFilters(w http.ResponseWriter, r *http.Request) {
	con, sess, ok := c.console(w, r)
	if !ok {
		return
	}
	dto := &dtos.FiltersDTO{}
	if !decodeBody(w, r, dto) {
		return
	}
	if fields, valid := dto.Ok(); !valid {
		writeDTOErrors(w, fields)
		return
	}

	ctx := r.Context()
	switch {
	case dto.Reset:
		con.query.ResetFilters(ctx)
	default:
		if dto.Search != nil {
			con.query.SetSearch(ctx, *dto.Search)
		}
		if dto.Role != nil {
			con.query.SetRole(ctx, *dto.Role)
		}
		if dto.Active != nil {
			con.query.SetActive(ctx, *dto.Active)
		}
	}
	c.reply(w, con, sess)
}

func (c *EmployeesController) movePage(w http.ResponseWriter, r *http.Request) {
	con, sess, ok := c.console(w, r)
	if !ok {
		return
	}
	dto := &dtos.PageDTO{}
	if !decodeBody(w, r, dto) {
		return
	}
	if fields, valid := dto.Ok(); !valid {
		writeDTOErrors(w, fields)
		return
	}

	ctx := r.Context()
	switch dto.Action {
	case "next":
		con.query.NextPage(ctx)
	case "prev":
		con.query.PrevPage(ctx)
	case "goto":
		con.query.GoToPage(ctx, dto.Page)
	}
	c.reply(w, con, sess)
}

func (c *EmployeesController) openEditor(w http.ResponseWriter, r *http.Request) {
	con, sess, ok := c.console(w, r)
	if !ok {
		return
	}
	dto := &dtos.OpenEditorDTO{}
	if !decodeBody(w, r, dto) {
		return
	}
	if fields, valid := dto.Ok(); !valid {
		writeDTOErrors(w, fields)
		return
	}

	var record employee.Employee
	if dto.ID != nil {
		found, err := con.directory.GetByID(r.Context(), *dto.ID)
		if err != nil {
			if errors.Is(err, gateway.ErrNotFound) {
				_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "employee not found", nil)
				return
			}
			_ = httpapi.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "failed to load the employee", nil)
			return
		}
		record = found
	}

	if err := con.editor.Open(record); err != nil {
		_ = httpapi.WriteError(w, http.StatusConflict, "EDITOR_OPEN", "an editor is already open", nil)
		return
	}
	c.reply(w, con, sess)
}

func (c *EmployeesController) updateDraft(w http.ResponseWriter, r *http.Request) {
	con, sess, ok := c.console(w, r)
	if !ok {
		return
	}
	dto := &dtos.DraftDTO{}
	if !decodeBody(w, r, dto) {
		return
	}
	if fields, valid := dto.Ok(); !valid {
		writeDTOErrors(w, fields)
		return
	}
	if err := c.applyDraft(r, con, dto); err != nil {
		switch {
		case errors.Is(err, services.ErrEditorClosed):
			_ = httpapi.WriteError(w, http.StatusConflict, "EDITOR_CLOSED", "no editor is open", nil)
		case errors.Is(err, services.ErrFieldImmutable):
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "FIELD_IMMUTABLE", "names and login cannot change on existing records", nil)
		case errors.Is(err, services.ErrRoleNotPermitted):
			_ = httpapi.WriteError(w, http.StatusForbidden, "FORBIDDEN", "only admins may change role or active status", nil)
		case errors.Is(err, services.ErrLoginUnavailable), errors.Is(err, services.ErrUnknownLogin):
			_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "LOGIN_REJECTED", err.Error(), nil)
		default:
			_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update the draft", nil)
		}
		return
	}
	c.reply(w, con, sess)
}

func (c *EmployeesController) applyDraft(r *http.Request, con *console, dto *dtos.DraftDTO) error {
	ctx := r.Context()

	if dto.FirstName != nil {
		if err := con.editor.SetFirstName(ctx, *dto.FirstName); err != nil {
			return err
		}
	}
	if dto.LastName != nil {
		if err := con.editor.SetLastName(ctx, *dto.LastName); err != nil {
			return err
		}
	}
	if dto.Email != nil {
		if err := con.editor.SetEmail(*dto.Email); err != nil {
			return err
		}
	}
	if dto.Phone != nil {
		if err := con.editor.SetPhone(*dto.Phone); err != nil {
			return err
		}
	}
	if dto.Position != nil {
		if err := con.editor.SetPosition(*dto.Position); err != nil {
			return err
		}
	}
	if dto.Department != nil {
		if err := con.editor.SetDepartment(*dto.Department); err != nil {
			return err
		}
	}
	if dto.Address != nil {
		if err := con.editor.SetAddress(*dto.Address); err != nil {
			return err
		}
	}
	if hireDate, set := dto.ParsedHireDate(); set {
		if err := con.editor.SetHireDate(hireDate); err != nil {
			return err
		}
	}
	if dto.Role != nil {
		role, err := employee.NewRole(*dto.Role)
		if err != nil {
			return err
		}
		if err := con.editor.SetRole(ctx, role); err != nil {
			return err
		}
	}
	if dto.IsActive != nil {
		if err := con.editor.SetActive(ctx, *dto.IsActive); err != nil {
			return err
		}
	}
	if dto.Login != nil {
		if err := con.editor.SelectLogin(*dto.Login); err != nil {
			return err
		}
	}
	return nil
}

func (c *EmployeesController) submitEditor(w http.ResponseWriter, r *http.Request) {
	con, sess, ok := c.console(w, r)
	if !ok {
		return
	}
	// Submission outcomes, including upstream validation failures, travel as
	// notifications; the editor state in the reply tells the client whether
	// the form closed.
	_ = con.editor.Submit(r.Context())
	c.reply(w, con, sess)
}

func (c *EmployeesController) closeEditor(w http.ResponseWriter, r *http.Request) {
	con, sess, ok := c.console(w, r)
	if !ok {
		return
	}
	con.editor.Close()
	c.reply(w, con, sess)
}

// endSession tears the session's console down. The auth proxy calls this on
// logout; the next request from the same session starts from a fresh console.
func (c *EmployeesController) endSession(w http.ResponseWriter, r *http.Request) {
	sess, err := composables.UseSession(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "session required", nil)
		return
	}
	c.store.Drop(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (c *EmployeesController) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	con, sess, ok := c.console(w, r)
	if !ok {
		return
	}
	if !sess.IsAdmin() {
		_ = httpapi.WriteError(w, http.StatusForbidden, "FORBIDDEN", "only admins may delete employees", nil)
		return
	}
	if composables.GetLastQueryParam(r, "confirm") != "true" {
		_ = httpapi.WriteError(w, http.StatusPreconditionRequired, "CONFIRM_REQUIRED", "deletion requires confirm=true", nil)
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "invalid employee id", nil)
		return
	}

	ctx := r.Context()
	if err := con.directory.Delete(ctx, uint(id)); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "employee not found", nil)
			return
		}
		// The failure notification is already queued; surface the snapshot.
		c.reply(w, con, sess)
		return
	}
	con.query.RefreshAfterDelete(ctx)
	c.reply(w, con, sess)
}

func (c *EmployeesController) statistics(w http.ResponseWriter, r *http.Request) {
	con, _, ok := c.console(w, r)
	if !ok {
		return
	}
	stats, err := con.directory.Statistics(r.Context())
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "failed to load statistics", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.StatisticsToView(stats))
}
