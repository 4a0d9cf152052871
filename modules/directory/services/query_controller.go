package services

import (
	"context"
	"sync"

	"github.com/iota-uz/people-console/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/people-console/pkg/eventbus"
)

type QueryState string

const (
	StateIdle    QueryState = "idle"
	StateLoading QueryState = "loading"
	StateLoaded  QueryState = "loaded"
	StateFailed  QueryState = "failed"
)

// PageCursor mirrors the paginator facts reported by the personnel API. The
// console never derives total or last_page itself.
type PageCursor struct {
	CurrentPage int
	PerPage     int
	Total       int
	LastPage    int
}

// FilterCriteria is the directory's three-part filter. Resetting clears all
// three at once.
type FilterCriteria struct {
	Search string
	Role   string
	Active string
}

// Snapshot is a consistent copy of the controller state for presentation.
type Snapshot struct {
	Employees []employee.Employee
	Cursor    PageCursor
	Filters   FilterCriteria
	State     QueryState
	Loading   bool
}

// QueryController owns the filter criteria and pagination cursor of the
// directory list and is the only writer of either. Every filter or page
// change issues exactly one fetch; fetches carry sequence tokens and only the
// most recently issued one may be applied, so the displayed page always
// matches the last requested filter+page combination.
type QueryController struct {
	gw        employee.Gateway
	publisher eventbus.EventBus
	notifier  Notifier

	mu        sync.Mutex
	seq       uint64
	inflight  int
	base      context.Context
	filters   FilterCriteria
	cursor    PageCursor
	employees []employee.Employee
	state     QueryState
}

func NewQueryController(gw employee.Gateway, publisher eventbus.EventBus, notifier Notifier, perPage int) *QueryController {
	qc := &QueryController{
		gw:        gw,
		publisher: publisher,
		notifier:  notifier,
		cursor:    PageCursor{CurrentPage: 1, PerPage: perPage},
		state:     StateIdle,
	}
	// The editor and the delete flow signal refreshes over the bus instead of
	// holding a reference to the controller.
	publisher.Subscribe(qc.onRefreshRequested)
	return qc
}

// BindContext sets the context used for refreshes triggered over the bus,
// so they carry the owning session's credentials.
func (qc *QueryController) BindContext(ctx context.Context) {
	qc.mu.Lock()
	qc.base = ctx
	qc.mu.Unlock()
}

func (qc *QueryController) onRefreshRequested(e *employee.RefreshRequestedEvent) {
	qc.mu.Lock()
	ctx := qc.base
	qc.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	qc.Refresh(ctx)
}

// SetSearch updates the free-text term, resets the cursor to page 1 and
// fetches.
func (qc *QueryController) SetSearch(ctx context.Context, search string) {
	qc.mu.Lock()
	qc.filters.Search = search
	qc.cursor.CurrentPage = 1
	qc.mu.Unlock()
	qc.fetch(ctx)
}

func (qc *QueryController) SetRole(ctx context.Context, role string) {
	qc.mu.Lock()
	qc.filters.Role = role
	qc.cursor.CurrentPage = 1
	qc.mu.Unlock()
	qc.fetch(ctx)
}

func (qc *QueryController) SetActive(ctx context.Context, active string) {
	qc.mu.Lock()
	qc.filters.Active = active
	qc.cursor.CurrentPage = 1
	qc.mu.Unlock()
	qc.fetch(ctx)
}

// ResetFilters clears all three criteria simultaneously and returns to
// page 1.
func (qc *QueryController) ResetFilters(ctx context.Context) {
	qc.mu.Lock()
	qc.filters = FilterCriteria{}
	qc.cursor.CurrentPage = 1
	qc.mu.Unlock()
	qc.fetch(ctx)
}

// NextPage advances one page; a no-op on the last page.
func (qc *QueryController) NextPage(ctx context.Context) {
	qc.mu.Lock()
	if qc.cursor.LastPage > 0 && qc.cursor.CurrentPage >= qc.cursor.LastPage {
		qc.mu.Unlock()
		return
	}
	qc.cursor.CurrentPage++
	qc.mu.Unlock()
	qc.fetch(ctx)
}

// PrevPage goes back one page; a no-op on page 1.
func (qc *QueryController) PrevPage(ctx context.Context) {
	qc.mu.Lock()
	if qc.cursor.CurrentPage <= 1 {
		qc.mu.Unlock()
		return
	}
	qc.cursor.CurrentPage--
	qc.mu.Unlock()
	qc.fetch(ctx)
}

// GoToPage jumps to the given page, clamped into [1, last_page].
func (qc *QueryController) GoToPage(ctx context.Context, page int) {
	qc.mu.Lock()
	if page < 1 {
		page = 1
	}
	if qc.cursor.LastPage > 0 && page > qc.cursor.LastPage {
		page = qc.cursor.LastPage
	}
	qc.cursor.CurrentPage = page
	qc.mu.Unlock()
	qc.fetch(ctx)
}

// Refresh re-fetches the current filter+page combination.
func (qc *QueryController) Refresh(ctx context.Context) {
	qc.fetch(ctx)
}

// RefreshAfterDelete re-fetches after a record was removed. When the deleted
// row was the only one on a page beyond the first, the cursor falls back one
// page so the user doesn't land on an empty page.
func (qc *QueryController) RefreshAfterDelete(ctx context.Context) {
	qc.mu.Lock()
	if len(qc.employees) == 1 && qc.cursor.CurrentPage > 1 {
		qc.cursor.CurrentPage--
	}
	qc.mu.Unlock()
	qc.fetch(ctx)
}

// fetch performs one gateway round trip. The response is applied only when no
// newer fetch was issued while it was in flight; stale responses are
// discarded silently. Failures keep the previously displayed page intact.
func (qc *QueryController) fetch(ctx context.Context) {
	qc.mu.Lock()
	qc.seq++
	token := qc.seq
	qc.inflight++
	qc.state = StateLoading
	params := &employee.FindParams{
		Page:    qc.cursor.CurrentPage,
		PerPage: qc.cursor.PerPage,
		Search:  qc.filters.Search,
		Role:    qc.filters.Role,
		Active:  qc.filters.Active,
	}
	qc.mu.Unlock()

	result, err := qc.gw.List(ctx, params)

	qc.mu.Lock()
	qc.inflight--

	if token != qc.seq {
		qc.mu.Unlock()
		return
	}

	if err != nil {
		qc.state = StateFailed
		qc.mu.Unlock()
		qc.notifier.Notify(Notification{Level: LevelError, Message: "failed to load the directory"})
		return
	}

	qc.employees = result.Employees
	qc.cursor = PageCursor{
		CurrentPage: result.CurrentPage,
		PerPage:     result.PerPage,
		Total:       result.Total,
		LastPage:    result.LastPage,
	}
	// Server counts are authoritative but the displayed page stays in range.
	if qc.cursor.LastPage > 0 && qc.cursor.CurrentPage > qc.cursor.LastPage {
		qc.cursor.CurrentPage = qc.cursor.LastPage
	}
	if qc.cursor.CurrentPage < 1 {
		qc.cursor.CurrentPage = 1
	}
	qc.state = StateLoaded
	loaded := &employee.PageLoadedEvent{
		Page:  qc.cursor.CurrentPage,
		Total: qc.cursor.Total,
	}
	qc.mu.Unlock()

	// Published outside the lock so subscribers may read the controller.
	qc.publisher.Publish(loaded)
}

// Snapshot returns a consistent copy of the current state.
func (qc *QueryController) Snapshot() Snapshot {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	employees := make([]employee.Employee, len(qc.employees))
	copy(employees, qc.employees)

	return Snapshot{
		Employees: employees,
		Cursor:    qc.cursor,
		Filters:   qc.filters,
		State:     qc.state,
		Loading:   qc.inflight > 0,
	}
}
