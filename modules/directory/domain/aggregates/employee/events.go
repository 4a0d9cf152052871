package employee

// Domain events published on the application event bus after a gateway
// mutation succeeds. The query controller subscribes to RefreshRequestedEvent
// to reload the page it currently displays.

type CreatedEvent struct {
	Result Employee
}

func NewCreatedEvent(result Employee) *CreatedEvent {
	return &CreatedEvent{Result: result}
}

type UpdatedEvent struct {
	Result Employee
}

func NewUpdatedEvent(result Employee) *UpdatedEvent {
	return &UpdatedEvent{Result: result}
}

type DeletedEvent struct {
	ID uint
}

func NewDeletedEvent(id uint) *DeletedEvent {
	return &DeletedEvent{ID: id}
}

// RefreshRequestedEvent asks the query controller to re-fetch the current
// filter+page combination.
type RefreshRequestedEvent struct{}

// PageLoadedEvent is published after a fetch completes and its result has been
// applied (stale responses never produce one).
type PageLoadedEvent struct {
	Page  int
	Total int
}
