package events

const (
	TopicInventoryUpdated = "hostnet:events:inventory:updated"
	TopicHostResolved     = "hostnet:events:host:resolved"
)

const (
	InventoryActionPut    = "put"
	InventoryActionDelete = "delete"
)

// InventoryEvent is published on TopicInventoryUpdated after a snapshot is
// written to or removed from an inventory store.
type InventoryEvent struct {
	Hostname string
	Action   string
}

// ResolvedEvent is published on TopicHostResolved after every resolution
// served by the API, successful or not.
type ResolvedEvent struct {
	Hostname  string
	RequestID string
	Cached    bool
	Error     string
}
