package royalty

// Handler processes the messages registered for it, for example creating a
// track or distributing a pool.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction without persisting anything.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction. Writes made before an error is returned
// are discarded by the savepoint around the handler.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a handler to provide a concern shared by all
// messages, such as authentication or logging. It must call next to let the
// transaction through.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Ticker runs scheduled work at a block time, outside of any transaction.
type Ticker interface {
	Tick(ctx Context, store KVStore) (*TickResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// Event is published by a handler after a successful state transition.
// Kind is a stable name consumers filter by.
type Event interface {
	Kind() string
}

type CheckResult struct {
	// Log is a human readable note.
	Log string
}

type DeliverResult struct {
	// Data is a machine readable value, such as the ID of a created
	// entity.
	Data []byte
	// Log is a human readable note.
	Log string
	// Events are meaningful only when no error was returned.
	Events []Event
}

// TickResult lists the events of the state changes a Ticker made.
type TickResult struct {
	Events []Event
}
